package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RodCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// ShareInfo is the data encoded into a share card's QR code. Scanning it
// and passing the payload to DecodeShareInfo reproduces the problem.
type ShareInfo struct {
	RodLength int    `json:"n"`
	Prices    []int  `json:"prices"`
	MaxProfit int    `json:"max_profit"`
	Pieces    []int  `json:"pieces"`
	Preset    string `json:"preset,omitempty"`
}

// Share card layout constants (A6, wider than tall).
const (
	cardWidth   = 148.0
	cardHeight  = 105.0
	cardMargin  = 8.0
	cardQRSize  = 48.0
	cardTextW   = cardWidth - cardQRSize - 3*cardMargin
	cardRodY    = 78.0
	cardRodH    = 10.0
	qrImageName = "share_qr"
)

// CollectShareInfo extracts the share payload from a trace.
func CollectShareInfo(trace *model.Trace, presetID string) ShareInfo {
	p := trace.Problem()
	return ShareInfo{
		RodLength: p.RodLength,
		Prices:    p.Prices,
		MaxProfit: trace.MaxProfit(),
		Pieces:    trace.Pieces(),
		Preset:    presetID,
	}
}

// DecodeShareInfo parses a scanned payload and validates the problem in it.
func DecodeShareInfo(data []byte) (ShareInfo, model.Problem, error) {
	var info ShareInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ShareInfo{}, model.Problem{}, fmt.Errorf("failed to parse share payload: %w", err)
	}
	p := model.NewProblem(info.RodLength, info.Prices)
	if err := p.Validate(); err != nil {
		return ShareInfo{}, model.Problem{}, err
	}
	return info, p, nil
}

// ExportShareCard generates a one-page PDF card with the problem, its
// answer and a QR code encoding the problem as JSON.
func ExportShareCard(path string, trace *model.Trace, presetID string) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to share")
	}
	info := CollectShareInfo(trace, presetID)

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal share info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cardWidth, Ht: cardHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(2, 2, cardWidth-4, cardHeight-4, "D")

	pdf.RegisterImageOptionsReader(qrImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImageName, cardWidth-cardQRSize-cardMargin, cardMargin, cardQRSize, cardQRSize,
		false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(cardMargin, cardMargin)
	pdf.CellFormat(cardTextW, 8, "Rod Cutting Challenge", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(cardMargin)
	pdf.CellFormat(cardTextW, 5, fmt.Sprintf("Rod length: %s", model.Units(info.RodLength)), "", 1, "L", false, 0, "")
	pdf.SetX(cardMargin)
	pdf.MultiCell(cardTextW, 5, "Prices: "+model.JoinInts(info.Prices, ", "), "", "L", false)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(cardMargin)
	pdf.CellFormat(cardTextW, 6, fmt.Sprintf("Best profit: $%d", info.MaxProfit), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetX(cardMargin)
	pdf.CellFormat(cardTextW, 5, "Cut into: "+model.JoinInts(info.Pieces, " + "), "", 1, "L", false, 0, "")

	// Mini rod
	scale := (cardWidth - 2*cardMargin) / float64(info.RodLength)
	x := cardMargin
	for _, piece := range info.Pieces {
		w := float64(piece) * scale
		col := model.PieceColor(piece)
		pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, cardRodY, w, cardRodH, "FD")
		x += w
	}

	pdf.SetFont("Helvetica", "I", 6)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(cardMargin, cardHeight-cardMargin)
	pdf.CellFormat(cardWidth-2*cardMargin, 3, "Scan to load this problem in RodCut", "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}
