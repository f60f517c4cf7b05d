package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/RodCut/internal/model"
)

// TraceDocument is the JSON form of a solved trace.
type TraceDocument struct {
	ID          string        `json:"id"`
	GeneratedAt string        `json:"generated_at"`
	Problem     model.Problem `json:"problem"`
	Summary     model.Summary `json:"summary"`
	DP          []int         `json:"dp"`
	Cut         []int         `json:"cut"`
	Pieces      []int         `json:"pieces"`
	Steps       []model.Step  `json:"steps,omitempty"`
}

// NewTraceDocument snapshots a trace. Steps are omitted unless withSteps.
func NewTraceDocument(trace *model.Trace, withSteps bool) TraceDocument {
	doc := TraceDocument{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Problem:     trace.Problem(),
		Summary:     trace.Summary(),
		DP:          trace.DP(),
		Cut:         trace.Cuts(),
		Pieces:      trace.Pieces(),
	}
	if withSteps {
		doc.Steps = trace.Steps()
	}
	return doc
}

// WriteJSON encodes the trace document as indented JSON.
func WriteJSON(w io.Writer, trace *model.Trace, withSteps bool) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to export")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewTraceDocument(trace, withSteps)); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// ExportJSON writes the trace document, including every step, to path.
func ExportJSON(path string, trace *model.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteJSON(f, trace, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadTraceDocument loads a document written by ExportJSON.
func ReadTraceDocument(path string) (TraceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TraceDocument{}, fmt.Errorf("failed to read file: %w", err)
	}
	var doc TraceDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return TraceDocument{}, fmt.Errorf("failed to parse trace document: %w", err)
	}
	return doc, nil
}
