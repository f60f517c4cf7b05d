// Package gcode turns an optimal cut plan into a machine program for a saw
// or router cutting straight across the rod, and reads such programs back.
package gcode

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/piwi3910/RodCut/internal/model"
)

// Generator produces GCode for the optimal pieces of a solved trace.
//
// The rod lies along X starting at the origin, its width along Y. Every
// cut is a straight pass across Y at a fixed X, repeated at increasing
// depth until CutDepth is reached.
type Generator struct {
	Settings model.CutSettings
	profile  model.GCodeProfile
}

// New looks the profile named in settings up among the built-ins.
func New(settings model.CutSettings) *Generator {
	return NewWithProfile(settings, model.GetProfile(settings.GCodeProfile))
}

// NewWithProfile uses profile instead of looking settings.GCodeProfile up
// among the built-ins.
func NewWithProfile(settings model.CutSettings, profile model.GCodeProfile) *Generator {
	return &Generator{Settings: settings, profile: profile}
}

// CutPositions returns the X centre line of each cut that separates
// consecutive pieces. Each cut removes kerf, so piece k keeps its full
// length and the stock must be longer than the rod by one kerf per cut.
func CutPositions(pieces []int, unitLength, kerf float64) []float64 {
	if len(pieces) < 2 {
		return nil
	}
	xs := make([]float64, 0, len(pieces)-1)
	x := 0.0
	for i, piece := range pieces[:len(pieces)-1] {
		x += float64(piece) * unitLength
		xs = append(xs, x+float64(i)*kerf+kerf/2)
	}
	return xs
}

// StockRequired is the stock length in mm needed to cut pieces without
// losing length to the blade.
func StockRequired(rodLength, cuts int, unitLength, kerf float64) float64 {
	return float64(rodLength)*unitLength + float64(cuts)*kerf
}

// PassCount returns the number of depth passes for one cut.
func (g *Generator) PassCount() int {
	return int(math.Ceil(g.Settings.CutDepth / g.Settings.PassDepth))
}

func (g *Generator) validate(trace *model.Trace) error {
	if trace == nil || trace.Len() == 0 {
		return fmt.Errorf("no trace to generate a cut program for")
	}
	s := g.Settings
	switch {
	case s.UnitLength <= 0:
		return fmt.Errorf("unit length must be positive, got %.2f", s.UnitLength)
	case s.CutDepth <= 0:
		return fmt.Errorf("cut depth must be positive, got %.2f", s.CutDepth)
	case s.PassDepth <= 0:
		return fmt.Errorf("pass depth must be positive, got %.2f", s.PassDepth)
	case s.KerfWidth < 0:
		return fmt.Errorf("kerf width cannot be negative, got %.2f", s.KerfWidth)
	}
	return nil
}

// Generate produces the cut program for the trace's optimal pieces.
func (g *Generator) Generate(trace *model.Trace) (string, error) {
	if err := g.validate(trace); err != nil {
		return "", err
	}

	pieces := trace.Pieces()
	cuts := CutPositions(pieces, g.Settings.UnitLength, g.Settings.KerfWidth)

	var b strings.Builder
	g.writeHeader(&b, trace, len(cuts))

	if len(cuts) == 0 {
		b.WriteString(g.comment("No cuts needed: the whole rod is the best sale"))
	}
	for i, x := range cuts {
		g.writeCut(&b, x, i+1, len(cuts), pieces[i])
	}

	g.writeFooter(&b)
	return b.String(), nil
}

// WriteFile generates the program and saves it to path.
func (g *Generator) WriteFile(path string, trace *model.Trace) error {
	code, err := g.Generate(trace)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write GCode: %w", err)
	}
	return nil
}

func (g *Generator) writeHeader(b *strings.Builder, trace *model.Trace, cuts int) {
	p := g.profile
	s := g.Settings
	problem := trace.Problem()

	b.WriteString(g.comment(fmt.Sprintf("RodCut GCode: rod of %s cut into %s",
		model.Units(problem.RodLength), model.JoinInts(trace.Pieces(), " + "))))
	b.WriteString(g.comment(fmt.Sprintf("Stock: %.1f x %.1f mm (%.1f mm incl. kerf)",
		float64(problem.RodLength)*s.UnitLength, s.RodWidth,
		StockRequired(problem.RodLength, cuts, s.UnitLength, s.KerfWidth))))
	b.WriteString(g.comment(fmt.Sprintf("Cuts: %d, Profit: $%d", cuts, trace.MaxProfit())))
	b.WriteString(g.comment(fmt.Sprintf("Kerf: %.1fmm, Feed: %.0f mm/min, Plunge: %.0f mm/min",
		s.KerfWidth, s.FeedRate, s.PlungeRate)))
	b.WriteString(g.comment(fmt.Sprintf("Depth: %.1fmm in %.1fmm passes", s.CutDepth, s.PassDepth)))
	b.WriteString(g.comment(fmt.Sprintf("Profile: %s", p.Name)))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if p.SpindleStart != "" {
		b.WriteString(fmt.Sprintf(p.SpindleStart+"\n", s.SpindleSpeed))
	}

	// Initial safe Z retract
	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(0), g.format(0)))
	b.WriteString("\n")
}

// writeCut cuts across the rod at x. Passes alternate direction so the
// tool never travels back over the rod above the cut.
func (g *Generator) writeCut(b *strings.Builder, x float64, cutNum, cutTotal, piece int) {
	p := g.profile
	s := g.Settings
	clearance := s.KerfWidth
	yStart, yEnd := -clearance, s.RodWidth+clearance

	b.WriteString(g.comment(fmt.Sprintf("--- Cut %d/%d at X=%s (after a piece of %s) ---",
		cutNum, cutTotal, g.format(x), model.Units(piece))))
	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", p.RapidMove, g.format(x), g.format(yStart)))

	passes := g.PassCount()
	for pass := 1; pass <= passes; pass++ {
		depth := math.Min(float64(pass)*s.PassDepth, s.CutDepth)
		b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d, depth=%.2fmm", pass, passes, depth)))
		b.WriteString(fmt.Sprintf("%s Z%s F%s\n", p.FeedMove, g.format(-depth), g.format(s.PlungeRate)))
		b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", p.FeedMove, g.format(x), g.format(yEnd), g.format(s.FeedRate)))
		yStart, yEnd = yEnd, yStart
	}

	b.WriteString(fmt.Sprintf("%s Z%s\n", p.RapidMove, g.format(s.SafeZ)))
	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))

	for _, code := range p.EndCode {
		code = strings.ReplaceAll(code, "[SafeZ]", g.format(g.Settings.SafeZ))
		b.WriteString(code + "\n")
	}
	if p.SpindleStop != "" {
		b.WriteString(p.SpindleStop + "\n")
	}
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	return fmt.Sprintf("%.*f", g.profile.DecimalPlaces, v)
}
