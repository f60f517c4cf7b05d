package model

import (
	"fmt"
	"strings"
)

// Phase tags what a Step records.
type Phase string

const (
	PhaseInit      Phase = "init"
	PhaseComparing Phase = "comparing"
	PhaseFilled    Phase = "filled"
	PhaseTraceback Phase = "traceback"
	PhaseComplete  Phase = "complete"
)

// Status returns the one-line progress text shown next to the rod.
func (p Phase) Status() string {
	switch p {
	case PhaseInit:
		return "Initializing…"
	case PhaseComparing, PhaseFilled:
		return "Filling DP table…"
	case PhaseTraceback:
		return "Tracing optimal cuts…"
	case PhaseComplete:
		return "Solution found ✓"
	default:
		return "Waiting for initialization"
	}
}

// NoRow marks an unset row index on a Step.
const NoRow = -1

// FormulaRow is one candidate evaluated while filling dp[i].
type FormulaRow struct {
	Cut             int  `json:"cut"`
	Price           int  `json:"price"`
	RemainderProfit int  `json:"remainder_profit"`
	RemainderLength int  `json:"remainder_length"`
	Total           int  `json:"total"`
	IsBest          bool `json:"is_best"`
}

// String renders the row the way the formula panel shows it.
func (r FormulaRow) String() string {
	s := fmt.Sprintf("price[%d] + dp[%d] = %d + %d = %d",
		r.Cut, r.RemainderLength, r.Price, r.RemainderProfit, r.Total)
	if r.IsBest {
		s += "  ← Best"
	}
	return s
}

// Step is an immutable snapshot of the algorithm at one micro-decision.
// Fields that do not apply to a phase hold their zero value, or NoRow for
// row indices.
type Step struct {
	Phase       Phase `json:"phase"`
	DP          []int `json:"dp"`
	Cut         []int `json:"cut"`
	FilledUpTo  int   `json:"filled_up_to"`
	Comparisons int   `json:"comparisons"`

	ActiveRow  int          `json:"active_row"`
	ComparingJ int          `json:"comparing_j,omitempty"`
	TargetRow  int          `json:"target_row"`
	Formula    []FormulaRow `json:"formula,omitempty"`
	BestSoFar  int          `json:"best_so_far,omitempty"`
	BestProfit int          `json:"best_profit,omitempty"`
	BestCut    int          `json:"best_cut,omitempty"`
	Pieces     []int        `json:"pieces,omitempty"`
	MaxProfit  int          `json:"max_profit,omitempty"`

	Explanation string `json:"explanation"`
	CodeLines   []int  `json:"code_lines"`
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	c := s
	c.DP = copyInts(s.DP)
	c.Cut = copyInts(s.Cut)
	c.Pieces = copyInts(s.Pieces)
	c.CodeLines = copyInts(s.CodeLines)
	if s.Formula != nil {
		c.Formula = make([]FormulaRow, len(s.Formula))
		copy(c.Formula, s.Formula)
	}
	return c
}

// HasFormula reports whether the step carries a live recurrence.
func (s Step) HasFormula() bool {
	return s.Phase == PhaseComparing || s.Phase == PhaseFilled
}

// FormulaTarget is the heading of the formula panel.
func (s Step) FormulaTarget() string {
	switch s.Phase {
	case PhaseComparing:
		return fmt.Sprintf("dp[%d] = max(...)", s.ActiveRow)
	case PhaseFilled:
		return fmt.Sprintf("dp[%d] = %d", s.ActiveRow, s.BestProfit)
	default:
		return ""
	}
}

// FormulaResult is the footer of the formula panel once a row is filled.
func (s Step) FormulaResult() string {
	if s.Phase != PhaseFilled {
		return ""
	}
	return fmt.Sprintf("Best: cut %s → profit = %d", Units(s.BestCut), s.BestProfit)
}

// IsCurrent reports whether row r is the candidate being compared.
func (s Step) IsCurrent(r FormulaRow) bool {
	return s.Phase == PhaseComparing && r.Cut == s.ComparingJ
}

// Summary holds the headline statistics of a trace.
type Summary struct {
	TotalSteps       int `json:"total_steps"`
	TotalComparisons int `json:"total_comparisons"`
	MaxProfit        int `json:"max_profit"`
	PieceCount       int `json:"piece_count"`
}

// Trace is the complete, ordered step sequence for one Problem. It is
// immutable: every accessor returns copies.
type Trace struct {
	problem     Problem
	steps       []Step
	dp          []int
	cut         []int
	pieces      []int
	comparisons int
}

// NewTrace assembles a trace. It takes ownership of steps; dp, cut and
// pieces are copied.
func NewTrace(problem Problem, steps []Step, dp, cut, pieces []int, comparisons int) *Trace {
	return &Trace{
		problem:     problem.Clone(),
		steps:       steps,
		dp:          copyInts(dp),
		cut:         copyInts(cut),
		pieces:      copyInts(pieces),
		comparisons: comparisons,
	}
}

// Problem returns the input the trace was built from.
func (t *Trace) Problem() Problem { return t.problem.Clone() }

// Len returns the number of steps.
func (t *Trace) Len() int { return len(t.steps) }

// Step returns the step at index i.
func (t *Trace) Step(i int) (Step, error) {
	if i < 0 || i >= len(t.steps) {
		return Step{}, fmt.Errorf("step index %d out of range [0, %d)", i, len(t.steps))
	}
	return t.steps[i].Clone(), nil
}

// Steps returns a deep copy of the whole sequence.
func (t *Trace) Steps() []Step {
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = s.Clone()
	}
	return out
}

// Last returns the final (complete) step.
func (t *Trace) Last() Step {
	return t.steps[len(t.steps)-1].Clone()
}

// DP returns the final profit table.
func (t *Trace) DP() []int { return copyInts(t.dp) }

// Cuts returns the final first-cut table.
func (t *Trace) Cuts() []int { return copyInts(t.cut) }

// Pieces returns the optimal piece lengths in traceback order.
func (t *Trace) Pieces() []int { return copyInts(t.pieces) }

// MaxProfit returns dp[RodLength].
func (t *Trace) MaxProfit() int { return t.dp[t.problem.RodLength] }

// Summary returns the headline statistics.
func (t *Trace) Summary() Summary {
	return Summary{
		TotalSteps:       len(t.steps),
		TotalComparisons: t.comparisons,
		MaxProfit:        t.MaxProfit(),
		PieceCount:       len(t.pieces),
	}
}

// Units formats a length with its unit word, "1 unit" or "3 units".
func Units(n int) string {
	if n == 1 {
		return "1 unit"
	}
	return fmt.Sprintf("%d units", n)
}

// JoinInts joins integers with a separator, e.g. "2 + 6".
func JoinInts(vals []int, sep string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, sep)
}
