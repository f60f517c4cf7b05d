package engine

import "github.com/piwi3910/RodCut/internal/model"

// Pseudocode line indices highlighted per phase.
var (
	linesInit      = []int{0, 1}
	linesComparing = []int{2, 3, 4}
	linesFilled    = []int{5, 6}
	linesTraceback = []int{7, 8}
	linesComplete  = []int{7}
)

// recorder appends immutable snapshots. Every slice handed to it is copied
// before it is stored, so the evaluator may keep mutating its arrays.
type recorder struct {
	problem model.Problem
	steps   []model.Step
	lastRow int
}

func newRecorder(p model.Problem) *recorder {
	n := p.RodLength
	return &recorder{
		problem: p,
		steps:   make([]model.Step, 0, StepCount(n, n)),
	}
}

func (r *recorder) emit(s model.Step) {
	r.steps = append(r.steps, s.Clone())
}

func (r *recorder) init() {
	n := r.problem.RodLength
	r.emit(model.Step{
		Phase:       model.PhaseInit,
		DP:          make([]int, n+1),
		Cut:         make([]int, n+1),
		ActiveRow:   model.NoRow,
		TargetRow:   model.NoRow,
		Explanation: explainInit(n),
		CodeLines:   linesInit,
	})
}

func (r *recorder) comparing(dp, cut []int, i, j int, rows []model.FormulaRow, bestSoFar, comparisons int) {
	row := rows[len(rows)-1]
	r.emit(model.Step{
		Phase:       model.PhaseComparing,
		DP:          dp,
		Cut:         cut,
		FilledUpTo:  i - 1,
		Comparisons: comparisons,
		ActiveRow:   i,
		ComparingJ:  j,
		TargetRow:   model.NoRow,
		Formula:     rows,
		BestSoFar:   bestSoFar,
		Explanation: explainCompare(i, j, row.Price, row.RemainderProfit, row.Total, bestSoFar),
		CodeLines:   linesComparing,
	})
}

func (r *recorder) filled(dp, cut []int, i int, rows []model.FormulaRow, bestProfit, bestCut, comparisons int) {
	r.lastRow = i
	r.emit(model.Step{
		Phase:       model.PhaseFilled,
		DP:          dp,
		Cut:         cut,
		FilledUpTo:  i,
		Comparisons: comparisons,
		ActiveRow:   i,
		TargetRow:   model.NoRow,
		Formula:     rows,
		BestProfit:  bestProfit,
		BestCut:     bestCut,
		Explanation: explainFilled(i, bestProfit, bestCut),
		CodeLines:   linesFilled,
	})
}

func (r *recorder) traceback(dp, cut []int, from, remaining int, pieces []int) {
	r.emit(model.Step{
		Phase:       model.PhaseTraceback,
		DP:          dp,
		Cut:         cut,
		FilledUpTo:  r.lastRow,
		Comparisons: r.comparisons(),
		ActiveRow:   from,
		TargetRow:   remaining,
		Pieces:      pieces,
		Explanation: explainTraceback(from, cut[from], remaining, pieces),
		CodeLines:   linesTraceback,
	})
}

func (r *recorder) complete(dp, cut []int, pieces []int) {
	n := r.problem.RodLength
	r.emit(model.Step{
		Phase:       model.PhaseComplete,
		DP:          dp,
		Cut:         cut,
		FilledUpTo:  r.lastRow,
		Comparisons: r.comparisons(),
		ActiveRow:   model.NoRow,
		TargetRow:   model.NoRow,
		Pieces:      pieces,
		MaxProfit:   dp[n],
		Explanation: explainComplete(n, dp[n], pieces, r.problem),
		CodeLines:   linesComplete,
	})
}

// comparisons is the running total carried by the most recent step.
func (r *recorder) comparisons() int {
	if len(r.steps) == 0 {
		return 0
	}
	return r.steps[len(r.steps)-1].Comparisons
}
