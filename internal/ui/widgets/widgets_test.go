package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RodCut/internal/engine"
	"github.com/piwi3910/RodCut/internal/model"
)

func classicSteps(t *testing.T) []model.Step {
	t.Helper()
	trace, err := engine.Solve(model.NewProblem(8, []int{1, 5, 8, 9, 10, 17, 17, 20}))
	require.NoError(t, err)
	return trace.Steps()
}

func findStep(t *testing.T, steps []model.Step, match func(model.Step) bool) model.Step {
	t.Helper()
	for _, s := range steps {
		if match(s) {
			return s
		}
	}
	t.Fatal("no matching step")
	return model.Step{}
}

func covered(segs []Segment) int {
	total := 0
	for _, s := range segs {
		total += s.Length
	}
	return total
}

func TestRodSegments_Uncut(t *testing.T) {
	segs := RodSegments(8, model.Step{})
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Start: 0, Length: 8, Color: model.UncutColor, Label: "8 units"}, segs[0])

	assert.Nil(t, RodSegments(0, model.Step{}))
}

func TestRodSegments_Comparing(t *testing.T) {
	s := findStep(t, classicSteps(t), func(s model.Step) bool {
		return s.Phase == model.PhaseComparing && s.ActiveRow == 5 && s.ComparingJ == 2
	})
	segs := RodSegments(8, s)
	require.Len(t, segs, 3)
	assert.Equal(t, 2, segs[0].Length)
	assert.Equal(t, model.PieceColor(2), segs[0].Color)
	assert.Equal(t, "dp[3]", segs[1].Label)
	assert.True(t, segs[2].Dim)
	assert.Equal(t, 8, covered(segs))
}

func TestRodSegments_Complete(t *testing.T) {
	steps := classicSteps(t)
	segs := RodSegments(8, steps[len(steps)-1])
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Start: 0, Length: 2, Color: model.PieceColor(2), Label: "2"}, segs[0])
	assert.Equal(t, Segment{Start: 2, Length: 6, Color: model.PieceColor(6), Label: "6"}, segs[1])
}

func TestRodSegments_TracebackShowsRemainder(t *testing.T) {
	s := findStep(t, classicSteps(t), func(s model.Step) bool {
		return s.Phase == model.PhaseTraceback && len(s.Pieces) == 1
	})
	segs := RodSegments(8, s)
	require.Len(t, segs, 2)
	assert.Equal(t, "6 left", segs[1].Label)
	assert.Equal(t, 8, covered(segs))
}

func TestRowState(t *testing.T) {
	steps := classicSteps(t)

	assert.Equal(t, CellFilled, RowState(steps[0], 0))
	assert.Equal(t, CellEmpty, RowState(steps[0], 1))

	cmp := findStep(t, steps, func(s model.Step) bool {
		return s.Phase == model.PhaseComparing && s.ActiveRow == 5 && s.ComparingJ == 2
	})
	assert.Equal(t, CellActive, RowState(cmp, 5))
	assert.Equal(t, CellRemainder, RowState(cmp, 3))
	assert.Equal(t, CellFilled, RowState(cmp, 4))
	assert.Equal(t, CellEmpty, RowState(cmp, 6))

	tb := findStep(t, steps, func(s model.Step) bool { return s.Phase == model.PhaseTraceback })
	assert.Equal(t, CellActive, RowState(tb, 8))
	assert.Equal(t, CellTarget, RowState(tb, 6))

	done := steps[len(steps)-1]
	assert.Equal(t, CellOptimal, RowState(done, 8))
	assert.Equal(t, CellOptimal, RowState(done, 6))
	assert.Equal(t, CellFilled, RowState(done, 0))
	assert.Equal(t, CellFilled, RowState(done, 3))
}
