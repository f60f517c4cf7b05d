package engine

import (
	"fmt"

	"github.com/piwi3910/RodCut/internal/model"
)

// Solve validates p, fills the DP table and reconstructs the optimal cut,
// recording every decision. It returns either a complete trace or an error.
//
// Solve owns all of its working state and may be called concurrently.
func Solve(p model.Problem) (*model.Trace, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	p = p.Clone()

	rec := newRecorder(p)
	rec.init()

	dp, cut, comparisons := evaluate(p, rec)
	pieces := reconstruct(dp, cut, p.RodLength, rec)

	return model.NewTrace(p, rec.steps, dp, cut, pieces, comparisons), nil
}

// evaluate fills dp and cut bottom-up. Candidates j are scanned in increasing
// order and only a strictly greater total replaces the best, so the smallest
// j wins a tie. A row whose candidates are all zero keeps the uncut rod.
func evaluate(p model.Problem, rec *recorder) (dp, cut []int, comparisons int) {
	n := p.RodLength
	dp = make([]int, n+1)
	cut = make([]int, n+1)

	for i := 1; i <= n; i++ {
		bestProfit, bestCut := 0, 0
		rows := make([]model.FormulaRow, 0, i)

		for j := 1; j <= i; j++ {
			comparisons++
			candidate := p.Prices[j-1] + dp[i-j]
			rows = append(rows, model.FormulaRow{
				Cut:             j,
				Price:           p.Prices[j-1],
				RemainderProfit: dp[i-j],
				RemainderLength: i - j,
				Total:           candidate,
			})
			rec.comparing(dp, cut, i, j, rows, bestProfit, comparisons)

			if candidate > bestProfit {
				bestProfit = candidate
				bestCut = j
			}
		}
		if bestCut == 0 {
			bestCut = i
		}

		dp[i] = bestProfit
		cut[i] = bestCut
		for k := range rows {
			rows[k].IsBest = rows[k].Cut == bestCut
		}
		rec.filled(dp, cut, i, rows, bestProfit, bestCut, comparisons)
	}
	return dp, cut, comparisons
}

// reconstruct peels cut[remaining] off the rod until nothing is left.
func reconstruct(dp, cut []int, n int, rec *recorder) []int {
	pieces := make([]int, 0, n)
	for remaining := n; remaining > 0; {
		piece := cut[remaining]
		pieces = append(pieces, piece)
		rec.traceback(dp, cut, remaining, remaining-piece, pieces)
		remaining -= piece
	}
	rec.complete(dp, cut, pieces)
	return pieces
}

// StepCount returns the number of steps Solve emits for a rod of length n
// that is cut into pieceCount pieces.
func StepCount(n, pieceCount int) int {
	return 1 + n*(n+3)/2 + pieceCount + 1
}

// ComparisonCount returns the total candidate evaluations for length n.
func ComparisonCount(n int) int {
	return n * (n + 1) / 2
}
