package engine

import (
	"fmt"
	"strings"

	"github.com/piwi3910/RodCut/internal/model"
)

// Pseudocode is the listing that Step.CodeLines index into.
var Pseudocode = []string{
	"dp[0] = 0",
	"for i = 1 to n:",
	"    for j = 1 to i:",
	"        candidate = price[j] + dp[i - j]",
	"        best = max(best, candidate)",
	"    dp[i] = best",
	"    cut[i] = argmax j",
	"while n > 0:",
	"    piece = cut[n]; n = n - piece",
}

func explainInit(n int) string {
	return fmt.Sprintf("The algorithm begins. We create a DP table with %d entries (lengths 0 through %d). "+
		"dp[0] = 0 because a rod of length 0 earns nothing.", n+1, n)
}

func explainCompare(i, j, price, remainderProfit, candidate, bestSoFar int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trying to cut %s from the rod of length %d.\n", model.Units(j), i)
	fmt.Fprintf(&b, "Price for %s = $%d", model.Units(j), price)
	if i-j > 0 {
		fmt.Fprintf(&b, ", plus the best profit for the remaining %s = $%d", model.Units(i-j), remainderProfit)
	}
	fmt.Fprintf(&b, " → total = $%d\n", candidate)
	if candidate > bestSoFar {
		fmt.Fprintf(&b, "✓ New best! This is better than $%d.", bestSoFar)
	} else {
		fmt.Fprintf(&b, "Not better than the current best of $%d. Moving on.", bestSoFar)
	}
	return b.String()
}

func explainFilled(i, profit, bestCut int) string {
	return fmt.Sprintf("After trying all possible first cuts for length %d, the best option is to cut %s first.\n"+
		"This gives a maximum profit of $%d. The value dp[%d] = %d is now stored.",
		i, model.Units(bestCut), profit, i, profit)
}

func explainTraceback(from, piece, remaining int, pieces []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tracing back the solution: from length %d, the optimal first cut is %s.\n", from, model.Units(piece))
	if remaining > 0 {
		fmt.Fprintf(&b, "Remaining rod: %s. Continue tracing…\n", model.Units(remaining))
	}
	fmt.Fprintf(&b, "Pieces so far: %s", model.JoinInts(pieces, " + "))
	return b.String()
}

func explainComplete(n, maxProfit int, pieces []int, p model.Problem) string {
	values := make([]string, len(pieces))
	for k, piece := range pieces {
		values[k] = fmt.Sprintf("$%d", p.PriceOf(piece))
	}
	return fmt.Sprintf("✓ Solution found! The rod of length %d should be cut into pieces: %s.\n"+
		"Piece values: %s = $%d\n"+
		"This is the maximum possible profit; no other combination of cuts can earn more.",
		n, model.JoinInts(pieces, " + "), strings.Join(values, " + "), maxProfit)
}
