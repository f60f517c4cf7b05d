package model

import (
	"errors"
	"fmt"
)

// Rod length bounds. The upper bound keeps the DP table and rod diagram
// legible; it is not a limit of the algorithm.
const (
	MinRodLength = 1
	MaxRodLength = 15
)

// HighPriceWarning is the price above which input is accepted but flagged.
const HighPriceWarning = 999

var (
	// ErrInvalidLength indicates a rod length outside [MinRodLength, MaxRodLength].
	ErrInvalidLength = errors.New("rodcut: rod length out of range")
	// ErrPriceCountMismatch indicates the price table does not have one entry per length.
	ErrPriceCountMismatch = errors.New("rodcut: price count does not match rod length")
	// ErrInvalidPrice indicates a negative or non-integer price.
	ErrInvalidPrice = errors.New("rodcut: invalid price")
)

// Problem is a rod-cutting instance. Prices[k-1] is the price of a piece
// of length k.
type Problem struct {
	RodLength int   `json:"rod_length"`
	Prices    []int `json:"prices"`
}

// NewProblem copies prices so the caller may keep mutating its slice.
func NewProblem(rodLength int, prices []int) Problem {
	return Problem{RodLength: rodLength, Prices: copyInts(prices)}
}

// Validate reports the first input-contract violation, or nil.
func (p Problem) Validate() error {
	if p.RodLength < MinRodLength || p.RodLength > MaxRodLength {
		return fmt.Errorf("%w: %d (must be %d-%d)", ErrInvalidLength, p.RodLength, MinRodLength, MaxRodLength)
	}
	if len(p.Prices) != p.RodLength {
		return fmt.Errorf("%w: %d prices for length %d", ErrPriceCountMismatch, len(p.Prices), p.RodLength)
	}
	for i, price := range p.Prices {
		if price < 0 {
			return fmt.Errorf("%w: price for length %d cannot be negative (%d)", ErrInvalidPrice, i+1, price)
		}
	}
	return nil
}

// Clone returns a deep copy of the problem.
func (p Problem) Clone() Problem {
	return NewProblem(p.RodLength, p.Prices)
}

// PriceOf returns the price of a piece of the given length, or 0 when the
// length is outside the table.
func (p Problem) PriceOf(length int) int {
	if length < 1 || length > len(p.Prices) {
		return 0
	}
	return p.Prices[length-1]
}

// Equal reports whether two problems have the same length and prices.
func (p Problem) Equal(other Problem) bool {
	if p.RodLength != other.RodLength || len(p.Prices) != len(other.Prices) {
		return false
	}
	for i := range p.Prices {
		if p.Prices[i] != other.Prices[i] {
			return false
		}
	}
	return true
}

// copyInts returns a copy of s that never aliases it. nil stays nil.
func copyInts(s []int) []int {
	if s == nil {
		return nil
	}
	cp := make([]int, len(s))
	copy(cp, s)
	return cp
}
