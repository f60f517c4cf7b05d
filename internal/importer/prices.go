package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/RodCut/internal/model"
)

// InvalidPriceError reports one bad price field. Length is 1-based.
type InvalidPriceError struct {
	Length int
	Raw    string
	Reason string
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("price for length %d %s (%q)", e.Length, e.Reason, e.Raw)
}

func (e *InvalidPriceError) Unwrap() error { return model.ErrInvalidPrice }

// ParsePrices converts price fields, one per piece length. An empty field
// counts as 0. Every invalid field is reported in the joined error; prices
// above model.HighPriceWarning are accepted with a warning.
func ParsePrices(fields []string) ([]int, []string, error) {
	prices := make([]int, len(fields))
	var warnings []string
	var errs []error

	for i, raw := range fields {
		length := i + 1
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, &InvalidPriceError{Length: length, Raw: raw, Reason: "is not a whole number"})
			continue
		}
		if v < 0 {
			errs = append(errs, &InvalidPriceError{Length: length, Raw: raw, Reason: "cannot be negative"})
			continue
		}
		if v > model.HighPriceWarning {
			warnings = append(warnings, fmt.Sprintf("Price for length %d is very high ($%d). Are you sure?", length, v))
		}
		prices[i] = v
	}

	if len(errs) > 0 {
		return nil, warnings, errors.Join(errs...)
	}
	return prices, warnings, nil
}

// ParsePriceList splits a list such as "1,5,8,9" or "1 5 8 9" and parses it
// with ParsePrices.
func ParsePriceList(s string) ([]int, []string, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("%w: empty price list", model.ErrPriceCountMismatch)
	}
	return ParsePrices(fields)
}

// ParseProblem parses a price list and checks it against rodLength. A
// rodLength of 0 takes the length from the list.
func ParseProblem(rodLength int, list string) (model.Problem, []string, error) {
	prices, warnings, err := ParsePriceList(list)
	if err != nil {
		return model.Problem{}, warnings, err
	}
	if rodLength == 0 {
		rodLength = len(prices)
	}
	p := model.NewProblem(rodLength, prices)
	if err := p.Validate(); err != nil {
		return model.Problem{}, warnings, err
	}
	return p, warnings, nil
}

// ResizePrices extends prices with zeros or trims it to n entries.
func ResizePrices(prices []int, n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	copy(out, prices)
	return out
}
