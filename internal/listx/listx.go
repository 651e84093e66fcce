// Package listx holds small element-wise helpers over ordered slices.
// Every helper returns a freshly allocated slice of the input length and
// never mutates its arguments.
package listx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by the strict numeric parser.
var ErrNotNumeric = errors.New("not a number")

// Map applies f to every element of xs.
func Map[T, U any](xs []T, f func(T) U) []U {
	out := make([]U, len(xs))
	for i, x := range xs {
		out[i] = f(x)
	}
	return out
}

// SelectColumn extracts the element at index from every row. Rows that are
// too short yield the zero value.
func SelectColumn[T any](index int, rows [][]T) []T {
	var zero T
	return SelectColumnOr(index, rows, zero)
}

// SelectColumnOr is SelectColumn with an explicit value for rows that have
// no element at index.
func SelectColumnOr[T any](index int, rows [][]T, missing T) []T {
	return Map(rows, func(row []T) T {
		if index < 0 || index >= len(row) {
			return missing
		}
		return row[index]
	})
}

// MapNumbers coerces every element with ToNumber. Bad input becomes NaN.
func MapNumbers(xs []string) []float64 {
	return Map(xs, ToNumber)
}

// ParseNumbersStrict is MapNumbers that refuses anything ToNumber would
// turn into NaN, and the empty string.
func ParseNumbersStrict(xs []string) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if strings.TrimSpace(x) == "" {
			return nil, fmt.Errorf("%w: element %d is empty", ErrNotNumeric, i)
		}
		n := ToNumber(x)
		if math.IsNaN(n) {
			return nil, fmt.Errorf("%w: element %d %q", ErrNotNumeric, i, x)
		}
		out[i] = n
	}
	return out, nil
}

// Difference returns a[i] - b[i]. The result has len(a); positions missing
// from b are NaN.
func Difference(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i, x := range a {
		if i >= len(b) {
			out[i] = math.NaN()
			continue
		}
		out[i] = x - b[i]
	}
	return out
}

// Absolute returns |x| for every element.
func Absolute(xs []float64) []float64 {
	return Map(xs, math.Abs)
}

// SplitOn splits every element on sep.
func SplitOn(sep string, xs []string) [][]string {
	return Map(xs, func(s string) []string {
		return strings.Split(s, sep)
	})
}

// TrimAll trims surrounding whitespace from every element.
func TrimAll(xs []string) []string {
	return Map(xs, strings.TrimSpace)
}

// ToNumber converts s the way the dashboard always has: surrounding
// whitespace is ignored, an empty string is 0, 0x/0o/0b integers and the
// Infinity spellings are accepted, and anything else that is not a plain
// decimal literal is NaN.
func ToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return f
}

// isDecimalLiteral keeps ParseFloat away from the words and underscores
// it would otherwise accept.
func isDecimalLiteral(s string) bool {
	digits := false
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '+', c == '-', c == '.', c == 'e', c == 'E':
		default:
			return false
		}
	}
	return digits
}
