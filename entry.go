package kernelop

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ParseKernelEntries builds a kernel from cell texts in row-major order,
// the way a grid of text fields is read. The number of cells must be the
// square of an odd number (9 for a 3×3 grid), otherwise ErrInvalidKernel
// is returned.
//
// Each cell is parsed with ParseWeight. A cell that does not parse gets
// weight 0, an *EntryError is appended to the returned slice, a warning
// is logged, and the remaining cells are still read.
func ParseKernelEntries(cells []string) (Kernel, []*EntryError, error) {
	size := int(math.Sqrt(float64(len(cells))))
	if size*size != len(cells) || size%2 == 0 {
		return Kernel{}, nil, fmt.Errorf("%w: %d cells do not form an odd square grid", ErrInvalidKernel, len(cells))
	}

	weights := make([]float64, len(cells))
	var bad []*EntryError
	for i, text := range cells {
		weights[i], bad = parseCell(text, i/size+1, i%size+1, bad)
	}

	k, err := newKernel(weights, size)
	return k, bad, err
}

// ParseKernelText parses a kernel written as text, for example
//
//	0, -1, 0; -1, 5, -1; 0, -1, 0
//
// Rows are separated by ';' or newlines and cells by ',' or whitespace.
// Blank rows are ignored. Malformed cells are handled as in
// ParseKernelEntries; a ragged or even-sized matrix is ErrInvalidKernel.
func ParseKernelText(s string) (Kernel, []*EntryError, error) {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' || r == '\r' })

	var rows [][]string
	for _, line := range lines {
		cells := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}

	size := len(rows)
	if size == 0 || size%2 == 0 {
		return Kernel{}, nil, fmt.Errorf("%w: %d rows", ErrInvalidKernel, size)
	}

	weights := make([]float64, 0, size*size)
	var bad []*EntryError
	for r, cells := range rows {
		if len(cells) != size {
			return Kernel{}, nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidKernel, r+1, len(cells), size)
		}
		for c, text := range cells {
			var w float64
			w, bad = parseCell(text, r+1, c+1, bad)
			weights = append(weights, w)
		}
	}

	k, err := newKernel(weights, size)
	return k, bad, err
}

func parseCell(text string, row, col int, bad []*EntryError) (float64, []*EntryError) {
	w, err := ParseWeight(text)
	if err != nil {
		e := &EntryError{Row: row, Col: col, Text: text}
		Logger().Warn("kernel cell replaced with 0", "row", row, "col", col, "text", text)
		return 0, append(bad, e)
	}
	return w, bad
}

// errNotDecimal is the internal cause behind a failed ParseWeight.
var errNotDecimal = errors.New("not a decimal number")

// ParseWeight parses one kernel weight independently of the host locale.
//
// Accepted: optional surrounding space, an optional sign, digits with at
// most one '.' as the radix point, and an optional exponent ("1e-3").
// Full-width forms ("１．５") and the Unicode minus sign are normalized
// first. Thousands separators, ',' as radix point, hexadecimal, Inf and
// NaN are rejected. The returned error wraps ErrMalformedNumericInput.
func ParseWeight(text string) (float64, error) {
	s := strings.TrimSpace(width.Narrow.String(text))
	s = strings.ReplaceAll(s, "−", "-")

	if !isDecimal(s) {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedNumericInput, text, errNotDecimal)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformedNumericInput, text, err)
	}
	return v, nil
}

// isDecimal reports whether s matches [+-]?(d+(.d*)?|.d+)([eE][+-]?d+)?.
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	intDigits := countDigits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i++
		fracDigits = countDigits(s[i:])
		i += fracDigits
	}
	if intDigits == 0 && fracDigits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		expDigits := countDigits(s[i:])
		if expDigits == 0 {
			return false
		}
		i += expDigits
	}

	return i == len(s)
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
