package kernelop

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/kernelop/internal/filter"
)

// Kernel is a square matrix of weights with an odd side length.
// The zero value is not a valid kernel; use NewKernel or a generator.
//
// Kernels are immutable once built.
type Kernel struct {
	size    int
	weights []float64 // row-major, size*size
}

// NewKernel builds a kernel from rows of weights. It fails with
// ErrInvalidKernel unless the matrix is square with an odd, positive side
// and every weight is finite.
func NewKernel(rows [][]float64) (Kernel, error) {
	size := len(rows)
	if size == 0 || size%2 == 0 {
		return Kernel{}, fmt.Errorf("%w: side %d is not odd and positive", ErrInvalidKernel, size)
	}

	weights := make([]float64, 0, size*size)
	for i, row := range rows {
		if len(row) != size {
			return Kernel{}, fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), size)
		}
		weights = append(weights, row...)
	}

	return newKernel(weights, size)
}

// MustKernel is like NewKernel but panics on error. It is intended for
// kernels written as literals.
func MustKernel(rows [][]float64) Kernel {
	k, err := NewKernel(rows)
	if err != nil {
		panic(err)
	}
	return k
}

// newKernel takes ownership of weights.
func newKernel(weights []float64, size int) (Kernel, error) {
	if size <= 0 || size%2 == 0 || len(weights) != size*size {
		return Kernel{}, fmt.Errorf("%w: side %d with %d weights", ErrInvalidKernel, size, len(weights))
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Kernel{}, fmt.Errorf("%w: weight [%d, %d] is %v", ErrInvalidKernel, i/size+1, i%size+1, w)
		}
	}
	return Kernel{size: size, weights: weights}, nil
}

// IdentityKernel returns the kernel of side 2*radius+1 that leaves interior
// pixels unchanged. Negative radii are treated as 0.
func IdentityKernel(radius int) Kernel {
	w, size := filter.IdentityKernel(radius)
	return Kernel{size: size, weights: w}
}

// BoxKernel returns the uniform averaging kernel of side 2*radius+1.
func BoxKernel(radius int) Kernel {
	w, size := filter.BoxKernel(radius)
	return Kernel{size: size, weights: w}
}

// MaxGaussianSigma is the largest sigma GaussianKernel honors; larger
// values are clamped to it.
const MaxGaussianSigma = filter.MaxGaussianSigma

// GaussianKernel returns a normalized Gaussian kernel for the given sigma.
// The side is 2*ceil(3*sigma)+1 for the exact sigma given. Sigma above
// MaxGaussianSigma is clamped; sigma <= 0 or NaN yields the 1×1 identity.
func GaussianKernel(sigma float64) Kernel {
	w, size := filter.CachedGaussianKernel(sigma)

	stats := filter.GaussianCacheStats()
	Logger().Debug("gaussian kernel",
		"sigma", sigma,
		"size", size,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses)

	return Kernel{size: size, weights: append([]float64(nil), w...)}
}

// Preset returns a named kernel. See PresetNames for the known names.
func Preset(name string) (Kernel, bool) {
	w, size, ok := filter.Preset(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return Kernel{}, false
	}
	return Kernel{size: size, weights: w}, true
}

// PresetNames lists the names accepted by Preset, sorted.
func PresetNames() []string {
	return filter.PresetNames()
}

// Size returns the side length of the kernel.
func (k Kernel) Size() int {
	return k.size
}

// Radius returns (Size-1)/2, the width of the unprocessed border.
func (k Kernel) Radius() int {
	return k.size / 2
}

// IsValid reports whether the kernel was built by a constructor.
func (k Kernel) IsValid() bool {
	return k.size > 0 && k.size%2 == 1 && len(k.weights) == k.size*k.size
}

// At returns the weight at the given 0-based row and column.
// Out-of-range positions return 0.
func (k Kernel) At(row, col int) float64 {
	if row < 0 || row >= k.size || col < 0 || col >= k.size {
		return 0
	}
	return k.weights[row*k.size+col]
}

// Weights returns a copy of the weights in row-major order.
func (k Kernel) Weights() []float64 {
	return append([]float64(nil), k.weights...)
}

// Rows returns a copy of the weights as a matrix.
func (k Kernel) Rows() [][]float64 {
	rows := make([][]float64, k.size)
	for i := range rows {
		rows[i] = append([]float64(nil), k.weights[i*k.size:(i+1)*k.size]...)
	}
	return rows
}

// Sum returns the sum of all weights. Kernels summing to 1 preserve the
// brightness of flat regions.
func (k Kernel) Sum() float64 {
	s := 0.0
	for _, w := range k.weights {
		s += w
	}
	return s
}

// String formats the kernel in the syntax accepted by ParseKernelText.
func (k Kernel) String() string {
	var sb strings.Builder
	for i, w := range k.weights {
		switch {
		case i == 0:
		case i%k.size == 0:
			sb.WriteString("; ")
		default:
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(w, 'g', -1, 64))
	}
	return sb.String()
}
