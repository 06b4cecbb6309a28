package filter

import (
	"math"

	"github.com/gogpu/kernelop/internal/cache"
)

// IdentityKernel returns a kernel of side 2*radius+1 with a single 1.0 at
// its center. For radius <= 0 it returns the 1x1 kernel [1.0].
func IdentityKernel(radius int) (weights []float64, size int) {
	if radius < 0 {
		radius = 0
	}
	size = radius*2 + 1
	weights = make([]float64, size*size)
	weights[radius*size+radius] = 1.0
	return weights, size
}

// BoxKernel returns a uniform kernel of side 2*radius+1.
// All values are equal: 1/size².
func BoxKernel(radius int) (weights []float64, size int) {
	if radius <= 0 {
		return []float64{1.0}, 1
	}

	size = radius*2 + 1
	weights = make([]float64, size*size)
	val := 1.0 / float64(size*size)

	for i := range weights {
		weights[i] = val
	}

	return weights, size
}

// MaxGaussianSigma bounds the sigma accepted by the Gaussian generators.
// It yields a 301×301 kernel, already far wider than a useful blur.
const MaxGaussianSigma = 50.0

// clampSigma maps sigma into [0, MaxGaussianSigma]. NaN and non-positive
// values become 0.
func clampSigma(sigma float64) float64 {
	switch {
	case !(sigma > 0):
		return 0
	case sigma > MaxGaussianSigma:
		return MaxGaussianSigma
	default:
		return sigma
	}
}

// GaussianKernel1D generates a 1D Gaussian kernel for the given sigma.
// The kernel is normalized so all values sum to 1.0.
//
// The kernel size is OptimalKernelSize(sigma), which covers 99.7% of the
// Gaussian distribution (3 standard deviations). Sigma is clamped to
// MaxGaussianSigma.
//
// For sigma <= 0 or NaN, returns a single-element kernel [1.0] (identity).
func GaussianKernel1D(sigma float64) []float64 {
	sigma = clampSigma(sigma)
	if sigma == 0 {
		return []float64{1.0}
	}

	size := OptimalKernelSize(sigma)
	halfSize := size / 2

	kernel := make([]float64, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels out in normalization
	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0

	for i := range size {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = val
		sum += val
	}

	if sum > 0 {
		invSum := 1.0 / sum
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// GaussianKernel returns a square 2D Gaussian kernel built as the outer
// product of GaussianKernel1D with itself. The result sums to 1.0.
func GaussianKernel(sigma float64) (weights []float64, size int) {
	k := GaussianKernel1D(sigma)
	size = len(k)
	weights = make([]float64, size*size)

	for row, wy := range k {
		for col, wx := range k {
			weights[row*size+col] = wy * wx
		}
	}

	return weights, size
}

// OptimalKernelSize returns the Gaussian kernel side 2*ceil(3*sigma)+1
// for a given sigma, after clamping sigma like GaussianKernel1D.
func OptimalKernelSize(sigma float64) int {
	sigma = clampSigma(sigma)
	if sigma == 0 {
		return 1
	}
	halfSize := int(math.Ceil(sigma * 3))
	return halfSize*2 + 1
}

// kernelCache holds 2D Gaussian kernels keyed by their clamped sigma.
type kernelCache struct {
	lru *cache.Cache[float64, []float64]
}

var defaultKernelCache = newKernelCache(32)

func newKernelCache(capacity int) *kernelCache {
	return &kernelCache{lru: cache.New[float64, []float64](capacity)}
}

// get returns the kernel for sigma, building it on a miss. The kernel is
// built outside the cache lock; racing callers may both build it.
// Callers must not modify the returned slice.
func (c *kernelCache) get(sigma float64) ([]float64, int) {
	sigma = clampSigma(sigma)
	if kernel, ok := c.lru.Get(sigma); ok {
		return kernel, sideOf(kernel)
	}

	kernel, size := GaussianKernel(sigma)
	c.lru.Set(sigma, kernel)
	return kernel, size
}

func (c *kernelCache) len() int {
	return c.lru.Len()
}

// CachedGaussianKernel returns a shared Gaussian kernel for sigma. The
// returned slice must be treated as read-only.
func CachedGaussianKernel(sigma float64) (weights []float64, size int) {
	return defaultKernelCache.get(sigma)
}

// GaussianCacheStats reports the counters of the shared Gaussian kernel cache.
func GaussianCacheStats() cache.Stats {
	return defaultKernelCache.lru.Stats()
}

// sideOf returns the side of a square kernel stored row-major.
func sideOf(weights []float64) int {
	return int(math.Round(math.Sqrt(float64(len(weights)))))
}
