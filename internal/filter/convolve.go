package filter

import "math"

// Border selects what is written to pixels closer than the kernel radius
// to any edge of the image.
type Border uint8

const (
	// BorderZero leaves border pixels at 0.
	BorderZero Border = iota

	// BorderCopy copies border pixels unchanged from the source.
	BorderCopy
)

// String returns the flag spelling of the border policy.
func (b Border) String() string {
	switch b {
	case BorderZero:
		return "zero"
	case BorderCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// Rounding selects how a weighted sum is turned into an 8-bit sample.
type Rounding uint8

const (
	// RoundTruncate truncates toward zero, then clamps to [0, 255].
	RoundTruncate Rounding = iota

	// RoundNearest rounds half away from zero, then clamps to [0, 255].
	RoundNearest
)

// String returns the flag spelling of the rounding mode.
func (r Rounding) String() string {
	switch r {
	case RoundTruncate:
		return "trunc"
	case RoundNearest:
		return "nearest"
	default:
		return "unknown"
	}
}

// snapEpsilon is the distance below which a sum is treated as the integer
// it approximates. Weights such as 1/9 are not exact in binary, so a flat
// region under a box kernel can sum to just below its own value.
const snapEpsilon = 1e-9

// Plane is a single-channel 8-bit image stored row-major without padding.
type Plane struct {
	Pix    []uint8
	Width  int
	Height int
}

// Interior returns the half-open row range [y0, y1) whose pixels have a
// full neighborhood for the given radius. y0 >= y1 when no row qualifies.
func Interior(width, height, radius int) (y0, y1 int) {
	if width-2*radius <= 0 || height-2*radius <= 0 {
		return 0, 0
	}
	return radius, height - radius
}

// PrepareBorder writes the border region of dst according to policy.
// dst must be freshly allocated (all zero) and the same size as src.
func PrepareBorder(dst, src Plane, radius int, border Border) {
	if border != BorderCopy {
		return
	}

	y0, y1 := Interior(src.Width, src.Height, radius)
	if y0 >= y1 {
		copy(dst.Pix, src.Pix)
		return
	}

	w := src.Width
	for y := range src.Height {
		row := y * w
		if y < y0 || y >= y1 {
			copy(dst.Pix[row:row+w], src.Pix[row:row+w])
			continue
		}
		copy(dst.Pix[row:row+radius], src.Pix[row:row+radius])
		copy(dst.Pix[row+w-radius:row+w], src.Pix[row+w-radius:row+w])
	}
}

// ConvolveRows computes the interior pixels of rows [y0, y1) of dst.
//
// weights is a row-major size×size kernel with odd size. The caller
// guarantees that [y0, y1) lies within Interior(src.Width, src.Height, size/2).
// Neighbors are summed kernel row by kernel row, left to right.
func ConvolveRows(dst, src Plane, weights []float64, size int, rounding Rounding, y0, y1 int) {
	radius := size / 2
	w := src.Width

	for y := y0; y < y1; y++ {
		out := dst.Pix[y*w : (y+1)*w]

		for x := radius; x < w-radius; x++ {
			sum := 0.0

			for ky := range size {
				start := (y+ky-radius)*w + x - radius
				row := src.Pix[start : start+size]
				kr := weights[ky*size : (ky+1)*size]

				for kx, weight := range kr {
					sum += float64(row[kx]) * weight
				}
			}

			out[x] = Quantize(sum, rounding)
		}
	}
}

// Quantize converts a weighted sum to an 8-bit sample. A NaN sum, which
// only overflowing weights can produce, maps to 0.
func Quantize(sum float64, rounding Rounding) uint8 {
	if math.IsNaN(sum) {
		return 0
	}
	if n := math.Round(sum); math.Abs(sum-n) < snapEpsilon {
		sum = n
	}

	var v float64
	if rounding == RoundNearest {
		v = math.Round(sum)
	} else {
		v = math.Trunc(sum)
	}

	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Convolve runs the whole convolution on the calling goroutine and
// returns a newly allocated plane.
func Convolve(src Plane, weights []float64, size int, border Border, rounding Rounding) Plane {
	dst := Plane{
		Pix:    make([]uint8, len(src.Pix)),
		Width:  src.Width,
		Height: src.Height,
	}

	radius := size / 2
	PrepareBorder(dst, src, radius, border)

	y0, y1 := Interior(src.Width, src.Height, radius)
	if y0 < y1 {
		ConvolveRows(dst, src, weights, size, rounding, y0, y1)
	}

	return dst
}
