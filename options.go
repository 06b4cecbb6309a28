package kernelop

import "github.com/gogpu/kernelop/internal/filter"

// Border selects what is written to pixels closer than the kernel radius
// to an edge of the image.
type Border = filter.Border

const (
	// BorderZero writes 0 to border pixels. This is the default.
	BorderZero = filter.BorderZero

	// BorderCopy copies border pixels unchanged from the input.
	BorderCopy = filter.BorderCopy
)

// Rounding selects how a weighted sum becomes an 8-bit sample.
type Rounding = filter.Rounding

const (
	// RoundTruncate truncates toward zero before clamping. This is the
	// default.
	RoundTruncate = filter.RoundTruncate

	// RoundNearest rounds to the nearest integer before clamping.
	RoundNearest = filter.RoundNearest
)

// Option configures convolution and session behavior.
//
// Example:
//
//	out, err := kernelop.Convolve(src, k,
//	    kernelop.WithBorder(kernelop.BorderCopy),
//	    kernelop.WithWorkers(4))
type Option func(*options)

type options struct {
	border      Border
	rounding    Rounding
	workers     int
	jpegQuality int
}

func defaultOptions() options {
	return options{
		border:   BorderZero,
		rounding: RoundTruncate,
		workers:  1,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithBorder sets the border policy.
func WithBorder(b Border) Option {
	return func(o *options) {
		o.border = b
	}
}

// WithRounding sets the rounding mode.
func WithRounding(r Rounding) Option {
	return func(o *options) {
		o.rounding = r
	}
}

// WithWorkers sets how many goroutines compute output rows. Values <= 1
// run on the calling goroutine; results are identical either way.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithJPEGQuality sets the quality (1-100) used when a Session saves JPEG
// files. 0 selects the codec default.
func WithJPEGQuality(q int) Option {
	return func(o *options) {
		o.jpegQuality = q
	}
}

// ParseBorder parses "zero" or "copy".
func ParseBorder(s string) (Border, bool) {
	switch s {
	case "zero":
		return BorderZero, true
	case "copy":
		return BorderCopy, true
	default:
		return BorderZero, false
	}
}

// ParseRounding parses "trunc" or "nearest".
func ParseRounding(s string) (Rounding, bool) {
	switch s {
	case "trunc", "truncate":
		return RoundTruncate, true
	case "nearest", "round":
		return RoundNearest, true
	default:
		return RoundTruncate, false
	}
}
