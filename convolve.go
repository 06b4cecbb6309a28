package kernelop

import (
	"github.com/gogpu/kernelop/internal/filter"
	"github.com/gogpu/kernelop/internal/parallel"
)

// bandsPerWorker over-splits the interior so work stealing can even out
// bands that finish at different speeds.
const bandsPerWorker = 4

// Convolver applies kernels with a fixed set of options. A Convolver
// configured with more than one worker owns a goroutine pool; call Close
// when done with it.
//
// Thread safety: Convolve may be called concurrently, including while
// Close runs. Close waits for in-flight calls; later calls run on the
// calling goroutine.
type Convolver struct {
	opts options
	pool *parallel.WorkerPool
}

// NewConvolver creates a Convolver with the given options.
func NewConvolver(opts ...Option) *Convolver {
	c := &Convolver{opts: buildOptions(opts)}
	if c.opts.workers > 1 {
		c.pool = parallel.NewWorkerPool(c.opts.workers)
	}
	return c
}

// Close releases the worker pool, if any. Close is idempotent; a closed
// Convolver keeps working on the calling goroutine.
func (c *Convolver) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Convolve applies k to src and returns a new buffer of the same size.
// src is never modified.
//
// It fails with ErrInvalidKernel when k was not built by a constructor
// and with ErrNilBuffer when src is nil. A kernel wider than the image is
// not an error: every pixel is then a border pixel.
func (c *Convolver) Convolve(src *PixelBuffer, k Kernel) (*PixelBuffer, error) {
	if src == nil {
		return nil, ErrNilBuffer
	}
	if !k.IsValid() {
		return nil, ErrInvalidKernel
	}

	in := src.plane()
	y0, y1 := filter.Interior(in.Width, in.Height, k.Radius())
	parallelRun := c.pool != nil && c.pool.IsRunning() && y1-y0 >= 2

	Logger().Debug("convolve",
		"width", src.width,
		"height", src.height,
		"kernel", k.size,
		"border", c.opts.border,
		"rounding", c.opts.rounding,
		"workers", c.workers(parallelRun),
		"interior_rows", max(y1-y0, 0))

	var out filter.Plane
	if parallelRun {
		out = c.convolveBands(in, k, y0, y1)
	} else {
		out = filter.Convolve(in, k.weights, k.size, c.opts.border, c.opts.rounding)
	}

	return &PixelBuffer{width: out.Width, height: out.Height, pix: out.Pix}, nil
}

func (c *Convolver) workers(parallelRun bool) int {
	if !parallelRun {
		return 1
	}
	return c.pool.Workers()
}

// convolveBands computes the interior on the pool in row bands.
func (c *Convolver) convolveBands(in filter.Plane, k Kernel, y0, y1 int) filter.Plane {
	out := filter.Plane{
		Pix:    make([]uint8, len(in.Pix)),
		Width:  in.Width,
		Height: in.Height,
	}
	filter.PrepareBorder(out, in, k.Radius(), c.opts.border)

	bands := parallel.SplitRows(y0, y1, c.pool.Workers()*bandsPerWorker)
	jobs := make([]func(), len(bands))
	for i, b := range bands {
		jobs[i] = func() {
			filter.ConvolveRows(out, in, k.weights, k.size, c.opts.rounding, b.Y0, b.Y1)
		}
	}
	c.pool.ExecuteAll(jobs)
	return out
}

// Convolve applies k to src with the given options and returns a new
// buffer of the same size. See Convolver.Convolve.
func Convolve(src *PixelBuffer, k Kernel, opts ...Option) (*PixelBuffer, error) {
	c := NewConvolver(opts...)
	defer c.Close()
	return c.Convolve(src, k)
}
