// Package kernelop applies user-defined convolution kernels to images.
//
// # Overview
//
// kernelop is the engine behind a small image "kernel operator" viewer:
// load a picture, type a 3×3 matrix of weights, look at the filtered
// result, keep it or throw it away, save it. The package exposes that
// workflow as plain function calls so any front end (CLI, GUI, tests)
// can drive it.
//
// # Quick Start
//
//	import "github.com/gogpu/kernelop"
//
//	k, warnings, err := kernelop.ParseKernelEntries([]string{
//	    "0", "-1", "0",
//	    "-1", "5", "-1",
//	    "0", "-1", "0",
//	})
//	if err != nil { ... }
//	for _, w := range warnings {
//	    fmt.Println(w) // cell fell back to 0
//	}
//
//	s := kernelop.NewSession()
//	if err := s.Load("in.png"); err != nil { ... }
//	if err := s.Apply(k); err != nil { ... }
//	if err := s.Save("out.png"); err != nil { ... }
//
// # Convolution
//
// Convolve runs on a single-channel 8-bit PixelBuffer and always returns
// a new buffer of the same size. For a kernel of side 2r+1 every pixel at
// least r pixels away from each edge receives
//
//	clamp(trunc(Σ src[y+ky][x+kx] · k[ky+r][kx+r]), 0, 255)
//
// Pixels closer than r to an edge are written according to the border
// policy: zero (default) or a copy of the input. Rounding to nearest may
// be selected instead of truncation.
//
// # Errors
//
// Malformed kernels fail with ErrInvalidKernel. Kernel cells that do not
// parse are recovered as 0 and reported as *EntryError values. Session
// operations without an image return ErrNoImageLoaded; file problems are
// reported as *IOError.
package kernelop

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
