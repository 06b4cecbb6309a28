package kernelop

import (
	"errors"
	"fmt"
)

// Errors returned by kernelop.
var (
	// ErrInvalidKernel is returned when a kernel is empty, not square,
	// has an even side length or contains a non-finite weight.
	ErrInvalidKernel = errors.New("kernelop: invalid kernel")

	// ErrMalformedNumericInput is wrapped by EntryError when a kernel
	// cell cannot be parsed as a decimal number.
	ErrMalformedNumericInput = errors.New("kernelop: malformed numeric input")

	// ErrNoImageLoaded is returned by Session operations that need an image
	// before one has been loaded.
	ErrNoImageLoaded = errors.New("kernelop: no image loaded")

	// ErrIO is wrapped by IOError.
	ErrIO = errors.New("kernelop: I/O failure")

	// ErrInvalidDimensions is returned when a pixel buffer would have a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("kernelop: invalid dimensions")

	// ErrRaggedRows is returned when rows passed to PixelBufferFromRows
	// differ in length.
	ErrRaggedRows = errors.New("kernelop: rows have different lengths")

	// ErrNilBuffer is returned when a nil PixelBuffer is passed to Convolve.
	ErrNilBuffer = errors.New("kernelop: nil pixel buffer")
)

// EntryError describes a kernel cell that could not be parsed.
// Row and Col are 1-based, matching what a user sees in the grid.
// The cell's weight has already been replaced with 0.
type EntryError struct {
	Row  int
	Col  int
	Text string
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("kernelop: cell [%d, %d] has invalid value %q, using 0", e.Row, e.Col, e.Text)
}

// Unwrap returns ErrMalformedNumericInput.
func (e *EntryError) Unwrap() error {
	return ErrMalformedNumericInput
}

// IOError reports a failed load or save together with its cause.
type IOError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("kernelop: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns both ErrIO and the underlying cause, so errors.Is works
// against either.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}
