package kernelop

import (
	"bytes"
	"image"

	"github.com/gogpu/kernelop/internal/filter"
	intImage "github.com/gogpu/kernelop/internal/image"
)

// PixelBuffer is a single-channel 8-bit image stored row-major in one
// contiguous slice with no row padding.
//
// A PixelBuffer is owned by whoever created it. Convolve never modifies
// its input and returns a freshly allocated buffer.
type PixelBuffer struct {
	width  int
	height int
	pix    []uint8
}

// NewPixelBuffer creates a zero-filled buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &PixelBuffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}, nil
}

// PixelBufferFromRows copies a rectangular grid of samples, rows[y][x].
func PixelBufferFromRows(rows [][]uint8) (*PixelBuffer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}

	pb, _ := NewPixelBuffer(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != pb.width {
			return nil, ErrRaggedRows
		}
		copy(pb.Row(y), row)
	}
	return pb, nil
}

// PixelBufferFromImage converts any image to a PixelBuffer. Color images
// are reduced to luma and alpha is ignored. Premultiplied sources such as
// *image.RGBA are un-premultiplied first, so a fully transparent pixel of
// those types reads as black.
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrInvalidDimensions
	}
	return fromImageBuf(intImage.FromStdImage(img).Gray()), nil
}

func fromImageBuf(buf *intImage.ImageBuf) *PixelBuffer {
	if buf.Format() != intImage.FormatGray8 {
		buf = buf.Gray()
	}
	return &PixelBuffer{
		width:  buf.Width(),
		height: buf.Height(),
		pix:    buf.Data(),
	}
}

func (p *PixelBuffer) imageBuf() *intImage.ImageBuf {
	buf, _ := intImage.FromRaw(p.pix, p.width, p.height, intImage.FormatGray8)
	return buf
}

func (p *PixelBuffer) plane() filter.Plane {
	return filter.Plane{Pix: p.pix, Width: p.width, Height: p.height}
}

// Width returns the width in pixels.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw samples, row-major. Modifying the slice modifies
// the buffer.
func (p *PixelBuffer) Data() []uint8 {
	return p.pix
}

// Row returns the samples of row y, or nil if y is out of range.
func (p *PixelBuffer) Row(y int) []uint8 {
	if y < 0 || y >= p.height {
		return nil
	}
	return p.pix[y*p.width : (y+1)*p.width]
}

// At returns the sample at (x, y), or 0 outside the buffer.
func (p *PixelBuffer) At(x, y int) uint8 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}
	return p.pix[y*p.width+x]
}

// Set writes the sample at (x, y). Writes outside the buffer are ignored.
func (p *PixelBuffer) Set(x, y int, v uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	p.pix[y*p.width+x] = v
}

// Clone returns a deep copy.
func (p *PixelBuffer) Clone() *PixelBuffer {
	return &PixelBuffer{
		width:  p.width,
		height: p.height,
		pix:    bytes.Clone(p.pix),
	}
}

// Equal reports whether both buffers have the same size and samples.
func (p *PixelBuffer) Equal(other *PixelBuffer) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.width == other.width && p.height == other.height && bytes.Equal(p.pix, other.pix)
}

// ToImage copies the buffer into an *image.Gray.
func (p *PixelBuffer) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.pix)
	return img
}
