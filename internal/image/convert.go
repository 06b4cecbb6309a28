package image

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// FromStdImage creates an ImageBuf from a standard library image.Image.
// *image.Gray sources keep one channel; everything else becomes RGBA8.
func FromStdImage(img image.Image) *ImageBuf {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		buf, _ := NewImageBuf(width, height, FormatGray8)
		for y := range height {
			srcStart := gray.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), gray.Pix[srcStart:srcStart+width])
		}
		return buf
	}

	buf, _ := NewImageBuf(width, height, FormatRGBA8)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range height {
			srcStart := nrgba.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(buf.RowBytes(y), nrgba.Pix[srcStart:srcStart+width*4])
		}
		return buf
	}

	// Generic path; At() un-premultiplies through the color model.
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Draw(dst, dst.Rect, img, bounds.Min, xdraw.Src)
	copy(buf.data, dst.Pix)
	return buf
}

// ToStdImage converts the ImageBuf to a standard library image.Image.
// Returns *image.Gray for Gray8 and *image.NRGBA otherwise.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	if b.format == FormatGray8 {
		gray := image.NewGray(rect)
		copy(gray.Pix, b.data)
		return gray
	}

	nrgba := image.NewNRGBA(rect)
	copy(nrgba.Pix, b.data)
	return nrgba
}

// Gray returns a Gray8 copy of the image. Color is reduced with the
// standard library luma model (ITU-R BT.601 weights 0.299, 0.587, 0.114).
// Alpha is ignored: each pixel's stored color is used as if it were
// opaque, so transparent areas keep their color instead of turning black.
// A Gray8 image is cloned.
func (b *ImageBuf) Gray() *ImageBuf {
	if b.format == FormatGray8 {
		return b.Clone()
	}

	opaque := b.ToStdImage().(*image.NRGBA)
	if b.format.HasAlpha() {
		for i := 3; i < len(opaque.Pix); i += 4 {
			opaque.Pix[i] = 0xff
		}
	}

	gray := image.NewGray(opaque.Rect)
	xdraw.Draw(gray, gray.Rect, opaque, image.Point{}, xdraw.Src)

	out, _ := FromRaw(gray.Pix, b.width, b.height, FormatGray8)
	return out
}

// Resize returns a copy scaled to width×height with Catmull-Rom
// resampling. The format is preserved for Gray8; other formats come back
// as RGBA8.
func (b *ImageBuf) Resize(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	src := b.ToStdImage()
	rect := image.Rect(0, 0, width, height)

	var dst xdraw.Image
	if b.format == FormatGray8 {
		dst = image.NewGray(rect)
	} else {
		dst = image.NewNRGBA(rect)
	}
	xdraw.CatmullRom.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)

	return FromStdImage(dst), nil
}

// FitWithin returns the dimensions that scale (width, height) down to fit a
// maxSide×maxSide box, preserving aspect ratio. Images already inside the
// box, or maxSide <= 0, are returned unchanged.
func FitWithin(width, height, maxSide int) (int, int) {
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return width, height
	}
	if width >= height {
		return maxSide, max(height*maxSide/width, 1)
	}
	return max(width*maxSide/height, 1), maxSide
}
