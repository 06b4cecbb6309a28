// Package image provides the decoded image buffers kernelop works on and
// the codecs that move them to and from files.
package image

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	// Convolution always runs on this format.
	FormatGray8 Format = iota

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	// Decoded color files land in this format.
	FormatRGBA8

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	BytesPerPixel int
	HasAlpha      bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatGray8: {BytesPerPixel: 1},
	FormatRGBA8: {BytesPerPixel: 4, HasAlpha: true},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// BytesPerPixel returns the number of bytes per pixel for this format.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// HasAlpha reports whether the format stores an alpha channel.
func (f Format) HasAlpha() bool {
	return f.Info().HasAlpha
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGBA8:
		return "RGBA8"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes calculates the number of bytes needed for a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// ImageBytes calculates the total number of bytes needed for an image.
func (f Format) ImageBytes(width, height int) int {
	return f.RowBytes(width) * height
}
