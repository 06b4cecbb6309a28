package image

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when the file format is not supported.
var ErrUnsupportedFormat = errors.New("image: unsupported format")

// savedFileMode is the permission given to a newly created image file.
// Overwritten files keep their previous permission.
const savedFileMode os.FileMode = 0o644

// FileFormat identifies an on-disk image encoding.
type FileFormat uint8

const (
	FilePNG FileFormat = iota
	FileJPEG
	FileBMP
	// FileWebP is decode-only.
	FileWebP
)

// DefaultJPEGQuality is used when a caller passes quality 0.
const DefaultJPEGQuality = 90

// String returns the conventional name of the file format.
func (f FileFormat) String() string {
	switch f {
	case FilePNG:
		return "png"
	case FileJPEG:
		return "jpeg"
	case FileBMP:
		return "bmp"
	case FileWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// FileFormatFromPath maps a file extension to its format.
func FileFormatFromPath(path string) (FileFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FilePNG, nil
	case ".jpg", ".jpeg":
		return FileJPEG, nil
	case ".bmp":
		return FileBMP, nil
	case ".webp":
		return FileWebP, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadImage loads an image from the given file path. Known extensions use
// their decoder directly; anything else is sniffed from the content.
func LoadImage(path string) (*ImageBuf, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ff, err := FileFormatFromPath(path)
	if err != nil {
		return Decode(f)
	}

	switch ff {
	case FilePNG:
		return DecodePNG(f)
	case FileJPEG:
		return DecodeJPEG(f)
	case FileBMP:
		return DecodeBMP(f)
	default:
		return DecodeWebP(f)
	}
}

// Decode decodes an image from the given reader, auto-detecting the format.
// PNG, JPEG, BMP and WebP are registered.
func Decode(r io.Reader) (*ImageBuf, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img), nil
}

// DecodePNG decodes a PNG image from the given reader.
func DecodePNG(r io.Reader) (*ImageBuf, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode PNG: %w", err)
	}
	return FromStdImage(img), nil
}

// DecodeJPEG decodes a JPEG image from the given reader.
func DecodeJPEG(r io.Reader) (*ImageBuf, error) {
	img, err := jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode JPEG: %w", err)
	}
	return FromStdImage(img), nil
}

// DecodeBMP decodes a BMP image from the given reader.
func DecodeBMP(r io.Reader) (*ImageBuf, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode BMP: %w", err)
	}
	return FromStdImage(img), nil
}

// DecodeWebP decodes a WebP image from the given reader.
func DecodeWebP(r io.Reader) (*ImageBuf, error) {
	img, err := webp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode WebP: %w", err)
	}
	return FromStdImage(img), nil
}

// Encode writes the image to w in the given file format.
// quality applies to JPEG only; 0 selects DefaultJPEGQuality.
func (b *ImageBuf) Encode(w io.Writer, ff FileFormat, quality int) error {
	switch ff {
	case FilePNG:
		return b.EncodePNG(w)
	case FileJPEG:
		if quality == 0 {
			quality = DefaultJPEGQuality
		}
		return b.EncodeJPEG(w, quality)
	case FileBMP:
		return b.EncodeBMP(w)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, ff)
	}
}

// EncodePNG encodes the image as PNG to the given writer.
func (b *ImageBuf) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode PNG: %w", err)
	}
	return nil
}

// EncodeJPEG encodes the image as JPEG with quality clamped to 1-100.
func (b *ImageBuf) EncodeJPEG(w io.Writer, quality int) error {
	quality = min(max(quality, 1), 100)

	if err := jpeg.Encode(w, b.ToStdImage(), &jpeg.Options{Quality: quality}); err != nil {
		return fmt.Errorf("image: encode JPEG: %w", err)
	}
	return nil
}

// EncodeBMP encodes the image as BMP to the given writer.
func (b *ImageBuf) EncodeBMP(w io.Writer) error {
	if err := bmp.Encode(w, b.ToStdImage()); err != nil {
		return fmt.Errorf("image: encode BMP: %w", err)
	}
	return nil
}

// Save encodes the image to path, choosing the encoder from the extension.
//
// The data is written to a temporary file in the same directory and renamed
// over path once complete, so a failed save leaves any existing file intact
// and never leaves a truncated one behind. A new file gets mode 0644; an
// existing file keeps its permission.
func (b *ImageBuf) Save(path string, quality int) (err error) {
	ff, err := FileFormatFromPath(path)
	if err != nil {
		return err
	}

	path = filepath.Clean(path)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = b.Encode(tmp, ff, quality); err != nil {
		return err
	}
	mode := savedFileMode
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}
	if err = tmp.Chmod(mode); err != nil {
		return fmt.Errorf("image: chmod file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("image: close file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("image: rename file: %w", err)
	}
	return nil
}
