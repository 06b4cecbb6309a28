package kernelop

import (
	intImage "github.com/gogpu/kernelop/internal/image"
)

// Session holds the state of one image-viewing session: the source image
// that kernels are applied to and the image currently on display.
//
// Each method corresponds to one user action. Apply shows a filtered
// version of the source without replacing it; Update keeps what is shown
// as the new source; Clear throws the shown result away.
//
// A Session is not safe for concurrent use.
type Session struct {
	opts      options
	conv      *Convolver
	source    *intImage.ImageBuf
	displayed *intImage.ImageBuf
}

// NewSession creates an empty session. The options apply to every Apply
// and Save call. Call Close to release worker goroutines.
func NewSession(opts ...Option) *Session {
	conv := NewConvolver(opts...)
	return &Session{
		opts: conv.opts,
		conv: conv,
	}
}

// Close releases resources held by the session. The session stays usable;
// later Apply calls run on the calling goroutine.
func (s *Session) Close() {
	s.conv.Close()
}

// HasImage reports whether an image has been loaded.
func (s *Session) HasImage() bool {
	return s.source != nil
}

// Load decodes the image at path (PNG, JPEG, BMP or WebP) and makes it
// both the source and the displayed image. On failure the session is
// left unchanged and an *IOError is returned.
func (s *Session) Load(path string) error {
	buf, err := intImage.LoadImage(path)
	if err != nil {
		return &IOError{Op: "load", Path: path, Err: err}
	}

	s.source = buf
	s.displayed = buf.Clone()

	Logger().Info("image loaded", "path", path, "width", buf.Width(), "height", buf.Height(), "format", buf.Format())
	return nil
}

// Save encodes the displayed image to path. The encoder is chosen from
// the extension: .png, .jpg/.jpeg or .bmp. It returns ErrNoImageLoaded
// when there is nothing to save and an *IOError when encoding or writing
// fails. A failed save does not leave a partial file at path.
func (s *Session) Save(path string) error {
	if s.displayed == nil {
		return ErrNoImageLoaded
	}

	if err := s.displayed.Save(path, s.opts.jpegQuality); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}

	Logger().Info("image saved", "path", path)
	return nil
}

// Apply converts the source image to grayscale, convolves it with k and
// displays the result. The source is not changed.
func (s *Session) Apply(k Kernel) error {
	if s.source == nil {
		return ErrNoImageLoaded
	}

	out, err := s.conv.Convolve(fromImageBuf(s.source.Gray()), k)
	if err != nil {
		return err
	}

	s.displayed = out.imageBuf()
	return nil
}

// Update makes the displayed image the new source, so later kernels are
// applied on top of the current result.
func (s *Session) Update() error {
	if s.displayed == nil {
		return ErrNoImageLoaded
	}

	s.source = s.displayed.Clone()
	Logger().Info("displayed image committed as source")
	return nil
}

// Clear discards the displayed result and shows the source again.
// Without an image it does nothing.
func (s *Session) Clear() {
	if s.source == nil {
		return
	}
	s.displayed = s.source.Clone()
}

// Displayed returns the displayed image as grayscale, or nil when no
// image is loaded. The result is a copy.
func (s *Session) Displayed() *PixelBuffer {
	if s.displayed == nil {
		return nil
	}
	return fromImageBuf(s.displayed.Gray())
}

// Source returns the source image as grayscale, or nil when no image is
// loaded. The result is a copy.
func (s *Session) Source() *PixelBuffer {
	if s.source == nil {
		return nil
	}
	return fromImageBuf(s.source.Gray())
}

// Resize scales both the source and the displayed image so neither side
// exceeds maxSide, keeping the aspect ratio. Images already small enough
// are left alone.
func (s *Session) Resize(maxSide int) error {
	if s.source == nil {
		return ErrNoImageLoaded
	}

	w, h := intImage.FitWithin(s.source.Width(), s.source.Height(), maxSide)
	if w == s.source.Width() && h == s.source.Height() {
		return nil
	}

	src, err := s.source.Resize(w, h)
	if err != nil {
		return err
	}
	disp, err := s.displayed.Resize(w, h)
	if err != nil {
		return err
	}

	s.source, s.displayed = src, disp
	Logger().Debug("images resized", "width", w, "height", h)
	return nil
}
