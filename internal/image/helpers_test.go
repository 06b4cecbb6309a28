package image

import (
	"bytes"
	"testing"
)

// setPixel writes (r, g, b, a) at (x, y). Gray8 buffers store r.
func setPixel(t *testing.T, buf *ImageBuf, x, y int, r, g, b, a uint8) {
	t.Helper()
	row := buf.RowBytes(y)
	if row == nil || x < 0 || x >= buf.Width() {
		t.Fatalf("setPixel(%d, %d) outside %dx%d", x, y, buf.Width(), buf.Height())
	}
	if buf.Format() == FormatGray8 {
		row[x] = r
		return
	}
	copy(row[x*4:], []byte{r, g, b, a})
}

// pixel returns the RGBA value at (x, y); Gray8 reads as (v, v, v, 255).
func pixel(buf *ImageBuf, x, y int) (r, g, b, a uint8) {
	row := buf.RowBytes(y)
	if buf.Format() == FormatGray8 {
		return row[x], row[x], row[x], 255
	}
	p := row[x*4:]
	return p[0], p[1], p[2], p[3]
}

func sameImage(a, b *ImageBuf) bool {
	return a.Width() == b.Width() && a.Height() == b.Height() &&
		a.Format() == b.Format() && bytes.Equal(a.Data(), b.Data())
}
