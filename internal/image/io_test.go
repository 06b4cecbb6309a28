package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func gradientBuf(t *testing.T, w, h int, format Format) *ImageBuf {
	t.Helper()
	buf, err := NewImageBuf(w, h, format)
	if err != nil {
		t.Fatalf("NewImageBuf() error = %v", err)
	}
	for y := range h {
		for x := range w {
			setPixel(t, buf, x, y, uint8(x*20), uint8(y*20), uint8(x+y), 255)
		}
	}
	return buf
}

func TestFileFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{"a.png", FilePNG, false},
		{"a.PNG", FilePNG, false},
		{"dir/b.jpg", FileJPEG, false},
		{"b.jpeg", FileJPEG, false},
		{"c.bmp", FileBMP, false},
		{"d.webp", FileWebP, false},
		{"e.tiff", 0, true},
		{"noext", 0, true},
	}

	for _, tt := range tests {
		got, err := FileFormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FileFormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FileFormatFromPath(%q) error = %v, want ErrUnsupportedFormat", tt.path, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("FileFormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestEncodePNG_DecodePNG(t *testing.T) {
	buf := gradientBuf(t, 8, 6, FormatRGBA8)

	var out bytes.Buffer
	if err := buf.EncodePNG(&out); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	decoded, err := DecodePNG(&out)
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if !sameImage(decoded, buf) {
		t.Error("PNG round trip changed pixels")
	}
}

func TestEncodeGrayPNG_StaysGray(t *testing.T) {
	buf := gradientBuf(t, 5, 5, FormatGray8)

	var out bytes.Buffer
	if err := buf.EncodePNG(&out); err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := DecodePNG(&out)
	if err != nil {
		t.Fatalf("DecodePNG failed: %v", err)
	}
	if decoded.Format() != FormatGray8 {
		t.Errorf("Format() = %v, want Gray8", decoded.Format())
	}
	if !sameImage(decoded, buf) {
		t.Error("gray PNG round trip changed pixels")
	}
}

func TestEncodeJPEG_QualityBounds(t *testing.T) {
	buf := gradientBuf(t, 16, 16, FormatRGBA8)

	for _, q := range []int{-10, 0, 1, 50, 100, 1000} {
		var out bytes.Buffer
		if err := buf.EncodeJPEG(&out, q); err != nil {
			t.Errorf("EncodeJPEG(quality=%d) failed: %v", q, err)
		}
		if _, err := DecodeJPEG(&out); err != nil {
			t.Errorf("DecodeJPEG(quality=%d) failed: %v", q, err)
		}
	}
}

func TestEncodeBMP_DecodeBMP(t *testing.T) {
	buf := gradientBuf(t, 7, 3, FormatRGBA8)

	var out bytes.Buffer
	if err := buf.EncodeBMP(&out); err != nil {
		t.Fatalf("EncodeBMP failed: %v", err)
	}

	decoded, err := DecodeBMP(&out)
	if err != nil {
		t.Fatalf("DecodeBMP failed: %v", err)
	}
	for y := range 3 {
		for x := range 7 {
			r1, g1, b1, _ := pixel(buf, x, y)
			r2, g2, b2, _ := pixel(decoded, x, y)
			if r1 != r2 || g1 != g2 || b1 != b2 {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want (%d,%d,%d)", x, y, r2, g2, b2, r1, g1, b1)
			}
		}
	}
}

func TestEncode_WebPUnsupported(t *testing.T) {
	buf := gradientBuf(t, 2, 2, FormatRGBA8)
	if err := buf.Encode(&bytes.Buffer{}, FileWebP, 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(webp) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_SniffsFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	loaded, err := Decode(&out)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if r, g, b, _ := pixel(loaded, 1, 2); r != 9 || g != 8 || b != 7 {
		t.Errorf("Pixel = (%d, %d, %d), want (9, 8, 7)", r, g, b)
	}
}

func TestDecode_InvalidData(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode should fail for invalid data")
	}
	if _, err := DecodeWebP(bytes.NewReader([]byte("not a webp image"))); err == nil {
		t.Error("DecodeWebP should fail for invalid data")
	}
}

func TestSave_LoadImage(t *testing.T) {
	dir := t.TempDir()
	buf := gradientBuf(t, 9, 5, FormatRGBA8)

	for _, name := range []string{"out.png", "out.bmp", "out.jpg"} {
		path := filepath.Join(dir, name)
		if err := buf.Save(path, 95); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}

		loaded, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s) failed: %v", name, err)
		}
		if loaded.Width() != 9 || loaded.Height() != 5 {
			t.Errorf("%s: dimensions = (%d, %d), want (9, 5)", name, loaded.Width(), loaded.Height())
		}
	}

	// Only the three target files remain; no temp files are left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("directory has %d entries, want 3", len(entries))
	}
}

func TestSave_FileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()
	buf := gradientBuf(t, 2, 2, FormatGray8)

	fresh := filepath.Join(dir, "fresh.png")
	if err := buf.Save(fresh, 0); err != nil {
		t.Fatal(err)
	}
	if mode := fileMode(t, fresh); mode != 0o644 {
		t.Errorf("new file mode = %v, want %v", mode, os.FileMode(0o644))
	}

	private := filepath.Join(dir, "private.png")
	if err := os.WriteFile(private, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(private, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := buf.Save(private, 0); err != nil {
		t.Fatal(err)
	}
	if mode := fileMode(t, private); mode != 0o600 {
		t.Errorf("overwritten file mode = %v, want %v", mode, os.FileMode(0o600))
	}
}

func fileMode(t *testing.T, path string) os.FileMode {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info.Mode().Perm()
}

func TestSave_UnsupportedLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	buf := gradientBuf(t, 2, 2, FormatRGBA8)

	if err := buf.Save(filepath.Join(dir, "x.webp"), 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(webp) error = %v, want ErrUnsupportedFormat", err)
	}
	if err := buf.Save(filepath.Join(dir, "x.gif"), 0); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(gif) error = %v, want ErrUnsupportedFormat", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after failed saves, want 0", len(entries))
	}
}

func TestSave_MissingDirectory(t *testing.T) {
	buf := gradientBuf(t, 2, 2, FormatRGBA8)
	if err := buf.Save(filepath.Join(t.TempDir(), "missing", "x.png"), 0); err == nil {
		t.Error("Save into a missing directory should fail")
	}
}

func TestLoadImage_NotFound(t *testing.T) {
	if _, err := LoadImage("/nonexistent/path/image.png"); err == nil {
		t.Error("LoadImage should fail for non-existent file")
	}
}

func TestLoadImage_SniffsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picture.dat")
	buf := gradientBuf(t, 3, 3, FormatRGBA8)

	var out bytes.Buffer
	if err := buf.EncodePNG(&out); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, out.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage(.dat) failed: %v", err)
	}
	if !sameImage(loaded, buf) {
		t.Error("sniffed PNG differs from original")
	}
}

func BenchmarkEncodePNG(b *testing.B) {
	buf, _ := NewImageBuf(512, 512, FormatGray8)
	b.ResetTimer()
	for range b.N {
		_ = buf.EncodePNG(&bytes.Buffer{})
	}
}
