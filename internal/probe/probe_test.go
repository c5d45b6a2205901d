package probe

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	return img
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Format
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, FormatJPEG},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, FormatPNG},
		{"webp", []byte("RIFF\x10\x00\x00\x00WEBPVP8 "), FormatWebP},
		{"riff but wav", []byte("RIFF\x10\x00\x00\x00WAVEfmt "), FormatUnknown},
		{"text", []byte("hello world!"), FormatUnknown},
		{"empty", nil, FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.head); got != tt.want {
				t.Errorf("SniffFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRead_PNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(40, 30)); err != nil {
		t.Fatal(err)
	}
	info, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.Format != FormatPNG || info.Width != 40 || info.Height != 30 {
		t.Errorf("got %+v, want png 40x30", info)
	}
	if info.Resolution() != "40x30" {
		t.Errorf("Resolution = %q", info.Resolution())
	}
}

func TestRead_JPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solid(16, 64), &jpeg.Options{Quality: 80}); err != nil {
		t.Fatal(err)
	}
	info, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.Format != FormatJPEG || info.Width != 16 || info.Height != 64 {
		t.Errorf("got %+v, want jpeg 16x64", info)
	}
}

func TestRead_RejectsGarbage(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("definitely not an image")))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Read error = %v, want ErrUnsupported", err)
	}

	_, err = Read(bytes.NewReader(nil))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Read(empty) error = %v, want ErrUnsupported", err)
	}
}

func TestRead_TruncatedPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(8, 8)); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(bytes.NewReader(buf.Bytes()[:10])); err == nil {
		t.Error("Read should fail on a truncated PNG header")
	}
}

func TestInspect_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, solid(400, 300)); err != nil {
		t.Fatal(err)
	}
	f.Close()

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	fi, _ := os.Stat(path)
	if info.Size != fi.Size() {
		t.Errorf("Size = %d, want %d", info.Size, fi.Size())
	}
	if info.Path != path {
		t.Errorf("Path = %q, want %q", info.Path, path)
	}
	if info.Width != 400 || info.Height != 300 {
		t.Errorf("dims = %s, want 400x300", info.Resolution())
	}
}

func TestInspect_Missing(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Inspect should fail for a missing file")
	}
}
