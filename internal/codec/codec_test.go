package codec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/nfnt/resize"

	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/probe"
)

func gradient(w, h int, alpha uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 90, A: alpha})
		}
	}
	return img
}

func newTestCodec() *Native {
	cfg := config.DefaultConfig()
	return NewNative(&cfg)
}

func TestFormat_ExtAndLabel(t *testing.T) {
	if FormatJPEG.Ext() != ".jpg" || FormatWebP.Ext() != ".webp" {
		t.Errorf("ext: %q %q", FormatJPEG.Ext(), FormatWebP.Ext())
	}
	if FormatJPEG.Label() != "JPEG" || FormatWebP.Label() != "WebP" {
		t.Errorf("label: %q %q", FormatJPEG.Label(), FormatWebP.Label())
	}
	if len(Targets) != 2 || Targets[0] != FormatJPEG {
		t.Errorf("Targets must list the baseline format first: %v", Targets)
	}
}

func TestNative_DecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gradient(30, 20, 255)); err != nil {
		t.Fatal(err)
	}
	img, err := newTestCodec().Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("decoded %dx%d, want 30x20", b.Dx(), b.Dy())
	}
}

func TestNative_DecodeGarbage(t *testing.T) {
	if _, err := newTestCodec().Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode should fail on garbage input")
	}
}

func TestNative_Resize(t *testing.T) {
	c := newTestCodec()
	src := gradient(200, 150, 255)

	out := c.Resize(src, 120, 90)
	if b := out.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("resized to %dx%d, want 120x90", b.Dx(), b.Dy())
	}

	same := c.Resize(src, 200, 150)
	if same != image.Image(src) {
		t.Error("Resize to the same size should return the input unchanged")
	}
}

func TestNative_EncodeJPEG(t *testing.T) {
	c := newTestCodec()
	var buf bytes.Buffer
	opts := EncodeOptions{Quality: 80, Background: color.White}
	if err := c.Encode(&buf, gradient(64, 48, 255), FormatJPEG, opts); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := probe.Read(&buf)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info.Format != probe.FormatJPEG || info.Width != 64 || info.Height != 48 {
		t.Errorf("got %+v, want jpeg 64x48", info)
	}
}

func TestNative_EncodeWebP(t *testing.T) {
	c := newTestCodec()
	var buf bytes.Buffer
	if err := c.Encode(&buf, gradient(64, 48, 255), FormatWebP, EncodeOptions{Quality: 80}); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	info, err := probe.Read(&buf)
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if info.Format != probe.FormatWebP || info.Width != 64 || info.Height != 48 {
		t.Errorf("got %+v, want webp 64x48", info)
	}
}

func TestNative_EncodeDeterministic(t *testing.T) {
	c := newTestCodec()
	src := gradient(50, 40, 255)
	for _, f := range Targets {
		var a, b bytes.Buffer
		opts := EncodeOptions{Quality: 80, Background: color.White}
		if err := c.Encode(&a, src, f, opts); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if err := c.Encode(&b, src, f, opts); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if !bytes.Equal(a.Bytes(), b.Bytes()) {
			t.Errorf("%s encode is not deterministic", f)
		}
	}
}

func TestFlatten(t *testing.T) {
	transparent := gradient(4, 4, 0)
	out := Flatten(transparent, color.White)
	r, g, b, a := out.At(1, 1).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff || a != 0xffff {
		t.Errorf("fully transparent pixel should become white, got %d %d %d %d", r, g, b, a)
	}

	opaque := gradient(4, 4, 255)
	if Flatten(opaque, color.White) != image.Image(opaque) {
		t.Error("opaque images should pass through Flatten untouched")
	}
	if Flatten(transparent, nil) != image.Image(transparent) {
		t.Error("nil background should disable flattening")
	}
}

func TestInterpolation(t *testing.T) {
	tests := []struct {
		in   config.Resampler
		want resize.InterpolationFunction
	}{
		{config.ResampleLanczos3, resize.Lanczos3},
		{config.ResampleBicubic, resize.Bicubic},
		{config.ResampleBilinear, resize.Bilinear},
		{config.ResampleNearest, resize.NearestNeighbor},
		{"bogus", resize.Lanczos3},
	}
	for _, tt := range tests {
		if got := Interpolation(tt.in); got != tt.want {
			t.Errorf("Interpolation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
