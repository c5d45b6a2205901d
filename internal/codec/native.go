package codec

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/backmassage/imgopt/internal/config"
)

// Native implements Codec with imaging (decode, JPEG), nfnt/resize and
// libwebp through go-webp.
type Native struct {
	AutoOrient bool
	Interp     resize.InterpolationFunction
}

// NewNative builds a Native codec from the resize and decode settings in cfg.
func NewNative(cfg *config.Config) *Native {
	return &Native{
		AutoOrient: cfg.AutoOrient,
		Interp:     Interpolation(cfg.Resampler),
	}
}

// Interpolation maps a configured resampler to the nfnt/resize kernel.
func Interpolation(r config.Resampler) resize.InterpolationFunction {
	switch r {
	case config.ResampleNearest:
		return resize.NearestNeighbor
	case config.ResampleBilinear:
		return resize.Bilinear
	case config.ResampleBicubic:
		return resize.Bicubic
	default:
		return resize.Lanczos3
	}
}

// Decode reads a JPEG or PNG (any format registered with image).
func (n *Native) Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r, imaging.AutoOrientation(n.AutoOrient))
}

// Resize scales img to width x height. It never allocates when the size
// already matches.
func (n *Native) Resize(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, n.Interp)
}

// Encode writes img as f.
func (n *Native) Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error {
	switch f {
	case FormatJPEG:
		return imaging.Encode(w, Flatten(img, opts.Background), imaging.JPEG, imaging.JPEGQuality(opts.Quality))
	case FormatWebP:
		eo, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(opts.Quality))
		if err != nil {
			return err
		}
		return webp.Encode(w, img, eo)
	default:
		return fmt.Errorf("unknown format %d", f)
	}
}

// Flatten composites img over bg. Opaque images and a nil bg are returned
// as-is; JPEG would otherwise render transparent pixels black.
func Flatten(img image.Image, bg color.Color) image.Image {
	if bg == nil {
		return img
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Background converts a parsed config color.
func Background(c config.RGBA) color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
