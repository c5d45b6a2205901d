// Package check provides codec diagnostics (--check mode) and the
// pre-pipeline validation (CheckDeps) that every target encoder works.
package check

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"runtime"

	"go.uber.org/zap"

	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/planner"
	"github.com/backmassage/imgopt/internal/probe"
)

// Sentinel errors returned by CheckDeps.
var (
	ErrDecodeFailed = errors.New("test decode failed")
	ErrEncodeFailed = errors.New("test encode failed")
	ErrBadOutput    = errors.New("test encode produced an unreadable image")
)

// Synthetic sample size. Large enough to exercise resize, small enough to
// encode in milliseconds.
const (
	sampleWidth  = 64
	sampleHeight = 48
)

// RunCheck runs the interactive --check flow: decode, resize and encode a
// synthetic image through every target format and log each result. It
// returns false if any step failed.
func RunCheck(cfg *config.Config, c codec.Codec, log *zap.Logger) bool {
	log.Info("=== System Check ===")
	log.Info("runtime", zap.String("go", runtime.Version()), zap.String("platform", runtime.GOOS+"/"+runtime.GOARCH))
	log.Info("settings",
		zap.Int("max_width", cfg.MaxWidth),
		zap.Int("max_height", cfg.MaxHeight),
		zap.String("resampler", string(cfg.Resampler)),
		zap.Int("quality", cfg.Quality))

	ok := true
	img, err := decodeSample(c)
	if err != nil {
		log.Error("decode failed", zap.Error(err))
		return false
	}
	log.Info("decode works", zap.String("format", "png"))

	opts, err := planner.EncodeOptions(cfg)
	if err != nil {
		log.Error("invalid encode options", zap.Error(err))
		return false
	}
	for _, f := range codec.Targets {
		size, err := encodeSample(c, img, f, opts)
		if err != nil {
			log.Error("encoder failed", zap.String("format", f.Label()), zap.Error(err))
			ok = false
			continue
		}
		log.Info("encoder works", zap.String("format", f.Label()), zap.Int("bytes", size))
	}
	return ok
}

// CheckDeps verifies that the codec can decode a PNG and produce a readable
// artifact in every target format. Returns a wrapped sentinel on failure.
func CheckDeps(c codec.Codec) error {
	img, err := decodeSample(c)
	if err != nil {
		return err
	}
	opts := codec.EncodeOptions{Quality: 80, Background: color.White}
	for _, f := range codec.Targets {
		if _, err := encodeSample(c, img, f, opts); err != nil {
			return err
		}
	}
	return nil
}

// --- internal helpers ---

// sample returns a gradient with a transparent corner so the JPEG path has
// alpha to flatten.
func sample() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, sampleWidth*2, sampleHeight*2))
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := uint8(255)
			if x < 16 && y < 16 {
				a = 0
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 2), G: uint8(y * 2), B: 128, A: a})
		}
	}
	return img
}

// decodeSample round-trips the sample through PNG so the codec's decoder is
// exercised, then resizes it to the sample size.
func decodeSample(c codec.Codec) (image.Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, sample()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	img, err := c.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	return c.Resize(img, sampleWidth, sampleHeight), nil
}

// encodeSample encodes img as f and reads the header back.
func encodeSample(c codec.Codec, img image.Image, f codec.Format, opts codec.EncodeOptions) (int, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, img, f, opts); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEncodeFailed, f, err)
	}
	size := buf.Len()
	info, err := probe.Read(&buf)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrBadOutput, f, err)
	}
	if info.Width != sampleWidth || info.Height != sampleHeight {
		return 0, fmt.Errorf("%w: %s: got %s, want %dx%d", ErrBadOutput, f, info.Resolution(), sampleWidth, sampleHeight)
	}
	return size, nil
}
