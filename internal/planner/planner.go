package planner

import (
	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/naming"
	"github.com/backmassage/imgopt/internal/probe"
)

// FitWithin returns the largest size with the aspect ratio of w x h that fits
// inside maxW x maxH, without ever enlarging. Each side stays at least 1px.
func FitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	if w <= maxW && h <= maxH {
		return w, h
	}

	// Compare w/maxW against h/maxH without floats: the side with the larger
	// ratio is the one that limits the scale.
	W, H, MW, MH := int64(w), int64(h), int64(maxW), int64(maxH)
	if W*MH >= H*MW {
		nh := roundDiv(H*MW, W)
		return maxW, clamp(int(nh), 1, maxH)
	}
	nw := roundDiv(W*MH, H)
	return clamp(int(nw), 1, maxW), maxH
}

// EncodeOptions resolves the shared encoder settings from cfg. The
// background color is validated by Config.Validate, so errors here only
// surface for unvalidated configs.
func EncodeOptions(cfg *config.Config) (codec.EncodeOptions, error) {
	bg, err := config.ParseHexColor(cfg.Background)
	if err != nil {
		return codec.EncodeOptions{}, err
	}
	return codec.EncodeOptions{
		Quality:    cfg.Quality,
		Background: codec.Background(bg),
	}, nil
}

// BuildPlan produces a FilePlan for one source image.
//
// Flow:
//  1. Fit the source dimensions into the configured bounding box
//  2. Derive one target path per format from the (resolved) base name
func BuildPlan(cfg *config.Config, info *probe.Info, base string, opts codec.EncodeOptions) *FilePlan {
	plan := &FilePlan{
		InputPath: info.Path,
		BaseName:  base,
		SrcWidth:  info.Width,
		SrcHeight: info.Height,
		MaxWidth:  cfg.MaxWidth,
		MaxHeight: cfg.MaxHeight,
		Options:   opts,
	}

	plan.Width, plan.Height = FitWithin(info.Width, info.Height, cfg.MaxWidth, cfg.MaxHeight)

	outDir := cfg.OutputDir()
	for _, f := range codec.Targets {
		plan.Targets = append(plan.Targets, Target{
			Format: f,
			Path:   naming.OutputPath(outDir, base, f.Ext()),
		})
	}
	return plan
}

func roundDiv(num, den int64) int64 {
	return (2*num + den) / (2 * den)
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
