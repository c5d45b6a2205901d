package planner

import (
	"path/filepath"
	"testing"

	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/config"
	"github.com/backmassage/imgopt/internal/probe"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"exact 4:3 downscale", 2000, 1500, 1200, 900},
		{"wide limited by width", 2400, 1000, 1200, 500},
		{"tall limited by height", 1000, 3000, 300, 900},
		{"smaller is untouched", 400, 300, 400, 300},
		{"exactly the box", 1200, 900, 1200, 900},
		{"width over only", 1300, 500, 1200, 462},
		{"height over only", 800, 1000, 720, 900},
		{"extreme panorama keeps 1px", 100000, 10, 1200, 1},
		{"zero passes through", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw, gh := FitWithin(tt.w, tt.h, 1200, 900)
			if gw != tt.wantW || gh != tt.wantH {
				t.Errorf("FitWithin(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, gw, gh, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFitWithin_Properties(t *testing.T) {
	for w := 1; w <= 3000; w += 137 {
		for h := 1; h <= 3000; h += 149 {
			gw, gh := FitWithin(w, h, 1200, 900)
			if gw > 1200 || gh > 900 {
				t.Fatalf("%dx%d -> %dx%d exceeds box", w, h, gw, gh)
			}
			if gw > w || gh > h {
				t.Fatalf("%dx%d -> %dx%d upscaled", w, h, gw, gh)
			}
			if gw < 1 || gh < 1 {
				t.Fatalf("%dx%d -> %dx%d collapsed", w, h, gw, gh)
			}
			if w > 1200 || h > 900 {
				if gw != 1200 && gh != 900 {
					t.Fatalf("%dx%d -> %dx%d does not touch the box", w, h, gw, gh)
				}
			}
		}
	}
}

func TestBuildPlan(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SourceDir = "site/images"
	opts, err := EncodeOptions(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	info := &probe.Info{Path: "site/images/photo.png", Format: probe.FormatPNG, Width: 2000, Height: 1500}
	plan := BuildPlan(&cfg, info, "photo", opts)

	if plan.Width != 1200 || plan.Height != 900 {
		t.Errorf("plan geometry %dx%d, want 1200x900", plan.Width, plan.Height)
	}
	if !plan.NeedsResize() {
		t.Error("2000x1500 should need a resize")
	}
	if len(plan.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(plan.Targets))
	}
	want := []Target{
		{Format: codec.FormatJPEG, Path: filepath.Join("site/images", "optimized", "photo.jpg")},
		{Format: codec.FormatWebP, Path: filepath.Join("site/images", "optimized", "photo.webp")},
	}
	for i, tgt := range plan.Targets {
		if tgt != want[i] {
			t.Errorf("target %d = %+v, want %+v", i, tgt, want[i])
		}
	}
	if plan.Options.Quality != 80 {
		t.Errorf("quality = %d, want 80", plan.Options.Quality)
	}
}

func TestBuildPlan_SmallImageKeepsSize(t *testing.T) {
	cfg := config.DefaultConfig()
	opts, _ := EncodeOptions(&cfg)
	info := &probe.Info{Path: "images/logo.png", Width: 400, Height: 300}
	plan := BuildPlan(&cfg, info, "logo", opts)
	if plan.NeedsResize() {
		t.Errorf("400x300 should not be resized, got %dx%d", plan.Width, plan.Height)
	}
}

func TestEncodeOptions_InvalidBackground(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Background = "nope"
	if _, err := EncodeOptions(&cfg); err == nil {
		t.Error("EncodeOptions should reject an invalid background")
	}
}

func TestFilePlan_Refit(t *testing.T) {
	cfg := config.DefaultConfig()
	opts, _ := EncodeOptions(&cfg)
	plan := BuildPlan(&cfg, &probe.Info{Path: "images/photo.jpg", Width: 2000, Height: 1500}, "photo", opts)

	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"header geometry keeps the plan", 2000, 1500, 1200, 900},
		{"rotated a quarter turn", 1500, 2000, 675, 900},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := plan.Refit(tt.w, tt.h)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Refit(%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
