package planner

import "github.com/backmassage/imgopt/internal/codec"

// Target is one artifact to produce.
type Target struct {
	Format codec.Format
	Path   string
}

// FilePlan holds the complete set of decisions for processing a single
// image. It is produced by BuildPlan and consumed by encode.Execute.
type FilePlan struct {
	InputPath string
	BaseName  string // Possibly collision-suffixed.

	// Source and target geometry.
	SrcWidth  int
	SrcHeight int
	Width     int
	Height    int

	// Bounding box the target geometry was fitted into. Kept so the
	// executor can refit when decoding changes the source geometry.
	MaxWidth  int
	MaxHeight int

	// Targets in write order (baseline before modern).
	Targets []Target

	Options codec.EncodeOptions
}

// Refit returns the target size for an image that decoded to w x h. It is
// the planned size unless decoding rotated or otherwise changed the source
// geometry (EXIF auto-orientation), in which case it is fitted again.
func (p *FilePlan) Refit(w, h int) (int, int) {
	if w == p.SrcWidth && h == p.SrcHeight {
		return p.Width, p.Height
	}
	return FitWithin(w, h, p.MaxWidth, p.MaxHeight)
}

// NeedsResize reports whether the target geometry differs from the source.
func (p *FilePlan) NeedsResize() bool {
	return p.Width != p.SrcWidth || p.Height != p.SrcHeight
}
