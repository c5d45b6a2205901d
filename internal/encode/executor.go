package encode

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/backmassage/imgopt/internal/codec"
	"github.com/backmassage/imgopt/internal/planner"
)

// Artifact describes one written output file.
type Artifact struct {
	Format codec.Format
	Path   string
	Size   int64
	Width  int
	Height int
}

// Options tune Execute.
type Options struct {
	// KeepPartial leaves already written and pre-existing artifacts in
	// place when a target fails. The file still counts as failed.
	KeepPartial bool
}

// Execute runs plan through c and returns the artifacts in target order.
func Execute(ctx context.Context, c codec.Codec, plan *planner.FilePlan, opts Options) ([]Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := load(c, plan.InputPath)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	if w, h := plan.Refit(b.Dx(), b.Dy()); w != b.Dx() || h != b.Dy() {
		img = c.Resize(img, w, h)
		b = img.Bounds()
	}

	artifacts := make([]Artifact, 0, len(plan.Targets))
	for _, t := range plan.Targets {
		size, err := writeAtomic(c, img, t, plan.Options)
		if err != nil {
			if !opts.KeepPartial {
				removeTargets(plan.Targets)
			}
			return nil, err
		}
		artifacts = append(artifacts, Artifact{
			Format: t.Format,
			Path:   t.Path,
			Size:   size,
			Width:  b.Dx(),
			Height: b.Dy(),
		})
	}
	return artifacts, nil
}

func load(c codec.Codec, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	img, err := c.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// writeAtomic encodes img to a temp file in the target's directory and
// renames it over t.Path. It returns the final size.
func writeAtomic(c codec.Codec, img image.Image, t planner.Target, opts codec.EncodeOptions) (int64, error) {
	dir := filepath.Dir(t.Path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(t.Path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := c.Encode(w, img, t.Format, opts); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEncode, t.Format, err)
	}
	if err := w.Flush(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	fi, err := tmp.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, t.Path); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	committed = true
	return fi.Size(), nil
}

// removeTargets deletes every target of a failed file, including outputs
// left by an earlier run, so the output dir never holds an unmatched pair.
func removeTargets(targets []planner.Target) {
	for _, t := range targets {
		os.Remove(t.Path)
	}
}
