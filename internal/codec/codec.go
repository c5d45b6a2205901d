// Package codec is the narrow boundary to the image libraries: decode,
// resize to exact dimensions, and encode as one of the two target formats.
// The pipeline only talks to the [Codec] interface so it can be driven by a
// fake in tests.
package codec

import (
	"image"
	"image/color"
	"io"
)

// Format is a target encoding.
type Format int

const (
	FormatJPEG Format = iota // Baseline, universally supported.
	FormatWebP               // Modern, smaller.
)

// Targets lists every output format in write order: baseline first.
var Targets = []Format{FormatJPEG, FormatWebP}

// Ext returns the file extension including the leading dot.
func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatWebP:
		return ".webp"
	default:
		return ""
	}
}

// Label is the display name used in reports.
func (f Format) Label() string {
	switch f {
	case FormatJPEG:
		return "JPEG"
	case FormatWebP:
		return "WebP"
	default:
		return "unknown"
	}
}

func (f Format) String() string { return f.Label() }

// EncodeOptions are shared by every target format.
type EncodeOptions struct {
	Quality    int         // 1-100.
	Background color.Color // Fill for transparent pixels where the format has no alpha.
}

// Codec is the capability set the pipeline depends on.
type Codec interface {
	Decode(r io.Reader) (image.Image, error)
	// Resize scales img to exactly width x height. Implementations return img
	// unchanged when it already has those dimensions.
	Resize(img image.Image, width, height int) image.Image
	Encode(w io.Writer, img image.Image, f Format, opts EncodeOptions) error
}
