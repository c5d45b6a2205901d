package probe

import "fmt"

// Format is a raster format name as reported by image.DecodeConfig.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatWebP    Format = "webp"
	FormatUnknown Format = ""
)

// Info is the result of a header-only inspection.
type Info struct {
	Path   string
	Format Format
	Width  int
	Height int
	Size   int64
}

// Resolution returns "WxH", or "unknown".
func (i *Info) Resolution() string {
	if i == nil || i.Width <= 0 || i.Height <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", i.Width, i.Height)
}
