package probe

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrUnsupported is returned when the leading bytes match no supported format.
var ErrUnsupported = errors.New("unsupported image format")

var signatures = []struct {
	format Format
	magic  []byte
}{
	{FormatJPEG, []byte{0xFF, 0xD8, 0xFF}},
	{FormatPNG, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
}

// SniffFormat identifies a format from its leading bytes. WebP needs the
// RIFF header plus the "WEBP" fourcc at offset 8.
func SniffFormat(head []byte) Format {
	for _, s := range signatures {
		if bytes.HasPrefix(head, s.magic) {
			return s.format
		}
	}
	if len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WEBP")) {
		return FormatWebP
	}
	return FormatUnknown
}

// Inspect opens path and reads only as much as the decoder needs to report
// format and dimensions.
func Inspect(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	info, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("inspect %q: %w", path, err)
	}
	info.Path = path
	info.Size = fi.Size()
	return info, nil
}

// Read inspects an image stream. Exported for testing against in-memory
// encodes.
func Read(r io.Reader) (*Info, error) {
	head := make([]byte, 12)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrUnsupported)
		}
		return nil, err
	}
	head = head[:n]
	if SniffFormat(head) == FormatUnknown {
		return nil, fmt.Errorf("%w: header %x", ErrUnsupported, head)
	}

	cfg, name, err := image.DecodeConfig(io.MultiReader(bytes.NewReader(head), r))
	if err != nil {
		return nil, err
	}
	return &Info{
		Format: Format(name),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
