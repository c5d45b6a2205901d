package display

import (
	"fmt"
	"io"

	"github.com/backmassage/imgopt/internal/term"
)

// PrintBanner prints the startup line; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprintln(w, term.Paint(term.Magenta, "imgopt v"+version+" - optimizing images for web"))
	fmt.Fprintln(w)
}
