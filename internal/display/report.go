package display

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/backmassage/imgopt/internal/term"
)

// ArtifactLine is one derived output in a per-file block.
type ArtifactLine struct {
	Label string // "JPEG", "WebP"
	Size  int64
}

// FileReport is the per-file block printed after a successful optimization.
type FileReport struct {
	Name      string
	Original  int64
	Artifacts []ArtifactLine
}

// Summary is the end-of-run block.
type Summary struct {
	Succeeded      int
	Failed         int
	TotalOriginal  int64
	TotalOptimized int64
	OutputDir      string
	DryRun         bool
}

// PrintFile writes:
//
//	photo.png:
//	  Original: 2.93 MB
//	  JPEG:     312 KB (90% reduction)
//	  WebP:     201 KB (93% reduction)
func PrintFile(w io.Writer, r FileReport) {
	fmt.Fprintf(w, "%s:\n", r.Name)
	fmt.Fprintf(w, "  %-10s%s\n", "Original:", FormatMB(r.Original))
	for _, a := range r.Artifacts {
		fmt.Fprintf(w, "  %-10s%s (%s reduction)\n",
			a.Label+":", FormatKB(a.Size), FormatReduction(r.Original, a.Size))
	}
}

// PrintSummary writes the totals block. Savings are "n/a" when nothing
// succeeded.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, "=====================================")
	status := fmt.Sprintf("Done: %d optimized, %d failed", s.Succeeded, s.Failed)
	if s.Failed > 0 {
		status = term.Paint(term.Yellow, status)
	} else {
		status = term.Paint(term.Green, status)
	}
	fmt.Fprintln(w, status)
	if s.DryRun {
		fmt.Fprintln(w, "Total savings:   n/a (dry run)")
		return
	}
	fmt.Fprintf(w, "Total original:  %s\n", FormatMB(s.TotalOriginal))
	fmt.Fprintf(w, "Total optimized: %s\n", FormatMB(s.TotalOptimized))
	fmt.Fprintf(w, "Total savings:   %s\n", FormatReduction(s.TotalOriginal, s.TotalOptimized))
	if s.Succeeded == 0 {
		return
	}
	fmt.Fprintf(w, "\nOptimized images saved to: %s\n", filepath.ToSlash(s.OutputDir)+"/")
	fmt.Fprintln(w, "Use the WebP versions for best performance.")
}
