package display

import (
	"fmt"
)

// FormatMB renders bytes as megabytes with two decimals ("2.93 MB").
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

// FormatKB renders bytes as whole kilobytes ("312 KB").
func FormatKB(bytes int64) string {
	return fmt.Sprintf("%.0f KB", float64(bytes)/1024)
}

// FormatPercent renders a 0..1 fraction as a whole percentage. Negative
// values (output grew) are kept so the report stays honest.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

// Reduction is 1 - after/before, or ok=false when before is zero.
func Reduction(before, after int64) (float64, bool) {
	if before <= 0 {
		return 0, false
	}
	return 1 - float64(after)/float64(before), true
}

// FormatReduction renders Reduction as a percentage, or "n/a".
func FormatReduction(before, after int64) string {
	r, ok := Reduction(before, after)
	if !ok {
		return "n/a"
	}
	return FormatPercent(r)
}

// FormatDimensions returns "WxH", or "unknown" for non-positive sizes.
func FormatDimensions(w, h int) string {
	if w <= 0 || h <= 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", w, h)
}
