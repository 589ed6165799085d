package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	sparkChars          = " .:-=+*#%@"
	barChar             = "#"
	minBarWidth         = 10
	forecastLabelWidth  = 12
	terminalWidthBackup = 80
)

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []int) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := float64(v-minVal) / float64(maxVal-minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// BarWidthFor computes the bar area that fits next to the row labels.
func BarWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minBarWidth
	}
	width := totalWidth - forecastLabelWidth
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

// RenderForecast prints one bar per day scaled to width. A width of zero
// uses the terminal width.
func RenderForecast(w io.Writer, counts []int, width int) error {
	if len(counts) == 0 {
		return nil
	}
	if width <= 0 {
		width = BarWidthFor(terminalWidth())
	}
	maxVal := 0
	for _, c := range counts {
		if c > maxVal {
			maxVal = c
		}
	}
	if _, err := fmt.Fprintf(w, "Due Forecast  %s\n", Sparkline(counts)); err != nil {
		return err
	}
	for i, c := range counts {
		label := "now"
		if i > 0 {
			label = fmt.Sprintf("+%dd", i)
		}
		bar := 0
		if maxVal > 0 {
			bar = int(math.Round(float64(c) / float64(maxVal) * float64(width)))
		}
		if _, err := fmt.Fprintf(w, "%-4s %5d  %s\n", label, c, strings.Repeat(barChar, bar)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
