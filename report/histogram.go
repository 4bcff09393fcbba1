package report

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const (
	defaultHistogramBins = 10
	histogramBarWidth    = 40
	histogramBarRune     = '█'
)

// HistogramBin is one half-open value bucket [Low, High); the last bin is
// closed on both sides.
type HistogramBin struct {
	Low   float64
	High  float64
	Count int
}

// BuildHistogram buckets values into equal-width bins. A constant series
// collapses into a single bin; an empty series yields no bins.
func BuildHistogram(values []float64, bins int) []HistogramBin {
	if len(values) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = defaultHistogramBins
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	out := make([]HistogramBin, bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	for _, v := range values {
		idx := int(math.Floor((v - min) / width))
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// RenderHistogram writes a text histogram for one column, one bar per bin
// scaled to the most populated bin.
func RenderHistogram(w io.Writer, column string, bins []HistogramBin) error {
	if _, err := fmt.Fprintf(w, "Histogram: %s\n\n", column); err != nil {
		return err
	}
	if len(bins) == 0 {
		_, err := fmt.Fprintln(w, "(no observed values)")
		return err
	}

	maxCount := 0
	for _, bin := range bins {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	for _, bin := range bins {
		barLen := 0
		if maxCount > 0 {
			barLen = bin.Count * histogramBarWidth / maxCount
		}
		if bin.Count > 0 && barLen == 0 {
			barLen = 1
		}
		bar := strings.Repeat(string(histogramBarRune), barLen)
		if _, err := fmt.Fprintf(w, "[%10.4g, %10.4g) %6d %s\n", bin.Low, bin.High, bin.Count, bar); err != nil {
			return err
		}
	}
	return nil
}
