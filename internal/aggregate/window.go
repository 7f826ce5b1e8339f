package aggregate

import (
	"fmt"
	"math"
	"sort"
)

// WindowSpec maps a window size in months to its weight sequence. An empty
// sequence means the window is averaged unweighted; a non-empty sequence
// must have exactly window-size weights, ordered oldest to newest. The spec
// is static configuration and is never mutated at runtime.
type WindowSpec map[int][]float64

// Validate checks window sizes and weight lengths.
func (w WindowSpec) Validate() error {
	for size, weights := range w {
		if size < 1 {
			return fmt.Errorf("window size %d: must be at least 1", size)
		}
		if len(weights) > 0 && len(weights) != size {
			return fmt.Errorf("window size %d: %d weights, want %d", size, len(weights), size)
		}
	}
	return nil
}

// Sizes returns the configured window sizes in ascending order.
func (w WindowSpec) Sizes() []int {
	sizes := make([]int, 0, len(w))
	for size := range w {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

// round rounds to the given number of decimal digits, half away from zero.
func round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// rollingMean computes the trailing simple moving average of series over
// window consecutive periods into dst: dst's cell at index position i is the
// rounded mean of series[i-window+1..i]. The first window-1 positions stay
// missing, there is not enough history for them.
func rollingMean(f *Frame, dst *Column, series []float64, window, digits int) {
	index := f.Index()
	for i := window - 1; i < len(series); i++ {
		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += series[j]
		}
		dst.Set(index[i], round(sum/float64(window), digits))
	}
}

// rollingWeightedMean is rollingMean with per-period weights: each window's
// value is sum(weight_i * value_i) / sum(weight_i), weights applied oldest
// to newest within the window.
func rollingWeightedMean(f *Frame, dst *Column, series []float64, weights []float64, digits int) {
	window := len(weights)
	weightSum := 0.0
	for _, w := range weights {
		weightSum += w
	}

	index := f.Index()
	for i := window - 1; i < len(series); i++ {
		sum := 0.0
		for j := 0; j < window; j++ {
			sum += weights[j] * series[i-window+1+j]
		}
		dst.Set(index[i], round(sum/weightSum, digits))
	}
}
