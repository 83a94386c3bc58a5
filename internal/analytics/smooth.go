package analytics

// Smooth computes a trailing moving average. out[i] is the mean of
// series[max(0, i-window+1) .. i], so the first window-1 values average over
// fewer points. window is clamped to at least 1.
func Smooth(series []float64, window int) []float64 {
	w := window
	if w < 1 {
		w = 1
	}

	out := make([]float64, len(series))
	for i := range series {
		start := i - w + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for _, v := range series[start : i+1] {
			sum += v
		}
		out[i] = sum / float64(i+1-start)
	}
	return out
}
