package analytics

// Slope fits an ordinary least-squares line of value against index (0, 1, ...)
// and returns its slope. ok is false for fewer than two points or a
// degenerate x-variance.
func Slope(values []float64) (slope float64, ok bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}

	meanX := float64(n-1) / 2.0
	meanY := mean(values)

	var num, den float64
	for i, y := range values {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0, false
	}
	return num / den, true
}

// WindowMeans returns the mean of the first and of the last `window` values.
// Shorter series use all of their values; an empty series gives 0, 0.
func WindowMeans(smoothed []float64, window int) (start, end float64) {
	if len(smoothed) == 0 {
		return 0.0, 0.0
	}
	w := window
	if w < 1 {
		w = 1
	}
	if w > len(smoothed) {
		w = len(smoothed)
	}
	return mean(smoothed[:w]), mean(smoothed[len(smoothed)-w:])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
