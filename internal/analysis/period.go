package analysis

// DominantPeriod estimates the strongest oscillation period in a uniformly
// sampled signal from its power spectrum. Returns 0 when no oscillation
// stands out (DC bin is ignored).
func DominantPeriod(data []float64, sampleDt float64) float64 {
	if len(data) < 4 || sampleDt <= 0 {
		return 0
	}

	padded := Pad(data)
	ps := PowerSpectrum(padded)

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}

	freq := float64(maxIdx) / (float64(len(padded)) * sampleDt)
	return 1.0 / freq
}
