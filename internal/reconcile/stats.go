package reconcile

import "math"

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the sample standard deviation, 0 for fewer than two values.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// effectSize is a rough Cohen's d using the unweighted pooled
// standard deviation of the two groups.
func effectSize(diff, controlStd, std float64) float64 {
	pooled := 1.0
	if controlStd != 0 && std != 0 {
		pooled = math.Sqrt((controlStd*controlStd + std*std) / 2)
	}
	if pooled == 0 {
		return 0
	}
	return diff / pooled
}
