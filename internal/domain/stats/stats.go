// Package stats holds the descriptive statistics shared by the profiler,
// the numeric rules and the renderer.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IQRMultiplier is the Tukey fence factor used for outlier bounds.
const IQRMultiplier = 1.5

// Summary is min, max, mean and sample standard deviation of a sample.
type Summary struct {
	Min, Max, Mean, Std float64
}

// Summarize computes a Summary. ok is false for an empty sample.
// The standard deviation of a single value is NaN.
func Summarize(x []float64) (s Summary, ok bool) {
	if len(x) == 0 {
		return Summary{}, false
	}
	mean, std := stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		std = math.NaN()
	}
	return Summary{
		Min:  floats.Min(x),
		Max:  floats.Max(x),
		Mean: mean,
		Std:  std,
	}, true
}

// Sorted returns a sorted copy of x.
func Sorted(x []float64) []float64 {
	s := make([]float64, len(x))
	copy(s, x)
	sort.Float64s(s)
	return s
}

// Quantile returns the p-quantile of sorted data, interpolating linearly
// between the two closest ranks. It returns NaN for empty input.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Median is the 0.5 quantile of sorted data.
func Median(sorted []float64) float64 {
	return Quantile(sorted, 0.5)
}

// Fences holds the quartiles and the outlier bounds derived from them.
type Fences struct {
	Q1, Q3       float64
	Lower, Upper float64
}

// IQR returns Q3 - Q1.
func (f Fences) IQR() float64 { return f.Q3 - f.Q1 }

// Outside reports whether v falls strictly outside the bounds.
func (f Fences) Outside(v float64) bool { return v < f.Lower || v > f.Upper }

// TukeyFences computes [Q1 - 1.5·IQR, Q3 + 1.5·IQR] over x.
func TukeyFences(x []float64) Fences {
	s := Sorted(x)
	q1 := Quantile(s, 0.25)
	q3 := Quantile(s, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:    q1,
		Q3:    q3,
		Lower: q1 - IQRMultiplier*iqr,
		Upper: q3 + IQRMultiplier*iqr,
	}
}

// CountOutside counts values outside the fences.
func CountOutside(x []float64, f Fences) int {
	n := 0
	for _, v := range x {
		if f.Outside(v) {
			n++
		}
	}
	return n
}

// Ratio divides part by whole, returning 0 when whole is 0.
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}
