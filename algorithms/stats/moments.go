package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across the feature pipeline, built on
// gonum for robustness.

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Variance calculates the sample variance of a slice using gonum
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.Variance(data, nil)
}

// StandardDeviation calculates the sample standard deviation
func StandardDeviation(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return math.Sqrt(Variance(data))
}

// MinMax returns the smallest and largest values in data.
// Both are 0 for empty input.
func MinMax(data []float64) (minVal, maxVal float64) {
	if len(data) == 0 {
		return 0.0, 0.0
	}
	return floats.Min(data), floats.Max(data)
}

// column copies column j of rows into buf and returns it.
func column(rows [][]float64, j int, buf []float64) []float64 {
	buf = buf[:0]
	for _, row := range rows {
		buf = append(buf, row[j])
	}
	return buf
}

// ColumnMeans returns the mean of each column across all rows.
// All rows must have the same length.
func ColumnMeans(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	means := make([]float64, len(rows[0]))
	buf := make([]float64, 0, len(rows))
	for j := range means {
		means[j] = Mean(column(rows, j, buf))
	}

	return means
}

// ColumnStandardDeviations returns the sample standard deviation of each
// column across all rows.
func ColumnStandardDeviations(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	stds := make([]float64, len(rows[0]))
	buf := make([]float64, 0, len(rows))
	for j := range stds {
		stds[j] = StandardDeviation(column(rows, j, buf))
	}

	return stds
}

// ColumnMinMax returns the minimum and maximum of each column across all rows.
func ColumnMinMax(rows [][]float64) (mins, maxs []float64) {
	if len(rows) == 0 {
		return nil, nil
	}

	mins = make([]float64, len(rows[0]))
	maxs = make([]float64, len(rows[0]))
	buf := make([]float64, 0, len(rows))
	for j := range mins {
		mins[j], maxs[j] = MinMax(column(rows, j, buf))
	}

	return mins, maxs
}
