package features

import (
	"gonum.org/v1/gonum/mat"
)

// windowFromMatrix densifies a gonum matrix into the plain (T, channels)
// slice form the core algorithms operate on. This is the single conversion
// point for callers whose windows live in matrix/tensor containers.
func windowFromMatrix(m mat.Matrix) [][]float64 {
	rows, cols := m.Dims()

	window := make([][]float64, rows)
	for t := range window {
		row := make([]float64, cols)
		for c := range row {
			row[c] = m.At(t, c)
		}
		window[t] = row
	}

	return window
}

// ExtractMatrix computes the ECDF feature block for a window held in any
// gonum matrix of shape (T, channels).
func (e *ECDFExtractor) ExtractMatrix(m mat.Matrix) ([][]float32, error) {
	return e.Extract(windowFromMatrix(m))
}

// ExtractMatrixBatch applies ExtractMatrix across a batch of matrices,
// with the same whole-batch failure policy as ExtractBatch.
func (e *ECDFExtractor) ExtractMatrixBatch(batch []mat.Matrix) ([][][]float32, error) {
	windows := make([][][]float64, len(batch))
	for i, m := range batch {
		windows[i] = windowFromMatrix(m)
	}
	return e.ExtractBatch(windows)
}
