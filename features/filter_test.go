package features

import (
	"math"
	"testing"
)

func TestFilterWindow_RemovesNoiseBand(t *testing.T) {
	const (
		sampleRate = 50.0
		n          = 200
	)

	window := make([][]float64, n)
	clean := make([][]float64, n)
	for i := range window {
		inBand := math.Sin(2 * math.Pi * 5.0 * float64(i) / sampleRate)
		noise := 0.4 * math.Sin(2*math.Pi*24.0*float64(i)/sampleRate)

		row := make([]float64, 9)
		cleanRow := make([]float64, 9)
		for c := range row {
			cleanRow[c] = float64(c) + inBand
			row[c] = cleanRow[c] + noise
		}
		window[i] = row
		clean[i] = cleanRow
	}

	filtered, err := FilterWindow(window, 0.3, 20.0, sampleRate)
	if err != nil {
		t.Fatalf("FilterWindow: %v", err)
	}

	if len(filtered) != n || len(filtered[0]) != 9 {
		t.Fatalf("filtered shape (%d, %d), want (%d, 9)", len(filtered), len(filtered[0]), n)
	}

	for i := range filtered {
		for c := range filtered[i] {
			if math.Abs(filtered[i][c]-clean[i][c]) > 1e-8 {
				t.Fatalf("sample %d channel %d = %v, want %v", i, c, filtered[i][c], clean[i][c])
			}
		}
	}
}

func TestFilterWindow_InvalidInput(t *testing.T) {
	if _, err := FilterWindow(nil, 0.3, 20.0, 50.0); err == nil {
		t.Error("FilterWindow(nil) returned no error")
	}

	ragged := makeWindow(10, 9)
	ragged[2] = ragged[2][:4]
	if _, err := FilterWindow(ragged, 0.3, 20.0, 50.0); err == nil {
		t.Error("FilterWindow of ragged window returned no error")
	}
}
