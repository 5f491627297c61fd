package features

import (
	"fmt"

	"github.com/harlab/motionsense/algorithms/spectral"
)

// FilterWindow removes the noise band from every channel of a (T, channels)
// window, returning a new window of the same shape. Each channel is
// decomposed independently and rebuilt as DC + body.
func FilterWindow(window [][]float64, freq1, freq2, samplingFreq float64) ([][]float64, error) {
	if len(window) == 0 {
		return nil, fmt.Errorf("empty window")
	}

	channels := len(window[0])
	decomposer := spectral.NewDecomposer(freq1, freq2, samplingFreq)

	filtered := make([][]float64, len(window))
	for t := range filtered {
		if len(window[t]) != channels {
			return nil, fmt.Errorf("ragged window: time step %d has %d channels, want %d", t, len(window[t]), channels)
		}
		filtered[t] = make([]float64, channels)
	}

	series := make([]float64, len(window))
	for ch := 0; ch < channels; ch++ {
		for t, step := range window {
			series[t] = step[ch]
		}

		denoised, err := decomposer.Denoise(series)
		if err != nil {
			return nil, fmt.Errorf("filter channel %d: %w", ch, err)
		}

		for t, v := range denoised {
			filtered[t][ch] = v
		}
	}

	return filtered, nil
}
