package features

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/harlab/motionsense/algorithms/spectral"
	"github.com/harlab/motionsense/algorithms/stats"
	"github.com/harlab/motionsense/features/config"
	"github.com/harlab/motionsense/logging"
)

// ErrUnsupportedChannelCount indicates a window whose channel dimension is
// neither 9 (accelerometer only) nor 18 (accelerometer + gyroscope).
var ErrUnsupportedChannelCount = errors.New("unsupported channel count")

const (
	numAxes        = 3 // x, y, z
	sensorsPerAxis = 3 // one channel per body location

	accChannels     = 9
	accGyroChannels = 18
)

// axisChannels groups the 9 accelerometer channels by spatial axis. Each
// axis collects one channel from each of the three sensor locations
// (hand, chest, ankle).
var axisChannels = [numAxes][sensorsPerAxis]int{
	{0, 3, 6}, // x
	{1, 4, 7}, // y
	{2, 5, 8}, // z
}

// ECDFExtractor converts raw accelerometer windows into Empirical Cumulative
// Distribution Function feature blocks. For each axis and each sensor within
// that axis it samples nPoints values from the sorted channel series and
// appends the channel mean, yielding a (3, 3*(nPoints+1)) block; with the
// default 25 points that is (3, 78).
//
// When constructed with filtering enabled, each channel is denoised through
// the band decomposer before sampling.
type ECDFExtractor struct {
	nPoints    int
	decomposer *spectral.Decomposer
	logger     logging.Logger
}

// NewECDFExtractor creates an extractor from the pipeline config. A
// non-positive n_ecdf_points falls back to the default of 25.
func NewECDFExtractor(cfg *config.PipelineConfig) *ECDFExtractor {
	nPoints := cfg.ECDFPoints
	if nPoints <= 0 {
		nPoints = config.DefaultECDFPoints
	}

	e := &ECDFExtractor{
		nPoints: nPoints,
		logger: logging.WithFields(logging.Fields{
			"component": "ecdf_extractor",
		}),
	}

	if cfg.Filtering {
		e.decomposer = spectral.NewDecomposer(cfg.Freq1, cfg.Freq2, cfg.SamplingFreq)
	}

	e.logger.Debug("created ECDF extractor", logging.Fields{
		"n_points":  nPoints,
		"filtering": cfg.Filtering,
	})

	return e
}

// FeatureDim returns the shape of one extracted feature block:
// 3 axis rows, sensorsPerAxis*(nPoints+1) values per row.
func (e *ECDFExtractor) FeatureDim() (rows, cols int) {
	return numAxes, sensorsPerAxis * (e.nPoints + 1)
}

// Extract computes the ECDF feature block for a single window of shape
// (T, channels). It is a pure function of the window and the extractor's
// parameters; the input is not mutated.
func (e *ECDFExtractor) Extract(window [][]float64) ([][]float32, error) {
	window, err := selectAccelChannels(window)
	if err != nil {
		return nil, err
	}

	windowSize := len(window)
	segment := e.nPoints + 1
	indices := quantileIndices(windowSize, e.nPoints)

	block := make([][]float32, numAxes)
	series := make([]float64, windowSize)

	for axis, channels := range axisChannels {
		row := make([]float32, sensorsPerAxis*segment)

		for i, ch := range channels {
			for t, step := range window {
				series[t] = step[ch]
			}

			data := series
			if e.decomposer != nil {
				data, err = e.decomposer.Denoise(series)
				if err != nil {
					return nil, fmt.Errorf("filter channel %d: %w", ch, err)
				}
			}

			mean := stats.Mean(data)
			sort.Float64s(data)

			start := i * segment
			for j, idx := range indices {
				row[start+j] = float32(data[idx])
			}
			row[start+e.nPoints] = float32(mean)
		}

		block[axis] = row
	}

	return block, nil
}

// selectAccelChannels validates the channel dimension and, for combined
// accelerometer+gyroscope windows, keeps only the even-indexed
// (accelerometer) channels.
func selectAccelChannels(window [][]float64) ([][]float64, error) {
	if len(window) == 0 {
		return nil, fmt.Errorf("empty window")
	}

	channels := len(window[0])
	for t, step := range window {
		if len(step) != channels {
			return nil, fmt.Errorf("ragged window: time step %d has %d channels, want %d", t, len(step), channels)
		}
	}

	switch channels {
	case accChannels:
		return window, nil
	case accGyroChannels:
		projected := make([][]float64, len(window))
		for t, step := range window {
			row := make([]float64, accChannels)
			for i := 0; i < accChannels; i++ {
				row[i] = step[2*i]
			}
			projected[t] = row
		}
		return projected, nil
	default:
		return nil, fmt.Errorf("%w: got %d, want 9 (acc only) or 18 (acc+gyro)", ErrUnsupportedChannelCount, channels)
	}
}

// quantileIndices returns nPoints indices evenly spaced over [0, length-1],
// inclusive of both endpoints. Indices repeat when length < nPoints.
func quantileIndices(length, nPoints int) []int {
	indices := make([]int, nPoints)
	if nPoints == 1 || length == 1 {
		return indices
	}

	step := float64(length-1) / float64(nPoints-1)
	for i := range indices {
		indices[i] = int(math.Round(float64(i) * step))
	}

	return indices
}
