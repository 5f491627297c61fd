package features

import (
	"errors"
	"fmt"

	"github.com/harlab/motionsense/algorithms/stats"
	"github.com/harlab/motionsense/logging"
)

// Errors returned by the Normalizer.
var (
	// ErrUnknownNormalization indicates an unrecognized normalization mode.
	ErrUnknownNormalization = errors.New("unknown normalization method")

	// ErrNotFitted indicates Normalize was called before Fit.
	ErrNotFitted = errors.New("normalizer not fitted")
)

// DefaultEpsilon is the float64 machine epsilon, added to denominators so
// constant columns normalize to zero instead of dividing by zero.
const DefaultEpsilon = 0x1p-52

// NormType selects the normalization mode.
type NormType string

const (
	// Standardization normalizes column-wise to zero mean and unit
	// variance using statistics fitted across all rows.
	Standardization NormType = "standardization"

	// MinMaxNorm rescales column-wise into [0, 1] using the fitted
	// column minima and maxima.
	MinMaxNorm NormType = "minmax"

	// PerSampleStd standardizes each sample's rows using only that
	// sample's own statistics.
	PerSampleStd NormType = "per_sample_std"

	// PerSampleMinMax rescales each sample's rows using only that
	// sample's own minima and maxima.
	PerSampleMinMax NormType = "per_sample_minmax"
)

// Normalizer applies post-hoc statistical normalization to feature or raw
// sensor matrices (rows = time steps or samples, columns = features).
//
// The two whole-dataset modes are two-phase: Fit computes column statistics
// across all rows, Normalize applies them. The two per-sample modes compute
// statistics inline per sample group at normalize time; Fit still must be
// called first, matching the established calling convention.
//
// A Normalizer is single-owner: Fit mutates internal state and instances
// must not be shared across goroutines without external synchronization.
type Normalizer struct {
	normType NormType
	epsilon  float64
	fitted   bool

	mean, std []float64
	min, max  []float64

	logger logging.Logger
}

// NewNormalizer creates a normalizer for the given mode string. The mode is
// validated immediately; an unrecognized mode returns ErrUnknownNormalization.
func NewNormalizer(normType string) (*Normalizer, error) {
	switch NormType(normType) {
	case Standardization, MinMaxNorm, PerSampleStd, PerSampleMinMax:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNormalization, normType)
	}

	return &Normalizer{
		normType: NormType(normType),
		epsilon:  DefaultEpsilon,
		logger: logging.WithFields(logging.Fields{
			"component": "normalizer",
			"norm_type": normType,
		}),
	}, nil
}

// SetEpsilon overrides the denominator guard. Intended for tests.
func (n *Normalizer) SetEpsilon(epsilon float64) {
	n.epsilon = epsilon
}

// Fit computes the column statistics required by the whole-dataset modes.
// For the per-sample modes it only marks the normalizer ready.
func (n *Normalizer) Fit(data [][]float64) error {
	switch n.normType {
	case Standardization:
		if len(data) == 0 {
			return fmt.Errorf("fit %s: empty dataset", n.normType)
		}
		n.mean = stats.ColumnMeans(data)
		n.std = stats.ColumnStandardDeviations(data)

	case MinMaxNorm:
		if len(data) == 0 {
			return fmt.Errorf("fit %s: empty dataset", n.normType)
		}
		n.min, n.max = stats.ColumnMinMax(data)

	case PerSampleStd, PerSampleMinMax:
		// Statistics are computed per sample group at normalize time.

	default:
		return fmt.Errorf("%w: %q", ErrUnknownNormalization, n.normType)
	}

	n.fitted = true
	n.logger.Debug("fitted normalizer", logging.Fields{"rows": len(data)})

	return nil
}

// Normalize applies the fitted whole-dataset statistics to data and returns
// a new matrix; the input is not mutated. For the per-sample modes use
// NormalizePerSample, which takes the sample identity of each row.
func (n *Normalizer) Normalize(data [][]float64) ([][]float64, error) {
	if !n.fitted {
		return nil, fmt.Errorf("%w: call Fit before Normalize", ErrNotFitted)
	}

	switch n.normType {
	case Standardization:
		return n.apply(data, n.mean, n.std)
	case MinMaxNorm:
		return n.applyMinMax(data, n.min, n.max)
	case PerSampleStd, PerSampleMinMax:
		return nil, fmt.Errorf("mode %q groups rows by sample: use NormalizePerSample", n.normType)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNormalization, n.normType)
	}
}

// NormalizePerSample normalizes each sample's rows with that sample's own
// statistics. sampleIDs assigns each row to a sample; rows sharing an ID
// form one group. Only valid for the per-sample modes.
func (n *Normalizer) NormalizePerSample(data [][]float64, sampleIDs []int) ([][]float64, error) {
	if !n.fitted {
		return nil, fmt.Errorf("%w: call Fit before NormalizePerSample", ErrNotFitted)
	}
	if n.normType != PerSampleStd && n.normType != PerSampleMinMax {
		return nil, fmt.Errorf("mode %q uses whole-dataset statistics: use Normalize", n.normType)
	}
	if len(sampleIDs) != len(data) {
		return nil, fmt.Errorf("sample IDs length %d does not match %d rows", len(sampleIDs), len(data))
	}

	groups := make(map[int][]int)
	for row, id := range sampleIDs {
		groups[id] = append(groups[id], row)
	}

	out := make([][]float64, len(data))

	for _, rows := range groups {
		group := make([][]float64, len(rows))
		for i, row := range rows {
			group[i] = data[row]
		}

		var normalized [][]float64
		var err error
		switch n.normType {
		case PerSampleStd:
			// Faithful to the source: no epsilon guard in this mode, so a
			// constant column within a sample yields NaN.
			normalized, err = n.applyNoEps(group, stats.ColumnMeans(group), stats.ColumnStandardDeviations(group))
		case PerSampleMinMax:
			mins, maxs := stats.ColumnMinMax(group)
			normalized, err = n.applyMinMax(group, mins, maxs)
		}
		if err != nil {
			return nil, err
		}

		for i, row := range rows {
			out[row] = normalized[i]
		}
	}

	return out, nil
}

// apply computes (x - center) / (scale + epsilon) column-wise.
func (n *Normalizer) apply(data [][]float64, center, scale []float64) ([][]float64, error) {
	out := make([][]float64, len(data))
	for i, row := range data {
		if len(row) != len(center) {
			return nil, fmt.Errorf("row %d has %d columns, fitted on %d", i, len(row), len(center))
		}
		normalized := make([]float64, len(row))
		for j, v := range row {
			normalized[j] = (v - center[j]) / (scale[j] + n.epsilon)
		}
		out[i] = normalized
	}
	return out, nil
}

// applyNoEps computes (x - center) / scale column-wise with no guard.
func (n *Normalizer) applyNoEps(data [][]float64, center, scale []float64) ([][]float64, error) {
	out := make([][]float64, len(data))
	for i, row := range data {
		if len(row) != len(center) {
			return nil, fmt.Errorf("row %d has %d columns, fitted on %d", i, len(row), len(center))
		}
		normalized := make([]float64, len(row))
		for j, v := range row {
			normalized[j] = (v - center[j]) / scale[j]
		}
		out[i] = normalized
	}
	return out, nil
}

// applyMinMax computes (x - min) / (max - min + epsilon) column-wise.
func (n *Normalizer) applyMinMax(data [][]float64, mins, maxs []float64) ([][]float64, error) {
	out := make([][]float64, len(data))
	for i, row := range data {
		if len(row) != len(mins) {
			return nil, fmt.Errorf("row %d has %d columns, fitted on %d", i, len(row), len(mins))
		}
		normalized := make([]float64, len(row))
		for j, v := range row {
			normalized[j] = (v - mins[j]) / (maxs[j] - mins[j] + n.epsilon)
		}
		out[i] = normalized
	}
	return out, nil
}
