package features

import (
	"errors"
	"math"
	"testing"

	"github.com/harlab/motionsense/features/config"
)

func testConfig(nPoints int) *config.PipelineConfig {
	return &config.PipelineConfig{ECDFPoints: nPoints}
}

// makeWindow builds a deterministic (t, channels) window with distinct,
// non-constant channel content.
func makeWindow(t, channels int) [][]float64 {
	window := make([][]float64, t)
	for i := range window {
		row := make([]float64, channels)
		for c := range row {
			row[c] = math.Sin(0.37*float64(i)*float64(c+1)) + 0.5*float64(c)
		}
		window[i] = row
	}
	return window
}

func TestExtract_Shape(t *testing.T) {
	e := NewECDFExtractor(testConfig(25))

	block, err := e.Extract(makeWindow(168, 9))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(block) != 3 {
		t.Fatalf("got %d axis rows, want 3", len(block))
	}
	for axis, row := range block {
		if len(row) != 78 {
			t.Fatalf("axis %d has %d values, want 78", axis, len(row))
		}
		for j, v := range row {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("axis %d value %d is not finite: %v", axis, j, v)
			}
		}
	}
}

func TestFeatureDim(t *testing.T) {
	e := NewECDFExtractor(testConfig(25))
	rows, cols := e.FeatureDim()
	if rows != 3 || cols != 78 {
		t.Errorf("FeatureDim = (%d, %d), want (3, 78)", rows, cols)
	}

	e = NewECDFExtractor(testConfig(10))
	rows, cols = e.FeatureDim()
	if rows != 3 || cols != 33 {
		t.Errorf("FeatureDim with 10 points = (%d, %d), want (3, 33)", rows, cols)
	}
}

// Every ECDF sample and the mean of a constant channel equal the constant.
func TestExtract_ConstantChannels(t *testing.T) {
	const nPoints = 25
	window := make([][]float64, 64)
	for i := range window {
		row := make([]float64, 9)
		for c := range row {
			row[c] = float64(c) + 1
		}
		window[i] = row
	}

	e := NewECDFExtractor(testConfig(nPoints))
	block, err := e.Extract(window)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for axis, channels := range axisChannels {
		for i, ch := range channels {
			want := float32(ch + 1)
			segment := block[axis][i*(nPoints+1) : (i+1)*(nPoints+1)]
			for j, v := range segment {
				if v != want {
					t.Fatalf("axis %d sensor %d value %d = %v, want %v", axis, i, j, v, want)
				}
			}
		}
	}
}

// Each 26-value segment holds 25 nondecreasing quantile samples spanning the
// channel's min and max, followed by the channel mean.
func TestExtract_SegmentLayout(t *testing.T) {
	const nPoints = 25
	window := makeWindow(168, 9)

	e := NewECDFExtractor(testConfig(nPoints))
	block, err := e.Extract(window)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for axis, channels := range axisChannels {
		for i, ch := range channels {
			series := make([]float64, len(window))
			var sum, minVal, maxVal float64
			minVal = math.Inf(1)
			maxVal = math.Inf(-1)
			for t2, step := range window {
				series[t2] = step[ch]
				sum += step[ch]
				minVal = math.Min(minVal, step[ch])
				maxVal = math.Max(maxVal, step[ch])
			}

			segment := block[axis][i*(nPoints+1) : (i+1)*(nPoints+1)]

			if segment[0] != float32(minVal) {
				t.Errorf("axis %d sensor %d: first sample = %v, want channel min %v", axis, i, segment[0], minVal)
			}
			if segment[nPoints-1] != float32(maxVal) {
				t.Errorf("axis %d sensor %d: last sample = %v, want channel max %v", axis, i, segment[nPoints-1], maxVal)
			}
			for j := 1; j < nPoints; j++ {
				if segment[j] < segment[j-1] {
					t.Fatalf("axis %d sensor %d: samples not sorted at %d", axis, i, j)
				}
			}

			wantMean := float32(sum / float64(len(window)))
			if diff := math.Abs(float64(segment[nPoints] - wantMean)); diff > 1e-6 {
				t.Errorf("axis %d sensor %d: mean = %v, want %v", axis, i, segment[nPoints], wantMean)
			}
		}
	}
}

// The ECDF is order-independent: permuting time steps leaves the block unchanged.
func TestExtract_TimeOrderInvariance(t *testing.T) {
	window := makeWindow(100, 9)

	reversed := make([][]float64, len(window))
	for i := range window {
		reversed[i] = window[len(window)-1-i]
	}

	e := NewECDFExtractor(testConfig(25))

	original, err := e.Extract(window)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	permuted, err := e.Extract(reversed)
	if err != nil {
		t.Fatalf("Extract reversed: %v", err)
	}

	for axis := range original {
		for j := range original[axis] {
			if original[axis][j] != permuted[axis][j] {
				t.Fatalf("axis %d value %d differs after permutation: %v vs %v", axis, j, original[axis][j], permuted[axis][j])
			}
		}
	}
}

// An 18-channel window must produce exactly the block of its 9 even-indexed
// (accelerometer) channels.
func TestExtract_GyroProjection(t *testing.T) {
	acc := makeWindow(80, 9)

	combined := make([][]float64, len(acc))
	for i, row := range acc {
		wide := make([]float64, 18)
		for c, v := range row {
			wide[2*c] = v
			wide[2*c+1] = 999.0 // gyroscope junk, must be discarded
		}
		combined[i] = wide
	}

	e := NewECDFExtractor(testConfig(25))

	fromAcc, err := e.Extract(acc)
	if err != nil {
		t.Fatalf("Extract acc: %v", err)
	}
	fromCombined, err := e.Extract(combined)
	if err != nil {
		t.Fatalf("Extract combined: %v", err)
	}

	for axis := range fromAcc {
		for j := range fromAcc[axis] {
			if fromAcc[axis][j] != fromCombined[axis][j] {
				t.Fatalf("axis %d value %d differs: %v vs %v", axis, j, fromAcc[axis][j], fromCombined[axis][j])
			}
		}
	}
}

func TestExtract_UnsupportedChannelCount(t *testing.T) {
	e := NewECDFExtractor(testConfig(25))

	for _, channels := range []int{1, 7, 10, 27} {
		if _, err := e.Extract(makeWindow(32, channels)); !errors.Is(err, ErrUnsupportedChannelCount) {
			t.Errorf("channels=%d: err = %v, want ErrUnsupportedChannelCount", channels, err)
		}
	}
}

func TestExtract_EmptyAndRaggedWindows(t *testing.T) {
	e := NewECDFExtractor(testConfig(25))

	if _, err := e.Extract(nil); err == nil {
		t.Error("Extract(nil) returned no error")
	}

	ragged := makeWindow(10, 9)
	ragged[4] = ragged[4][:5]
	if _, err := e.Extract(ragged); err == nil {
		t.Error("Extract of ragged window returned no error")
	}
}

// Windows shorter than nPoints repeat boundary values rather than failing.
func TestExtract_ShortWindow(t *testing.T) {
	e := NewECDFExtractor(testConfig(25))

	block, err := e.Extract(makeWindow(5, 9))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for axis, row := range block {
		if len(row) != 78 {
			t.Fatalf("axis %d has %d values, want 78", axis, len(row))
		}
	}
}

func TestExtract_WithFiltering(t *testing.T) {
	cfg := &config.PipelineConfig{
		ECDFPoints:   25,
		Freq1:        0.3,
		Freq2:        20.0,
		SamplingFreq: 50.0,
		Filtering:    true,
	}

	// Each channel: a constant plus an out-of-band 24 Hz tone. Filtering
	// strips the tone, so every feature collapses to the constant.
	window := make([][]float64, 200)
	for i := range window {
		row := make([]float64, 9)
		tone := 0.5 * math.Sin(2*math.Pi*24.0*float64(i)/50.0)
		for c := range row {
			row[c] = float64(c) + tone
		}
		window[i] = row
	}

	e := NewECDFExtractor(cfg)
	block, err := e.Extract(window)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	for axis, channels := range axisChannels {
		for i, ch := range channels {
			want := float64(ch)
			segment := block[axis][i*26 : (i+1)*26]
			for j, v := range segment {
				if math.Abs(float64(v)-want) > 1e-6 {
					t.Fatalf("axis %d sensor %d value %d = %v, want %v", axis, i, j, v, want)
				}
			}
		}
	}
}

func TestQuantileIndices(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		nPoints int
	}{
		{"window longer than points", 168, 25},
		{"window shorter than points", 5, 25},
		{"equal", 25, 25},
		{"single point", 100, 1},
		{"single sample", 1, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indices := quantileIndices(tt.length, tt.nPoints)

			if len(indices) != tt.nPoints {
				t.Fatalf("got %d indices, want %d", len(indices), tt.nPoints)
			}
			if indices[0] != 0 {
				t.Errorf("first index = %d, want 0", indices[0])
			}
			if tt.nPoints > 1 && indices[tt.nPoints-1] != tt.length-1 {
				t.Errorf("last index = %d, want %d", indices[tt.nPoints-1], tt.length-1)
			}
			for i := 1; i < len(indices); i++ {
				if indices[i] < indices[i-1] {
					t.Fatalf("indices not nondecreasing at %d", i)
				}
				if indices[i] < 0 || indices[i] >= tt.length {
					t.Fatalf("index %d out of range [0, %d)", indices[i], tt.length)
				}
			}
		})
	}
}
