package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT provides Fast Fourier Transform functionality for sensor time series
type FFT struct {
	// No state needed for now
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the Fast Fourier Transform using mjibson/go-dsp.
// Takes []float64 input and returns the full complex spectrum.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	// mjibson/go-dsp handles all sizes efficiently, including non-power-of-2
	return fft.FFTReal(x)
}

// ComputeInverse computes inverse FFT
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.IFFT(x)
}

// ComputeInverseReal computes inverse FFT and returns real part only
func (f *FFT) ComputeInverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}

	result := fft.IFFT(x)
	realResult := make([]float64, len(result))

	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult
}

// BinFrequencies returns the frequency in Hz associated with each FFT bin
// for a signal of n samples at the given sampling rate, using the standard
// FFT ordering: non-negative frequencies first, then negative frequencies.
// Values range symmetrically within [-samplingFreq/2, samplingFreq/2].
func BinFrequencies(n int, samplingFreq float64) []float64 {
	if n <= 0 {
		return []float64{}
	}

	freqs := make([]float64, n)
	step := samplingFreq / float64(n)
	half := (n + 1) / 2

	for i := 0; i < half; i++ {
		freqs[i] = float64(i) * step
	}
	for i := half; i < n; i++ {
		freqs[i] = float64(i-n) * step
	}

	return freqs
}
