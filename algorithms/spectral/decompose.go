package spectral

import (
	"fmt"
)

// Decomposer separates a 1-D time signal into frequency sub-bands using
// FFT-domain masking. Accelerometer streams carry a near-DC gravity
// component, a mid-band human-motion ("body") component, and high-frequency
// noise; the band edges freq1 and freq2 select those three regions by
// absolute bin frequency:
//
//	DC:    |f| <= freq1
//	body:  freq1 < |f| <= freq2
//	noise: |f| > freq2
//
// The three masks are disjoint and cover every bin. Decomposer is stateless
// apart from its parameters and safe for concurrent use.
type Decomposer struct {
	freq1        float64
	freq2        float64
	samplingFreq float64

	fft *FFT
}

// NewDecomposer creates a decomposer with the given band edges (Hz) and
// sampling rate (Hz).
func NewDecomposer(freq1, freq2, samplingFreq float64) *Decomposer {
	return &Decomposer{
		freq1:        freq1,
		freq2:        freq2,
		samplingFreq: samplingFreq,
		fft:          NewFFT(),
	}
}

// Decompose splits signal into its DC and body components, each the same
// length as the input. The noise band is masked out of both; use
// DecomposeAll when the noise component itself is needed.
func (d *Decomposer) Decompose(signal []float64) (dc, body []float64, err error) {
	dc, body, _, err = d.DecomposeAll(signal)
	return dc, body, err
}

// DecomposeAll splits signal into DC, body, and noise components. The input
// is never mutated; each component is the real part of the inverse FFT of
// the correspondingly masked spectrum.
func (d *Decomposer) DecomposeAll(signal []float64) (dc, body, noise []float64, err error) {
	if len(signal) == 0 {
		return nil, nil, nil, fmt.Errorf("decompose: empty signal")
	}

	spectrum := d.fft.Compute(signal)
	freqs := BinFrequencies(len(signal), d.samplingFreq)

	dcSpec := make([]complex128, len(spectrum))
	bodySpec := make([]complex128, len(spectrum))
	noiseSpec := make([]complex128, len(spectrum))

	for i, freq := range freqs {
		mag := freq
		if mag < 0 {
			mag = -mag
		}

		switch {
		case mag <= d.freq1:
			dcSpec[i] = spectrum[i]
		case mag <= d.freq2:
			bodySpec[i] = spectrum[i]
		default:
			noiseSpec[i] = spectrum[i]
		}
	}

	dc = d.fft.ComputeInverseReal(dcSpec)
	body = d.fft.ComputeInverseReal(bodySpec)
	noise = d.fft.ComputeInverseReal(noiseSpec)

	return dc, body, noise, nil
}

// Denoise returns the signal with the noise band removed, i.e. the sum of
// the DC and body components.
func (d *Decomposer) Denoise(signal []float64) ([]float64, error) {
	dc, body, err := d.Decompose(signal)
	if err != nil {
		return nil, err
	}

	denoised := make([]float64, len(dc))
	for i := range denoised {
		denoised[i] = dc[i] + body[i]
	}

	return denoised, nil
}
