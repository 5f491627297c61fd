package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults for the ECDF feature pipeline.
const (
	// DefaultECDFPoints is the number of ECDF samples taken per channel.
	DefaultECDFPoints = 25

	// DefaultFreq1 is the DC band edge in Hz: bins with |f| <= Freq1 form
	// the DC component.
	DefaultFreq1 = 0.001

	// DefaultFreq2 is the noise band edge in Hz: bins with |f| > Freq2 are
	// treated as noise.
	DefaultFreq2 = 25.0
)

// PipelineConfig carries the numeric and string fields the feature-extraction
// core consumes. It is a read-only collaborator: the core never parses or
// validates the surrounding file formats.
type PipelineConfig struct {
	WindowSize    int     `yaml:"window_size"`
	InputChannels int     `yaml:"input_channels"`
	SamplingFreq  float64 `yaml:"sampling_freq"`
	NumClasses    int     `yaml:"num_classes"`

	// ECDFPoints is the number of quantile samples per channel segment.
	ECDFPoints int `yaml:"n_ecdf_points"`

	// Freq1 and Freq2 are the decomposer band edges in Hz.
	Freq1 float64 `yaml:"freq1"`
	Freq2 float64 `yaml:"freq2"`

	// Filtering enables per-channel noise removal before ECDF sampling.
	Filtering bool `yaml:"filtering"`

	// DatanormType selects the Normalizer mode: "standardization",
	// "minmax", "per_sample_std", or "per_sample_minmax".
	DatanormType string `yaml:"datanorm_type"`
}

// DefaultPipelineConfig returns a config with the pipeline defaults.
// Dataset-dependent fields (window size, channels, sampling rate, classes)
// are zero until filled in, typically via ApplyDataset.
func DefaultPipelineConfig() *PipelineConfig {
	return &PipelineConfig{
		ECDFPoints:   DefaultECDFPoints,
		Freq1:        DefaultFreq1,
		Freq2:        DefaultFreq2,
		Filtering:    true,
		DatanormType: "standardization",
	}
}

// DatasetConfig describes one dataset entry in a data config YAML file.
type DatasetConfig struct {
	Filename      string  `yaml:"filename"`
	WindowSeconds float64 `yaml:"window_seconds"`
	SamplingFreq  float64 `yaml:"sampling_freq"`
	NumChannels   int     `yaml:"num_channels"`
	NumClasses    int     `yaml:"num_classes"`
}

// LoadDatasetConfigs reads a YAML file mapping dataset names to their
// DatasetConfig entries.
func LoadDatasetConfigs(path string) (map[string]DatasetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset config: %w", err)
	}

	var configs map[string]DatasetConfig
	if err := yaml.Unmarshal(data, &configs); err != nil {
		return nil, fmt.Errorf("parse dataset config: %w", err)
	}

	return configs, nil
}

// ApplyDataset fills the dataset-dependent fields of the pipeline config.
// The window size is derived as window_seconds * sampling_freq, truncated
// to whole samples.
func (c *PipelineConfig) ApplyDataset(d DatasetConfig) {
	c.WindowSize = int(math.Floor(d.WindowSeconds * d.SamplingFreq))
	c.InputChannels = d.NumChannels
	c.SamplingFreq = d.SamplingFreq
	c.NumClasses = d.NumClasses
}
