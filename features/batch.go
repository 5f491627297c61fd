package features

import (
	"fmt"

	"github.com/harlab/motionsense/logging"
)

// ExtractBatch applies Extract to each window of a batch of shape
// (N, T, channels) and stacks the results into an (N, 3, 78) block.
// Output row i corresponds to input window i. The first failing window
// aborts the whole batch; no partial results are returned.
func (e *ECDFExtractor) ExtractBatch(batch [][][]float64) ([][][]float32, error) {
	e.logger.Debug("extracting batch features", logging.Fields{
		"batch_size": len(batch),
	})

	blocks := make([][][]float32, len(batch))
	for i, window := range batch {
		block, err := e.Extract(window)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
		blocks[i] = block
	}

	return blocks, nil
}
