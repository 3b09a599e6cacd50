package kernel

import (
	"go.uber.org/atomic"
)

// ProcessingStatistics counts what went through a kernel instance.
type ProcessingStatistics struct {
	ReceivedImages     atomic.Uint64
	ReceivedDimensions atomic.Uint64
	ProducedOutputs    atomic.Uint64
	Errors             atomic.Uint64
}

// ProcessingStatisticsSnapshot is a plain copy of the counters.
type ProcessingStatisticsSnapshot struct {
	ReceivedImages     uint64
	ReceivedDimensions uint64
	ProducedOutputs    uint64
	Errors             uint64
}

func (s *ProcessingStatistics) Snapshot() ProcessingStatisticsSnapshot {
	return ProcessingStatisticsSnapshot{
		ReceivedImages:     s.ReceivedImages.Load(),
		ReceivedDimensions: s.ReceivedDimensions.Load(),
		ProducedOutputs:    s.ProducedOutputs.Load(),
		Errors:             s.Errors.Load(),
	}
}
