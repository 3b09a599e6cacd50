package kernel

import (
	"fmt"
)

// ErrTimestampMismatch is returned when a packet required to pair with a
// companion stream packet of the same timestamp never arrives. It is
// surfaced to the caller, never silently dropped.
type ErrTimestampMismatch struct {
	// MissingStream is the stream the companion packet was expected on.
	MissingStream string
	PTS           int64
}

func (e ErrTimestampMismatch) Error() string {
	return fmt.Sprintf(
		"no companion packet on stream '%s' for timestamp %d",
		e.MissingStream, e.PTS,
	)
}

// ErrNonMonotonicOutput is returned when an emission would violate the
// non-decreasing output timestamp order.
type ErrNonMonotonicOutput struct {
	PTS     int64
	LastPTS int64
}

func (e ErrNonMonotonicOutput) Error() string {
	return fmt.Sprintf(
		"output timestamps must be non-decreasing: %d < %d",
		e.PTS, e.LastPTS,
	)
}
