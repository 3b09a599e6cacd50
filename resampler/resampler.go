// Package resampler performs the actual pixel resampling of a resize,
// over either a host-buffer image (Software) or a texture image
// (Hardware). Both implementations follow the same destination-to-source
// mapping and, under nearest-neighbor interpolation, produce
// bit-identical output.
package resampler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/geometry"
)

// Interpolation selects how a destination pixel derives its value from
// the mapped source coordinate.
type Interpolation int

const (
	// InterpolationNearest copies the nearest source pixel verbatim.
	// It is the only mode that guarantees the output value-set is a
	// subset of the input value-set.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear blends the 2x2 neighborhood bilinearly.
	InterpolationLinear

	EndOfInterpolations
)

func (i Interpolation) String() string {
	switch i {
	case InterpolationNearest:
		return "NEAREST"
	case InterpolationLinear:
		return "LINEAR"
	}
	return fmt.Sprintf("unknown_interpolation_%d", int(i))
}

// InterpolationFromString is the inverse of Interpolation.String.
func InterpolationFromString(s string) (Interpolation, error) {
	for i := Interpolation(0); i < EndOfInterpolations; i++ {
		if i.String() == s {
			return i, nil
		}
	}
	return EndOfInterpolations, fmt.Errorf("unknown interpolation: '%s'", s)
}

// Abstract is a resampling backend. Resample allocates the output frame
// (same pixel format and channel count as the input, resolution taken
// from the mapping) and fills it; it is deterministic and emits no
// partial output on failure.
type Abstract interface {
	fmt.Stringer
	Close(ctx context.Context) error
	Resample(ctx context.Context, src *frame.Frame, m geometry.Mapping) (*frame.Frame, error)
}

func validateMapping(src *frame.Frame, m geometry.Mapping) error {
	if src.Resolution() != m.Input() {
		return fmt.Errorf(
			"the mapping was resolved for input %s, got a %s frame",
			m.Input(), src.Resolution(),
		)
	}
	return nil
}
