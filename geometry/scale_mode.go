package geometry

import (
	"fmt"
)

// ScaleMode defines how the source rectangle is mapped onto the target rectangle.
type ScaleMode int

const (
	// ScaleModeStretch maps the source rectangle directly onto the full target
	// rectangle, ignoring the aspect ratio.
	ScaleModeStretch ScaleMode = iota

	// ScaleModeFit preserves the source aspect ratio, scales to the largest
	// size bounded by the target rectangle and centers the result; the
	// surrounding (letterbox) pixels are left at the zero fill value.
	ScaleModeFit

	EndOfScaleModes
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleModeStretch:
		return "STRETCH"
	case ScaleModeFit:
		return "FIT"
	}
	return fmt.Sprintf("unknown_scale_mode_%d", int(m))
}

// ScaleModeFromString is the inverse of ScaleMode.String.
func ScaleModeFromString(s string) (ScaleMode, error) {
	for m := ScaleMode(0); m < EndOfScaleModes; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return EndOfScaleModes, fmt.Errorf("unknown scale mode: '%s'", s)
}
