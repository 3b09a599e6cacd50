package geometry

import (
	"fmt"
)

// Rotation is a clockwise rotation in degrees, limited to quarter turns.
type Rotation int

const (
	Rotation0   Rotation = 0
	Rotation90  Rotation = 90
	Rotation180 Rotation = 180
	Rotation270 Rotation = 270
)

func (r Rotation) IsValid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

func (r Rotation) String() string {
	return fmt.Sprintf("%ddeg", int(r))
}

// Orientation describes how the source image is reoriented before scaling:
// first the clockwise rotation is applied, then the flips (in the rotated space).
type Orientation struct {
	Rotation         Rotation
	FlipHorizontally bool
	FlipVertically   bool
}

// SwapsAxes reports whether the rotation exchanges width and height.
func (o Orientation) SwapsAxes() bool {
	return o.Rotation == Rotation90 || o.Rotation == Rotation270
}

// IsIdentity reports whether the orientation leaves the image untouched.
func (o Orientation) IsIdentity() bool {
	return o.Rotation == Rotation0 && !o.FlipHorizontally && !o.FlipVertically
}

func (o Orientation) String() string {
	return fmt.Sprintf("Orientation(%s, flipH=%t, flipV=%t)", o.Rotation, o.FlipHorizontally, o.FlipVertically)
}
