// Package geometry computes the destination canvas and the
// destination-to-source coordinate mapping of an image resize.
package geometry

import (
	"fmt"

	"github.com/xaionaro-go/imgpipeline/types"
)

// ErrInvalidDimensions is returned when a resolution involved in a resize
// has a non-positive width or height.
type ErrInvalidDimensions struct {
	Input  types.Resolution
	Target types.Resolution
}

func (e ErrInvalidDimensions) Error() string {
	return fmt.Sprintf("invalid dimensions: input %s, target %s", e.Input, e.Target)
}

// Mapping is the result of Resolve: the destination canvas size, the content
// rectangle inside it, and the linear destination-to-source transform.
//
// Coordinates produced by Project are in the "effective" source space: the
// input image after Orientation has been applied. SourcePixel converts an
// integer effective coordinate into a coordinate of the actual input image.
type Mapping struct {
	// Output is the destination canvas; it always equals the requested
	// target resolution exactly, regardless of the scale mode.
	Output types.Resolution

	// Source is the effective source resolution (input after orientation).
	Source types.Resolution

	// Content is the sub-rectangle of the canvas the source is mapped onto.
	// Outside of it the destination keeps the zero fill value.
	ContentX      int
	ContentY      int
	ContentWidth  int
	ContentHeight int

	// ScaleX and ScaleY are effective-source units per destination unit.
	ScaleX float64
	ScaleY float64

	Orientation Orientation

	input types.Resolution
}

// Resolve computes the output canvas and mapping for resizing `input`
// to `target` under the given scale mode and orientation.
//
// The identity case (target equal to input) intentionally goes through
// the exact same computation as any other resize.
func Resolve(
	input types.Resolution,
	target types.Resolution,
	mode ScaleMode,
	orient Orientation,
) (Mapping, error) {
	if !input.IsValid() || !target.IsValid() {
		return Mapping{}, ErrInvalidDimensions{Input: input, Target: target}
	}
	if !orient.Rotation.IsValid() {
		return Mapping{}, fmt.Errorf("unsupported rotation: %d degrees", int(orient.Rotation))
	}

	eff := input
	if orient.SwapsAxes() {
		eff = types.Resolution{Width: input.Height, Height: input.Width}
	}

	m := Mapping{
		Output:      target,
		Source:      eff,
		Orientation: orient,
		input:       input,
	}

	switch mode {
	case ScaleModeStretch:
		m.ContentX, m.ContentY = 0, 0
		m.ContentWidth = int(target.Width)
		m.ContentHeight = int(target.Height)
	case ScaleModeFit:
		scale := min(
			float64(target.Width)/float64(eff.Width),
			float64(target.Height)/float64(eff.Height),
		)
		m.ContentWidth = min(int(float64(eff.Width)*scale+0.5), int(target.Width))
		m.ContentHeight = min(int(float64(eff.Height)*scale+0.5), int(target.Height))
		m.ContentX = (int(target.Width) - m.ContentWidth) / 2
		m.ContentY = (int(target.Height) - m.ContentHeight) / 2
	default:
		return Mapping{}, fmt.Errorf("unsupported scale mode: %v", mode)
	}

	m.ScaleX = float64(eff.Width) / float64(m.ContentWidth)
	m.ScaleY = float64(eff.Height) / float64(m.ContentHeight)
	return m, nil
}

// Input returns the actual (pre-orientation) input resolution the
// mapping was resolved for.
func (m Mapping) Input() types.Resolution {
	return m.input
}

// Project maps a destination pixel to a fractional effective-source
// coordinate. `inside` is false for letterbox pixels, which are not
// considered mapped and must keep the fill value.
func (m Mapping) Project(dstX, dstY int) (srcX, srcY float64, inside bool) {
	if dstX < m.ContentX || dstX >= m.ContentX+m.ContentWidth ||
		dstY < m.ContentY || dstY >= m.ContentY+m.ContentHeight {
		return 0, 0, false
	}
	srcX = float64(dstX-m.ContentX) * m.ScaleX
	srcY = float64(dstY-m.ContentY) * m.ScaleY
	return srcX, srcY, true
}

// SourcePixel converts an integer effective-source coordinate into the
// coordinate of the actual input image, undoing the orientation. It is
// computed on integers so that both execution backends obtain the exact
// same source pixel.
func (m Mapping) SourcePixel(ex, ey int) (x, y int) {
	if m.Orientation.FlipHorizontally {
		ex = int(m.Source.Width) - 1 - ex
	}
	if m.Orientation.FlipVertically {
		ey = int(m.Source.Height) - 1 - ey
	}
	iw, ih := int(m.input.Width), int(m.input.Height)
	switch m.Orientation.Rotation {
	case Rotation90:
		// effective(x, y) = input(y, ih-1-x)
		return ey, ih - 1 - ex
	case Rotation180:
		return iw - 1 - ex, ih - 1 - ey
	case Rotation270:
		// effective(x, y) = input(iw-1-y, x)
		return iw - 1 - ey, ex
	}
	return ex, ey
}

func (m Mapping) String() string {
	return fmt.Sprintf(
		"Mapping(%s -> %s, content %dx%d@%d,%d)",
		m.input, m.Output,
		m.ContentWidth, m.ContentHeight, m.ContentX, m.ContentY,
	)
}
