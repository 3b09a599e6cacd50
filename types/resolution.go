package types

import (
	"fmt"
)

// Resolution is a pair of image dimensions in pixels.
type Resolution struct {
	Width  uint32
	Height uint32
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// IsValid reports whether both dimensions are positive.
func (r Resolution) IsValid() bool {
	return r.Width > 0 && r.Height > 0
}

// PixelCount returns the amount of pixels of an image of this resolution.
func (r Resolution) PixelCount() int {
	return int(r.Width) * int(r.Height)
}
