package gpu

import (
	"fmt"
	"math"
)

// Filter selects the texture sampling filter.
type Filter int

const (
	// FilterNearest samples the single nearest texel.
	FilterNearest Filter = iota
	// FilterLinear samples the 2x2 neighborhood with bilinear weights.
	FilterLinear
)

func (f Filter) String() string {
	switch f {
	case FilterNearest:
		return "nearest"
	case FilterLinear:
		return "linear"
	}
	return fmt.Sprintf("unknown_filter_%d", int(f))
}

// AddressMode selects how out-of-range texel coordinates are handled.
type AddressMode int

const (
	// AddressClampToEdge clamps coordinates into the texture rectangle.
	AddressClampToEdge AddressMode = iota
)

// Sampler is a texture sampling configuration.
type Sampler struct {
	Filter  Filter
	Address AddressMode
}

// NearestTexel resolves a fractional texel coordinate to the nearest
// integer texel on one axis.
//
// The rounding is half-up (floor(x+0.5)); the software resampler applies
// the exact same rule, which is what makes the two backends produce
// bit-identical output under nearest-neighbor sampling.
func (s Sampler) NearestTexel(coord float64, size int) int {
	return s.clampTexel(int(math.Floor(coord+0.5)), size)
}

// LinearTexels resolves a fractional texel coordinate to the two texels
// blended on one axis and the weight of the higher one.
func (s Sampler) LinearTexels(coord float64, size int) (lo, hi int, hiWeight float64) {
	base := math.Floor(coord)
	lo = s.clampTexel(int(base), size)
	hi = s.clampTexel(int(base)+1, size)
	return lo, hi, coord - base
}

func (s Sampler) clampTexel(texel, size int) int {
	// AddressClampToEdge is the only supported mode
	if texel < 0 {
		return 0
	}
	if texel > size-1 {
		return size - 1
	}
	return texel
}

// Sample reads the texture at a fractional texel coordinate using the
// sampler's filter. Only valid inside a command running on the owning
// device's queue.
func (s Sampler) Sample(t *Texture, x, y float64, c int) float64 {
	w, h := int(t.res.Width), int(t.res.Height)
	switch s.Filter {
	case FilterLinear:
		x0, x1, fx := s.LinearTexels(x, w)
		y0, y1, fy := s.LinearTexels(y, h)
		top := t.Fetch(x0, y0, c)*(1-fx) + t.Fetch(x1, y0, c)*fx
		bottom := t.Fetch(x0, y1, c)*(1-fx) + t.Fetch(x1, y1, c)*fx
		return top*(1-fy) + bottom*fy
	default:
		return t.Fetch(s.NearestTexel(x, w), s.NearestTexel(y, h), c)
	}
}
