package resampler

import (
	"context"
	"fmt"
	"math"

	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/geometry"
	"github.com/xaionaro-go/imgpipeline/helpers/closuresignaler"
	"github.com/xaionaro-go/imgpipeline/logger"
)

// Software is the CPU resampling backend: a pure single-threaded
// computation over host-buffer frames.
type Software struct {
	*closuresignaler.ClosureSignaler
	InterpolationMode Interpolation
}

var _ Abstract = (*Software)(nil)

func NewSoftware(
	ctx context.Context,
	interpolation Interpolation,
) *Software {
	return &Software{
		ClosureSignaler:   closuresignaler.New(),
		InterpolationMode: interpolation,
	}
}

func (s *Software) String() string {
	return fmt.Sprintf("SoftwareResampler(%s)", s.InterpolationMode)
}

func (s *Software) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	s.ClosureSignaler.Close(ctx)
	return nil
}

func (s *Software) Resample(
	ctx context.Context,
	src *frame.Frame,
	m geometry.Mapping,
) (_ *frame.Frame, _err error) {
	logger.Tracef(ctx, "Resample: %s, %s", src, m)
	defer func() { logger.Tracef(ctx, "/Resample: %v", _err) }()

	if s.IsClosed() {
		return nil, fmt.Errorf("the resampler is closed")
	}
	if src.StorageKind() != frame.StorageHostBuffer {
		return nil, fmt.Errorf("the software resampler expects a host-buffer frame, got %s", src.StorageKind())
	}
	if err := validateMapping(src, m); err != nil {
		return nil, err
	}

	// letterbox pixels keep the zero fill value of the fresh buffer
	dst, err := frame.NewHostBuffer(m.Output, src.PixelFormat())
	if err != nil {
		return nil, fmt.Errorf("unable to allocate the output frame: %w", err)
	}

	switch s.InterpolationMode {
	case InterpolationNearest:
		s.resampleNearest(src, dst, m)
	case InterpolationLinear:
		s.resampleLinear(src, dst, m)
	default:
		return nil, fmt.Errorf("unsupported interpolation: %v", s.InterpolationMode)
	}
	return dst, nil
}

// nearestTexel rounds half-up (floor(x+0.5)) and clamps to the edge.
// The hardware path's gpu.Sampler applies the exact same rule; the two
// must not diverge, otherwise nearest-neighbor backend parity breaks.
func nearestTexel(coord float64, size int) int {
	texel := int(math.Floor(coord + 0.5))
	if texel < 0 {
		return 0
	}
	if texel > size-1 {
		return size - 1
	}
	return texel
}

func (s *Software) resampleNearest(
	src *frame.Frame,
	dst *frame.Frame,
	m geometry.Mapping,
) {
	channels := src.PixelFormat().Channels()
	effW, effH := int(m.Source.Width), int(m.Source.Height)
	for dy := 0; dy < dst.Height(); dy++ {
		for dx := 0; dx < dst.Width(); dx++ {
			srcX, srcY, inside := m.Project(dx, dy)
			if !inside {
				continue
			}
			ex := nearestTexel(srcX, effW)
			ey := nearestTexel(srcY, effH)
			x, y := m.SourcePixel(ex, ey)
			for c := 0; c < channels; c++ {
				dst.SetSample(dx, dy, c, src.Sample(x, y, c))
			}
		}
	}
}

// linearTexels returns the two source texels blended on one axis and the
// weight of the higher one, with edge-clamped coordinates.
func linearTexels(coord float64, size int) (lo, hi int, hiWeight float64) {
	base := math.Floor(coord)
	clamp := func(texel int) int {
		if texel < 0 {
			return 0
		}
		if texel > size-1 {
			return size - 1
		}
		return texel
	}
	return clamp(int(base)), clamp(int(base) + 1), coord - base
}

func (s *Software) resampleLinear(
	src *frame.Frame,
	dst *frame.Frame,
	m geometry.Mapping,
) {
	channels := src.PixelFormat().Channels()
	effW, effH := int(m.Source.Width), int(m.Source.Height)
	for dy := 0; dy < dst.Height(); dy++ {
		for dx := 0; dx < dst.Width(); dx++ {
			srcX, srcY, inside := m.Project(dx, dy)
			if !inside {
				continue
			}
			x0, x1, fx := linearTexels(srcX, effW)
			y0, y1, fy := linearTexels(srcY, effH)
			ax, ay := m.SourcePixel(x0, y0)
			bx, by := m.SourcePixel(x1, y0)
			cx, cy := m.SourcePixel(x0, y1)
			ex, ey := m.SourcePixel(x1, y1)
			for c := 0; c < channels; c++ {
				top := src.Sample(ax, ay, c)*(1-fx) + src.Sample(bx, by, c)*fx
				bottom := src.Sample(cx, cy, c)*(1-fx) + src.Sample(ex, ey, c)*fx
				dst.SetSample(dx, dy, c, top*(1-fy)+bottom*fy)
			}
		}
	}
}
