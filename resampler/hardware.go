package resampler

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/frame"
	"github.com/xaionaro-go/imgpipeline/geometry"
	"github.com/xaionaro-go/imgpipeline/gpu"
	"github.com/xaionaro-go/imgpipeline/helpers/closuresignaler"
	"github.com/xaionaro-go/imgpipeline/logger"
)

// Hardware is the GPU resampling backend: it operates on texture frames
// by submitting a resampling command to the texture's device and
// synchronizing on its completion, so the returned frame is always fully
// materialized.
type Hardware struct {
	*closuresignaler.ClosureSignaler
	InterpolationMode Interpolation
	Sampler           gpu.Sampler
}

var _ Abstract = (*Hardware)(nil)

func NewHardware(
	ctx context.Context,
	interpolation Interpolation,
) (*Hardware, error) {
	var filter gpu.Filter
	switch interpolation {
	case InterpolationNearest:
		filter = gpu.FilterNearest
	case InterpolationLinear:
		filter = gpu.FilterLinear
	default:
		return nil, fmt.Errorf("unsupported interpolation: %v", interpolation)
	}
	return &Hardware{
		ClosureSignaler:   closuresignaler.New(),
		InterpolationMode: interpolation,
		Sampler: gpu.Sampler{
			Filter:  filter,
			Address: gpu.AddressClampToEdge,
		},
	}, nil
}

func (h *Hardware) String() string {
	return fmt.Sprintf("HardwareResampler(%s)", h.InterpolationMode)
}

func (h *Hardware) Close(ctx context.Context) error {
	logger.Tracef(ctx, "Close")
	defer logger.Tracef(ctx, "/Close")
	h.ClosureSignaler.Close(ctx)
	return nil
}

func (h *Hardware) Resample(
	ctx context.Context,
	src *frame.Frame,
	m geometry.Mapping,
) (_ *frame.Frame, _err error) {
	logger.Tracef(ctx, "Resample: %s, %s", src, m)
	defer func() { logger.Tracef(ctx, "/Resample: %v", _err) }()

	if h.IsClosed() {
		return nil, fmt.Errorf("the resampler is closed")
	}
	if src.StorageKind() != frame.StorageTexture {
		return nil, fmt.Errorf("the hardware resampler expects a texture frame, got %s", src.StorageKind())
	}
	if _, ok := gpu.TextureFormat(src.PixelFormat()); !ok {
		return nil, gpu.ErrUnsupportedFormat{Format: src.PixelFormat()}
	}
	if err := validateMapping(src, m); err != nil {
		return nil, err
	}

	in := src.Texture()
	dev := in.Device()
	// freshly allocated textures are zero-filled, which is exactly the
	// letterbox fill value
	out, err := dev.NewTexture(ctx, m.Output, src.PixelFormat(), nil)
	if err != nil {
		return nil, fmt.Errorf("unable to allocate the output texture: %w", err)
	}

	if _, err := dev.Submit(ctx, "resample", func(context.Context) {
		h.shade(in, out, m)
	}); err != nil {
		return nil, fmt.Errorf("unable to submit the resampling command: %w", err)
	}
	// the contract requires the result to be fully materialized before
	// it is considered produced
	if err := dev.Barrier(ctx); err != nil {
		return nil, fmt.Errorf("unable to synchronize with the device: %w", err)
	}
	return frame.FromTexture(out)
}

// shade runs on the device queue: one fragment per destination texel.
func (h *Hardware) shade(in, out *gpu.Texture, m geometry.Mapping) {
	channels := in.PixelFormat().Channels()
	outW, outH := int(m.Output.Width), int(m.Output.Height)
	effW, effH := int(m.Source.Width), int(m.Source.Height)
	for dy := 0; dy < outH; dy++ {
		for dx := 0; dx < outW; dx++ {
			srcX, srcY, inside := m.Project(dx, dy)
			if !inside {
				continue
			}
			switch h.Sampler.Filter {
			case gpu.FilterLinear:
				x0, x1, fx := h.Sampler.LinearTexels(srcX, effW)
				y0, y1, fy := h.Sampler.LinearTexels(srcY, effH)
				ax, ay := m.SourcePixel(x0, y0)
				bx, by := m.SourcePixel(x1, y0)
				cx, cy := m.SourcePixel(x0, y1)
				ex, ey := m.SourcePixel(x1, y1)
				for c := 0; c < channels; c++ {
					top := in.Fetch(ax, ay, c)*(1-fx) + in.Fetch(bx, by, c)*fx
					bottom := in.Fetch(cx, cy, c)*(1-fx) + in.Fetch(ex, ey, c)*fx
					out.Store(dx, dy, c, top*(1-fy)+bottom*fy)
				}
			default:
				ex := h.Sampler.NearestTexel(srcX, effW)
				ey := h.Sampler.NearestTexel(srcY, effH)
				x, y := m.SourcePixel(ex, ey)
				for c := 0; c < channels; c++ {
					out.Store(dx, dy, c, in.Fetch(x, y, c))
				}
			}
		}
	}
}
