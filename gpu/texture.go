package gpu

import (
	"context"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/logger"
	"github.com/xaionaro-go/imgpipeline/types"
)

// ErrUnsupportedFormat is returned when a pixel format has no
// hardware texture representation.
type ErrUnsupportedFormat struct {
	Format types.PixelFormat
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("pixel format '%s' has no texture representation", e.Format)
}

// TextureFormat returns the texture format name corresponding to a pixel
// format, and whether such a representation exists at all.
func TextureFormat(f types.PixelFormat) (string, bool) {
	switch f {
	case types.PixelFormatGray8:
		return "r8unorm", true
	case types.PixelFormatGrayF32:
		return "r32float", true
	case types.PixelFormatRGBA8:
		return "rgba8unorm", true
	case types.PixelFormatRGBAF32:
		return "rgba32float", true
	}
	return "", false
}

// Texture is device-resident pixel storage. Its contents are only
// accessible from inside commands submitted to the owning device
// (Fetch/Store), or through Download which synchronizes on the queue.
type Texture struct {
	device *Device
	res    types.Resolution
	format types.PixelFormat
	data   []byte
}

// NewTexture allocates a texture on the device. When `pixels` is non-nil
// the upload is enqueued as a device command; `pixels` must stay unmodified
// until the upload completes (images are immutable once received, so in
// practice this holds trivially).
func (d *Device) NewTexture(
	ctx context.Context,
	res types.Resolution,
	format types.PixelFormat,
	pixels []byte,
) (_ *Texture, _err error) {
	logger.Tracef(ctx, "NewTexture: %s %s", res, format)
	defer func() { logger.Tracef(ctx, "/NewTexture: %v", _err) }()

	if _, ok := TextureFormat(format); !ok {
		return nil, ErrUnsupportedFormat{Format: format}
	}
	if !res.IsValid() {
		return nil, fmt.Errorf("invalid texture resolution: %s", res)
	}

	size := res.PixelCount() * format.PixelStride()
	t := &Texture{
		device: d,
		res:    res,
		format: format,
		data:   make([]byte, size),
	}
	if pixels != nil {
		if len(pixels) < size {
			return nil, fmt.Errorf("pixel data is too short: %d < %d", len(pixels), size)
		}
		if _, err := d.Submit(ctx, "upload", func(context.Context) {
			copy(t.data, pixels[:size])
		}); err != nil {
			return nil, fmt.Errorf("unable to submit the upload: %w", err)
		}
	}
	return t, nil
}

func (t *Texture) Device() *Device {
	return t.device
}

func (t *Texture) Resolution() types.Resolution {
	return t.res
}

func (t *Texture) PixelFormat() types.PixelFormat {
	return t.format
}

func (t *Texture) String() string {
	return fmt.Sprintf("Texture(%s, %s)", t.res, t.format)
}

// Download synchronizes on the device queue and copies the texture
// contents back to host memory.
func (t *Texture) Download(ctx context.Context) ([]byte, error) {
	if err := t.device.Barrier(ctx); err != nil {
		return nil, fmt.Errorf("unable to synchronize with the device: %w", err)
	}
	out := make([]byte, len(t.data))
	copy(out, t.data)
	return out, nil
}

func (t *Texture) sampleOffset(x, y, c int) int {
	return (y*int(t.res.Width)+x)*t.format.PixelStride() + c*t.format.BytesPerSample()
}

// Fetch reads one sample. Only valid inside a command running on the
// owning device's queue.
func (t *Texture) Fetch(x, y, c int) float64 {
	return t.format.ReadSample(t.data, t.sampleOffset(x, y, c))
}

// Store writes one sample. Only valid inside a command running on the
// owning device's queue.
func (t *Texture) Store(x, y, c int, v float64) {
	t.format.WriteSample(t.data, t.sampleOffset(x, y, c), v)
}
