// Package frame provides the image entity flowing through the pipeline:
// a rectangular pixel grid backed either by a host-addressable buffer
// or by a GPU-resident texture.
package frame

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xaionaro-go/imgpipeline/gpu"
	"github.com/xaionaro-go/imgpipeline/types"
)

// StorageKind says where the pixels of a Frame live.
type StorageKind int

const (
	StorageUndefined StorageKind = iota
	// StorageHostBuffer is CPU-addressable memory.
	StorageHostBuffer
	// StorageTexture is GPU-resident texture memory.
	StorageTexture
)

func (k StorageKind) String() string {
	switch k {
	case StorageHostBuffer:
		return "host_buffer"
	case StorageTexture:
		return "texture"
	}
	return fmt.Sprintf("unknown_storage_%d", int(k))
}

// Frame is an immutable image (the only mutation allowed is filling a
// newly allocated output frame during resampling). The storage is a
// closed variant: exactly one of the host buffer or the texture is set.
type Frame struct {
	res    types.Resolution
	format types.PixelFormat
	data   []byte
	tex    *gpu.Texture
}

// NewHostBuffer allocates a zero-filled host-buffer frame.
func NewHostBuffer(
	res types.Resolution,
	format types.PixelFormat,
) (*Frame, error) {
	if !res.IsValid() {
		return nil, fmt.Errorf("invalid resolution: %s", res)
	}
	if format.PixelStride() == 0 {
		return nil, fmt.Errorf("invalid pixel format: %s", format)
	}
	return &Frame{
		res:    res,
		format: format,
		data:   make([]byte, res.PixelCount()*format.PixelStride()),
	}, nil
}

// FromBytes wraps existing host pixel data (borrowed, not copied).
func FromBytes(
	res types.Resolution,
	format types.PixelFormat,
	data []byte,
) (*Frame, error) {
	if !res.IsValid() {
		return nil, fmt.Errorf("invalid resolution: %s", res)
	}
	if format.PixelStride() == 0 {
		return nil, fmt.Errorf("invalid pixel format: %s", format)
	}
	if required := res.PixelCount() * format.PixelStride(); len(data) < required {
		return nil, fmt.Errorf("pixel data is too short: %d < %d", len(data), required)
	}
	return &Frame{
		res:    res,
		format: format,
		data:   data,
	}, nil
}

// FromTexture wraps a device-resident texture.
func FromTexture(tex *gpu.Texture) (*Frame, error) {
	if tex == nil {
		return nil, fmt.Errorf("the texture is nil")
	}
	return &Frame{
		res:    tex.Resolution(),
		format: tex.PixelFormat(),
		tex:    tex,
	}, nil
}

func (f *Frame) Resolution() types.Resolution {
	return f.res
}

func (f *Frame) Width() int {
	return int(f.res.Width)
}

func (f *Frame) Height() int {
	return int(f.res.Height)
}

func (f *Frame) PixelFormat() types.PixelFormat {
	return f.format
}

func (f *Frame) StorageKind() StorageKind {
	switch {
	case f.tex != nil:
		return StorageTexture
	case f.data != nil:
		return StorageHostBuffer
	}
	return StorageUndefined
}

// Bytes returns the host pixel data; nil for texture frames.
func (f *Frame) Bytes() []byte {
	return f.data
}

// Texture returns the backing texture; nil for host-buffer frames.
func (f *Frame) Texture() *gpu.Texture {
	return f.tex
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame(%s, %s, %s)", f.res, f.format, f.StorageKind())
}

func (f *Frame) sampleOffset(x, y, c int) int {
	return (y*int(f.res.Width)+x)*f.format.PixelStride() + c*f.format.BytesPerSample()
}

// Sample reads one sample of a host-buffer frame.
func (f *Frame) Sample(x, y, c int) float64 {
	return f.format.ReadSample(f.data, f.sampleOffset(x, y, c))
}

// SetSample writes one sample of a host-buffer frame.
func (f *Frame) SetSample(x, y, c int, v float64) {
	f.format.WriteSample(f.data, f.sampleOffset(x, y, c), v)
}

// Upload copies a host-buffer frame into a new texture frame on the device.
func (f *Frame) Upload(ctx context.Context, dev *gpu.Device) (*Frame, error) {
	if f.StorageKind() != StorageHostBuffer {
		return nil, fmt.Errorf("expected a host-buffer frame, got %s", f.StorageKind())
	}
	tex, err := dev.NewTexture(ctx, f.res, f.format, f.data)
	if err != nil {
		return nil, fmt.Errorf("unable to create a texture: %w", err)
	}
	return FromTexture(tex)
}

// Download copies a texture frame back into a new host-buffer frame.
func (f *Frame) Download(ctx context.Context) (*Frame, error) {
	if f.StorageKind() != StorageTexture {
		return nil, fmt.Errorf("expected a texture frame, got %s", f.StorageKind())
	}
	data, err := f.tex.Download(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to download the texture: %w", err)
	}
	return FromBytes(f.res, f.format, data)
}

// Clone returns a deep copy of a host-buffer frame.
func (f *Frame) Clone() (*Frame, error) {
	if f.StorageKind() != StorageHostBuffer {
		return nil, fmt.Errorf("expected a host-buffer frame, got %s", f.StorageKind())
	}
	data := make([]byte, len(f.data))
	copy(data, f.data)
	return FromBytes(f.res, f.format, data)
}

// Equal reports whether two host-buffer frames have the same resolution,
// pixel format and pixel data.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.res == other.res &&
		f.format == other.format &&
		bytes.Equal(f.data, other.data)
}

// UniqueSampleValues returns the set of distinct sample values across all
// pixels and channels of a host-buffer frame.
func (f *Frame) UniqueSampleValues() map[float64]struct{} {
	values := map[float64]struct{}{}
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			for c := 0; c < f.format.Channels(); c++ {
				values[f.Sample(x, y, c)] = struct{}{}
			}
		}
	}
	return values
}
