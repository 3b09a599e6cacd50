package frame

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/xaionaro-go/imgpipeline/types"
)

// ConvertGray8ToF32 converts an 8-bit single-channel host frame into the
// float domain [0, 1] (scale 1/255). The pixel value ordering is
// preserved, so value-set comparisons are format-independent.
func ConvertGray8ToF32(f *Frame) (*Frame, error) {
	if f.PixelFormat() != types.PixelFormatGray8 {
		return nil, fmt.Errorf("expected %s, got %s", types.PixelFormatGray8, f.PixelFormat())
	}
	if f.StorageKind() != StorageHostBuffer {
		return nil, fmt.Errorf("expected a host-buffer frame, got %s", f.StorageKind())
	}
	out, err := NewHostBuffer(f.Resolution(), types.PixelFormatGrayF32)
	if err != nil {
		return nil, err
	}
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			v := float32(f.Sample(x, y, 0)) / 255
			out.SetSample(x, y, 0, float64(v))
		}
	}
	return out, nil
}

// ConvertF32ToGray8 converts a float single-channel host frame (domain
// [0, 1], values outside are clamped) back into the 8-bit domain.
func ConvertF32ToGray8(f *Frame) (*Frame, error) {
	if f.PixelFormat() != types.PixelFormatGrayF32 {
		return nil, fmt.Errorf("expected %s, got %s", types.PixelFormatGrayF32, f.PixelFormat())
	}
	if f.StorageKind() != StorageHostBuffer {
		return nil, fmt.Errorf("expected a host-buffer frame, got %s", f.StorageKind())
	}
	out, err := NewHostBuffer(f.Resolution(), types.PixelFormatGray8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			v := math32.Round(float32(f.Sample(x, y, 0)) * 255)
			out.SetSample(x, y, 0, float64(math32.Max(0, math32.Min(255, v))))
		}
	}
	return out, nil
}
