package frame

import (
	"fmt"
	"image"
	"image/color"

	"github.com/xaionaro-go/imgpipeline/types"
)

// FromImage converts a Go image into an RGBA8 host-buffer frame.
func FromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	res := types.Resolution{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}
	f, err := NewHostBuffer(res, types.PixelFormatRGBA8)
	if err != nil {
		return nil, err
	}
	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			f.SetSample(x, y, 0, float64(c.R))
			f.SetSample(x, y, 1, float64(c.G))
			f.SetSample(x, y, 2, float64(c.B))
			f.SetSample(x, y, 3, float64(c.A))
		}
	}
	return f, nil
}

// ToImage converts an 8-bit host-buffer frame into a Go image.
func (f *Frame) ToImage() (image.Image, error) {
	if f.StorageKind() != StorageHostBuffer {
		return nil, fmt.Errorf("expected a host-buffer frame, got %s", f.StorageKind())
	}
	rect := image.Rect(0, 0, f.Width(), f.Height())
	switch f.PixelFormat() {
	case types.PixelFormatRGBA8:
		img := image.NewRGBA(rect)
		for y := 0; y < f.Height(); y++ {
			for x := 0; x < f.Width(); x++ {
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(f.Sample(x, y, 0)),
					G: uint8(f.Sample(x, y, 1)),
					B: uint8(f.Sample(x, y, 2)),
					A: uint8(f.Sample(x, y, 3)),
				})
			}
		}
		return img, nil
	case types.PixelFormatGray8:
		img := image.NewGray(rect)
		for y := 0; y < f.Height(); y++ {
			for x := 0; x < f.Width(); x++ {
				img.SetGray(x, y, color.Gray{Y: uint8(f.Sample(x, y, 0))})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("cannot convert a %s frame to a Go image", f.PixelFormat())
}
