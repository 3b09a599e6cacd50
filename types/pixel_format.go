package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// PixelFormat describes the per-pixel sample layout of an image:
// the amount of channels and the numeric type of each sample.
//
// A resize never changes the pixel format: it is threaded end-to-end
// from the input image to the output image.
type PixelFormat int

const (
	PixelFormatNone PixelFormat = iota

	// PixelFormatGray8 is a single channel of 8-bit unsigned integers (domain [0,255]).
	PixelFormatGray8

	// PixelFormatGrayF32 is a single channel of 32-bit floats (typically [0,1]).
	PixelFormatGrayF32

	// PixelFormatRGBA8 is four channels of 8-bit unsigned integers.
	PixelFormatRGBA8

	// PixelFormatRGBAF32 is four channels of 32-bit floats.
	PixelFormatRGBAF32

	EndOfPixelFormats
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatNone:
		return "none"
	case PixelFormatGray8:
		return "gray8"
	case PixelFormatGrayF32:
		return "grayf32"
	case PixelFormatRGBA8:
		return "rgba8"
	case PixelFormatRGBAF32:
		return "rgbaf32"
	}
	return fmt.Sprintf("unknown_pixel_format_%d", int(f))
}

// Channels returns the amount of samples per pixel.
func (f PixelFormat) Channels() int {
	switch f {
	case PixelFormatGray8, PixelFormatGrayF32:
		return 1
	case PixelFormatRGBA8, PixelFormatRGBAF32:
		return 4
	}
	return 0
}

// BytesPerSample returns the storage size of one sample.
func (f PixelFormat) BytesPerSample() int {
	switch f {
	case PixelFormatGray8, PixelFormatRGBA8:
		return 1
	case PixelFormatGrayF32, PixelFormatRGBAF32:
		return 4
	}
	return 0
}

// PixelStride returns the storage size of one whole pixel.
func (f PixelFormat) PixelStride() int {
	return f.Channels() * f.BytesPerSample()
}

// IsFloat reports whether samples are 32-bit floats (as opposed to 8-bit integers).
func (f PixelFormat) IsFloat() bool {
	switch f {
	case PixelFormatGrayF32, PixelFormatRGBAF32:
		return true
	}
	return false
}

// ReadSample reads the sample at byte offset `off` and widens it to float64.
//
// float64 carries both supported domains losslessly: uint8 values are exact,
// and float32 -> float64 -> float32 round-trips bit-exactly. There is no
// clamping and no reinterpretation between sample types here.
func (f PixelFormat) ReadSample(data []byte, off int) float64 {
	if f.IsFloat() {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
	}
	return float64(data[off])
}

// WriteSample stores a value previously obtained via ReadSample of the same format.
func (f PixelFormat) WriteSample(data []byte, off int, v float64) {
	if f.IsFloat() {
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(float32(v)))
		return
	}
	data[off] = byte(v)
}
