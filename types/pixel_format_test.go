package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPixelFormatLayout(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, PixelFormatGray8.Channels())
	require.Equal(t, 1, PixelFormatGray8.BytesPerSample())
	require.False(t, PixelFormatGray8.IsFloat())

	require.Equal(t, 1, PixelFormatGrayF32.Channels())
	require.Equal(t, 4, PixelFormatGrayF32.BytesPerSample())
	require.True(t, PixelFormatGrayF32.IsFloat())

	require.Equal(t, 4, PixelFormatRGBA8.Channels())
	require.Equal(t, 4, PixelFormatRGBA8.PixelStride())

	require.Equal(t, 4, PixelFormatRGBAF32.Channels())
	require.Equal(t, 16, PixelFormatRGBAF32.PixelStride())

	require.Equal(t, 0, PixelFormatNone.PixelStride())
}

func TestSampleCodecRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("Gray8", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 4)
		for _, v := range []float64{0, 1, 127, 255} {
			PixelFormatGray8.WriteSample(buf, 2, v)
			require.Equal(t, v, PixelFormatGray8.ReadSample(buf, 2))
		}
	})

	t.Run("GrayF32", func(t *testing.T) {
		t.Parallel()
		buf := make([]byte, 8)
		// values that are not exactly representable in float64 after a
		// float32 round-trip must still round-trip bit-exactly through
		// the codec, since the codec widens the stored float32
		for _, v := range []float32{0, 1, 0.1, 1.0 / 255, 0.999999} {
			PixelFormatGrayF32.WriteSample(buf, 4, float64(v))
			require.Equal(t, float64(v), PixelFormatGrayF32.ReadSample(buf, 4))
		}
	})
}

func TestResolution(t *testing.T) {
	t.Parallel()

	require.True(t, Resolution{Width: 1, Height: 1}.IsValid())
	require.False(t, Resolution{Width: 0, Height: 1}.IsValid())
	require.False(t, Resolution{}.IsValid())
	require.Equal(t, "256x333", Resolution{Width: 256, Height: 333}.String())
	require.Equal(t, 12, Resolution{Width: 3, Height: 4}.PixelCount())
}
