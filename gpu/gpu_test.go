package gpu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgpipeline/types"
)

func newTestDevice(t *testing.T) (context.Context, *Device) {
	ctx := context.Background()
	dev := NewDevice(ctx)
	t.Cleanup(func() { require.NoError(t, dev.Close(ctx)) })
	return ctx, dev
}

func TestDeviceExecutesCommandsInSubmissionOrder(t *testing.T) {
	t.Parallel()

	ctx, dev := newTestDevice(t)
	var order []int
	for i := 0; i < 10; i++ {
		i := i
		_, err := dev.Submit(ctx, "append", func(context.Context) {
			order = append(order, i)
		})
		require.NoError(t, err)
	}
	require.NoError(t, dev.Barrier(ctx))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestDeviceRejectsSubmissionsAfterClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dev := NewDevice(ctx)
	require.NoError(t, dev.Close(ctx))
	_, err := dev.Submit(ctx, "noop", func(context.Context) {})
	require.Error(t, err)
}

func TestTextureUploadDownload(t *testing.T) {
	t.Parallel()

	ctx, dev := newTestDevice(t)
	pixels := []byte{0, 1, 2, 3, 4, 5}
	tex, err := dev.NewTexture(ctx, types.Resolution{Width: 3, Height: 2}, types.PixelFormatGray8, pixels)
	require.NoError(t, err)

	out, err := tex.Download(ctx)
	require.NoError(t, err)
	require.Equal(t, pixels, out)
}

func TestTextureWithoutInitialDataIsZeroFilled(t *testing.T) {
	t.Parallel()

	ctx, dev := newTestDevice(t)
	tex, err := dev.NewTexture(ctx, types.Resolution{Width: 2, Height: 2}, types.PixelFormatGray8, nil)
	require.NoError(t, err)
	out, err := tex.Download(ctx)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, out)
}

func TestTextureRejectsUnsupportedFormats(t *testing.T) {
	t.Parallel()

	ctx, dev := newTestDevice(t)
	_, err := dev.NewTexture(ctx, types.Resolution{Width: 2, Height: 2}, types.PixelFormatNone, nil)
	var errUnsupported ErrUnsupportedFormat
	require.ErrorAs(t, err, &errUnsupported)
	require.Equal(t, types.PixelFormatNone, errUnsupported.Format)

	_, err = dev.NewTexture(ctx, types.Resolution{Width: 0, Height: 2}, types.PixelFormatGray8, nil)
	require.Error(t, err)

	_, err = dev.NewTexture(ctx, types.Resolution{Width: 2, Height: 2}, types.PixelFormatGray8, []byte{0})
	require.Error(t, err)
}

func TestTextureFormatTable(t *testing.T) {
	t.Parallel()

	for _, f := range []types.PixelFormat{
		types.PixelFormatGray8,
		types.PixelFormatGrayF32,
		types.PixelFormatRGBA8,
		types.PixelFormatRGBAF32,
	} {
		name, ok := TextureFormat(f)
		require.True(t, ok, f)
		require.NotEmpty(t, name, f)
	}
	_, ok := TextureFormat(types.PixelFormatNone)
	require.False(t, ok)
}

func TestSamplerNearestTexelRoundsHalfUp(t *testing.T) {
	t.Parallel()

	s := Sampler{Filter: FilterNearest, Address: AddressClampToEdge}
	require.Equal(t, 0, s.NearestTexel(0.49, 10))
	require.Equal(t, 1, s.NearestTexel(0.5, 10))
	require.Equal(t, 1, s.NearestTexel(1.49, 10))
	require.Equal(t, 2, s.NearestTexel(1.5, 10))
	// clamp-to-edge
	require.Equal(t, 0, s.NearestTexel(-3.7, 10))
	require.Equal(t, 9, s.NearestTexel(25, 10))
}

func TestSamplerLinearTexels(t *testing.T) {
	t.Parallel()

	s := Sampler{Filter: FilterLinear, Address: AddressClampToEdge}
	lo, hi, w := s.LinearTexels(1.25, 10)
	require.Equal(t, 1, lo)
	require.Equal(t, 2, hi)
	require.Equal(t, 0.25, w)

	lo, hi, w = s.LinearTexels(9.5, 10)
	require.Equal(t, 9, lo)
	require.Equal(t, 9, hi)
	require.Equal(t, 0.5, w)
}

func TestSamplerSample(t *testing.T) {
	t.Parallel()

	ctx, dev := newTestDevice(t)
	tex, err := dev.NewTexture(ctx, types.Resolution{Width: 2, Height: 1}, types.PixelFormatGray8, []byte{0, 100})
	require.NoError(t, err)
	require.NoError(t, dev.Barrier(ctx))

	var nearest, linear float64
	_, err = dev.Submit(ctx, "sample", func(context.Context) {
		nearest = Sampler{Filter: FilterNearest}.Sample(tex, 0.75, 0, 0)
		linear = Sampler{Filter: FilterLinear}.Sample(tex, 0.75, 0, 0)
	})
	require.NoError(t, err)
	require.NoError(t, dev.Barrier(ctx))
	require.Equal(t, 100.0, nearest)
	require.Equal(t, 75.0, linear)
}
