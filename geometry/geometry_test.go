package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/imgpipeline/types"
)

func res(w, h uint32) types.Resolution {
	return types.Resolution{Width: w, Height: h}
}

func TestResolveOutputSizeIsExact(t *testing.T) {
	t.Parallel()

	inputs := []types.Resolution{res(64, 48), res(100, 100), res(333, 11)}
	targets := []types.Resolution{res(256, 333), res(512, 512), res(1024, 1024), res(1, 1)}
	for _, mode := range []ScaleMode{ScaleModeStretch, ScaleModeFit} {
		for _, input := range inputs {
			for _, target := range targets {
				m, err := Resolve(input, target, mode, Orientation{})
				require.NoError(t, err)
				require.Equal(t, target, m.Output, "%s %s -> %s", mode, input, target)
			}
		}
	}
}

func TestResolveIdentityGoesThroughTheSamePath(t *testing.T) {
	t.Parallel()

	m, err := Resolve(res(64, 48), res(64, 48), ScaleModeStretch, Orientation{})
	require.NoError(t, err)
	require.Equal(t, res(64, 48), m.Output)
	require.Equal(t, 1.0, m.ScaleX)
	require.Equal(t, 1.0, m.ScaleY)
	for _, p := range [][2]int{{0, 0}, {63, 47}, {13, 7}} {
		srcX, srcY, inside := m.Project(p[0], p[1])
		require.True(t, inside)
		require.Equal(t, float64(p[0]), srcX)
		require.Equal(t, float64(p[1]), srcY)
	}
}

func TestResolveInvalidDimensions(t *testing.T) {
	t.Parallel()

	for _, pair := range [][2]types.Resolution{
		{res(0, 48), res(256, 333)},
		{res(64, 0), res(256, 333)},
		{res(64, 48), res(0, 333)},
		{res(64, 48), res(256, 0)},
	} {
		_, err := Resolve(pair[0], pair[1], ScaleModeStretch, Orientation{})
		var errInvalidDims ErrInvalidDimensions
		require.ErrorAs(t, err, &errInvalidDims)
	}
}

func TestResolveStretchMapping(t *testing.T) {
	t.Parallel()

	m, err := Resolve(res(64, 48), res(256, 333), ScaleModeStretch, Orientation{})
	require.NoError(t, err)
	for _, p := range [][2]int{{0, 0}, {255, 332}, {100, 200}} {
		srcX, srcY, inside := m.Project(p[0], p[1])
		require.True(t, inside)
		require.Equal(t, float64(p[0])*64/256, srcX)
		require.Equal(t, float64(p[1])*48/333, srcY)
	}
}

func TestResolveFitLetterbox(t *testing.T) {
	t.Parallel()

	t.Run("PillarBox", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(res(100, 100), res(200, 100), ScaleModeFit, Orientation{})
		require.NoError(t, err)
		require.Equal(t, 100, m.ContentWidth)
		require.Equal(t, 100, m.ContentHeight)
		require.Equal(t, 50, m.ContentX)
		require.Equal(t, 0, m.ContentY)

		_, _, inside := m.Project(49, 50)
		require.False(t, inside)
		_, _, inside = m.Project(150, 50)
		require.False(t, inside)
		srcX, srcY, inside := m.Project(50, 0)
		require.True(t, inside)
		require.Equal(t, 0.0, srcX)
		require.Equal(t, 0.0, srcY)
	})

	t.Run("LetterBox", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(res(64, 48), res(256, 333), ScaleModeFit, Orientation{})
		require.NoError(t, err)
		// scale = min(256/64, 333/48) = 4
		require.Equal(t, 256, m.ContentWidth)
		require.Equal(t, 192, m.ContentHeight)
		require.Equal(t, 0, m.ContentX)
		require.Equal(t, (333-192)/2, m.ContentY)
	})
}

func TestResolveFitContentNeverExceedsCanvas(t *testing.T) {
	t.Parallel()

	for _, input := range []types.Resolution{res(3, 7), res(7, 3), res(640, 359)} {
		for _, target := range []types.Resolution{res(256, 333), res(11, 17), res(1024, 1024)} {
			m, err := Resolve(input, target, ScaleModeFit, Orientation{})
			require.NoError(t, err)
			require.LessOrEqual(t, m.ContentX+m.ContentWidth, int(target.Width))
			require.LessOrEqual(t, m.ContentY+m.ContentHeight, int(target.Height))
		}
	}
}

func TestSourcePixelOrientation(t *testing.T) {
	t.Parallel()

	input := res(3, 2)

	t.Run("Rotation90", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(input, res(2, 3), ScaleModeStretch, Orientation{Rotation: Rotation90})
		require.NoError(t, err)
		require.Equal(t, res(2, 3), m.Source)
		// the bottom-left input pixel becomes the top-left effective pixel
		x, y := m.SourcePixel(0, 0)
		require.Equal(t, [2]int{0, 1}, [2]int{x, y})
		x, y = m.SourcePixel(1, 2)
		require.Equal(t, [2]int{2, 0}, [2]int{x, y})
	})

	t.Run("Rotation180", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(input, input, ScaleModeStretch, Orientation{Rotation: Rotation180})
		require.NoError(t, err)
		x, y := m.SourcePixel(0, 0)
		require.Equal(t, [2]int{2, 1}, [2]int{x, y})
	})

	t.Run("Rotation270", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(input, res(2, 3), ScaleModeStretch, Orientation{Rotation: Rotation270})
		require.NoError(t, err)
		// the top-right input pixel becomes the top-left effective pixel
		x, y := m.SourcePixel(0, 0)
		require.Equal(t, [2]int{2, 0}, [2]int{x, y})
	})

	t.Run("FlipHorizontally", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(input, input, ScaleModeStretch, Orientation{FlipHorizontally: true})
		require.NoError(t, err)
		x, y := m.SourcePixel(0, 0)
		require.Equal(t, [2]int{2, 0}, [2]int{x, y})
	})

	t.Run("FlipVertically", func(t *testing.T) {
		t.Parallel()
		m, err := Resolve(input, input, ScaleModeStretch, Orientation{FlipVertically: true})
		require.NoError(t, err)
		x, y := m.SourcePixel(0, 0)
		require.Equal(t, [2]int{0, 1}, [2]int{x, y})
	})

	t.Run("InvalidRotation", func(t *testing.T) {
		t.Parallel()
		_, err := Resolve(input, input, ScaleModeStretch, Orientation{Rotation: Rotation(45)})
		require.Error(t, err)
	})
}

func TestScaleModeFromString(t *testing.T) {
	t.Parallel()

	m, err := ScaleModeFromString("FIT")
	require.NoError(t, err)
	require.Equal(t, ScaleModeFit, m)

	m, err = ScaleModeFromString("STRETCH")
	require.NoError(t, err)
	require.Equal(t, ScaleModeStretch, m)

	_, err = ScaleModeFromString("fit")
	require.Error(t, err)
}
