package pixbuf

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestToImage(t *testing.T) {
	buf := []byte{255, 255, 0, 0, 128, 0, 128, 0}
	img, err := ToImage(buf, 2, 1)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	require.Equal(t, color.RGBA{255, 0, 0, 255}, img.At(0, 0))
	require.Equal(t, color.RGBA{0, 128, 0, 128}, img.At(1, 0))
	// the buffer is wrapped, not copied
	require.Same(t, &buf[0], &img.Pix[0])
}

func TestSizeMismatch(t *testing.T) {
	testCases := []struct {
		n, w, h int
	}{
		{15, 2, 2},
		{17, 2, 2},
		{4, 0, 1},
		{0, 1, 1},
		{20, 1, 4}, // a header-tagged buffer must be stripped first
		{0, -1, 0},
		{4, -1, -1},
		{0, 1 << 62, 4},
		{0, 4, 1 << 62},
		{0, math.MaxInt, 2},
		{4, 1 << 31, 1 << 31},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d-%dx%d", tc.n, tc.w, tc.h), func(t *testing.T) {
			buf := make([]byte, tc.n)
			img, err := ToImage(buf, tc.w, tc.h)
			require.ErrorIs(t, err, ErrSizeMismatch)
			require.Nil(t, img)
			b, err := ToBitmap(buf, tc.w, tc.h)
			require.ErrorIs(t, err, ErrSizeMismatch)
			require.Nil(t, b)
			a, err := NewARGBWithContiguousPixels(buf, 0, 0, tc.w, tc.h)
			require.ErrorIs(t, err, ErrSizeMismatch)
			require.Nil(t, a)
			p, err := FromARGB(buf, tc.w, tc.h)
			require.Error(t, err)
			require.Nil(t, p)
		})
	}
}

func TestToBitmap(t *testing.T) {
	buf := []byte{255, 255, 0, 0, 128, 0, 128, 0, 255, 1, 2, 3, 0, 0, 0, 0}
	b, err := ToBitmap(buf, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 8, b.BitsPerSample)
	require.Equal(t, 4, b.SamplesPerPixel)
	require.True(t, b.HasAlpha)
	require.False(t, b.Planar)
	require.Equal(t, 8, b.Stride)
	require.Equal(t, []byte{255, 0, 0, 255, 0, 128, 0, 128, 1, 2, 3, 255, 0, 0, 0, 0}, b.Pix)
	require.NoError(t, b.Validate())
	// the bitmap owns its pixels
	b.Pix[0] = 7
	require.Equal(t, byte(255), buf[0])

	rgba, ok := b.Image().(*image.RGBA)
	require.True(t, ok)
	require.Equal(t, color.RGBA{1, 2, 3, 255}, rgba.RGBAAt(0, 1))
}

func TestEmptyImage(t *testing.T) {
	img, err := ToImage(nil, 0, 0)
	require.NoError(t, err)
	require.True(t, img.Bounds().Empty())
	b, err := ToBitmap([]byte{}, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 0, b.Width)
	require.Equal(t, 5, b.Height)
}
