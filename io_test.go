package pixbuf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/kettek/apng"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestFormatFromExtension(t *testing.T) {
	testCases := []struct {
		ext  string
		want Format
		err  error
	}{
		{"jpg", JPEG, nil},
		{".JPEG", JPEG, nil},
		{"png", PNG, nil},
		{"gif", GIF, nil},
		{"tif", TIFF, nil},
		{"Tiff", TIFF, nil},
		{"bmp", BMP, nil},
		{"webp", WEBP, nil},
		{"xyz", -1, ErrUnsupportedFormat},
		{"", -1, ErrUnsupportedFormat},
	}
	for _, tc := range testCases {
		t.Run(tc.ext, func(t *testing.T) {
			got, err := FormatFromExtension(tc.ext)
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.want, got)
		})
	}
	f, err := FormatFromFilename("/a/b.c/image.PNG")
	require.NoError(t, err)
	require.Equal(t, PNG, f)
}

func TestDecodeMetadata(t *testing.T) {
	img := opaque_image(7, 3)
	encoders := []struct {
		format Format
		encode func(*bytes.Buffer) error
	}{
		{PNG, func(b *bytes.Buffer) error { return png.Encode(b, img) }},
		{JPEG, func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) }},
		{GIF, func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) }},
		{BMP, func(b *bytes.Buffer) error { return Encode(b, img, BMP) }},
		{TIFF, func(b *bytes.Buffer) error { return Encode(b, img, TIFF) }},
	}
	for _, e := range encoders {
		t.Run(e.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, e.encode(&buf))
			r, err := Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, e.format, r.Metadata.Format)
			require.Equal(t, 7, r.Width())
			require.Equal(t, 3, r.Height())
			require.Equal(t, uint32(7), r.Metadata.PixelWidth)
			require.Equal(t, uint32(3), r.Metadata.PixelHeight)
			require.Equal(t, uint32(8), r.Metadata.BitsPerComponent)
			require.Equal(t, 32, r.BitsPerPixel())
			require.False(t, r.Metadata.HasFrames)
			require.Equal(t, 0, r.Metadata.Orientation())
		})
	}
}

// jpeg_with_orientation encodes img as JPEG with an APP1 segment carrying an
// EXIF orientation tag.
func jpeg_with_orientation(t *testing.T, img image.Image, o byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	payload := []byte{
		'E', 'x', 'i', 'f', 0, 0,
		'M', 'M', 0, 42, 0, 0, 0, 8,
		0, 1, 0x01, 0x12, 0, 3, 0, 0, 0, 1, 0, o, 0, 0,
		0, 0, 0, 0,
	}
	n := len(payload) + 2
	data := buf.Bytes()
	ans := append([]byte{}, data[:2]...)
	ans = append(ans, 0xff, 0xe1, byte(n>>8), byte(n))
	ans = append(ans, payload...)
	return append(ans, data[2:]...)
}

func TestDecodeExifOrientation(t *testing.T) {
	img := opaque_image(4, 2)
	path := filepath.Join(t.TempDir(), "rotated.jpg")
	require.NoError(t, os.WriteFile(path, jpeg_with_orientation(t, img, 6), 0o600))
	r, err := DecodeFile(path)
	require.NoError(t, err)
	require.Equal(t, JPEG, r.Metadata.Format)
	require.Equal(t, 6, r.Metadata.Orientation())

	// the pixels are never reoriented
	require.Equal(t, image.Rect(0, 0, 4, 2), r.Image.Bounds())
	var plain bytes.Buffer
	require.NoError(t, jpeg.Encode(&plain, img, nil))
	unrotated, err := Decode(&plain)
	require.NoError(t, err)
	require.Equal(t, 0, unrotated.Metadata.Orientation())
	a, err := New(r.Image, false)
	require.NoError(t, err)
	b, err := New(unrotated.Image, false)
	require.NoError(t, err)
	require.Equal(t, b.ARGB(), a.ARGB())
}

func TestDecodeGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not an image"), append([]byte("\x89PNG\r\n\x1a\n"), 1, 2, 3)} {
		r, err := Decode(bytes.NewReader(data))
		require.ErrorIs(t, err, ErrDecode)
		require.Nil(t, r)
	}
}

func TestDecodeAnimatedPNG(t *testing.T) {
	first := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	second := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			first.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
			second.SetNRGBA(x, y, color.NRGBA{0, 0, 255, 255})
		}
	}
	a := apng.APNG{Frames: []apng.Frame{
		{Image: first, DelayNumerator: 1, DelayDenominator: 10},
		{Image: second, DelayNumerator: 1, DelayDenominator: 10},
	}}
	var buf bytes.Buffer
	require.NoError(t, apng.Encode(&buf, a))
	r, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, PNG, r.Metadata.Format)
	require.True(t, r.Metadata.HasFrames)
	require.Equal(t, 2, r.Metadata.NumFrames)
	p, err := New(r.Image, false)
	require.NoError(t, err)
	require.Equal(t, []byte{255, 255, 0, 0}, p.ARGB()[:4])
}
