package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kovidgoyal/pixbuf"
	"github.com/stretchr/testify/require"
)

func write_test_image(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 80), uint8(y * 200), 7, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, pixbuf.Save(img, path))
	return path
}

func write_rotated_jpeg(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, pixbuf.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 2)), pixbuf.JPEG))
	payload := []byte{
		'E', 'x', 'i', 'f', 0, 0,
		'M', 'M', 0, 42, 0, 0, 0, 8,
		0, 1, 0x01, 0x12, 0, 3, 0, 0, 0, 1, 0, 6, 0, 0,
		0, 0, 0, 0,
	}
	n := len(payload) + 2
	data := append([]byte{}, buf.Bytes()[:2]...)
	data = append(data, 0xff, 0xe1, byte(n>>8), byte(n))
	data = append(data, payload...)
	data = append(data, buf.Bytes()[2:]...)
	path := filepath.Join(t.TempDir(), "rotated.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func test_globals() (*globals, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &globals{ctx: context.Background(), out: out, procs: 1}, out
}

func TestInfo(t *testing.T) {
	g, out := test_globals()
	require.NoError(t, (&infoCmd{Input: write_test_image(t)}).Run(g))
	require.Contains(t, out.String(), "Format:      PNG")
	require.Contains(t, out.String(), "Size:        3x2")
	require.Contains(t, out.String(), "Buffer:      24 bytes")
	require.NotContains(t, out.String(), "Orientation")

	out.Reset()
	require.NoError(t, (&infoCmd{Input: write_rotated_jpeg(t)}).Run(g))
	require.Contains(t, out.String(), "Format:      JPEG")
	require.Contains(t, out.String(), "Size:        4x2")
	require.Contains(t, out.String(), "Orientation: 6")
}

func TestDump(t *testing.T) {
	g, out := test_globals()
	cmd := &dumpCmd{Input: write_test_image(t), Name: "px", PerRow: 16, Group: 4, Spacer: " "}
	cmd.Order = "argb"
	cmd.Header = true
	require.NoError(t, cmd.Run(g))
	require.True(t, strings.HasPrefix(out.String(), "var px = [\n0x41,0x52,0x47,0x42, 0xFF,0x00,0x00,0x07,"), out.String())
}

func TestChannelFlagsValidate(t *testing.T) {
	require.NoError(t, (&ChannelFlags{Order: "argb", Header: true}).validate())
	require.NoError(t, (&ChannelFlags{Order: "rgb"}).validate())
	require.Error(t, (&ChannelFlags{Order: "rgba", Header: true}).validate())
}

func TestRawThenRebuild(t *testing.T) {
	g, _ := test_globals()
	input := write_test_image(t)
	expected, err := pixbuf.Open(input, false)
	require.NoError(t, err)
	dir := t.TempDir()

	for _, header := range []bool{false, true} {
		raw := filepath.Join(dir, "pixels.raw.zst")
		cmd := &rawCmd{Input: input, Output: raw, Zstd: true}
		cmd.Order, cmd.Header = "argb", header
		require.NoError(t, cmd.Run(g))

		rebuilt := filepath.Join(dir, "rebuilt.png")
		rb := &rebuildCmd{Input: raw, Output: rebuilt, Width: 3, Height: 2, Quality: 95, PNGCompression: "best"}
		require.NoError(t, rb.Validate(nil))
		require.NoError(t, rb.Run(g))

		actual, err := pixbuf.Open(rebuilt, false)
		require.NoError(t, err)
		require.Equal(t, expected.ARGB(), actual.ARGB())
	}
}

func TestRawOrders(t *testing.T) {
	g, _ := test_globals()
	input := write_test_image(t)
	dir := t.TempDir()
	for order, size := range map[string]int{"argb": 24, "rgba": 24, "rgb": 18} {
		raw := filepath.Join(dir, order+".raw")
		cmd := &rawCmd{Input: input, Output: raw}
		cmd.Order = order
		require.NoError(t, cmd.Run(g))
		data, err := read_raw(raw)
		require.NoError(t, err)
		require.Len(t, data, size, order)
	}
}

func TestRebuildValidate(t *testing.T) {
	require.Error(t, (&rebuildCmd{Output: "x.png", Width: -1, Height: 1, Quality: 95}).Validate(nil))
	require.Error(t, (&rebuildCmd{Output: "x.xyz", Width: 1, Height: 1, Quality: 95}).Validate(nil))
	require.Error(t, (&rebuildCmd{Output: "x.jpg", Width: 1, Height: 1, Quality: 0}).Validate(nil))
	require.Error(t, (&rebuildCmd{Output: "x.jpg", Width: 1, Height: 1, Quality: 101}).Validate(nil))
	require.NoError(t, (&rebuildCmd{Output: "x.bmp", Width: 1, Height: 1, Quality: 95}).Validate(nil))
}

func TestRebuildEncodeOptions(t *testing.T) {
	g, _ := test_globals()
	dir := t.TempDir()
	raw := filepath.Join(dir, "noise.raw")
	data := make([]byte, 32*32*4)
	for i := 0; i < len(data); i += 4 {
		v := byte(i * 7919 % 251)
		data[i], data[i+1], data[i+2], data[i+3] = 255, v, v*3, 255-v
	}
	require.NoError(t, write_raw(raw, data, false))
	size := func(name string, quality int, compression string) int64 {
		out := filepath.Join(dir, name)
		cmd := &rebuildCmd{Input: raw, Output: out, Width: 32, Height: 32, Quality: quality, PNGCompression: compression}
		require.NoError(t, cmd.Validate(nil))
		require.NoError(t, cmd.Run(g))
		st, err := os.Stat(out)
		require.NoError(t, err)
		return st.Size()
	}
	require.Less(t, size("low.jpg", 5, "default"), size("high.jpg", 100, "default"))
	require.Less(t, size("best.png", 95, "best"), size("none.png", 95, "none"))
}

func TestRebuildOversized(t *testing.T) {
	g, _ := test_globals()
	raw := filepath.Join(t.TempDir(), "empty.raw")
	require.NoError(t, write_raw(raw, nil, false))
	cmd := &rebuildCmd{Input: raw, Output: filepath.Join(t.TempDir(), "x.png"), Width: 1 << 62, Height: 4, Quality: 95}
	require.NoError(t, cmd.Validate(nil))
	require.ErrorIs(t, cmd.Run(g), pixbuf.ErrSizeMismatch)
}
