package pixbuf

import (
	"bytes"
	"fmt"

	"github.com/kettek/apng"
	"github.com/kovidgoyal/pixbuf/meta"
	"github.com/kovidgoyal/pixbuf/types"
)

var _ = fmt.Print

var png_magic = []byte("\x89PNG\r\n\x1a\n")

// decode_png decodes PNG and APNG data. An animated PNG yields its default
// image when it has one, otherwise its first frame. Both cover the full canvas.
func decode_png(data []byte) (*Raster, error) {
	p, err := apng.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	md := &meta.Data{Format: types.PNG}
	var first *apng.Frame
	for i := range p.Frames {
		f := &p.Frames[i]
		if f.IsDefault {
			first = f
			continue
		}
		if md.NumFrames == 0 && first == nil {
			first = f
		}
		md.NumFrames++
	}
	if first == nil || first.Image == nil {
		return nil, fmt.Errorf("%w: PNG has no image data", ErrDecode)
	}
	md.HasFrames = md.NumFrames > 1
	md.NumFrames = max(1, md.NumFrames)
	b := first.Image.Bounds()
	md.PixelWidth, md.PixelHeight = uint32(b.Dx()), uint32(b.Dy())
	md.BitsPerComponent = meta.BitsPerComponent(first.Image.ColorModel())
	if md.HasFrames {
		Logger().Debug("animated PNG, using first image only", "frames", md.NumFrames, "default_image", first.IsDefault)
	}
	return &Raster{Image: first.Image, Metadata: md}, nil
}
