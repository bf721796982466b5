package pixbuf

import (
	"errors"
	"fmt"
	"image"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/pixbuf/types"
)

var _ = fmt.Print

type extractConfig struct {
	provider SurfaceProvider
	procs    int
}

var defaultExtractConfig = extractConfig{
	provider: DrawSurfaceProvider{},
	procs:    0,
}

// ExtractOption sets an optional parameter for Extract, ExtractBitmap and
// the constructors of Pixels.
type ExtractOption func(*extractConfig)

// WithSurfaceProvider sets the provider of the drawing surface used to
// normalize decoded images. Default is DrawSurfaceProvider.
func WithSurfaceProvider(p SurfaceProvider) ExtractOption {
	return func(c *extractConfig) {
		if p != nil {
			c.provider = p
		}
	}
}

// WithProcs sets the number of goroutines used to sample raw bitmaps. Zero
// (the default) means GOMAXPROCS.
func WithProcs(n int) ExtractOption {
	return func(c *extractConfig) {
		c.procs = max(0, n)
	}
}

func new_extract_config(opts []ExtractOption) extractConfig {
	cfg := defaultExtractConfig
	for _, option := range opts {
		option(&cfg)
	}
	return cfg
}

func finish(buf []byte, includeHeader bool) []byte {
	if includeHeader {
		return WithHeader(buf)
	}
	return buf
}

// Extract renders img onto a surface with types.CanonicalLayout and returns
// its contents: width*height*4 bytes in A, R, G, B order, premultiplied,
// preceded by HeaderMagic when includeHeader is true. The image is never
// scaled and never modified.
func Extract(img image.Image, includeHeader bool, opts ...ExtractOption) (buf []byte, width, height int, err error) {
	if img == nil {
		return nil, 0, 0, fmt.Errorf("%w: no image", ErrDecode)
	}
	cfg := new_extract_config(opts)
	b := img.Bounds()
	width, height = b.Dx(), b.Dy()
	if a, ok := img.(*ARGB); ok {
		Logger().Debug("extracting canonical pixels by copy", "width", width, "height", height)
		return finish(a.contiguous(), includeHeader), width, height, nil
	}
	s, err := cfg.provider.NewSurface(width, height, types.CanonicalLayout)
	if err != nil {
		if !errors.Is(err, ErrSurface) {
			err = fmt.Errorf("%w: %w", ErrSurface, err)
		}
		return nil, 0, 0, err
	}
	if err = s.Draw(img); err != nil {
		if !errors.Is(err, ErrSurface) {
			err = fmt.Errorf("%w: %w", ErrSurface, err)
		}
		return nil, 0, 0, err
	}
	buf = s.Bytes()
	if expected := width * height * 4; len(buf) != expected {
		return nil, 0, 0, fmt.Errorf("%w: surface returned %d bytes for %dx%d", ErrSurface, len(buf), width, height)
	}
	Logger().Debug("extracted canonical pixels via surface", "type", fmt.Sprintf("%T", img), "width", width, "height", height)
	return finish(buf, includeHeader), width, height, nil
}

// scale_component converts a normalized component to 8 bits by multiplying
// by 255 and truncating.
func scale_component(c float64) uint8 {
	switch {
	case c <= 0:
		return 0
	case c >= 1:
		return 255
	}
	return uint8(c * 255)
}

// ExtractBitmap samples every pixel of src and returns the canonical buffer
// as Extract does. src must have exactly 4 samples per pixel. Components are
// converted by multiplying by 255 and truncating. An 8-bit meshed RGBA
// *Bitmap is read directly from its bytes.
func ExtractBitmap(src ComponentSource, includeHeader bool, opts ...ExtractOption) (buf []byte, width, height int, err error) {
	if src == nil {
		return nil, 0, 0, fmt.Errorf("%w: no bitmap", ErrDecode)
	}
	if n := src.SampleCount(); n != 4 {
		return nil, 0, 0, fmt.Errorf("%w: %d samples per pixel, need 4", ErrFormat, n)
	}
	bm, is_bitmap := src.(*Bitmap)
	if is_bitmap {
		if err = bm.Validate(); err != nil {
			return nil, 0, 0, err
		}
	}
	cfg := new_extract_config(opts)
	width, height = src.PixelSize()
	if width < 0 || height < 0 {
		return nil, 0, 0, fmt.Errorf("%w: negative bitmap dimensions %dx%d", ErrSizeMismatch, width, height)
	}
	size, err := canonical_size(width, height)
	if err != nil {
		return nil, 0, 0, err
	}
	buf = make([]byte, size)
	var f func(start, limit int)
	if is_bitmap && bm.is_rgba8() {
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := bm.Pix[y*bm.Stride : y*bm.Stride+width*4]
				drow := buf[y*width*4 : (y+1)*width*4]
				for i := 0; i < len(row); i += 4 {
					s := row[i : i+4 : i+4]
					d := drow[i : i+4 : i+4]
					d[0], d[1], d[2], d[3] = s[3], s[0], s[1], s[2]
				}
			}
		}
		Logger().Debug("extracting bitmap by direct byte access", "width", width, "height", height)
	} else {
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				drow := buf[y*width*4 : (y+1)*width*4]
				for x := range width {
					r, g, b, a := src.Components(x, y)
					d := drow[x*4 : x*4+4 : x*4+4]
					d[0], d[1], d[2], d[3] = scale_component(a), scale_component(r), scale_component(g), scale_component(b)
				}
			}
		}
		Logger().Debug("extracting bitmap by sampling components", "type", fmt.Sprintf("%T", src), "width", width, "height", height)
	}
	if height > 0 && width > 0 {
		if err = parallel.Run_in_parallel_over_range(cfg.procs, f, 0, height); err != nil {
			return nil, 0, 0, err
		}
	}
	return finish(buf, includeHeader), width, height, nil
}
