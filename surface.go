package pixbuf

import (
	"fmt"
	"image"
	"math"

	"github.com/kovidgoyal/pixbuf/types"
	"golang.org/x/image/draw"
)

var _ = fmt.Print

// Surface is an off-screen drawing target with a fixed byte layout.
type Surface interface {
	// Draw renders img into the surface at its native pixel size, with the
	// top left corner of img's bounds mapped to the surface origin. Pixels
	// of the surface are replaced, not blended.
	Draw(img image.Image) error
	// Bytes returns the surface contents as a contiguous buffer in the
	// surface's layout, with no row padding.
	Bytes() []byte
}

// SurfaceProvider allocates drawing surfaces.
type SurfaceProvider interface {
	NewSurface(width, height int, layout types.Layout) (Surface, error)
}

// DrawSurfaceProvider allocates surfaces backed by an *image.RGBA and
// rendered with golang.org/x/image/draw. It supports only
// types.CanonicalLayout.
type DrawSurfaceProvider struct{}

func (DrawSurfaceProvider) NewSurface(width, height int, layout types.Layout) (Surface, error) {
	if layout != types.CanonicalLayout {
		return nil, fmt.Errorf("%w: unsupported layout %s", ErrSurface, layout)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative size %dx%d", ErrSurface, width, height)
	}
	if width > 0 && height > math.MaxInt/4/width {
		return nil, fmt.Errorf("%w: size %dx%d too large", ErrSurface, width, height)
	}
	return &rgba_surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

type rgba_surface struct {
	img *image.RGBA
}

func (s *rgba_surface) Draw(src image.Image) error {
	if src == nil {
		return fmt.Errorf("%w: nothing to draw", ErrDecode)
	}
	draw.Draw(s.img, s.img.Rect, src, src.Bounds().Min, draw.Src)
	return nil
}

// Bytes swizzles the premultiplied R, G, B, A words of the backing image
// into A, R, G, B order.
func (s *rgba_surface) Bytes() []byte {
	ans := make([]byte, len(s.img.Pix))
	for i := 0; i < len(ans); i += 4 {
		p := s.img.Pix[i : i+4 : i+4]
		d := ans[i : i+4 : i+4]
		d[0], d[1], d[2], d[3] = p[3], p[0], p[1], p[2]
	}
	return ans
}
