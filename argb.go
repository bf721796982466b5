package pixbuf

import (
	"fmt"
	"image"
	"image/color"
)

var _ = fmt.Print

// ARGB is an in-memory image whose pixels are stored as alpha-premultiplied
// A, R, G, B bytes, the canonical buffer layout. Its color model is
// color.RGBAModel.
type ARGB struct {
	// Pix holds the image's pixels, in A, R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func (p *ARGB) ColorModel() color.Model { return color.RGBAModel }

func (p *ARGB) Bounds() image.Rectangle { return p.Rect }

func (p *ARGB) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// RGBAAt returns the premultiplied color at (x, y).
func (p *ARGB) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4] // Small cap improves performance, see https://golang.org/issue/27857
	return color.RGBA{s[1], s[2], s[3], s[0]}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *ARGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *ARGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	p.SetRGBA(x, y, color.RGBAModel.Convert(c).(color.RGBA))
}

func (p *ARGB) SetRGBA(x, y int, c color.RGBA) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	s[0] = c.A
	s[1] = c.R
	s[2] = c.G
	s[3] = c.B
}

// SubImage returns an image representing the portion of the image p visible
// through r. The returned value shares pixels with the original image.
func (p *ARGB) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	// If r1 and r2 are Rectangles, r1.Intersect(r2) is not guaranteed to be inside
	// either r1 or r2 if the intersection is empty. Without explicitly checking for
	// this, the Pix[i:] expression below can panic.
	if r.Empty() {
		return &ARGB{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &ARGB{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *ARGB) Opaque() bool {
	if p.Rect.Empty() {
		return true
	}
	i0, i1 := 0, p.Rect.Dx()*4
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for i := i0; i < i1; i += 4 {
			if p.Pix[i] != 0xff {
				return false
			}
		}
		i0 += p.Stride
		i1 += p.Stride
	}
	return true
}

// contiguous copies the visible pixels into a buffer with no row padding.
func (p *ARGB) contiguous() []byte {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	row_len := w * 4
	ans := make([]byte, row_len*h)
	for y := range h {
		copy(ans[y*row_len:(y+1)*row_len], p.Pix[y*p.Stride:y*p.Stride+row_len])
	}
	return ans
}

func NewARGB(r image.Rectangle) *ARGB {
	return &ARGB{
		Pix:    make([]uint8, 4*r.Dx()*r.Dy()),
		Stride: 4 * r.Dx(),
		Rect:   r,
	}
}

// NewARGBWithContiguousPixels wraps p without copying it.
func NewARGBWithContiguousPixels(p []byte, left, top, width, height int) (*ARGB, error) {
	if err := check_size(p, width, height); err != nil {
		return nil, err
	}
	return &ARGB{
		Pix:    p,
		Stride: 4 * width,
		Rect:   image.Rectangle{image.Point{left, top}, image.Point{left + width, top + height}},
	}, nil
}
