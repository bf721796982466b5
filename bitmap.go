package pixbuf

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

var _ = fmt.Print

// ComponentSource is a raster that can only be read one pixel at a time
// through normalized floating point components.
type ComponentSource interface {
	// SampleCount is the number of samples stored per pixel, including alpha.
	SampleCount() int
	PixelSize() (width, height int)
	// Components returns the red, green, blue and alpha values of the pixel
	// at (x, y), each in the range [0, 1]. x and y are zero based.
	Components(x, y int) (r, g, b, a float64)
}

// Bitmap is a raster with an explicitly known memory layout. Samples are
// stored red, green, blue then alpha (or gray then alpha), 8 bits or 16 bits
// big-endian each. Color samples are stored exactly as given, a Bitmap built
// from a canonical buffer holds premultiplied values.
//
// For a meshed (non-planar) bitmap the sample s of pixel (x, y) starts at
// Pix[y*Stride + (x*SamplesPerPixel+s)*BitsPerSample/8]. For a planar bitmap
// each sample has its own plane of Height*Stride bytes, one after another,
// and the sample starts at Pix[s*Height*Stride + y*Stride + x*BitsPerSample/8].
type Bitmap struct {
	Pix             []uint8
	Stride          int
	Width, Height   int
	BitsPerSample   int
	SamplesPerPixel int
	HasAlpha        bool
	Planar          bool
}

// NewBitmap allocates a zeroed meshed bitmap.
func NewBitmap(width, height, bitsPerSample, samplesPerPixel int) (*Bitmap, error) {
	b := &Bitmap{
		Width: width, Height: height, BitsPerSample: bitsPerSample, SamplesPerPixel: samplesPerPixel,
		HasAlpha: samplesPerPixel == 2 || samplesPerPixel == 4,
	}
	if width > 0 && width <= math.MaxInt/8 {
		b.Stride = width * samplesPerPixel * bitsPerSample / 8
	}
	if err := b.validate_layout(); err != nil {
		return nil, err
	}
	b.Pix = make([]uint8, b.Stride*height)
	return b, nil
}

func (b *Bitmap) bytes_per_sample() int { return b.BitsPerSample / 8 }

func (b *Bitmap) validate_layout() error {
	switch {
	case b.Width < 0 || b.Height < 0:
		return fmt.Errorf("%w: negative bitmap dimensions %dx%d", ErrSizeMismatch, b.Width, b.Height)
	case b.BitsPerSample != 8 && b.BitsPerSample != 16:
		return fmt.Errorf("%w: unsupported bits per sample: %d", ErrFormat, b.BitsPerSample)
	case b.SamplesPerPixel < 1 || b.SamplesPerPixel > 4:
		return fmt.Errorf("%w: unsupported samples per pixel: %d", ErrFormat, b.SamplesPerPixel)
	case b.HasAlpha != (b.SamplesPerPixel == 2 || b.SamplesPerPixel == 4):
		return fmt.Errorf("%w: %d samples per pixel with has alpha=%v", ErrFormat, b.SamplesPerPixel, b.HasAlpha)
	}
	if b.Width > math.MaxInt/8 {
		return fmt.Errorf("%w: bitmap width %d is too large", ErrSizeMismatch, b.Width)
	}
	row := b.Width * b.bytes_per_sample()
	if !b.Planar {
		row *= b.SamplesPerPixel
	}
	if b.Stride < row {
		return fmt.Errorf("%w: stride %d too small for a row of %d bytes", ErrSizeMismatch, b.Stride, row)
	}
	if b.Height > 0 && b.Stride > math.MaxInt/b.planes()/b.Height {
		return fmt.Errorf("%w: bitmap of %d rows with stride %d is too large", ErrSizeMismatch, b.Height, b.Stride)
	}
	return nil
}

func (b *Bitmap) planes() int {
	if b.Planar {
		return b.SamplesPerPixel
	}
	return 1
}

// Validate checks that the declared layout is supported and that Pix is
// large enough to hold it.
func (b *Bitmap) Validate() error {
	if err := b.validate_layout(); err != nil {
		return err
	}
	needed := b.Stride * b.Height * b.planes()
	if len(b.Pix) < needed {
		return fmt.Errorf("%w: bitmap needs %d bytes has %d", ErrSizeMismatch, needed, len(b.Pix))
	}
	return nil
}

func (b *Bitmap) SampleCount() int { return b.SamplesPerPixel }

func (b *Bitmap) PixelSize() (int, int) { return b.Width, b.Height }

func (b *Bitmap) sample_offset(x, y, s int) int {
	bps := b.bytes_per_sample()
	if b.Planar {
		return s*b.Height*b.Stride + y*b.Stride + x*bps
	}
	return y*b.Stride + (x*b.SamplesPerPixel+s)*bps
}

func (b *Bitmap) sample(x, y, s int) float64 {
	i := b.sample_offset(x, y, s)
	if b.BitsPerSample == 16 {
		return float64(uint16(b.Pix[i])<<8|uint16(b.Pix[i+1])) / 0xffff
	}
	return float64(b.Pix[i]) / 0xff
}

func (b *Bitmap) sample16(x, y, s int) uint16 {
	i := b.sample_offset(x, y, s)
	if b.BitsPerSample == 16 {
		return uint16(b.Pix[i])<<8 | uint16(b.Pix[i+1])
	}
	return uint16(b.Pix[i]) * 0x101
}

func (b *Bitmap) Components(x, y int) (r, g, bl, a float64) {
	a = 1
	switch b.SamplesPerPixel {
	case 1:
		r = b.sample(x, y, 0)
		g, bl = r, r
	case 2:
		r = b.sample(x, y, 0)
		g, bl = r, r
		a = b.sample(x, y, 1)
	case 3:
		r, g, bl = b.sample(x, y, 0), b.sample(x, y, 1), b.sample(x, y, 2)
	default:
		r, g, bl, a = b.sample(x, y, 0), b.sample(x, y, 1), b.sample(x, y, 2), b.sample(x, y, 3)
	}
	return
}

// is_rgba8 reports whether the samples can be read directly as R, G, B, A bytes.
func (b *Bitmap) is_rgba8() bool {
	return b.BitsPerSample == 8 && b.SamplesPerPixel == 4 && b.HasAlpha && !b.Planar
}

func (b *Bitmap) ColorModel() color.Model { return color.RGBA64Model }

func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }

func (b *Bitmap) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(b.Bounds())) {
		return color.RGBA64{}
	}
	var c color.RGBA64
	c.A = 0xffff
	switch b.SamplesPerPixel {
	case 1, 2:
		c.R = b.sample16(x, y, 0)
		c.G, c.B = c.R, c.R
		if b.SamplesPerPixel == 2 {
			c.A = b.sample16(x, y, 1)
		}
	default:
		c.R, c.G, c.B = b.sample16(x, y, 0), b.sample16(x, y, 1), b.sample16(x, y, 2)
		if b.SamplesPerPixel == 4 {
			c.A = b.sample16(x, y, 3)
		}
	}
	return c
}

// Image returns the bitmap as a standard library image. An 8-bit RGBA
// bitmap is returned as an *image.RGBA sharing Pix, otherwise the bitmap
// itself is returned.
func (b *Bitmap) Image() image.Image {
	if b.is_rgba8() {
		return &image.RGBA{Pix: b.Pix, Stride: b.Stride, Rect: b.Bounds()}
	}
	return b
}
