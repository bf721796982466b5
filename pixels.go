package pixbuf

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/kovidgoyal/pixbuf/channels"
)

var _ = fmt.Print

// Pixels bundles a displayable image, its size and its canonical ARGB
// buffer. It is immutable: every method returns fresh data or data that the
// caller must not modify.
type Pixels struct {
	img           image.Image
	width, height int

	// argb is the canonical buffer, preceded by HeaderMagic when header is set.
	argb   []byte
	header bool
}

func new_pixels(img image.Image, buf []byte, width, height int, header bool) *Pixels {
	return &Pixels{img: img, argb: buf, width: width, height: height, header: header}
}

// New extracts the canonical buffer of img. img is shared, not copied, and
// must not be modified while the returned value is in use.
func New(img image.Image, includeHeader bool, opts ...ExtractOption) (*Pixels, error) {
	buf, w, h, err := Extract(img, includeHeader, opts...)
	if err != nil {
		return nil, err
	}
	return new_pixels(img, buf, w, h, includeHeader), nil
}

// NewFromBitmap samples src, which must have 4 samples per pixel. The image
// handle of the result is synthesized from the extracted buffer.
func NewFromBitmap(src ComponentSource, includeHeader bool, opts ...ExtractOption) (*Pixels, error) {
	buf, w, h, err := ExtractBitmap(src, includeHeader, opts...)
	if err != nil {
		return nil, err
	}
	pix := buf
	if includeHeader {
		pix = buf[HeaderSize:]
	}
	img, err := ToImage(pix, w, h)
	if err != nil {
		return nil, err
	}
	return new_pixels(img, buf, w, h, includeHeader), nil
}

// Open decodes the image file at path.
func Open(path string, includeHeader bool, opts ...ExtractOption) (*Pixels, error) {
	r, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return New(r.Image, includeHeader, opts...)
}

// OpenURL decodes the image at a file://, http:// or https:// URL, or a
// plain path.
func OpenURL(ctx context.Context, rawurl string, includeHeader bool, opts ...ExtractOption) (*Pixels, error) {
	r, err := DecodeURL(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return New(r.Image, includeHeader, opts...)
}

// FromARGB builds Pixels from a canonical buffer, with or without
// HeaderMagic. The buffer is copied.
func FromARGB(buf []byte, width, height int) (*Pixels, error) {
	size, err := canonical_size(width, height)
	if err != nil {
		return nil, err
	}
	includeHeader := len(buf) == size+HeaderSize
	pix := buf
	if includeHeader {
		if pix, err = StripHeader(buf); err != nil {
			return nil, err
		}
	}
	pix = append([]byte(nil), pix...)
	img, err := ToImage(pix, width, height)
	if err != nil {
		return nil, err
	}
	return new_pixels(img, finish(pix, includeHeader), width, height, includeHeader), nil
}

// Image returns the displayable image.
func (p *Pixels) Image() image.Image { return p.img }

func (p *Pixels) Width() int  { return p.width }
func (p *Pixels) Height() int { return p.height }

func (p *Pixels) Size() image.Point { return image.Point{p.width, p.height} }

// HasHeader reports whether the buffer returned by ARGB starts with HeaderMagic.
func (p *Pixels) HasHeader() bool {
	return p.header
}

// ARGB returns a copy of the canonical buffer, including the header if
// one was requested at construction.
func (p *Pixels) ARGB() []byte {
	return append([]byte(nil), p.argb...)
}

// pix is the canonical buffer without any header. It must not be modified.
func (p *Pixels) pix() []byte {
	if p.HasHeader() {
		return p.argb[HeaderSize:]
	}
	return p.argb
}

// RGBA returns the pixels in R, G, B, A order. Any header is not included.
func (p *Pixels) RGBA() ([]byte, error) {
	return channels.ToRGBA(p.pix())
}

// RGB returns the pixels in R, G, B order. Any header is not included.
func (p *Pixels) RGB() ([]byte, error) {
	return channels.ToRGB(p.pix())
}

// String renders the canonical buffer, including any header, with
// HexLiteral and default formatting.
func (p *Pixels) String() string {
	return HexLiteral(p.argb)
}

// Bitmap returns a new RGBA Bitmap holding the pixels.
func (p *Pixels) Bitmap() (*Bitmap, error) {
	return ToBitmap(p.pix(), p.width, p.height)
}

// Encode writes the pixels to w in the specified format.
func (p *Pixels) Encode(w io.Writer, format Format, opts ...EncodeOption) error {
	b, err := p.Bitmap()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return Encode(w, b.Image(), format, opts...)
}

// Save writes the pixels to filename with the format taken from its extension.
func (p *Pixels) Save(filename string, opts ...EncodeOption) error {
	b, err := p.Bitmap()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return Save(b.Image(), filename, opts...)
}
