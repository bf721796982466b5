package pixbuf

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/pixbuf/channels"
)

var _ = fmt.Print

// canonical_size is width*height*4. It fails when the size is negative or
// when the size plus HeaderSize does not fit in an int.
func canonical_size(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: negative dimensions %dx%d", ErrSizeMismatch, width, height)
	}
	if width > 0 && height > (math.MaxInt-HeaderSize)/4/width {
		return 0, fmt.Errorf("%w: %dx%d is too large", ErrSizeMismatch, width, height)
	}
	return width * height * 4, nil
}

func check_size(buf []byte, width, height int) error {
	expected, err := canonical_size(width, height)
	if err != nil {
		return err
	}
	if len(buf) != expected {
		return fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrSizeMismatch, width, height, expected, len(buf))
	}
	return nil
}

// ToImage wraps a canonical headerless buffer in an ARGB image without
// copying it. The image is anchored at the origin.
func ToImage(buf []byte, width, height int) (*ARGB, error) {
	if err := check_size(buf, width, height); err != nil {
		return nil, err
	}
	return NewARGBWithContiguousPixels(buf, 0, 0, width, height)
}

// ToBitmap copies a canonical headerless buffer into a new 8 bits per
// sample, 4 samples per pixel, meshed RGBA Bitmap with a stride of width*4.
// The color samples remain premultiplied.
func ToBitmap(buf []byte, width, height int) (*Bitmap, error) {
	if err := check_size(buf, width, height); err != nil {
		return nil, err
	}
	rgba, err := channels.ToRGBA(buf)
	if err != nil {
		return nil, err
	}
	return &Bitmap{
		Pix:             rgba,
		Stride:          width * 4,
		Width:           width,
		Height:          height,
		BitsPerSample:   8,
		SamplesPerPixel: 4,
		HasAlpha:        true,
		Planar:          false,
	}, nil
}
