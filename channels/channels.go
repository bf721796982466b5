// Package channels reorders the bytes of flat pixel buffers between the
// ARGB, RGBA and RGB channel orders.
//
// All functions allocate a new output buffer and never modify their input.
package channels

import (
	"errors"
	"fmt"

	"github.com/kovidgoyal/pixbuf/types"
)

var _ = fmt.Print

// ErrDataCorruption means a buffer length is not a whole number of pixels.
var ErrDataCorruption = errors.New("pixbuf: pixel buffer length is not a multiple of the pixel size")

func check_length(buf []byte, bpp int) error {
	if len(buf)%bpp != 0 {
		return fmt.Errorf("%w: length=%d bytes per pixel=%d", ErrDataCorruption, len(buf), bpp)
	}
	return nil
}

// ToRGBA converts [A,R,G,B] groups to [R,G,B,A].
func ToRGBA(argb []byte) ([]byte, error) {
	if err := check_length(argb, 4); err != nil {
		return nil, err
	}
	ans := make([]byte, len(argb))
	for i := 0; i < len(argb); i += 4 {
		s := argb[i : i+4 : i+4]
		d := ans[i : i+4 : i+4]
		d[0], d[1], d[2], d[3] = s[1], s[2], s[3], s[0]
	}
	return ans, nil
}

// ToRGB converts [A,R,G,B] groups to [R,G,B], discarding alpha.
func ToRGB(argb []byte) ([]byte, error) {
	if err := check_length(argb, 4); err != nil {
		return nil, err
	}
	ans := make([]byte, len(argb)/4*3)
	d := ans
	for i := 0; i < len(argb); i += 4 {
		s := argb[i : i+4 : i+4]
		d[0], d[1], d[2] = s[1], s[2], s[3]
		d = d[3:]
	}
	return ans, nil
}

// ToARGB converts [R,G,B,A] groups to [A,R,G,B]. It is the inverse of ToRGBA.
func ToARGB(rgba []byte) ([]byte, error) {
	if err := check_length(rgba, 4); err != nil {
		return nil, err
	}
	ans := make([]byte, len(rgba))
	for i := 0; i < len(rgba); i += 4 {
		s := rgba[i : i+4 : i+4]
		d := ans[i : i+4 : i+4]
		d[0], d[1], d[2], d[3] = s[3], s[0], s[1], s[2]
	}
	return ans, nil
}

func rgba_to_rgb(rgba []byte) ([]byte, error) {
	if err := check_length(rgba, 4); err != nil {
		return nil, err
	}
	ans := make([]byte, len(rgba)/4*3)
	d := ans
	for i := 0; i < len(rgba); i += 4 {
		copy(d[:3], rgba[i:i+3])
		d = d[3:]
	}
	return ans, nil
}

// Convert reorders buf from one channel order to another. RGB has no alpha
// so it can only be used as a destination. When from == to a copy of buf is
// returned after validating its length.
func Convert(buf []byte, from, to types.ChannelOrder) ([]byte, error) {
	if from == to {
		if err := check_length(buf, from.BytesPerPixel()); err != nil {
			return nil, err
		}
		return append([]byte(nil), buf...), nil
	}
	switch from {
	case types.ARGB:
		switch to {
		case types.RGBA:
			return ToRGBA(buf)
		case types.RGB:
			return ToRGB(buf)
		}
	case types.RGBA:
		switch to {
		case types.ARGB:
			return ToARGB(buf)
		case types.RGB:
			return rgba_to_rgb(buf)
		}
	}
	return nil, fmt.Errorf("pixbuf: cannot convert from %s to %s", from, to)
}
