package types

import (
	"fmt"
	"strings"
)

var _ = fmt.Print

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	return formatNames[f]
}

// FormatFromName maps the format name reported by image.Decode ("png",
// "jpeg", ...) to a Format.
func FormatFromName(name string) Format {
	switch name {
	case "jpeg", "jpg", "JPEG":
		return JPEG
	case "png", "PNG":
		return PNG
	case "gif", "GIF":
		return GIF
	case "tiff", "tif", "TIFF":
		return TIFF
	case "webp", "WEBP":
		return WEBP
	case "bmp", "BMP":
		return BMP
	}
	return UNKNOWN
}

// ChannelOrder is the position of the alpha, red, green and blue bytes
// within one pixel of a flat buffer.
type ChannelOrder int

const (
	ARGB ChannelOrder = iota
	RGBA
	RGB
)

var channelOrderNames = map[ChannelOrder]string{
	ARGB: "ARGB",
	RGBA: "RGBA",
	RGB:  "RGB",
}

func (c ChannelOrder) String() string {
	if n, ok := channelOrderNames[c]; ok {
		return n
	}
	return fmt.Sprintf("ChannelOrder(%d)", int(c))
}

// BytesPerPixel returns the size of one pixel group, 4 for ARGB and RGBA, 3 for RGB.
func (c ChannelOrder) BytesPerPixel() int {
	if c == RGB {
		return 3
	}
	return 4
}

// ParseChannelOrder is case insensitive.
func ParseChannelOrder(s string) (ChannelOrder, error) {
	switch strings.ToLower(s) {
	case "argb":
		return ARGB, nil
	case "rgba":
		return RGBA, nil
	case "rgb":
		return RGB, nil
	}
	return ARGB, fmt.Errorf("unknown channel order: %q", s)
}

// ByteOrder is the order in which the bytes of a 32-bit pixel word are laid
// out in memory.
type ByteOrder int

const (
	BigEndian32 ByteOrder = iota
	LittleEndian32
)

func (b ByteOrder) String() string {
	if b == LittleEndian32 {
		return "little-endian-32"
	}
	return "big-endian-32"
}

// Layout describes the in-memory layout of a drawing surface.
type Layout struct {
	BitsPerComponent int
	BytesPerPixel    int
	ByteOrder        ByteOrder
	AlphaFirst       bool
	Premultiplied    bool
}

// CanonicalLayout is the layout of every canonical pixel buffer: 8 bits per
// component, 4 bytes per pixel stored as big-endian 32-bit words with the
// alpha channel first and colors premultiplied by alpha. In memory this is
// A, R, G, B.
var CanonicalLayout = Layout{
	BitsPerComponent: 8,
	BytesPerPixel:    4,
	ByteOrder:        BigEndian32,
	AlphaFirst:       true,
	Premultiplied:    true,
}

func (l Layout) String() string {
	alpha := "alpha-last"
	if l.AlphaFirst {
		alpha = "alpha-first"
	}
	pm := "straight"
	if l.Premultiplied {
		pm = "premultiplied"
	}
	return fmt.Sprintf("Layout{%d bpc, %d Bpp, %s, %s, %s}", l.BitsPerComponent, l.BytesPerPixel, l.ByteOrder, alpha, pm)
}
