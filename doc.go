/*
Package pixbuf extracts the raw pixels of images as flat byte buffers with a
known layout and rebuilds images from such buffers.

The canonical buffer holds width*height pixels, four bytes each, in A, R, G,
B order with colors premultiplied by alpha and no row padding. It can
optionally be preceded by the four byte tag "ARGB". RGBA and RGB views are
derived from it with the functions of the channels package. Decoding and
encoding of image files is delegated to the standard library and
golang.org/x/image.
*/
package pixbuf

import "fmt"

// PixbufVersion is a semantic version number.
type PixbufVersion struct {
	Major, Minor, Patch uint
}

func (v PixbufVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

var Version = PixbufVersion{1, 0, 0}
