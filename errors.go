package pixbuf

import (
	"errors"

	"github.com/kovidgoyal/pixbuf/channels"
)

var (
	// ErrDecode means a source could not be decoded to a raster.
	ErrDecode = errors.New("pixbuf: cannot decode image")
	// ErrSurface means a drawing surface could not be allocated.
	ErrSurface = errors.New("pixbuf: cannot create drawing surface")
	// ErrFormat means a raw bitmap has a sample layout that cannot be read,
	// or does not have the 4 samples per pixel extraction needs.
	ErrFormat = errors.New("pixbuf: unsupported bitmap format")
	// ErrSizeMismatch means a buffer length is not width*height*4.
	ErrSizeMismatch = errors.New("pixbuf: buffer size does not match image dimensions")
	// ErrHeaderMismatch means a buffer does not start with HeaderMagic.
	ErrHeaderMismatch = errors.New("pixbuf: buffer does not start with the ARGB header")
	// ErrEncode wraps failures of the encoder and of writing its output.
	ErrEncode = errors.New("pixbuf: cannot encode image")
	// ErrUnsupportedFormat means the given image format is not supported.
	ErrUnsupportedFormat = errors.New("pixbuf: unsupported image format")
)

// ErrDataCorruption means a buffer length is not a whole number of pixels.
var ErrDataCorruption = channels.ErrDataCorruption
