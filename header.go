package pixbuf

import (
	"bytes"
	"fmt"
)

// HeaderSize is the length of the optional tag at the start of a buffer.
const HeaderSize = 4

// HeaderMagic is the ASCII text "ARGB" that tags serialized buffers.
var HeaderMagic = [HeaderSize]byte{'A', 'R', 'G', 'B'}

// WithHeader returns a new buffer consisting of HeaderMagic followed by buf.
func WithHeader(buf []byte) []byte {
	ans := make([]byte, HeaderSize+len(buf))
	copy(ans, HeaderMagic[:])
	copy(ans[HeaderSize:], buf)
	return ans
}

// HasHeader reports whether buf starts with HeaderMagic.
func HasHeader(buf []byte) bool {
	return len(buf) >= HeaderSize && bytes.Equal(buf[:HeaderSize], HeaderMagic[:])
}

// StripHeader returns the part of buf following HeaderMagic. The result
// shares memory with buf.
func StripHeader(buf []byte) ([]byte, error) {
	if !HasHeader(buf) {
		n := min(len(buf), HeaderSize)
		return nil, fmt.Errorf("%w: got %q", ErrHeaderMismatch, buf[:n])
	}
	return buf[HeaderSize:], nil
}
