package pixbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	require.Equal(t, "1.2.3", PixbufVersion{1, 2, 3}.String())
	require.Equal(t, "1.0.0", Version.String())
}
