package pixbuf

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		require.False(t, l.Enabled(context.Background(), level), "default logger enabled for %v", level)
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	_, _, _, err := Extract(image.NewGray(image.Rect(0, 0, 2, 2)), false)
	require.NoError(t, err)
	require.True(t, strings.Contains(buf.String(), "extracted canonical pixels via surface"), buf.String())

	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
