package pixconv_test

import (
	"bytes"
	"log/slog"
	"testing"

	"deedles.dev/pixconv"
	"deedles.dev/pixconv/bitmap"
	"deedles.dev/pixconv/format"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	require.False(t, pixconv.Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	pixconv.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer pixconv.SetLogger(nil)

	src, err := bitmap.New(1, 1, format.RGBA8888)
	require.Nil(t, err)
	_, err = pixconv.Convert(src, format.RGB565)
	require.Nil(t, err)

	require.Contains(t, buf.String(), "dst=RGB_565")
	require.Contains(t, buf.String(), "medium=8")
}
