package flicker

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLoggerNilRestoresDefault(t *testing.T) {
	SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestCompileFailureIsLogged(t *testing.T) {
	buf := captureLogs(t)
	ctx := newFakeContext()
	ctx.failStage[FragmentShader] = "0:3: syntax error"

	err := Render(ctx, NewRectangle(1, 1, ColorWhite), Identity(), 1)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "shader compile failed")
	assert.Contains(t, out, "stage=fragment")
	assert.Contains(t, out, "syntax error")
}

func TestResourceLifecycleIsLoggedAtDebug(t *testing.T) {
	buf := captureLogs(t)
	ctx := newFakeContext()

	require.NoError(t, Render(ctx, NewRectangle(1, 1, ColorWhite), Identity(), 1))
	UnloadRectangles(ctx)

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "program created")
	assert.Contains(t, out, "program released")
	assert.Contains(t, out, "kind=rectangle")
}
