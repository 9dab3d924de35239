//go:build !js

package opengl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowConfig describes the window opened by OpenWindow.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	// Samples requests a multisampled framebuffer. Zero disables MSAA.
	Samples int
}

// Window is a GLFW window with a current OpenGL 2.1 context. It implements
// flicker.Surface and flicker.ResizeNotifier using the framebuffer size, which
// differs from the window size on high-DPI displays.
type Window struct {
	*glfw.Window
}

// OpenWindow initializes GLFW, opens a window and makes its context current.
// Call from the main goroutine after runtime.LockOSThread. Close terminates
// GLFW.
func OpenWindow(cfg WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("opengl: glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, cfg.Samples)

	w, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("opengl: create window: %w", err)
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	return &Window{Window: w}, nil
}

// Size implements flicker.Surface.
func (w *Window) Size() (int, int) {
	return w.GetFramebufferSize()
}

// OnResize implements flicker.ResizeNotifier.
func (w *Window) OnResize(fn func(width, height int)) {
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

// Frame swaps buffers and processes pending events. It reports false once
// the user has asked to close the window.
func (w *Window) Frame() bool {
	w.SwapBuffers()
	glfw.PollEvents()
	return !w.ShouldClose()
}

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	w.Destroy()
	glfw.Terminate()
}
