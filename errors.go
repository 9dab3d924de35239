package flicker

import (
	"errors"
	"fmt"
)

var (
	// ErrShaderCompile reports that a shader stage failed to compile.
	ErrShaderCompile = errors.New("shader compile failed")
	// ErrProgramLink reports that a shader program failed to link.
	ErrProgramLink = errors.New("program link failed")
	// ErrTextureUpload reports that an image could not be uploaded to a context.
	ErrTextureUpload = errors.New("texture upload failed")
)

// GraphicsResourceError is returned when a GPU resource needed to draw a node
// could not be created. The node's own draw is skipped; its children still render.
type GraphicsResourceError struct {
	Kind string // drawable kind or "texture"
	Op   string // what was being created
	Err  error
}

func (e *GraphicsResourceError) Error() string {
	return fmt.Sprintf("flicker: %s %s: %v", e.Kind, e.Op, e.Err)
}

func (e *GraphicsResourceError) Unwrap() error { return e.Err }
