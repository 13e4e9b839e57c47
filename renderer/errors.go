package renderer

import (
	"errors"
	"fmt"
)

var (
	ErrShaderCompile    = errors.New("shader compilation failed")
	ErrProgramLink      = errors.New("program link failed")
	ErrUnknownAttribute = errors.New("attribute not found in program")
	ErrUnknownUniform   = errors.New("uniform not found in program")
	ErrBufferLayout     = errors.New("vertex data does not match component count")
	ErrEmptyIndexBuffer = errors.New("index buffer is empty")
	ErrNoIndexBuffer    = errors.New("mesh has no index buffer")
	ErrDisposed         = errors.New("renderer has been disposed")
)

// ShaderError carries the driver's info log for a failed compile or link.
// Stage is "vertex", "fragment" or "link".
type ShaderError struct {
	Stage string
	Log   string
	Err   error
}

func (e *ShaderError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("%v: %s", e.Err, e.Log)
	}
	return fmt.Sprintf("%s %v: %s", e.Stage, e.Err, e.Log)
}

func (e *ShaderError) Unwrap() error {
	return e.Err
}

// SymbolError names an attribute or uniform the program could not resolve.
type SymbolError struct {
	Name string
	Err  error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%q: %v", e.Name, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}
