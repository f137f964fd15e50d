package shaders

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		return shader, fmt.Errorf("failed to compile %s shader: %s", stageName(shaderType), shaderLog(shader))
	}

	return shader, nil
}

// NewProgram compiles and links a program from vertex and fragment sources.
// Failures are logged with the driver's info log and the program handle is
// returned anyway; a broken program draws nothing.
func NewProgram(vertex, fragment string, logger *slog.Logger) uint32 {
	vertShader, err := CompileShaderFromSource(vertex, gl.VERTEX_SHADER)
	if err != nil {
		logger.Warn("shader compile failed", "error", err)
	}
	fragShader, err := CompileShaderFromSource(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		logger.Warn("shader compile failed", "error", err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		logger.Warn("failed to link program", "program", program, "log", programLog(program))
	}

	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)
	return program
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	}
	return "unknown"
}

func shaderLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength < 1 {
		return ""
	}
	logMsg := make([]byte, logLength)
	gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
	return trimLog(logMsg)
}

func programLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength < 1 {
		return ""
	}
	logMsg := make([]byte, logLength)
	gl.GetProgramInfoLog(program, logLength, nil, &logMsg[0])
	return trimLog(logMsg)
}

// trimLog drops the terminating NUL and trailing whitespace of an info log.
func trimLog(b []byte) string {
	for len(b) > 0 {
		switch b[len(b)-1] {
		case 0, '\n', '\r', ' ', '\t':
			b = b[:len(b)-1]
			continue
		}
		break
	}
	return string(b)
}
