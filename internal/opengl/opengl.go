// Package opengl implements the graphics device on a GL 3.3 core context.
package opengl

import (
	"fmt"
	"log/slog"

	"github.com/ThatOtherAndrew/teardetect/internal/shaders"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type Device struct {
	logger *slog.Logger
}

// Load binds the GL entry points of the current context.
func Load(logger *slog.Logger) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("loaded GL",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{logger: logger}, nil
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) Flush()  { gl.Flush() }
func (d *Device) Finish() { gl.Finish() }

func (d *Device) NewProgram(vertex, fragment string) uint32 {
	return shaders.NewProgram(vertex, fragment, d.logger)
}

func (d *Device) DeleteProgram(p uint32) {
	gl.DeleteProgram(p)
}

func (d *Device) UniformLocation(p uint32, name string) int32 {
	return gl.GetUniformLocation(p, gl.Str(name+"\x00"))
}

func (d *Device) UseProgram(p uint32) {
	gl.UseProgram(p)
}

func (d *Device) Uniform3f(loc int32, v [3]float32) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// NewVertexArray returns an empty vertex array; the patterns generate their
// vertices from gl_VertexID.
func (d *Device) NewVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) DeleteVertexArray(v uint32) {
	gl.DeleteVertexArrays(1, &v)
}

func (d *Device) BindVertexArray(v uint32) {
	gl.BindVertexArray(v)
}

func (d *Device) DrawTriangleStrip(first, count int32) {
	gl.DrawArrays(gl.TRIANGLE_STRIP, first, count)
}

func (d *Device) GenQueries(n int) []uint32 {
	ids := make([]uint32, n)
	if n > 0 {
		gl.GenQueries(int32(n), &ids[0])
	}
	return ids
}

func (d *Device) DeleteQueries(ids []uint32) {
	if len(ids) > 0 {
		gl.DeleteQueries(int32(len(ids)), &ids[0])
	}
}

func (d *Device) QueryTimestamp(id uint32) {
	gl.QueryCounter(id, gl.TIMESTAMP)
}

// QueryResult blocks until the query is available.
func (d *Device) QueryResult(id uint32) uint64 {
	var result uint64
	gl.GetQueryObjectui64v(id, gl.QUERY_RESULT, &result)
	return result
}

// Timestamp reads the GL clock as seen by the client.
func (d *Device) Timestamp() uint64 {
	var t int64
	gl.GetInteger64v(gl.TIMESTAMP, &t)
	return uint64(t)
}
