// Package gfxtest provides a recording graphics device for tests.
package gfxtest

import "fmt"

// Device records every call made to it. Timestamps advance by TickNs each
// time one is read; query results are the issue timestamp plus QueryDelay.
type Device struct {
	Calls []string

	TickNs     uint64
	QueryDelay uint64

	now         uint64
	nextHandle  uint32
	queries     map[uint32]uint64
	Program     uint32
	VertexArray uint32
	Viewports   [][4]int
	ClearColors [][4]float32
	Uniforms    [][3]float32
	Live        map[uint32]bool
}

func New() *Device {
	return &Device{
		TickNs:  1000,
		queries: make(map[uint32]uint64),
		Live:    make(map[uint32]bool),
	}
}

func (d *Device) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) handle() uint32 {
	d.nextHandle++
	d.Live[d.nextHandle] = true
	return d.nextHandle
}

// Reset forgets the recorded calls but keeps object state.
func (d *Device) Reset() {
	d.Calls = nil
	d.ClearColors = nil
	d.Uniforms = nil
	d.Viewports = nil
}

func (d *Device) Viewport(x, y, width, height int) {
	d.record("Viewport")
	d.Viewports = append(d.Viewports, [4]int{x, y, width, height})
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor")
	d.ClearColors = append(d.ClearColors, [4]float32{r, g, b, a})
}

func (d *Device) Clear()  { d.record("Clear") }
func (d *Device) Flush()  { d.record("Flush") }
func (d *Device) Finish() { d.record("Finish") }

func (d *Device) NewProgram(vertex, fragment string) uint32 {
	d.record("NewProgram")
	return d.handle()
}

func (d *Device) DeleteProgram(p uint32) {
	d.record("DeleteProgram %d", p)
	delete(d.Live, p)
}

func (d *Device) UniformLocation(p uint32, name string) int32 {
	d.record("UniformLocation %s", name)
	return 0
}

func (d *Device) UseProgram(p uint32) {
	d.record("UseProgram %d", p)
	d.Program = p
}

func (d *Device) Uniform3f(loc int32, v [3]float32) {
	d.record("Uniform3f")
	d.Uniforms = append(d.Uniforms, v)
}

func (d *Device) NewVertexArray() uint32 {
	d.record("NewVertexArray")
	return d.handle()
}

func (d *Device) DeleteVertexArray(v uint32) {
	d.record("DeleteVertexArray %d", v)
	delete(d.Live, v)
}

func (d *Device) BindVertexArray(v uint32) {
	d.record("BindVertexArray %d", v)
	d.VertexArray = v
}

func (d *Device) DrawTriangleStrip(first, count int32) {
	d.record("DrawTriangleStrip %d %d", first, count)
}

func (d *Device) GenQueries(n int) []uint32 {
	d.record("GenQueries %d", n)
	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = d.handle()
	}
	return ids
}

func (d *Device) DeleteQueries(ids []uint32) {
	d.record("DeleteQueries %d", len(ids))
	for _, id := range ids {
		delete(d.Live, id)
		delete(d.queries, id)
	}
}

func (d *Device) QueryTimestamp(id uint32) {
	d.record("QueryTimestamp %d", id)
	d.queries[id] = d.now + d.QueryDelay
}

func (d *Device) QueryResult(id uint32) uint64 {
	d.record("QueryResult %d", id)
	return d.queries[id]
}

func (d *Device) Timestamp() uint64 {
	t := d.now
	d.now += d.TickNs
	return t
}

// Count returns how many recorded calls start with prefix.
func (d *Device) Count(prefix string) int {
	n := 0
	for _, c := range d.Calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
