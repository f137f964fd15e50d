package patterns

import (
	"math"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

const barsVertex = `#version 330 core
void main() {
	vec2 pos = vec2((gl_VertexID & 2) >> 1, 1 - (gl_VertexID & 1));
	gl_Position = vec4(pos * 2.0 - 1.0, 0, 1);
}
`

// data.x is the stripe width, data.z the horizontal offset in pixels.
const barsFragment = `#version 330 core
out vec4 color;
uniform vec3 data;
void main() {
	vec3 c[2] = vec3[2](vec3(0.0, 0.0, 0.0), vec3(1.0, 1.0, 1.0));
	color = vec4(c[(int(gl_FragCoord.x + data.z) / int(data.x)) % 2], 1);
}
`

// Bars scrolls alternating black and white vertical stripes across the
// screen. A tear shows up as a break in the stripe edges.
type Bars struct {
	params  *models.Bars
	program uint32
	vao     uint32
	locData int32
}

func (b *Bars) Name() string { return "bars" }

func (b *Bars) Init() {
	b.program = 0
	b.vao = 0
	b.locData = -1
	b.params.Reset()
}

func (b *Bars) GLInit(r Renderer) {
	b.program = r.NewProgram(barsVertex, barsFragment)
	b.locData = r.UniformLocation(b.program, "data")
	b.vao = r.NewVertexArray()
}

func (b *Bars) Destroy(r Renderer) {
	if b.program != 0 {
		r.DeleteProgram(b.program)
		b.program = 0
	}
	if b.vao != 0 {
		r.DeleteVertexArray(b.vao)
		b.vao = 0
	}
}

func (b *Bars) Render(r Renderer, time float64, _ uint64) {
	b.params.Offset = BarOffset(time, b.params.Speed, b.params.Width)

	r.Clear()
	r.UseProgram(b.program)
	r.Uniform3f(b.locData, [3]float32{b.params.Width, b.params.Speed, b.params.Offset})
	r.BindVertexArray(b.vao)
	r.DrawTriangleStrip(0, 4)
	r.UseProgram(0)
	r.BindVertexArray(0)
}

// BarOffset is the scroll position after time seconds, wrapped to one
// black and white period.
func BarOffset(time float64, speed, width float32) float32 {
	return float32(math.Mod(float64(speed)*time, float64(width)*2))
}
