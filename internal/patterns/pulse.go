package patterns

import (
	"math"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

// Pulse fades the whole screen between black and white.
type Pulse struct {
	params *models.Pulse
}

func (p *Pulse) Name() string     { return "pulse" }
func (p *Pulse) Init()            { p.params.Reset() }
func (p *Pulse) GLInit(Renderer)  {}
func (p *Pulse) Destroy(Renderer) {}

func (p *Pulse) Render(r Renderer, time float64, _ uint64) {
	v := PulseLevel(time, p.params.Speed)
	r.ClearColor(v, v, v, 1)
	r.Clear()
}

func PulseLevel(time float64, speed float32) float32 {
	return float32(math.Sin(time*float64(speed)))*0.5 + 0.5
}
