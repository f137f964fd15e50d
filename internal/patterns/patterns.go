// Package patterns holds the test images drawn each frame. Every pattern is
// chosen so that a misplaced buffer swap becomes visible on screen.
package patterns

import (
	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

// Renderer is the slice of the graphics device the patterns draw with.
type Renderer interface {
	ClearColor(r, g, b, a float32)
	Clear()
	NewProgram(vertex, fragment string) uint32
	DeleteProgram(p uint32)
	UniformLocation(p uint32, name string) int32
	UseProgram(p uint32)
	Uniform3f(loc int32, v [3]float32)
	NewVertexArray() uint32
	DeleteVertexArray(v uint32)
	BindVertexArray(v uint32)
	DrawTriangleStrip(first, count int32)
}

// Pattern is one renderable unit. GLInit runs once per rendering context
// and Destroy must be safe on a pattern that holds no GPU resources.
// Render must leave no program or vertex array bound.
type Pattern interface {
	Name() string
	Init()
	GLInit(r Renderer)
	Render(r Renderer, time float64, frame uint64)
	Destroy(r Renderer)
}

// Set maps every display mode to its pattern.
type Set struct {
	patterns [models.DisplayModeCount]Pattern
}

func NewSet(app *models.App) *Set {
	s := &Set{}
	s.patterns[models.DisplayNone] = None{}
	s.patterns[models.DisplayColors] = Colors{}
	s.patterns[models.DisplayPulse] = &Pulse{params: &app.Pulse}
	s.patterns[models.DisplayBars] = &Bars{params: &app.Bars}
	for _, p := range s.patterns {
		p.Init()
	}
	return s
}

// Get returns the pattern for mode, or nil for an unknown mode.
func (s *Set) Get(mode models.DisplayMode) Pattern {
	if mode < 0 || mode >= models.DisplayModeCount {
		return nil
	}
	return s.patterns[mode]
}

func (s *Set) GLInit(r Renderer) {
	for _, p := range s.patterns {
		p.GLInit(r)
	}
}

func (s *Set) Destroy(r Renderer) {
	for _, p := range s.patterns {
		p.Destroy(r)
	}
}

// None draws nothing, which separates host overhead from GPU cost.
type None struct{}

func (None) Name() string                     { return "none" }
func (None) Init()                            {}
func (None) GLInit(Renderer)                  {}
func (None) Render(Renderer, float64, uint64) {}
func (None) Destroy(Renderer)                 {}
