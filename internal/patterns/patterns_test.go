package patterns

import (
	"math"
	"testing"

	"github.com/ThatOtherAndrew/teardetect/internal/gfxtest"
	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

func TestSetCoversEveryMode(t *testing.T) {
	app := models.NewApp()
	s := NewSet(app)
	for m := models.DisplayNone; m < models.DisplayModeCount; m++ {
		p := s.Get(m)
		if p == nil {
			t.Fatalf("no pattern for %v", m)
		}
		if p.Name() != m.String() {
			t.Errorf("mode %v maps to pattern %q", m, p.Name())
		}
	}
	if s.Get(models.DisplayModeCount) != nil || s.Get(-1) != nil {
		t.Error("out of range mode returned a pattern")
	}
}

func TestNoneDrawsNothing(t *testing.T) {
	dev := gfxtest.New()
	None{}.Render(dev, 1.5, 3)
	if len(dev.Calls) != 0 {
		t.Errorf("none pattern issued %v", dev.Calls)
	}
}

func TestColorsCycleByFrame(t *testing.T) {
	dev := gfxtest.New()
	for f := uint64(0); f < 16; f++ {
		Colors{}.Render(dev, 0, f)
	}
	if len(dev.ClearColors) != 16 {
		t.Fatalf("got %d clears", len(dev.ClearColors))
	}
	for f := 0; f < 8; f++ {
		if dev.ClearColors[f] != colorCycle[f] {
			t.Errorf("frame %d: colour %v, want %v", f, dev.ClearColors[f], colorCycle[f])
		}
		if dev.ClearColors[f] != dev.ClearColors[f+8] {
			t.Errorf("frame %d and %d differ", f, f+8)
		}
	}
	for f := 1; f < 16; f++ {
		if dev.ClearColors[f] == dev.ClearColors[f-1] {
			t.Errorf("frames %d and %d share a colour", f-1, f)
		}
	}
}

func TestPulseLevel(t *testing.T) {
	tests := []struct {
		time  float64
		speed float32
		want  float32
	}{
		{0, 3, 0.5},
		{math.Pi / 6, 3, 1},
		{math.Pi / 2, 3, 0},
		{math.Pi / 2, 1, 1},
	}
	for _, tt := range tests {
		got := PulseLevel(tt.time, tt.speed)
		if math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("PulseLevel(%v, %v) = %v, want %v", tt.time, tt.speed, got, tt.want)
		}
	}
}

func TestPulseUsesSharedSpeed(t *testing.T) {
	app := models.NewApp()
	s := NewSet(app)
	dev := gfxtest.New()

	app.Pulse.Speed = 1
	s.Get(models.DisplayPulse).Render(dev, math.Pi/2, 0)
	if c := dev.ClearColors[0]; math.Abs(float64(c[0]-1)) > 1e-5 || c[0] != c[1] || c[1] != c[2] {
		t.Errorf("clear colour = %v, want white", c)
	}
}

func TestBarOffsetWraps(t *testing.T) {
	tests := []struct {
		time         float64
		speed, width float32
		want         float32
	}{
		{0, 512, 32, 0},
		{0.03125, 512, 32, 16},
		{0.125, 512, 32, 0},
		{0.1875, 512, 32, 32},
		{1, 10, 32, 10},
	}
	for _, tt := range tests {
		got := BarOffset(tt.time, tt.speed, tt.width)
		if math.Abs(float64(got-tt.want)) > 1e-4 {
			t.Errorf("BarOffset(%v, %v, %v) = %v, want %v", tt.time, tt.speed, tt.width, got, tt.want)
		}
		if got < 0 || got >= 2*tt.width {
			t.Errorf("offset %v outside one period", got)
		}
	}
}

func TestBarsLifecycle(t *testing.T) {
	app := models.NewApp()
	s := NewSet(app)
	dev := gfxtest.New()

	s.GLInit(dev)
	bars := s.Get(models.DisplayBars)
	bars.Render(dev, 0.03125, 0)

	if dev.Count("DrawTriangleStrip 0 4") != 1 {
		t.Errorf("no full-screen strip drawn: %v", dev.Calls)
	}
	if dev.Program != 0 || dev.VertexArray != 0 {
		t.Errorf("render left program %d / vertex array %d bound", dev.Program, dev.VertexArray)
	}
	if len(dev.Uniforms) != 1 || dev.Uniforms[0] != [3]float32{32, 512, 16} {
		t.Errorf("uniforms = %v", dev.Uniforms)
	}
	if app.Bars.Offset != 16 {
		t.Errorf("offset not stored: %v", app.Bars.Offset)
	}

	s.Destroy(dev)
	if len(dev.Live) != 0 {
		t.Errorf("resources leaked: %v", dev.Live)
	}

	dev.Reset()
	s.Destroy(dev)
	if len(dev.Calls) != 0 {
		t.Errorf("second destroy issued %v", dev.Calls)
	}
}

func TestDestroyNeverAcquired(t *testing.T) {
	s := NewSet(models.NewApp())
	dev := gfxtest.New()
	s.Destroy(dev)
	if len(dev.Calls) != 0 {
		t.Errorf("destroy without GL init issued %v", dev.Calls)
	}
}
