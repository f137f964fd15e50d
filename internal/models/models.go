package models

import (
	"time"
)

type DisplayMode int

const (
	DisplayNone DisplayMode = iota
	DisplayColors
	DisplayPulse
	DisplayBars
	DisplayModeCount
)

var displayModeNames = [DisplayModeCount]string{"none", "colors", "pulse", "bars"}

func (m DisplayMode) String() string {
	if m < 0 || m >= DisplayModeCount {
		return "invalid"
	}
	return displayModeNames[m]
}

func (m DisplayMode) Next() DisplayMode {
	return DisplayMode(Cycle(int(m), int(DisplayModeCount), 1))
}

func (m DisplayMode) Prev() DisplayMode {
	return DisplayMode(Cycle(int(m), int(DisplayModeCount), -1))
}

func ParseDisplayMode(s string) (DisplayMode, bool) {
	for i, name := range displayModeNames {
		if name == s {
			return DisplayMode(i), true
		}
	}
	return DisplayNone, false
}

// Cycle steps ordinal by step inside [0, count), wrapping in both directions.
func Cycle(ordinal, count, step int) int {
	if count <= 0 {
		return 0
	}
	v := (ordinal + step) % count
	if v < 0 {
		v += count
	}
	return v
}

type Flags uint8

const (
	FlagRun Flags = 1 << iota
	FlagDropWindow
	FlagSwapIntervalSet
	FlagExtensionsLoaded
	FlagFlush
	FlagFinish

	FlagsDefault = FlagRun
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }
func (f *Flags) Set(flag Flags)     { *f |= flag }
func (f *Flags) Clear(flag Flags)   { *f &^= flag }
func (f *Flags) Toggle(flag Flags)  { *f ^= flag }

type Pulse struct {
	Speed float32
}

const DefaultPulseSpeed = 3.0

func (p *Pulse) Reset() {
	p.Speed = DefaultPulseSpeed
}

// Bars describes the scrolling stripe pattern. Width and Offset are in
// pixels, Speed in pixels per second.
type Bars struct {
	Width  float32
	Speed  float32
	Offset float32
}

const DefaultBarWidth = 32.0

func (b *Bars) Reset() {
	b.Width = DefaultBarWidth
	b.Speed = 16 * b.Width
	b.Offset = 0
}

type App struct {
	Window          Window
	Mode            DisplayMode
	SwapControlMode int
	SwapInterval    int
	Flags           Flags
	Pulse           Pulse
	Bars            Bars
	Frame           uint64
	IntervalFrames  uint64
	Delta           float64
	Time            float64
	AvgFPS          float64
	AvgLatency      float64
	CurLatency      float64
	BusyWait        time.Duration
	Sleep           time.Duration
}

func NewApp() *App {
	app := &App{
		Window:       NewWindow(),
		Mode:         DisplayBars,
		SwapInterval: 1,
		Flags:        FlagsDefault,
	}
	app.Pulse.Reset()
	app.Bars.Reset()
	app.Reset()
	return app
}

// Reset prepares the state for a new window session. Rolling statistics go
// back to the -1 sentinel and the per-window swap control flags are dropped.
func (a *App) Reset() {
	a.AvgLatency = -1
	a.AvgFPS = -1
	a.CurLatency = -1
	a.Flags.Clear(FlagDropWindow | FlagExtensionsLoaded | FlagSwapIntervalSet)
}

func (a *App) Running() bool {
	return a.Flags.Has(FlagRun)
}

// Active reports whether the inner frame loop should keep going.
func (a *App) Active() bool {
	return a.Flags&(FlagRun|FlagDropWindow) == FlagRun
}

func (a *App) Stop() {
	a.Flags.Clear(FlagRun)
}

func (a *App) RequestDrop() {
	a.Flags.Set(FlagDropWindow)
}
