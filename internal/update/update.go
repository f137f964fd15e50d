package update

import (
	"log/slog"
	"time"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
)

const delayStep = time.Millisecond

type App struct {
	app     *models.App
	swap    *swapcontrol.Controller
	publish func()
	logger  *slog.Logger
}

// New returns the input controller. publish refreshes the status display.
func New(app *models.App, swap *swapcontrol.Controller, publish func(), logger *slog.Logger) *App {
	if publish == nil {
		publish = func() {}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{app: app, swap: swap, publish: publish, logger: logger}
}

func (a *App) HandleEvent(ev window.Event) {
	switch ev := ev.(type) {
	case window.KeyEvent:
		a.HandleKey(ev.Key, ev.Mods)
	case window.ResizeEvent:
		a.app.Window.Resized(ev.Width, ev.Height)
	case window.MoveEvent:
		a.app.Window.Moved(ev.X, ev.Y)
	case window.CloseEvent:
		a.app.Stop()
	}
}

func (a *App) HandleKey(key window.Key, mods window.Mod) {
	shift := mods&window.ModShift != 0

	switch key {
	case window.KeyEscape:
		a.app.Stop()
	case window.KeyRight, window.KeySpace:
		a.app.Mode = a.app.Mode.Next()
		a.logger.Debug("switched display mode", "mode", a.app.Mode)
	case window.KeyLeft, window.KeyBackspace:
		a.app.Mode = a.app.Mode.Prev()
		a.logger.Debug("switched display mode", "mode", a.app.Mode)
	case window.KeyEnter, window.KeyW:
		a.app.RequestDrop()
	case window.KeyUp:
		a.app.Pulse.Speed *= 2
		a.app.Bars.Speed *= 2
	case window.KeyDown:
		a.app.Pulse.Speed /= 2
		a.app.Bars.Speed /= 2
	case window.KeyHome:
		a.app.Pulse.Reset()
		a.app.Bars.Width = models.DefaultBarWidth
		a.app.Bars.Speed = 16 * a.app.Bars.Width
	case window.KeyKPMultiply:
		a.app.Bars.Width *= 2
	case window.KeyKPDivide:
		a.app.Bars.Width /= 2
	case window.KeyF:
		a.toggleFullscreen(shift)
	case window.KeyS:
		if !shift {
			if a.app.SwapInterval != 0 {
				a.app.SwapInterval = 0
			} else {
				a.app.SwapInterval = 1
			}
		}
		a.swap.Apply(a.app)
	case window.KeyEqual, window.KeyKPAdd:
		a.app.SwapInterval++
		a.swap.Apply(a.app)
	case window.KeyMinus, window.KeyKPSubtract:
		a.app.SwapInterval--
		a.swap.Apply(a.app)
	case window.KeyPageUp:
		a.swap.Cycle(a.app, 1)
		a.publish()
	case window.KeyPageDown:
		a.swap.Cycle(a.app, -1)
		a.publish()
	case window.KeyB:
		a.app.BusyWait = adjustDelay(a.app.BusyWait, shift)
		a.publish()
	case window.KeyV:
		a.app.Sleep = adjustDelay(a.app.Sleep, shift)
		a.publish()
	case window.KeyC:
		if shift {
			a.app.Flags.Toggle(models.FlagFlush)
		} else {
			a.app.Flags.Toggle(models.FlagFinish)
		}
		a.publish()
	}
}

func (a *App) toggleFullscreen(modeSwitch bool) {
	if a.app.Window.Fullscreen() {
		a.logger.Info("switch to windowed mode requested")
	} else {
		a.logger.Info("switch to fullscreen requested", "mode_switch", modeSwitch)
	}
	a.app.Window.ToggleFullscreen(modeSwitch)
	a.app.RequestDrop()
}

// adjustDelay adds one step, or removes one when decrease is set, never
// going below zero.
func adjustDelay(d time.Duration, decrease bool) time.Duration {
	if !decrease {
		return d + delayStep
	}
	if d > delayStep {
		return d - delayStep
	}
	return 0
}
