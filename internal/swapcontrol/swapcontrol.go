// Package swapcontrol applies a swap interval through one of several
// platform mechanisms selected by ordinal.
package swapcontrol

import (
	"errors"
	"log/slog"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

var ErrUnavailable = errors.New("swap control mechanism not available")

// Backend is one way of setting the swap interval.
type Backend interface {
	Name() string
	Available() bool
	SetInterval(interval int) error
}

// Loader binds the platform's swap control entry points for the current
// context.
type Loader interface {
	Load() error
}

type LoaderFunc func() error

func (f LoaderFunc) Load() error { return f() }

// NopLoader is used on platforms whose backends need no binding step.
var NopLoader = LoaderFunc(func() error { return nil })

type Controller struct {
	loader   Loader
	backends []Backend
	logger   *slog.Logger

	// OnApplied runs after an interval was applied successfully.
	OnApplied func()
}

func New(loader Loader, backends []Backend, logger *slog.Logger) *Controller {
	if loader == nil {
		loader = NopLoader
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{loader: loader, backends: backends, logger: logger}
}

func (c *Controller) Count() int {
	return len(c.backends)
}

func (c *Controller) Name(mode int) string {
	if mode < 0 || mode >= len(c.backends) {
		return "NONE"
	}
	return c.backends[mode].Name()
}

func (c *Controller) Backends() []Backend {
	return c.backends
}

// Cycle moves the selected mode by step, wrapping around the available
// backends. The interval is not re-applied.
func (c *Controller) Cycle(app *models.App, step int) {
	app.SwapControlMode = models.Cycle(app.SwapControlMode, len(c.backends), step)
}

// Apply sets app.SwapInterval through the backend selected by
// app.SwapControlMode. The platform entry points are loaded once per window.
// Failures are logged and leave the applied flag untouched.
func (c *Controller) Apply(app *models.App) bool {
	if !app.Flags.Has(models.FlagExtensionsLoaded) {
		// A failed load leaves the extension backends unavailable; the
		// windowing library's own mechanism still works.
		if err := c.loader.Load(); err != nil {
			c.logger.Warn("failed to load swap control extensions", "error", err)
		} else {
			c.logger.Debug("loaded swap control extensions")
		}
		app.Flags.Set(models.FlagExtensionsLoaded)
	}

	mode := app.SwapControlMode
	if mode < 0 || mode >= len(c.backends) {
		c.logger.Warn("swap control mode not available", "mode", mode)
		return false
	}

	b := c.backends[mode]
	if !b.Available() {
		c.logger.Warn(b.Name() + " not available")
		return false
	}
	if err := b.SetInterval(app.SwapInterval); err != nil {
		c.logger.Warn("failed to set swap interval", "interval", app.SwapInterval, "backend", b.Name(), "error", err)
		return false
	}

	c.logger.Info("setting swap interval", "interval", app.SwapInterval, "backend", b.Name())
	app.Flags.Set(models.FlagSwapIntervalSet)
	if c.OnApplied != nil {
		c.OnApplied()
	}
	return true
}

// Func adapts a plain function, such as the windowing library's own swap
// interval call, into a Backend.
type Func struct {
	Label string
	Fn    func(interval int) error
}

func (f Func) Name() string    { return f.Label }
func (f Func) Available() bool { return f.Fn != nil }

func (f Func) SetInterval(interval int) error {
	if f.Fn == nil {
		return ErrUnavailable
	}
	return f.Fn(interval)
}
