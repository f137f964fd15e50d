// Package loop drives the window lifetime and the per-frame
// render/present sequence.
package loop

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThatOtherAndrew/teardetect/internal/clock"
	"github.com/ThatOtherAndrew/teardetect/internal/draw"
	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/patterns"
	"github.com/ThatOtherAndrew/teardetect/internal/status"
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
	"github.com/ThatOtherAndrew/teardetect/internal/timestamps"
	"github.com/ThatOtherAndrew/teardetect/internal/update"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
	"golang.org/x/time/rate"
)

var ErrWindowCreate = errors.New("failed to create GL window")

const statsInterval = time.Second

// Device is the graphics device of one rendering context.
type Device interface {
	draw.Device
	timestamps.Queries
	Viewport(x, y, width, height int)
}

// PlatformFunc returns the swap control mechanisms of the platform. window
// sets the interval through the windowing library on the current window.
type PlatformFunc func(window func(int) error) (swapcontrol.Loader, []swapcontrol.Backend)

type Config struct {
	Backend window.Backend
	// LoadDevice binds the graphics API on the context made current by the
	// window that was just created.
	LoadDevice func() (Device, error)
	Platform   PlatformFunc
	Status     *status.Publisher
	Clock      clock.Clock
	Sleep      func(time.Duration) error
	Logger     *slog.Logger

	TimerQueries int
	// ApplySwapInterval applies the configured interval at the start of
	// every window session.
	ApplySwapInterval bool
}

type Loop struct {
	app      *models.App
	cfg      Config
	logger   *slog.Logger
	swap     *swapcontrol.Controller
	patterns *patterns.Set
	ring     *timestamps.Ring
	input    *update.App
	drawer   *draw.App

	queue    window.Queue
	win      window.Window
	sleepErr rate.Sometimes
}

func New(app *models.App, cfg Config) *Loop {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewMonotonic()
	}
	if cfg.Sleep == nil {
		cfg.Sleep = clock.Sleep
	}

	l := &Loop{
		app:      app,
		cfg:      cfg,
		logger:   cfg.Logger,
		patterns: patterns.NewSet(app),
		ring:     timestamps.NewRing(cfg.TimerQueries),
		sleepErr: rate.Sometimes{Interval: time.Second},
	}

	var loader swapcontrol.Loader
	var backends []swapcontrol.Backend
	if cfg.Platform != nil {
		loader, backends = cfg.Platform(l.swapInterval)
	}
	l.swap = swapcontrol.New(loader, backends, l.logger)
	l.swap.OnApplied = l.publish

	l.input = update.New(app, l.swap, l.publish, l.logger)
	l.drawer = draw.New(app, l.patterns, l.logger)
	return l
}

// Swap returns the swap control of the loop.
func (l *Loop) Swap() *swapcontrol.Controller {
	return l.swap
}

func (l *Loop) swapInterval(interval int) error {
	if l.win == nil {
		return swapcontrol.ErrUnavailable
	}
	return l.win.SwapInterval(interval)
}

func (l *Loop) publish() {
	if l.cfg.Status == nil {
		return
	}
	var title status.TitleSetter
	if l.win != nil {
		title = l.win
	}
	l.cfg.Status.Publish(l.app, title)
}

// Run creates a window and renders into it until the app stops. A dropped
// window is destroyed and created again with the current geometry.
func (l *Loop) Run() error {
	for l.app.Running() {
		if err := l.session(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) session() error {
	win, err := l.cfg.Backend.Create(&l.app.Window, &l.queue)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}
	l.win = win
	defer func() {
		l.win.Destroy()
		l.win = nil
	}()

	dev, err := l.cfg.LoadDevice()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWindowCreate, err)
	}

	l.app.Reset()
	l.publish()
	if l.cfg.ApplySwapInterval {
		l.swap.Apply(l.app)
	}

	l.patterns.GLInit(dev)
	l.ring.Acquire(dev)
	l.frames(dev)
	l.patterns.Destroy(dev)
	l.ring.Release()
	return nil
}

func (l *Loop) frames(dev Device) {
	app := l.app
	start := l.cfg.Clock.Now()
	last, prev := start, start
	var latency float64

	app.Frame = 0
	app.IntervalFrames = 0

	for app.Active() {
		l.win.PollEvents()
		l.queue.Drain(l.input.HandleEvent)
		if l.win.ShouldClose() {
			app.Stop()
		}

		dev.Viewport(0, 0, app.Window.Size[0], app.Window.Size[1])
		l.drawer.Draw(dev)
		l.delay()

		l.win.SwapBuffers()
		now := l.cfg.Clock.Now()
		if lat, ok := l.ring.Advance(app.Frame); ok {
			app.CurLatency = lat
			latency += lat
		}

		app.Frame++
		app.IntervalFrames++

		app.Delta = (now - prev).Seconds()
		app.Time = (now - start).Seconds()
		prev = now

		if elapsed := now - last; elapsed > statsInterval {
			app.AvgFPS = float64(app.IntervalFrames) / elapsed.Seconds()
			app.AvgLatency = latency / float64(app.IntervalFrames)
			l.publish()
			app.IntervalFrames = 0
			latency = 0
			last = now
		}
	}
}

func (l *Loop) delay() {
	if l.app.BusyWait > 0 {
		clock.BusyWait(l.cfg.Clock, l.app.BusyWait)
	}
	if l.app.Sleep > 0 {
		if err := l.cfg.Sleep(l.app.Sleep); err != nil {
			l.sleepErr.Do(func() {
				l.logger.Warn("sleep failed", "duration", l.app.Sleep, "error", err)
			})
		}
	}
}
