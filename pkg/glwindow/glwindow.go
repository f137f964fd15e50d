// Package glwindow creates GL windows with GLFW.
package glwindow

import (
	"fmt"
	"log/slog"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type Backend struct {
	logger *slog.Logger
}

// Init initializes GLFW. It must be called from the main thread.
func Init(logger *slog.Logger) (*Backend, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: GLFW: %v", window.ErrInit, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}, nil
}

func (b *Backend) Terminate() {
	glfw.Terminate()
}

func (b *Backend) Create(geom *models.Window, q *window.Queue) (window.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.Decorated, boolHint(geom.Decorated()))

	var monitor *glfw.Monitor
	if geom.Fullscreen() {
		monitor = glfw.GetPrimaryMonitor()
		if monitor == nil {
			b.logger.Warn("failed to get primary monitor")
		} else {
			var mode *window.VideoMode
			if vm := monitor.GetVideoMode(); vm != nil {
				mode = &window.VideoMode{
					Width:       vm.Width,
					Height:      vm.Height,
					RedBits:     vm.RedBits,
					GreenBits:   vm.GreenBits,
					BlueBits:    vm.BlueBits,
					RefreshRate: vm.RefreshRate,
				}
			}
			if window.Place(geom, mode, b.logger) {
				glfw.WindowHint(glfw.RedBits, mode.RedBits)
				glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
				glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
				glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
			} else {
				monitor = nil
			}
		}
	} else {
		window.Place(geom, nil, b.logger)
	}

	win, err := glfw.CreateWindow(geom.Size[0], geom.Size[1], window.Title, monitor, nil)
	if err != nil {
		return nil, window.NewError(fmt.Sprintf("failed to create GLFW window: %v", err))
	}
	if monitor == nil {
		win.SetPos(geom.Pos[0], geom.Pos[1])
	}

	b.logger.Info(fmt.Sprintf("created new GL window (%dx%d)", geom.Size[0], geom.Size[1]))
	win.MakeContextCurrent()

	w := &Window{win: win, logger: b.logger}
	w.bind(q)
	return w, nil
}

type Window struct {
	win    *glfw.Window
	logger *slog.Logger
}

func (w *Window) bind(q *window.Queue) {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		k := mapKey(key)
		if k == window.KeyUnknown {
			return
		}
		var m window.Mod
		if mods&glfw.ModShift != 0 {
			m |= window.ModShift
		}
		q.Push(window.KeyEvent{Key: k, Mods: m})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		q.Push(window.ResizeEvent{Width: width, Height: height})
	})
	w.win.SetPosCallback(func(_ *glfw.Window, x, y int) {
		q.Push(window.MoveEvent{X: x, Y: y})
	})
}

func (w *Window) PollEvents()           { glfw.PollEvents() }
func (w *Window) ShouldClose() bool     { return w.win.ShouldClose() }
func (w *Window) SwapBuffers()          { w.win.SwapBuffers() }
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

// SwapInterval sets the interval of the current context through GLFW.
func (w *Window) SwapInterval(interval int) error {
	glfw.SwapInterval(interval)
	return nil
}

func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.logger.Info("destroying GL window")
	w.win.Destroy()
	w.win = nil
}

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

var keys = map[glfw.Key]window.Key{
	glfw.KeyEscape:     window.KeyEscape,
	glfw.KeyRight:      window.KeyRight,
	glfw.KeyLeft:       window.KeyLeft,
	glfw.KeyUp:         window.KeyUp,
	glfw.KeyDown:       window.KeyDown,
	glfw.KeySpace:      window.KeySpace,
	glfw.KeyBackspace:  window.KeyBackspace,
	glfw.KeyEnter:      window.KeyEnter,
	glfw.KeyHome:       window.KeyHome,
	glfw.KeyPageUp:     window.KeyPageUp,
	glfw.KeyPageDown:   window.KeyPageDown,
	glfw.KeyKPMultiply: window.KeyKPMultiply,
	glfw.KeyKPDivide:   window.KeyKPDivide,
	glfw.KeyKPAdd:      window.KeyKPAdd,
	glfw.KeyKPSubtract: window.KeyKPSubtract,
	glfw.KeyEqual:      window.KeyEqual,
	glfw.KeyMinus:      window.KeyMinus,
	glfw.KeyB:          window.KeyB,
	glfw.KeyC:          window.KeyC,
	glfw.KeyF:          window.KeyF,
	glfw.KeyS:          window.KeyS,
	glfw.KeyV:          window.KeyV,
	glfw.KeyW:          window.KeyW,
}

func mapKey(k glfw.Key) window.Key {
	return keys[k]
}
