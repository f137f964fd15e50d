//go:build sdl2

// Package sdlwindow creates GL windows with SDL2.
package sdlwindow

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
	"github.com/veandco/go-sdl2/sdl"
)

type Backend struct {
	logger *slog.Logger
}

func Init(logger *slog.Logger) (*Backend, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("%w: SDL: %v", window.ErrInit, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{logger: logger}, nil
}

func (b *Backend) Terminate() {
	sdl.Quit()
}

func (b *Backend) Create(geom *models.Window, q *window.Queue) (window.Window, error) {
	sdl.GLResetAttributes()
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if !geom.Decorated() {
		flags |= sdl.WINDOW_BORDERLESS
	}

	var mode *window.VideoMode
	var current sdl.DisplayMode
	if geom.Fullscreen() {
		dm, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			b.logger.Debug("display mode query failed", "error", err)
		} else {
			current = dm
			mode = videoMode(dm)
		}
	}

	exclusive := window.Place(geom, mode, b.logger)
	if exclusive {
		sdl.GLSetAttribute(sdl.GL_RED_SIZE, mode.RedBits)
		sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, mode.GreenBits)
		sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, mode.BlueBits)
		flags |= sdl.WINDOW_FULLSCREEN
	}

	win, err := sdl.CreateWindow(window.Title,
		int32(geom.Pos[0]), int32(geom.Pos[1]),
		int32(geom.Size[0]), int32(geom.Size[1]), flags)
	if err != nil {
		return nil, window.NewError(fmt.Sprintf("failed to create SDL window: %v", err))
	}
	if exclusive {
		if err := win.SetDisplayMode(&current); err != nil {
			b.logger.Warn("failed to switch display mode", "error", err)
		}
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		return nil, window.NewError(fmt.Sprintf("failed to create GL context: %v", err))
	}

	b.logger.Info(fmt.Sprintf("created new GL window (%dx%d)", geom.Size[0], geom.Size[1]))
	if err := win.GLMakeCurrent(ctx); err != nil {
		sdl.GLDeleteContext(ctx)
		win.Destroy()
		return nil, window.NewError(fmt.Sprintf("failed to make GL context current: %v", err))
	}

	return &Window{win: win, ctx: ctx, q: q, logger: b.logger}, nil
}

func videoMode(dm sdl.DisplayMode) *window.VideoMode {
	m := &window.VideoMode{
		Width:       int(dm.W),
		Height:      int(dm.H),
		RefreshRate: int(dm.RefreshRate),
	}
	if _, r, g, b, _, err := sdl.PixelFormatEnumToMasks(uint(dm.Format)); err == nil {
		m.RedBits = bits.OnesCount32(r)
		m.GreenBits = bits.OnesCount32(g)
		m.BlueBits = bits.OnesCount32(b)
	}
	return m
}

type Window struct {
	win    *sdl.Window
	ctx    sdl.GLContext
	q      *window.Queue
	closed bool
	logger *slog.Logger
}

func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
			w.q.Push(window.CloseEvent{})
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			k := mapKey(e.Keysym.Sym)
			if k == window.KeyUnknown {
				continue
			}
			var m window.Mod
			if e.Keysym.Mod&sdl.KMOD_SHIFT != 0 {
				m |= window.ModShift
			}
			w.q.Push(window.KeyEvent{Key: k, Mods: m})
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				width, height := w.win.GLGetDrawableSize()
				w.q.Push(window.ResizeEvent{Width: int(width), Height: int(height)})
			case sdl.WINDOWEVENT_MOVED:
				w.q.Push(window.MoveEvent{X: int(e.Data1), Y: int(e.Data2)})
			case sdl.WINDOWEVENT_CLOSE:
				w.closed = true
			}
		}
	}
}

func (w *Window) ShouldClose() bool     { return w.closed }
func (w *Window) SwapBuffers()          { w.win.GLSwap() }
func (w *Window) SetTitle(title string) { w.win.SetTitle(title) }

func (w *Window) SwapInterval(interval int) error {
	return sdl.GLSetSwapInterval(interval)
}

func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.logger.Info("destroying GL window")
	sdl.GLDeleteContext(w.ctx)
	w.win.Destroy()
	w.win = nil
}

var keys = map[sdl.Keycode]window.Key{
	sdl.K_ESCAPE:      window.KeyEscape,
	sdl.K_RIGHT:       window.KeyRight,
	sdl.K_LEFT:        window.KeyLeft,
	sdl.K_UP:          window.KeyUp,
	sdl.K_DOWN:        window.KeyDown,
	sdl.K_SPACE:       window.KeySpace,
	sdl.K_BACKSPACE:   window.KeyBackspace,
	sdl.K_RETURN:      window.KeyEnter,
	sdl.K_HOME:        window.KeyHome,
	sdl.K_PAGEUP:      window.KeyPageUp,
	sdl.K_PAGEDOWN:    window.KeyPageDown,
	sdl.K_KP_MULTIPLY: window.KeyKPMultiply,
	sdl.K_KP_DIVIDE:   window.KeyKPDivide,
	sdl.K_KP_PLUS:     window.KeyKPAdd,
	sdl.K_KP_MINUS:    window.KeyKPSubtract,
	sdl.K_EQUALS:      window.KeyEqual,
	sdl.K_MINUS:       window.KeyMinus,
	sdl.K_b:           window.KeyB,
	sdl.K_c:           window.KeyC,
	sdl.K_f:           window.KeyF,
	sdl.K_s:           window.KeyS,
	sdl.K_v:           window.KeyV,
	sdl.K_w:           window.KeyW,
}

func mapKey(k sdl.Keycode) window.Key {
	return keys[k]
}
