// Package window describes the windowing collaborator: window creation,
// presentation and the events a window reports back to the frame loop.
package window

import (
	"errors"
	"log/slog"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

const Title = "TearDetect"

var ErrInit = errors.New("failed to initialize windowing system")

type Error struct {
	msg string
}

func NewError(msg string) *Error {
	return &Error{msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

// Window owns a native window with a current GL 3.3 core context.
type Window interface {
	PollEvents()
	ShouldClose() bool
	SwapBuffers()
	SetTitle(title string)
	SwapInterval(interval int) error
	Destroy()
}

// Backend creates windows. Create reads the requested geometry and flags
// from geom, writes back the geometry actually used, and registers callbacks
// that push into q.
type Backend interface {
	Create(geom *models.Window, q *Queue) (Window, error)
	Terminate()
}

// VideoMode is the current mode of the primary monitor.
type VideoMode struct {
	Width, Height                int
	RedBits, GreenBits, BlueBits int
	RefreshRate                  int
}

// Place resolves the geometry of a window about to be created. It returns
// true when the window must be bound to the monitor for an exclusive mode
// switch. A fullscreen request without a video mode keeps the current
// geometry.
func Place(geom *models.Window, mode *VideoMode, logger *slog.Logger) (useMonitor bool) {
	if !geom.Fullscreen() {
		geom.RestoreWindowed()
		return false
	}
	if mode == nil {
		logger.Warn("failed to get video mode")
		return false
	}
	geom.Size = [2]int{mode.Width, mode.Height}
	geom.Pos = [2]int{0, 0}
	return geom.ModeSwitch()
}
