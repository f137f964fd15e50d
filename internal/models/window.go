package models

type WindowFlags uint8

const (
	WindowFullscreen WindowFlags = 1 << iota
	WindowFullscreenModeSwitch
	WindowDecorated

	WindowFlagsDefault = WindowDecorated
)

func (f WindowFlags) Has(flag WindowFlags) bool { return f&flag != 0 }

// Window holds the live geometry of the window and the geometry to restore
// when leaving fullscreen. The mode switch flag only matters while
// fullscreen is set.
type Window struct {
	Pos          [2]int
	Size         [2]int
	WindowedPos  [2]int
	WindowedSize [2]int
	Flags        WindowFlags
}

func NewWindow() Window {
	w := Window{
		WindowedPos:  [2]int{100, 100},
		WindowedSize: [2]int{800, 600},
		Flags:        WindowFlagsDefault,
	}
	w.Pos = w.WindowedPos
	w.Size = w.WindowedSize
	return w
}

func (w *Window) Fullscreen() bool { return w.Flags.Has(WindowFullscreen) }
func (w *Window) Decorated() bool  { return w.Flags.Has(WindowDecorated) }
func (w *Window) ModeSwitch() bool {
	return w.Fullscreen() && w.Flags.Has(WindowFullscreenModeSwitch)
}

// ToggleFullscreen flips between windowed and fullscreen. Entering
// fullscreen drops the decoration; modeSwitch asks for an exclusive video
// mode change instead of a borderless window.
func (w *Window) ToggleFullscreen(modeSwitch bool) {
	if w.Fullscreen() {
		w.Flags &^= WindowFullscreen | WindowFullscreenModeSwitch
		w.Flags |= WindowDecorated
		return
	}
	w.Flags &^= WindowDecorated | WindowFullscreenModeSwitch
	w.Flags |= WindowFullscreen
	if modeSwitch {
		w.Flags |= WindowFullscreenModeSwitch
	}
}

func (w *Window) Resized(width, height int) {
	w.Size = [2]int{width, height}
	if !w.Fullscreen() {
		w.WindowedSize = w.Size
	}
}

func (w *Window) Moved(x, y int) {
	w.Pos = [2]int{x, y}
	if !w.Fullscreen() {
		w.WindowedPos = w.Pos
	}
}

// RestoreWindowed copies the remembered windowed geometry back into the
// live geometry.
func (w *Window) RestoreWindowed() {
	w.Pos = w.WindowedPos
	w.Size = w.WindowedSize
}
