package models

import "testing"

func TestToggleFullscreen(t *testing.T) {
	tests := []struct {
		name       string
		modeSwitch bool
		want       WindowFlags
	}{
		{"borderless", false, WindowFullscreen},
		{"mode switch", true, WindowFullscreen | WindowFullscreenModeSwitch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow()
			w.ToggleFullscreen(tt.modeSwitch)
			if w.Flags != tt.want {
				t.Errorf("entering: flags = %b, want %b", w.Flags, tt.want)
			}
			if w.Decorated() {
				t.Error("fullscreen window is still decorated")
			}
			if w.ModeSwitch() != tt.modeSwitch {
				t.Errorf("ModeSwitch() = %v", w.ModeSwitch())
			}

			w.ToggleFullscreen(true)
			if w.Flags != WindowDecorated {
				t.Errorf("leaving: flags = %b, want decorated only", w.Flags)
			}
		})
	}
}

func TestModeSwitchIgnoredWhenWindowed(t *testing.T) {
	w := NewWindow()
	w.Flags |= WindowFullscreenModeSwitch
	if w.ModeSwitch() {
		t.Error("mode switch reported for a windowed window")
	}
}

func TestGeometryTracking(t *testing.T) {
	w := NewWindow()
	w.Resized(1024, 768)
	w.Moved(10, 20)
	if w.WindowedSize != [2]int{1024, 768} || w.WindowedPos != [2]int{10, 20} {
		t.Fatalf("windowed geometry not tracked: %+v", w)
	}

	w.ToggleFullscreen(false)
	w.Resized(1920, 1080)
	w.Moved(0, 0)
	if w.Size != [2]int{1920, 1080} || w.Pos != [2]int{0, 0} {
		t.Errorf("live geometry not updated: %+v", w)
	}
	if w.WindowedSize != [2]int{1024, 768} || w.WindowedPos != [2]int{10, 20} {
		t.Errorf("fullscreen geometry leaked into windowed geometry: %+v", w)
	}

	w.ToggleFullscreen(false)
	w.RestoreWindowed()
	if w.Size != [2]int{1024, 768} || w.Pos != [2]int{10, 20} {
		t.Errorf("windowed geometry not restored verbatim: %+v", w)
	}
}
