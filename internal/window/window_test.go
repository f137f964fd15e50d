package window

import (
	"io"
	"log/slog"
	"testing"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueueDrainOrder(t *testing.T) {
	var q Queue
	q.Push(KeyEvent{Key: KeyF, Mods: ModShift})
	q.Push(ResizeEvent{Width: 10, Height: 20})
	q.Push(CloseEvent{})

	var got []Event
	q.Drain(func(e Event) { got = append(got, e) })

	if len(got) != 3 {
		t.Fatalf("drained %d events", len(got))
	}
	if got[0] != (KeyEvent{Key: KeyF, Mods: ModShift}) {
		t.Errorf("first event = %#v", got[0])
	}
	if got[1] != (ResizeEvent{Width: 10, Height: 20}) {
		t.Errorf("second event = %#v", got[1])
	}
	if _, ok := got[2].(CloseEvent); !ok {
		t.Errorf("third event = %#v", got[2])
	}
	if q.Len() != 0 {
		t.Errorf("queue still holds %d events", q.Len())
	}
}

func TestQueueDrainHandlesNestedPush(t *testing.T) {
	var q Queue
	q.Push(KeyEvent{Key: KeyEscape})
	n := 0
	q.Drain(func(e Event) {
		n++
		if _, ok := e.(KeyEvent); ok {
			q.Push(CloseEvent{})
		}
	})
	if n != 2 || q.Len() != 0 {
		t.Errorf("handled %d events, %d left", n, q.Len())
	}
}

func TestPlaceWindowedRestoresGeometry(t *testing.T) {
	geom := models.NewWindow()
	geom.Moved(5, 6)
	geom.Resized(640, 480)
	geom.Pos = [2]int{0, 0}
	geom.Size = [2]int{1, 1}

	if Place(&geom, &VideoMode{Width: 1920, Height: 1080}, quietLogger()) {
		t.Error("windowed placement asked for the monitor")
	}
	if geom.Pos != [2]int{5, 6} || geom.Size != [2]int{640, 480} {
		t.Errorf("geometry = %v %v", geom.Pos, geom.Size)
	}
}

func TestPlaceFullscreen(t *testing.T) {
	mode := &VideoMode{Width: 2560, Height: 1440, RefreshRate: 144}

	geom := models.NewWindow()
	geom.ToggleFullscreen(false)
	if Place(&geom, mode, quietLogger()) {
		t.Error("borderless fullscreen asked for the monitor")
	}
	if geom.Pos != [2]int{0, 0} || geom.Size != [2]int{2560, 1440} {
		t.Errorf("borderless geometry = %v %v", geom.Pos, geom.Size)
	}
	if geom.WindowedSize != [2]int{800, 600} {
		t.Errorf("windowed size overwritten: %v", geom.WindowedSize)
	}

	geom = models.NewWindow()
	geom.ToggleFullscreen(true)
	if !Place(&geom, mode, quietLogger()) {
		t.Error("mode switch did not ask for the monitor")
	}
}

func TestPlaceWithoutVideoMode(t *testing.T) {
	geom := models.NewWindow()
	geom.ToggleFullscreen(true)
	if Place(&geom, nil, quietLogger()) {
		t.Error("missing video mode still asked for the monitor")
	}
	if geom.Size != [2]int{800, 600} {
		t.Errorf("geometry changed without a video mode: %v", geom.Size)
	}
}
