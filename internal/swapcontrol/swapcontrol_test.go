package swapcontrol

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

type fakeBackend struct {
	name      string
	available bool
	err       error
	set       []int
}

func (b *fakeBackend) Name() string    { return b.name }
func (b *fakeBackend) Available() bool { return b.available }

func (b *fakeBackend) SetInterval(interval int) error {
	if b.err != nil {
		return b.err
	}
	b.set = append(b.set, interval)
	return nil
}

type countingLoader struct {
	loads int
	err   error
}

func (l *countingLoader) Load() error {
	l.loads++
	return l.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestApplyLoadsOncePerWindow(t *testing.T) {
	loader := &countingLoader{}
	ext := &fakeBackend{name: "EXT", available: true}
	c := New(loader, []Backend{ext}, quietLogger())
	app := models.NewApp()

	applied := 0
	c.OnApplied = func() { applied++ }

	for i := 0; i < 3; i++ {
		if !c.Apply(app) {
			t.Fatalf("apply %d failed", i)
		}
	}
	if loader.loads != 1 {
		t.Errorf("loaded %d times, want 1", loader.loads)
	}
	if applied != 3 {
		t.Errorf("observer ran %d times, want 3", applied)
	}
	if !app.Flags.Has(models.FlagSwapIntervalSet) {
		t.Error("applied flag not set")
	}

	app.Reset()
	c.Apply(app)
	if loader.loads != 2 {
		t.Errorf("new window did not reload entry points (%d loads)", loader.loads)
	}
}

func TestApplyPassesSignedInterval(t *testing.T) {
	ext := &fakeBackend{name: "EXT", available: true}
	c := New(nil, []Backend{ext}, quietLogger())
	app := models.NewApp()

	for _, interval := range []int{0, 1, 4, -1} {
		app.SwapInterval = interval
		c.Apply(app)
	}
	want := []int{0, 1, 4, -1}
	for i := range want {
		if ext.set[i] != want[i] {
			t.Errorf("set[%d] = %d, want %d", i, ext.set[i], want[i])
		}
	}
}

func TestApplyFailuresAreNotFatal(t *testing.T) {
	tests := []struct {
		name    string
		loader  *countingLoader
		backend *fakeBackend
		mode    int
	}{
		{"load fails", &countingLoader{err: errors.New("no display")}, &fakeBackend{name: "EXT"}, 0},
		{"unavailable", &countingLoader{}, &fakeBackend{name: "SGI"}, 0},
		{"native error", &countingLoader{}, &fakeBackend{name: "SGI", available: true, err: errors.New("bad value")}, 0},
		{"mode out of range", &countingLoader{}, &fakeBackend{name: "EXT", available: true}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.loader, []Backend{tt.backend}, quietLogger())
			c.OnApplied = func() { t.Error("observer ran on failure") }
			app := models.NewApp()
			app.SwapControlMode = tt.mode

			if c.Apply(app) {
				t.Fatal("apply reported success")
			}
			if app.Flags.Has(models.FlagSwapIntervalSet) {
				t.Error("applied flag set on failure")
			}
			if !app.Running() {
				t.Error("failure stopped the app")
			}
		})
	}
}

func TestLoadFailureLeavesWindowBackendUsable(t *testing.T) {
	loader := &countingLoader{err: errors.New("no GLX display")}
	window := &fakeBackend{name: "WINDOW", available: true}
	c := New(loader, []Backend{window}, quietLogger())
	app := models.NewApp()

	if !c.Apply(app) || !c.Apply(app) {
		t.Fatal("window backend blocked by a failed extension load")
	}
	if loader.loads != 1 {
		t.Errorf("failed load retried: %d loads", loader.loads)
	}
	if len(window.set) != 2 {
		t.Errorf("set = %v", window.set)
	}
}

func TestApplyFailureKeepsPriorState(t *testing.T) {
	good := &fakeBackend{name: "EXT", available: true}
	bad := &fakeBackend{name: "SGI"}
	c := New(nil, []Backend{good, bad}, quietLogger())
	app := models.NewApp()

	c.Apply(app)
	c.Cycle(app, 1)
	if c.Apply(app) {
		t.Fatal("unavailable backend applied")
	}
	if !app.Flags.Has(models.FlagSwapIntervalSet) {
		t.Error("earlier successful apply was forgotten")
	}
}

func TestCycleWraps(t *testing.T) {
	for _, count := range []int{1, 2, 4} {
		backends := make([]Backend, count)
		for i := range backends {
			backends[i] = &fakeBackend{name: "B", available: true}
		}
		c := New(nil, backends, quietLogger())
		app := models.NewApp()

		for i := 0; i < count; i++ {
			c.Cycle(app, 1)
		}
		if app.SwapControlMode != 0 {
			t.Errorf("count %d: forward turn ended at %d", count, app.SwapControlMode)
		}
		c.Cycle(app, -1)
		if app.SwapControlMode != count-1 {
			t.Errorf("count %d: backward from 0 gave %d", count, app.SwapControlMode)
		}
	}
}

func TestCycleDoesNotApply(t *testing.T) {
	a := &fakeBackend{name: "A", available: true}
	b := &fakeBackend{name: "B", available: true}
	c := New(nil, []Backend{a, b}, quietLogger())
	app := models.NewApp()

	c.Cycle(app, 1)
	if len(a.set) != 0 || len(b.set) != 0 || app.Flags.Has(models.FlagSwapIntervalSet) {
		t.Error("cycling applied the interval")
	}
}

func TestFuncBackend(t *testing.T) {
	var got int
	f := Func{Label: "WINDOW", Fn: func(i int) error { got = i; return nil }}
	if !f.Available() || f.SetInterval(3) != nil || got != 3 {
		t.Error("func backend did not forward the interval")
	}
	if (Func{Label: "WINDOW"}).Available() {
		t.Error("empty func backend reported available")
	}
	if err := (Func{}).SetInterval(1); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v", err)
	}
}

func TestName(t *testing.T) {
	c := New(nil, []Backend{&fakeBackend{name: "EXT"}}, quietLogger())
	if c.Name(0) != "EXT" || c.Name(1) != "NONE" || c.Name(-1) != "NONE" {
		t.Error("unexpected backend names")
	}
}
