package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
)

type titleRecorder struct {
	titles []string
}

func (r *titleRecorder) SetTitle(title string) {
	r.titles = append(r.titles, title)
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		setup func(app *models.App)
		want  string
	}{
		{
			name:  "fresh session",
			setup: func(app *models.App) {},
			want:  "TearDetect: [0:unset] -1.00FPS, lat: -1.000ms, cur_lat: -1.000ms, sleep: 0.0ms, busywait: 0.0ms",
		},
		{
			name: "applied with delays",
			setup: func(app *models.App) {
				app.SwapControlMode = 2
				app.SwapInterval = -1
				app.Flags.Set(models.FlagSwapIntervalSet)
				app.AvgFPS = 59.94
				app.AvgLatency = 16.6667
				app.CurLatency = 17.25
				app.Sleep = 3 * time.Millisecond
				app.BusyWait = 1500 * time.Microsecond
			},
			want: "TearDetect: [2:-1] 59.94FPS, lat: 16.667ms, cur_lat: 17.250ms, sleep: 3.0ms, busywait: 1.5ms",
		},
		{
			name: "barriers",
			setup: func(app *models.App) {
				app.Flags.Set(models.FlagFlush | models.FlagFinish)
			},
			want: "TearDetect: [0:unset] -1.00FPS, lat: -1.000ms, cur_lat: -1.000ms, flush, finish, sleep: 0.0ms, busywait: 0.0ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := models.NewApp()
			tt.setup(app)
			if got := Format(app); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestPublishMirrorsTitleOnlyWhenDecorated(t *testing.T) {
	var out bytes.Buffer
	p := NewPublisher(&out)
	app := models.NewApp()
	rec := &titleRecorder{}

	p.Publish(app, rec)
	if len(rec.titles) != 1 {
		t.Errorf("decorated window got %d titles", len(rec.titles))
	}

	app.Window.ToggleFullscreen(false)
	p.Publish(app, rec)
	if len(rec.titles) != 1 {
		t.Error("undecorated window got a title")
	}

	p.Publish(app, nil)

	lines := bytes.Count(out.Bytes(), []byte("\n"))
	if lines != 3 {
		t.Errorf("console got %d lines, want 3", lines)
	}
}
