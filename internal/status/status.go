package status

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
)

// Format renders the one-line summary shown in the title bar and on the
// console.
func Format(app *models.App) string {
	interval := "unset"
	if app.Flags.Has(models.FlagSwapIntervalSet) {
		interval = strconv.Itoa(app.SwapInterval)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: [%d:%s] %.2fFPS, lat: %.3fms, cur_lat: %.3fms",
		window.Title, app.SwapControlMode, interval, app.AvgFPS, app.AvgLatency, app.CurLatency)
	if app.Flags.Has(models.FlagFlush) {
		b.WriteString(", flush")
	}
	if app.Flags.Has(models.FlagFinish) {
		b.WriteString(", finish")
	}
	fmt.Fprintf(&b, ", sleep: %.1fms, busywait: %.1fms",
		float64(app.Sleep.Nanoseconds())/1e6, float64(app.BusyWait.Nanoseconds())/1e6)
	return b.String()
}

type TitleSetter interface {
	SetTitle(title string)
}

type Publisher struct {
	out io.Writer
}

func NewPublisher(out io.Writer) *Publisher {
	return &Publisher{out: out}
}

// Publish mirrors the status line to the window title, when the window is
// decorated, and always to the console. win may be nil.
func (p *Publisher) Publish(app *models.App, win TitleSetter) {
	line := Format(app)
	if win != nil && app.Window.Decorated() {
		win.SetTitle(line)
	}
	fmt.Fprintln(p.out, line)
}
