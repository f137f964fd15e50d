package draw

import (
	"log/slog"
	"time"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/patterns"
	"golang.org/x/time/rate"
)

// Device is what a frame is drawn on.
type Device interface {
	patterns.Renderer
	Flush()
	Finish()
}

type App struct {
	app     *models.App
	set     *patterns.Set
	logger  *slog.Logger
	invalid rate.Sometimes
}

func New(app *models.App, set *patterns.Set, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		app:     app,
		set:     set,
		logger:  logger,
		invalid: rate.Sometimes{Interval: time.Second},
	}
}

// Draw renders the active pattern and issues the barriers selected by the
// flush and finish flags.
func (a *App) Draw(dev Device) {
	if p := a.set.Get(a.app.Mode); p != nil {
		p.Render(dev, a.app.Time, a.app.Frame)
	} else {
		a.invalid.Do(func() {
			a.logger.Warn("invalid display mode", "mode", int(a.app.Mode))
		})
	}

	if a.app.Flags.Has(models.FlagFlush) {
		dev.Flush()
	}
	if a.app.Flags.Has(models.FlagFinish) {
		dev.Finish()
	}
}
