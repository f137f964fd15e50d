package cmd

import (
	"os"

	"github.com/ThatOtherAndrew/teardetect/internal/loop"
	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/opengl"
	"github.com/ThatOtherAndrew/teardetect/internal/status"
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol/platform"
	"github.com/spf13/cobra"
)

func Run(cmd *cobra.Command, args []string) error {
	logger := newLogger(verbose)

	_, modes := platform.Backends(nil)
	settings, err := prepareSettings(cmd.Flags(), len(modes), logger)
	if err != nil {
		return err
	}

	backend, err := newBackend(logger)
	if err != nil {
		return err
	}
	defer backend.Terminate()

	app := models.NewApp()
	l := loop.New(app, loop.Config{
		Backend: backend,
		LoadDevice: func() (loop.Device, error) {
			dev, err := opengl.Load(logger)
			if err != nil {
				return nil, err
			}
			return dev, nil
		},
		Platform:          platform.Backends,
		Status:            status.NewPublisher(os.Stdout),
		Logger:            logger,
		TimerQueries:      settings.TimerQueries,
		ApplySwapInterval: settings.ApplySwapInterval,
	})
	settings.Configure(app)

	return l.Run()
}
