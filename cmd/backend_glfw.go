//go:build !sdl2

package cmd

import (
	"log/slog"

	"github.com/ThatOtherAndrew/teardetect/internal/window"
	"github.com/ThatOtherAndrew/teardetect/pkg/glwindow"
)

func newBackend(logger *slog.Logger) (window.Backend, error) {
	b, err := glwindow.Init(logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}
