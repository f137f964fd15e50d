package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThatOtherAndrew/teardetect/internal/config"
	"github.com/ThatOtherAndrew/teardetect/internal/loop"
	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/window"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "teardetect",
	Short: "Render test patterns that expose tearing, pacing jitter and latency",
	Long: `teardetect opens a GL window and renders patterns that make screen
tearing and frame pacing problems visible, while measuring GPU side frame
latency with timestamp queries.

Keys:
  Esc                quit
  Right/Space        next pattern      Left/Backspace  previous pattern
  Enter/W            rebuild window    F / Shift+F     fullscreen (mode switch)
  Up/Down            faster/slower     Home            reset pattern
  KP* / KP/          wider/narrower bars
  S / Shift+S        toggle/re-apply swap interval
  = KP+ / - KP-      swap interval +1/-1
  PgUp/PgDn          cycle swap control mode
  B / Shift+B        busy wait +1ms/-1ms
  V / Shift+V        sleep +1ms/-1ms
  C / Shift+C        toggle finish/flush`,
	Args: func(c *cobra.Command, args []string) error {
		if err := cobra.NoArgs(c, args); err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalid, err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          Run,
}

var (
	configPath string
	verbose    bool
	mode       = displayModeValue(models.DisplayBars)
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default ~/.config/teardetect/settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages")
	registerFlags(rootCmd.Flags())
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	})
}

func registerFlags(f *pflag.FlagSet) {
	f.Var(&mode, "mode", "initial pattern: none, colors, pulse or bars")
	f.Int("interval", 1, "swap interval")
	f.Bool("apply-interval", false, "apply the swap interval when a window is created")
	f.Int("swap-mode", 0, "swap control mode ordinal, see 'teardetect swapmodes'")
	f.Int("x", 100, "windowed x position")
	f.Int("y", 100, "windowed y position")
	f.Int("width", 800, "windowed width")
	f.Int("height", 600, "windowed height")
	f.Bool("fullscreen", false, "start fullscreen")
	f.Bool("mode-switch", false, "switch the display mode when fullscreen")
	f.Float64("busy-wait", 0, "busy wait per frame in milliseconds")
	f.Float64("sleep", 0, "sleep per frame in milliseconds")
	f.Bool("flush", false, "flush after every frame")
	f.Bool("finish", false, "finish after every frame")
	f.Int("queries", 10, "timestamp queries in flight")
}

func Execute() error {
	return rootCmd.Execute()
}

// exitOther is the status of failures outside the startup taxonomy.
const exitOther = 4

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, window.ErrInit):
		return 1
	case errors.Is(err, config.ErrInvalid):
		return 2
	case errors.Is(err, loop.ErrWindowCreate):
		return 3
	}
	return exitOther
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func loadSettings(logger *slog.Logger) (*config.Settings, error) {
	if configPath != "" {
		return config.LoadSettingsFrom(configPath, logger)
	}
	return config.LoadSettings(logger)
}

// prepareSettings loads the settings, overrides them with the command line
// and validates the result. A swap control mode from the settings file that
// the platform does not offer falls back to the first mode, while one given
// with --swap-mode is fatal.
func prepareSettings(fs *pflag.FlagSet, swapModes int, logger *slog.Logger) (*config.Settings, error) {
	settings, err := loadSettings(logger)
	if err != nil {
		return nil, err
	}
	settings.FitSwapMode(swapModes, logger)
	if err := applyFlags(fs, settings); err != nil {
		return nil, err
	}
	if err := settings.Validate(swapModes); err != nil {
		return nil, err
	}
	return settings, nil
}

// applyFlags overrides the settings with every flag given on the command
// line.
func applyFlags(fs *pflag.FlagSet, s *config.Settings) error {
	var err error
	setInt := func(name string, dst *int) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetInt(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetBool(name)
		}
	}
	setFloat := func(name string, dst *float64) {
		if err == nil && fs.Changed(name) {
			*dst, err = fs.GetFloat64(name)
		}
	}

	if fs.Changed("mode") {
		s.DisplayMode = mode.String()
	}
	setInt("interval", &s.SwapInterval)
	setBool("apply-interval", &s.ApplySwapInterval)
	setInt("swap-mode", &s.SwapControlMode)
	setInt("x", &s.WindowX)
	setInt("y", &s.WindowY)
	setInt("width", &s.WindowWidth)
	setInt("height", &s.WindowHeight)
	setBool("fullscreen", &s.Fullscreen)
	setBool("mode-switch", &s.ModeSwitch)
	setFloat("busy-wait", &s.BusyWaitMs)
	setFloat("sleep", &s.SleepMs)
	setBool("flush", &s.Flush)
	setBool("finish", &s.Finish)
	setInt("queries", &s.TimerQueries)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalid, err)
	}
	return nil
}

type displayModeValue models.DisplayMode

func (v *displayModeValue) String() string { return models.DisplayMode(*v).String() }
func (v *displayModeValue) Type() string   { return "mode" }

func (v *displayModeValue) Set(s string) error {
	m, ok := models.ParseDisplayMode(s)
	if !ok {
		return fmt.Errorf("unknown display mode %q", s)
	}
	*v = displayModeValue(m)
	return nil
}
