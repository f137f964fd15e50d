package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/ThatOtherAndrew/teardetect/internal/models"
	"github.com/ThatOtherAndrew/teardetect/internal/timestamps"
)

var ErrInvalid = errors.New("invalid configuration")

// MaxTimerQueries bounds the number of timestamp queries kept in flight.
const MaxTimerQueries = 1024

type Settings struct {
	DisplayMode       string  `json:"display_mode"`
	SwapInterval      int     `json:"swap_interval"`
	ApplySwapInterval bool    `json:"apply_swap_interval"`
	SwapControlMode   int     `json:"swap_control_mode"`
	WindowX           int     `json:"window_x"`
	WindowY           int     `json:"window_y"`
	WindowWidth       int     `json:"window_width"`
	WindowHeight      int     `json:"window_height"`
	Fullscreen        bool    `json:"fullscreen"`
	ModeSwitch        bool    `json:"mode_switch"`
	BusyWaitMs        float64 `json:"busy_wait_ms"`
	SleepMs           float64 `json:"sleep_ms"`
	Flush             bool    `json:"flush"`
	Finish            bool    `json:"finish"`
	TimerQueries      int     `json:"timer_queries"`
}

func Default() *Settings {
	return &Settings{
		DisplayMode:  models.DisplayBars.String(),
		SwapInterval: 1,
		WindowX:      100,
		WindowY:      100,
		WindowWidth:  800,
		WindowHeight: 600,
		TimerQueries: timestamps.DefaultCapacity,
	}
}

func GetSettingsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "teardetect", "settings.json"), nil
}

// LoadSettings reads the settings file at the default location.
func LoadSettings(logger *slog.Logger) (*Settings, error) {
	settingsPath, err := GetSettingsPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return LoadSettingsFrom(settingsPath, logger)
}

// LoadSettingsFrom reads the settings file at path, writing a default one
// when it does not exist yet. A malformed file falls back to the defaults
// and an invalid value falls back to its default.
func LoadSettingsFrom(settingsPath string, logger *slog.Logger) (*Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}
	defaultSettings := Default()

	data, err := os.ReadFile(settingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("creating default settings file", "path", settingsPath)
			if err := createDefaultSettings(settingsPath, defaultSettings); err != nil {
				logger.Warn("failed to create default settings file", "error", err)
			}
			return defaultSettings, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var rawSettings map[string]any
	if err := json.Unmarshal(data, &rawSettings); err != nil {
		logger.Warn("invalid settings file, using defaults", "path", settingsPath, "error", err)
		return defaultSettings, nil
	}

	knownKeys := getKnownKeys(Settings{})
	for key := range rawSettings {
		if !knownKeys[key] {
			logger.Warn("unrecognised setting key in settings file", "key", key)
		}
	}

	settings := Default()
	if err := json.Unmarshal(data, settings); err != nil {
		logger.Warn("invalid settings file, using defaults", "path", settingsPath, "error", err)
		return defaultSettings, nil
	}

	for _, p := range settings.problems() {
		logger.Warn("invalid setting, using default", "key", p.key, "value", p.value, "reason", p.reason)
		p.reset(settings, defaultSettings)
	}

	return settings, nil
}

type problem struct {
	key    string
	value  any
	reason string
	reset  func(s, def *Settings)
}

func (s *Settings) problems() []problem {
	var ps []problem
	if _, ok := models.ParseDisplayMode(s.DisplayMode); !ok {
		ps = append(ps, problem{"display_mode", s.DisplayMode, "must be one of none, colors, pulse, bars",
			func(s, d *Settings) { s.DisplayMode = d.DisplayMode }})
	}
	if s.SwapControlMode < 0 {
		ps = append(ps, problem{"swap_control_mode", s.SwapControlMode, "must not be negative",
			func(s, d *Settings) { s.SwapControlMode = d.SwapControlMode }})
	}
	if s.WindowWidth < 1 {
		ps = append(ps, problem{"window_width", s.WindowWidth, "must be positive",
			func(s, d *Settings) { s.WindowWidth = d.WindowWidth }})
	}
	if s.WindowHeight < 1 {
		ps = append(ps, problem{"window_height", s.WindowHeight, "must be positive",
			func(s, d *Settings) { s.WindowHeight = d.WindowHeight }})
	}
	if s.BusyWaitMs < 0 {
		ps = append(ps, problem{"busy_wait_ms", s.BusyWaitMs, "must not be negative",
			func(s, d *Settings) { s.BusyWaitMs = d.BusyWaitMs }})
	}
	if s.SleepMs < 0 {
		ps = append(ps, problem{"sleep_ms", s.SleepMs, "must not be negative",
			func(s, d *Settings) { s.SleepMs = d.SleepMs }})
	}
	if s.TimerQueries < 1 || s.TimerQueries > MaxTimerQueries {
		ps = append(ps, problem{"timer_queries", s.TimerQueries, fmt.Sprintf("must be between 1 and %d", MaxTimerQueries),
			func(s, d *Settings) { s.TimerQueries = d.TimerQueries }})
	}
	return ps
}

// FitSwapMode resets a swap control mode the platform does not offer to
// the first mode. swapModes is the number of modes of the platform.
func (s *Settings) FitSwapMode(swapModes int, logger *slog.Logger) {
	if s.SwapControlMode < swapModes {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("swap control mode not available on this platform, using 0",
		"swap_control_mode", s.SwapControlMode, "modes", swapModes)
	s.SwapControlMode = 0
}

// Validate reports the first invalid value as ErrInvalid. swapModes is the
// number of swap control modes of the platform.
func (s *Settings) Validate(swapModes int) error {
	if ps := s.problems(); len(ps) > 0 {
		return fmt.Errorf("%w: %s %v %s", ErrInvalid, ps[0].key, ps[0].value, ps[0].reason)
	}
	if s.SwapControlMode >= swapModes {
		return fmt.Errorf("%w: swap_control_mode %d out of range, %d mode(s) available",
			ErrInvalid, s.SwapControlMode, swapModes)
	}
	return nil
}

// Configure copies the settings into the initial session state. The
// settings must be valid.
func (s *Settings) Configure(app *models.App) {
	if mode, ok := models.ParseDisplayMode(s.DisplayMode); ok {
		app.Mode = mode
	}
	app.SwapInterval = s.SwapInterval
	app.SwapControlMode = s.SwapControlMode

	app.Window.WindowedPos = [2]int{s.WindowX, s.WindowY}
	app.Window.WindowedSize = [2]int{s.WindowWidth, s.WindowHeight}
	app.Window.RestoreWindowed()
	if s.Fullscreen {
		app.Window.ToggleFullscreen(s.ModeSwitch)
	}

	app.BusyWait = millis(s.BusyWaitMs)
	app.Sleep = millis(s.SleepMs)
	if s.Flush {
		app.Flags.Set(models.FlagFlush)
	}
	if s.Finish {
		app.Flags.Set(models.FlagFinish)
	}
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func createDefaultSettings(path string, settings *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func getKnownKeys(v any) map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if jsonTag := field.Tag.Get("json"); jsonTag != "" {
			// Handle json tags like "field,omitempty"
			tagName := strings.Split(jsonTag, ",")[0]
			if tagName != "-" {
				keys[tagName] = true
			}
		}
	}
	return keys
}
