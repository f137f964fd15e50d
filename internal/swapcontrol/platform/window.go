package platform

import "github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"

func windowBackend(fn func(int) error) swapcontrol.Backend {
	return swapcontrol.Func{Label: "WINDOW", Fn: fn}
}
