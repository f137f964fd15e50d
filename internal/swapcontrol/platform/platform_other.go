//go:build !linux && !windows

package platform

import (
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
)

func Backends(window func(int) error) (swapcontrol.Loader, []swapcontrol.Backend) {
	return swapcontrol.NopLoader, []swapcontrol.Backend{windowBackend(window)}
}
