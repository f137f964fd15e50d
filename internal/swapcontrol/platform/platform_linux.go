package platform

import (
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol/glx"
)

// Backends returns the loader and the ordered swap control mechanisms of
// this platform. window is the windowing library's own swap interval call
// and always comes last.
func Backends(window func(int) error) (swapcontrol.Loader, []swapcontrol.Backend) {
	b := glx.New()
	return b, append(b.Backends(), windowBackend(window))
}
