package platform

import (
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol/wgl"
)

func Backends(window func(int) error) (swapcontrol.Loader, []swapcontrol.Backend) {
	b := wgl.New()
	return b, append(b.Backends(), windowBackend(window))
}
