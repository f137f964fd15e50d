//go:build windows

// Package wgl binds the WGL swap control extension of the current context.
package wgl

/*
#cgo LDFLAGS: -lopengl32
#include <windows.h>
#include <stdlib.h>
#include <string.h>

typedef BOOL (WINAPI *swap_fn)(int);
typedef const char *(WINAPI *ext_fn)(void);

static void *proc(const char *name) {
	void *p = (void *)wglGetProcAddress(name);
	if (p == (void *)0x1 || p == (void *)0x2 || p == (void *)0x3 || p == (void *)-1) {
		return NULL;
	}
	return p;
}

static int has_extension(void *fn, const char *name) {
	const char *exts = ((ext_fn)fn)();
	size_t len = strlen(name);
	const char *p = exts;
	if (!exts) {
		return 0;
	}
	while ((p = strstr(p, name)) != NULL) {
		if ((p == exts || p[-1] == ' ') && (p[len] == ' ' || p[len] == '\0')) {
			return 1;
		}
		p += len;
	}
	return 0;
}

static int call_swap(void *fn, int interval) {
	return ((swap_fn)fn)(interval);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
)

type WGLError struct {
	msg string
}

func (e *WGLError) Error() string {
	return e.msg
}

type Bindings struct {
	ext unsafe.Pointer
}

func New() *Bindings {
	return &Bindings{}
}

func (b *Bindings) Load() error {
	b.ext = nil
	if C.wglGetCurrentContext() == nil {
		return &WGLError{"no current WGL context"}
	}

	name := C.CString("wglGetExtensionsStringEXT")
	defer C.free(unsafe.Pointer(name))
	exts := C.proc(name)
	if exts == nil {
		return &WGLError{"failed to load WGL extensions"}
	}

	cext := C.CString("WGL_EXT_swap_control")
	defer C.free(unsafe.Pointer(cext))
	if C.has_extension(exts, cext) != 0 {
		fn := C.CString("wglSwapIntervalEXT")
		defer C.free(unsafe.Pointer(fn))
		b.ext = C.proc(fn)
	}
	return nil
}

func (b *Bindings) Backends() []swapcontrol.Backend {
	return []swapcontrol.Backend{&ext{b}}
}

type ext struct{ b *Bindings }

func (e *ext) Name() string    { return "EXT" }
func (e *ext) Available() bool { return e.b.ext != nil }

func (e *ext) SetInterval(interval int) error {
	if e.b.ext == nil {
		return swapcontrol.ErrUnavailable
	}
	if C.call_swap(e.b.ext, C.int(interval)) == 0 {
		return fmt.Errorf("wglSwapIntervalEXT(%d) failed", interval)
	}
	return nil
}
