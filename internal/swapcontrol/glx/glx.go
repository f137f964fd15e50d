//go:build linux

// Package glx binds the GLX swap control extensions of the current context.
package glx

/*
#cgo LDFLAGS: -lGL -lX11
#include <GL/glx.h>
#include <stdlib.h>
#include <string.h>

typedef void (*swap_ext_fn)(Display *, GLXDrawable, int);
typedef int (*swap_sgi_fn)(int);
typedef int (*swap_mesa_fn)(unsigned int);

static int has_extension(Display *dpy, const char *name) {
	const char *exts = glXQueryExtensionsString(dpy, DefaultScreen(dpy));
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

static void *proc(const char *name) {
	return (void *)glXGetProcAddressARB((const GLubyte *)name);
}

static void call_ext(void *fn, Display *dpy, GLXDrawable d, int interval) {
	((swap_ext_fn)fn)(dpy, d, interval);
}

static int call_sgi(void *fn, int interval) {
	return ((swap_sgi_fn)fn)(interval);
}

static int call_mesa(void *fn, unsigned int interval) {
	return ((swap_mesa_fn)fn)(interval);
}
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/ThatOtherAndrew/teardetect/internal/swapcontrol"
)

type GLXError struct {
	msg string
}

func (e *GLXError) Error() string {
	return e.msg
}

// Bindings holds the resolved entry points. They are valid for the context
// that was current when Load ran.
type Bindings struct {
	dpy  *C.Display
	ext  unsafe.Pointer
	sgi  unsafe.Pointer
	mesa unsafe.Pointer
}

func New() *Bindings {
	return &Bindings{}
}

func (b *Bindings) Load() error {
	*b = Bindings{}

	dpy := C.glXGetCurrentDisplay()
	if dpy == nil {
		return &GLXError{"no current GLX display"}
	}
	b.dpy = dpy
	b.ext = b.resolve("GLX_EXT_swap_control", "glXSwapIntervalEXT")
	b.sgi = b.resolve("GLX_SGI_swap_control", "glXSwapIntervalSGI")
	b.mesa = b.resolve("GLX_MESA_swap_control", "glXSwapIntervalMESA")
	return nil
}

func (b *Bindings) resolve(extension, function string) unsafe.Pointer {
	cext := C.CString(extension)
	defer C.free(unsafe.Pointer(cext))
	if C.has_extension(b.dpy, cext) == 0 {
		return nil
	}
	cfn := C.CString(function)
	defer C.free(unsafe.Pointer(cfn))
	return C.proc(cfn)
}

// Backends returns the GLX mechanisms in ordinal order.
func (b *Bindings) Backends() []swapcontrol.Backend {
	return []swapcontrol.Backend{
		&ext{b},
		&sgi{b},
		&mesa{b},
	}
}

type ext struct{ b *Bindings }

func (e *ext) Name() string    { return "EXT" }
func (e *ext) Available() bool { return e.b.ext != nil }

func (e *ext) SetInterval(interval int) error {
	if e.b.ext == nil {
		return swapcontrol.ErrUnavailable
	}
	drawable := C.glXGetCurrentDrawable()
	if drawable == 0 {
		return &GLXError{"failed to get current GLX drawable"}
	}
	C.call_ext(e.b.ext, e.b.dpy, drawable, C.int(interval))
	return nil
}

type sgi struct{ b *Bindings }

func (s *sgi) Name() string    { return "SGI" }
func (s *sgi) Available() bool { return s.b.sgi != nil }

func (s *sgi) SetInterval(interval int) error {
	if s.b.sgi == nil {
		return swapcontrol.ErrUnavailable
	}
	if rc := C.call_sgi(s.b.sgi, C.int(interval)); rc != 0 {
		return fmt.Errorf("glXSwapIntervalSGI(%d) returned %d", interval, int(rc))
	}
	return nil
}

type mesa struct{ b *Bindings }

func (m *mesa) Name() string    { return "MESA" }
func (m *mesa) Available() bool { return m.b.mesa != nil }

func (m *mesa) SetInterval(interval int) error {
	if m.b.mesa == nil {
		return swapcontrol.ErrUnavailable
	}
	if interval < 0 {
		return fmt.Errorf("glXSwapIntervalMESA does not take negative intervals (%d)", interval)
	}
	if rc := C.call_mesa(m.b.mesa, C.uint(interval)); rc != 0 {
		return fmt.Errorf("glXSwapIntervalMESA(%d) returned %d", interval, int(rc))
	}
	return nil
}
