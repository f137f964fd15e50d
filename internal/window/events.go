package window

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeySpace
	KeyBackspace
	KeyEnter
	KeyHome
	KeyPageUp
	KeyPageDown
	KeyKPMultiply
	KeyKPDivide
	KeyKPAdd
	KeyKPSubtract
	KeyEqual
	KeyMinus
	KeyB
	KeyC
	KeyF
	KeyS
	KeyV
	KeyW
)

type Mod uint8

const (
	ModShift Mod = 1 << iota
)

type Event interface {
	isEvent()
}

// KeyEvent is a key press. Releases and repeats are not reported.
type KeyEvent struct {
	Key  Key
	Mods Mod
}

type CloseEvent struct{}

// ResizeEvent carries the new framebuffer size in pixels.
type ResizeEvent struct {
	Width, Height int
}

type MoveEvent struct {
	X, Y int
}

func (KeyEvent) isEvent()    {}
func (CloseEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}
func (MoveEvent) isEvent()   {}

// Queue collects events pushed by native callbacks during PollEvents until
// the frame loop drains them.
type Queue struct {
	events []Event
}

func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

func (q *Queue) Len() int {
	return len(q.events)
}

// Drain hands every queued event to h in arrival order. Events pushed by h
// itself are handled in the same call.
func (q *Queue) Drain(h func(Event)) {
	for i := 0; i < len(q.events); i++ {
		e := q.events[i]
		q.events[i] = nil
		h(e)
	}
	q.events = q.events[:0]
}
