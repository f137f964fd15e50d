package timestamps

import (
	"testing"

	"github.com/ThatOtherAndrew/teardetect/internal/gfxtest"
)

func TestNoSampleUntilRingIsFull(t *testing.T) {
	for _, capacity := range []int{1, 3, DefaultCapacity} {
		dev := gfxtest.New()
		dev.QueryDelay = 2_500_000
		r := NewRing(capacity)
		r.Acquire(dev)

		for f := uint64(0); f < uint64(capacity)*4; f++ {
			lat, ok := r.Advance(f)
			if f < uint64(capacity) {
				if ok {
					t.Errorf("capacity %d: sample reported at frame %d", capacity, f)
				}
				continue
			}
			if !ok {
				t.Errorf("capacity %d: no sample at frame %d", capacity, f)
				continue
			}
			if lat != 2.5 {
				t.Errorf("capacity %d frame %d: latency %v, want 2.5", capacity, f, lat)
			}
		}
	}
}

func TestOneQueryPerFrame(t *testing.T) {
	dev := gfxtest.New()
	r := NewRing(4)
	r.Acquire(dev)

	const frames = 20
	for f := uint64(0); f < frames; f++ {
		r.Advance(f)
	}
	if got := dev.Count("QueryTimestamp"); got != frames {
		t.Errorf("issued %d queries, want %d", got, frames)
	}
	if got := dev.Count("QueryResult"); got != frames-4 {
		t.Errorf("read back %d results, want %d", got, frames-4)
	}
}

func TestReadsSlotIssuedCapacityFramesAgo(t *testing.T) {
	dev := gfxtest.New()
	r := NewRing(3)
	r.Acquire(dev)

	for f := uint64(0); f < 3; f++ {
		r.Advance(f)
	}
	dev.Reset()
	r.Advance(3)

	// frame 3 must read the query of frame 0 (the first generated id) and
	// then reuse it for the new timestamp
	want := []string{"QueryResult 1", "QueryTimestamp 1"}
	if len(dev.Calls) != len(want) {
		t.Fatalf("calls = %v, want %v", dev.Calls, want)
	}
	for i := range want {
		if dev.Calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, dev.Calls[i], want[i])
		}
	}
}

func TestReleaseInvalidatesSlots(t *testing.T) {
	dev := gfxtest.New()
	r := NewRing(2)
	r.Release()

	r.Acquire(dev)
	for f := uint64(0); f < 5; f++ {
		r.Advance(f)
	}
	r.Release()
	if len(dev.Live) != 0 {
		t.Errorf("queries still alive after release: %v", dev.Live)
	}
	if _, ok := r.Advance(10); ok {
		t.Error("released ring reported a sample")
	}

	r.Acquire(dev)
	if _, ok := r.Advance(2); ok {
		t.Error("fresh slot read before it was written")
	}
	if _, ok := r.Advance(4); !ok {
		t.Error("no sample once the slot was written")
	}
}

func TestNewRingCapacity(t *testing.T) {
	if c := NewRing(0).Capacity(); c != DefaultCapacity {
		t.Errorf("capacity = %d, want default %d", c, DefaultCapacity)
	}
	if c := NewRing(7).Capacity(); c != 7 {
		t.Errorf("capacity = %d, want 7", c)
	}
}
