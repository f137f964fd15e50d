// Package timestamps measures GPU-side frame latency with a ring of
// timestamp queries kept in flight across several frames.
package timestamps

const DefaultCapacity = 10

// Queries is the subset of the graphics device the ring needs.
type Queries interface {
	GenQueries(n int) []uint32
	DeleteQueries(ids []uint32)
	QueryTimestamp(id uint32)
	QueryResult(id uint32) uint64
	Timestamp() uint64
}

type slot struct {
	query  uint32
	issued uint64
	valid  bool
}

// Ring holds one slot per frame in flight. A slot is only read back once
// the ring has made a full pass and the slot carries a query issued
// exactly capacity frames earlier.
type Ring struct {
	q     Queries
	ids   []uint32
	slots []slot
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Ring{slots: make([]slot, capacity)}
}

func (r *Ring) Capacity() int {
	return len(r.slots)
}

// Acquire creates the queries on the current context.
func (r *Ring) Acquire(q Queries) {
	r.Release()
	r.q = q
	r.ids = q.GenQueries(len(r.slots))
	for i := range r.slots {
		r.slots[i] = slot{query: r.ids[i]}
	}
}

// Release deletes the queries. It is safe to call on a ring that was never
// acquired.
func (r *Ring) Release() {
	if r.q != nil && len(r.ids) > 0 {
		r.q.DeleteQueries(r.ids)
	}
	r.q = nil
	r.ids = nil
	for i := range r.slots {
		r.slots[i] = slot{}
	}
}

// Advance reads back the slot for frame, if the ring is full, and issues a
// new timestamp query into it. The latency is in milliseconds.
//
// The readback may block until the GPU has executed the query issued
// capacity frames ago.
func (r *Ring) Advance(frame uint64) (latency float64, ok bool) {
	if r.q == nil {
		return 0, false
	}

	n := uint64(len(r.slots))
	s := &r.slots[frame%n]
	if frame >= n && s.valid {
		result := r.q.QueryResult(s.query)
		latency = float64(int64(result-s.issued)) / 1e6
		ok = true
	}

	r.q.QueryTimestamp(s.query)
	s.issued = r.q.Timestamp()
	s.valid = true
	return latency, ok
}
