package interlog

// ReadCache is a bipartite circular buffer holding the most recent byte
// suffix of a log's committed events, evicted whole-event at a time.
//
// It owns one fixed buffer, mem, split into two contiguous segments: A
// (the "top" segment, populated first) and B (the "bottom" segment,
// created only once growth must wrap around and eat into A's former
// space). Keeping both segments contiguous means either can be decoded
// with a single slice and no unaligned copies; storing only logicalStart
// (rather than a per-event map) means the cache's coverage is always a
// single contiguous logical range [logicalStart, n).
//
// ReadCache holds no reference to the [Log] it accelerates; it is pure
// buffer management driven entirely through [ReadCache.Update] and
// [ReadCache.Read].
type ReadCache struct {
	mem          []byte
	logicalStart uint64
	a            Region
	b            Region // b.Pos() is always 0.
}

// NewReadCache allocates a ReadCache with the given fixed byte capacity. A
// capacity smaller than the largest event ever committed is permitted; the
// cache then degrades to zero cache hits rather than erroring (see
// [ReadCache.Update]).
func NewReadCache(capacity int) *ReadCache {
	return &ReadCache{mem: make([]byte, capacity)}
}

// LogicalStart returns the logical position of the oldest event currently
// resident in the cache. Only meaningful when the cache is non-empty.
func (c *ReadCache) LogicalStart() uint64 { return c.logicalStart }

// Empty reports whether both segments are empty.
func (c *ReadCache) Empty() bool { return c.a.Empty() && c.b.Empty() }

// extendRegion grows region by writing src at its current end, failing
// (and leaving both region and dest unchanged) if src does not fit.
func extendRegion(region *Region, dest []byte, src []byte) error {
	extension := NewRegion(region.End(), len(src))

	err := extension.Write(dest, src)
	if err != nil {
		return err
	}

	*region = region.Lengthen(len(src))

	return nil
}

// refreshLogicalStart recomputes logicalStart from whichever segment is
// now at the front of the cache's coverage: A if it holds anything, else
// B. Called after every mutation that might have changed which event sits
// at the front. A no-op if both segments are empty (logicalStart is then
// unobserved, per [ReadCache.LogicalStart]'s doc).
func (c *ReadCache) refreshLogicalStart() {
	if !c.a.Empty() {
		aBytes, err := c.a.Read(c.mem)
		if err != nil {
			panic("interlog: read cache invariant violated: A out of bounds")
		}

		first, ok := ReadEvent(aBytes, 0)
		if !ok {
			panic("interlog: read cache invariant violated: A does not start on an event boundary")
		}

		c.logicalStart = first.ID.LogicalPos

		return
	}

	if !c.b.Empty() {
		bBytes, err := c.b.Read(c.mem)
		if err != nil {
			panic("interlog: read cache invariant violated: B out of bounds")
		}

		first, ok := ReadEvent(bBytes, 0)
		if !ok {
			panic("interlog: read cache invariant violated: B does not start on an event boundary")
		}

		c.logicalStart = first.ID.LogicalPos
	}
}

func (c *ReadCache) checkInvariants() {
	if c.b.Pos() != 0 {
		panic("interlog: read cache invariant violated: B does not start at 0")
	}

	if c.b.End() > c.a.Pos() {
		panic("interlog: read cache invariant violated: A and B overlap")
	}
}

// Update is called by [Log.Commit] with the newly flushed, contiguously
// serialized events. It never returns an error: every overflow path the
// algorithm can take either finds room by evicting whole events from the
// front of A, or degrades gracefully to an empty cache (see
// [NewReadCache] and DESIGN.md for why a buffer smaller than the largest event is a
// supported, if suboptimal, configuration).
func (c *ReadCache) Update(es []byte) {
	switch {
	case c.a.Empty() && c.b.Empty():
		if err := extendRegion(&c.a, c.mem, es); err != nil {
			// Reset (already empty) and retry once; if it still does not
			// fit, the cache remains empty.
			c.a = ZeroRegion
			_ = extendRegion(&c.a, c.mem, es)
		}
	case !c.a.Empty() && c.b.Empty():
		if err := extendRegion(&c.a, c.mem, es); err != nil {
			c.wrapAround(es)
		}
	default:
		c.wrapAround(es)
	}

	c.refreshLogicalStart()
	c.checkInvariants()
}

// newAPos finds the smallest absolute event-boundary offset at or past A's
// current start that is enough to leave A and the extended B non-overlapping
// ([Region.End] of B at or below this offset). ok is false if no such
// boundary exists even after evicting every event in A, meaning evicting all
// of A still leaves insufficient room.
func (c *ReadCache) newAPos(es []byte) (offset int, ok bool) {
	newBEnd := c.b.End() + len(es)

	if c.a.Pos() >= newBEnd {
		return c.a.Pos(), true
	}

	aBytes, err := c.a.Read(c.mem)
	if err != nil {
		panic("interlog: read cache invariant violated: A out of bounds")
	}

	view := NewView(aBytes)
	offset = c.a.Pos()

	for {
		_, e, more := view.Next()
		if !more {
			return 0, false
		}

		offset += e.OnDiskSize()

		if offset >= newBEnd {
			return offset, true
		}
	}
}

func (c *ReadCache) wrapAround(es []byte) {
	o, found := c.newAPos(es)
	if found {
		c.a = c.a.ChangePos(o)

		// The boundary search guarantees the evicted prefix leaves enough
		// room for es, so this cannot overflow.
		if err := extendRegion(&c.b, c.mem, es); err != nil {
			panic("interlog: read cache invariant violated: B extend after eviction failed")
		}

		return
	}

	// Evicting all of A still leaves no room: promote B to the new A.
	c.a = NewRegion(0, c.b.End())
	c.b = ZeroRegion

	if err := extendRegion(&c.a, c.mem, es); err != nil {
		// The promoted A cannot fit es either; erase it and retry. If it
		// still does not fit, the cache degrades to empty (see Update doc).
		c.a = ZeroRegion
		_ = extendRegion(&c.a, c.mem, es)
	}
}

// Read decodes the event at relBytePos, a byte offset relative to
// [ReadCache.LogicalStart]'s byte position. ok is false if relBytePos does
// not land on a cached event boundary.
func (c *ReadCache) Read(relBytePos int) (Event, bool) {
	aBytes, err := c.a.Read(c.mem)
	if err != nil {
		panic("interlog: read cache invariant violated: A out of bounds")
	}

	if e, ok := ReadEvent(aBytes, relBytePos); ok {
		return e, true
	}

	bBytes, err := c.b.Read(c.mem)
	if err != nil {
		panic("interlog: read cache invariant violated: B out of bounds")
	}

	return ReadEvent(bBytes, relBytePos-len(aBytes))
}
