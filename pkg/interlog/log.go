package interlog

import (
	"fmt"
)

// Config sizes the four fixed buffers a [Log] allocates once at
// construction. All four are independent. Undersizing the write buffer,
// key index, or disk read buffer produces an overflow error from the
// relevant operation, never corruption; an undersized read cache
// produces no error and only lowers the cache hit rate.
type Config struct {
	// ReadCacheCapacity is the size, in bytes, of the in-memory read
	// cache. Zero is permitted: the log still functions correctly, every
	// read simply falls through to disk.
	ReadCacheCapacity int

	// KeyIndexCapacity is the maximum number of events the log can ever
	// hold (the key index stores one byte offset per event).
	KeyIndexCapacity int

	// TxnWriteBufCapacity is the size, in bytes, of the staging buffer
	// [Log.Enqueue] serializes into. Must be at least one event's
	// on-disk size to enqueue anything at all.
	TxnWriteBufCapacity int

	// DiskReadBufCapacity is the size, in bytes, of the scratch buffer
	// used to decode a cache-miss read. Must be at least the largest
	// event's on-disk size for reads of that event to succeed.
	DiskReadBufCapacity int
}

// Log is an append-only event log: a durable byte history on [Storage],
// accelerated by an in-memory [ReadCache] and a key index mapping logical
// position to byte offset. A Log is not safe for concurrent use.
type Log struct {
	id      Address
	storage Storage

	byteLen int

	readCache   *ReadCache
	keyIndex    FixVec[int]
	txnWriteBuf FixVec[byte]
	diskReadBuf FixVec[byte]
}

// NewLog constructs a Log identified by id, persisting to storage, with
// buffers sized per cfg. The log starts empty; storage is assumed to
// already be empty as well (NewLog does not inspect it).
func NewLog(id Address, storage Storage, cfg Config) *Log {
	return &Log{
		id:          id,
		storage:     storage,
		readCache:   NewReadCache(cfg.ReadCacheCapacity),
		keyIndex:    NewFixVec[int](cfg.KeyIndexCapacity),
		txnWriteBuf: NewFixVec[byte](cfg.TxnWriteBufCapacity),
		diskReadBuf: NewFixVec[byte](cfg.DiskReadBufCapacity),
	}
}

// ID returns the log's address.
func (l *Log) ID() Address { return l.id }

// Len returns the number of committed events.
func (l *Log) Len() int { return l.keyIndex.Len() }

// Enqueue serializes payload as the next event and stages it in the
// write buffer, without touching storage, the cache, or the index.
// Callers may enqueue repeatedly to build a batch before a single
// [Log.Commit]. Fails with [ErrOverflow] if the write buffer has no room
// for the event; the log is left unchanged.
func (l *Log) Enqueue(payload []byte) error {
	// The next logical position counts committed events plus the events
	// already staged in this transaction.
	next := uint64(l.keyIndex.Len())
	staged := NewView(l.txnWriteBuf.Slice())

	for {
		if _, _, ok := staged.Next(); !ok {
			break
		}

		next++
	}

	e := Event{
		ID: ID{
			Origin:     l.id,
			LogicalPos: next,
		},
		Payload: payload,
	}

	return AppendEvent(&l.txnWriteBuf, e)
}

// Commit flushes every event staged since the last commit to storage in
// a single call, then updates the read cache and key index to reflect
// it.
//
// If storage append fails, the log's in-memory state is unchanged and
// the write buffer is left intact: the caller may retry. The read cache
// update never fails. If append succeeds but the key index cannot grow,
// the bytes are already durable but the log's in-memory view of them is
// incomplete; recovering from that state is out of scope (see the
// package doc).
func (l *Log) Commit() error {
	if l.byteLen%8 != 0 {
		panic("interlog: invariant violated: byte_len is not 8-aligned")
	}

	buf := l.txnWriteBuf.Slice()

	if len(buf) < HeaderSize {
		return ErrEmptyTransaction
	}

	n, err := l.storage.Append(buf)
	if err == nil && n != len(buf) {
		err = fmt.Errorf("storage appended %d of %d staged bytes", n, len(buf))
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrCommitDisk, err)
	}

	l.readCache.Update(buf)

	offset := l.byteLen
	view := NewView(buf)

	for {
		_, e, ok := view.Next()
		if !ok {
			break
		}

		if err := l.keyIndex.Push(offset); err != nil {
			return fmt.Errorf("%w: %w", ErrCommitKeyIndex, err)
		}

		offset += e.OnDiskSize()
	}

	l.byteLen = offset
	l.txnWriteBuf.Clear()

	return nil
}

// Read is the result of a successful [Log.Read]: the decoded event, and
// whether it was served from the read cache or required a disk read.
type Read struct {
	CacheHit bool
	Event    Event
}

// Read looks up logicalPos via the key index and decodes the event,
// preferring the read cache and falling through to storage on a miss.
// found is false if logicalPos has never been committed. err is non-nil
// only for an operational failure reading from storage or sizing the
// disk scratch buffer — a condition the spec's Option-returning read
// does not model, since unlike the core's original environment Go
// surfaces I/O failures explicitly rather than letting the caller
// unwrap a panic.
func (l *Log) Read(logicalPos uint64) (r Read, found bool, err error) {
	bytePos, ok := l.keyIndex.At(int(logicalPos))
	if !ok {
		return Read{}, false, nil
	}

	if !l.readCache.Empty() {
		cacheStart := l.readCache.LogicalStart()

		cacheStartByte, ok := l.keyIndex.At(int(cacheStart))
		if !ok {
			panic("interlog: invariant violated: cache logical_start not in key index")
		}

		if bytePos >= cacheStartByte {
			rel := bytePos - cacheStartByte

			if e, ok := l.readCache.Read(rel); ok {
				return Read{CacheHit: true, Event: e}, true, nil
			}
		}
	}

	end := l.byteLen

	if next, ok := l.keyIndex.At(int(logicalPos) + 1); ok {
		end = next
	}

	length := end - bytePos

	if err := l.diskReadBuf.Resize(length, 0); err != nil {
		return Read{}, false, fmt.Errorf("interlog: sizing disk read buffer: %w", err)
	}

	dst := l.diskReadBuf.Slice()

	if err := l.storage.ReadAt(dst, int64(bytePos)); err != nil {
		return Read{}, false, fmt.Errorf("interlog: reading event from storage: %w", err)
	}

	e, ok := ReadEvent(dst, 0)
	if !ok {
		panic("interlog: invariant violated: disk produced an undecodable event")
	}

	return Read{CacheHit: false, Event: e}, true, nil
}
