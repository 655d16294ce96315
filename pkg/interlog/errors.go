package interlog

import "errors"

// ErrEmptyTransaction is returned by [Log.Commit] when no events were
// enqueued since the last commit (or since the log was opened).
var ErrEmptyTransaction = errors.New("interlog: commit called with no pending events")

// ErrCommitDisk wraps a failure from the underlying [storage] adapter
// during [Log.Commit]. The log's in-memory state (write buffer, read
// cache, key index, byte length) is left exactly as it was before the
// commit was attempted: a disk failure never partially applies.
var ErrCommitDisk = errors.New("interlog: commit failed to persist to storage")

// ErrCommitKeyIndex is returned by [Log.Commit] if the key index cannot
// grow to accommodate the newly committed events. Unlike ErrCommitDisk,
// this can only happen once the bytes are already durable on disk: the
// commit is not rolled back, and the log's in-memory view of the batch
// is left incomplete (see [Log.Commit]).
var ErrCommitKeyIndex = errors.New("interlog: commit failed to extend the key index")
