// Package storage provides concrete [interlog.Storage] adapters: [Mem],
// a fixed-capacity in-memory sink for tests and the simulator, and
// [File], a durable adapter over a single append-only file.
package storage

import "github.com/abletheabove/interlog/pkg/interlog"

// Storage is [interlog.Storage]. It is aliased here so callers who only
// import this package never need to reach into pkg/interlog for the
// interface name.
type Storage = interlog.Storage
