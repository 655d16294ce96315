// Package interlog implements the core of an append-only event log: a
// transactional batched append pipeline, a LIFO bipartite circular read
// cache, an in-memory offset index, and the on-disk binary layout they
// share.
//
// A [Log] belongs to a single producer, identified by a randomly minted
// [Address]. Callers stage events with [Log.Enqueue], flush a batch
// durably with [Log.Commit], and look events up by logical position with
// [Log.Read]. Everything a [Log] touches — its write buffer, its read
// cache, its key index — is allocated once at construction; none of
// Enqueue, Commit, or Read allocate on their hot path.
//
// # Concurrency
//
// A [Log] is not safe for concurrent use. Callers must serialize calls to
// Enqueue, Commit, and Read themselves.
//
// # Durability
//
// Storage is abstracted behind [Storage]; this package never touches a
// filesystem directly. github.com/abletheabove/interlog/pkg/storage
// provides the concrete adapters ([Storage] is defined here, not there,
// so this package never needs to import its own implementations).
//
// A [Log] always starts empty: [NewLog] does not read its [Storage], and
// rebuilding a Log's key index from previously written bytes (crash
// recovery) is not supported.
package interlog
