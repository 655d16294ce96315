// Package testutil provides shared scaffolding for pkg/interlog's
// property tests: random payload/batch generators seeded from a single
// uint64, and an oracle that decodes events directly off a
// [github.com/abletheabove/interlog/pkg/storage.Mem], independent of
// the read cache under test.
package testutil
