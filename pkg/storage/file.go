package storage

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/abletheabove/interlog/pkg/fs"
)

// File is a durable [Storage] backed by a single append-only file opened
// through [fs.FS]. A log has exactly one writer (see the core's
// concurrency model), so Append tracks its own end-of-file offset rather
// than relying on O_APPEND; it writes, then fsyncs before returning,
// matching the write-then-fsync discipline the rest of this codebase
// uses for durable writes.
type File struct {
	mu     sync.Mutex
	f      fs.File
	offset int64
}

// OpenFile opens (creating if necessary) path on fsys for durable
// append-only storage. If the file already has contents, Append resumes
// at its current end. The core does not do crash recovery (see
// pkg/interlog's package doc): [interlog.NewLog] always starts with an
// empty key index and a byte length of zero, so a Log built over a
// non-empty file does not index the bytes already there, and its byte
// offsets do not match positions in the file.
func OpenFile(fsys fs.FS, path string) (*File, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("storage: stat %s: %w", path, err)
	}

	return &File{f: f, offset: info.Size()}, nil
}

// CreateFile creates (truncating if it already exists) path on fsys for
// a fresh, empty durable log.
func CreateFile(fsys fs.FS, path string) (*File, error) {
	f, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", path, err)
	}

	return &File{f: f, offset: 0}, nil
}

// Append writes p at the file's current end, fsyncing before returning
// so that a successful Append is durable.
func (s *File) Append(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.f.Seek(s.offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("storage: seeking to append position: %w", err)
	}

	n, err := s.f.Write(p)
	if err != nil {
		return n, fmt.Errorf("storage: appending: %w", err)
	}

	if err := s.f.Sync(); err != nil {
		return n, fmt.Errorf("storage: syncing after append: %w", err)
	}

	s.offset += int64(n)

	return n, nil
}

// ReadAt fills dst by reading len(dst) bytes starting at offset.
func (s *File) ReadAt(dst []byte, offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.f.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("storage: seeking to read position: %w", err)
	}

	if _, err := io.ReadFull(s.f, dst); err != nil {
		return fmt.Errorf("storage: reading: %w", err)
	}

	return nil
}

// Close closes the underlying file.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.f.Close()
}
