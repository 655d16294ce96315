package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abletheabove/interlog/pkg/fs"
	"github.com/abletheabove/interlog/pkg/storage"
)

func Test_File_Append_Then_ReadAt_RoundTrips(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := filepath.Join(t.TempDir(), "log.bin")

	s, err := storage.CreateFile(fsys, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.Append([]byte("first"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = s.Append([]byte("second"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	dst := make([]byte, 5)
	require.NoError(t, s.ReadAt(dst, 0))
	assert.Equal(t, "first", string(dst))

	dst = make([]byte, 6)
	require.NoError(t, s.ReadAt(dst, 5))
	assert.Equal(t, "second", string(dst))
}

func Test_CreateFile_When_PathAlreadyHasContent_Truncates(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := filepath.Join(t.TempDir(), "log.bin")

	first, err := storage.CreateFile(fsys, path)
	require.NoError(t, err)

	_, err = first.Append([]byte("stale data"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := storage.CreateFile(fsys, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	dst := make([]byte, 1)
	err = second.ReadAt(dst, 0)
	require.Error(t, err, "a freshly created file must be empty")
}

func Test_OpenFile_When_ExistingContent_ResumesAtEOF(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := filepath.Join(t.TempDir(), "log.bin")

	first, err := storage.CreateFile(fsys, path)
	require.NoError(t, err)

	_, err = first.Append([]byte("existing"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := storage.OpenFile(fsys, path)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	_, err = second.Append([]byte("-more"))
	require.NoError(t, err)

	dst := make([]byte, len("existing-more"))
	require.NoError(t, second.ReadAt(dst, 0))
	assert.Equal(t, "existing-more", string(dst))
}

func Test_File_ReadAt_When_PastEnd(t *testing.T) {
	t.Parallel()

	fsys := fs.NewReal()
	path := filepath.Join(t.TempDir(), "log.bin")

	s, err := storage.CreateFile(fsys, path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.Append([]byte("abc"))
	require.NoError(t, err)

	dst := make([]byte, 10)
	err = s.ReadAt(dst, 0)
	require.Error(t, err)
}
