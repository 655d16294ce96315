package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abletheabove/interlog/pkg/storage"
)

func Test_Mem_Append_When_WithinCapacity(t *testing.T) {
	t.Parallel()

	m := storage.NewMem(16)

	n, err := m.Append([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 5, m.Len())

	n, err = m.Append([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, 11, m.Len())
	assert.Equal(t, "hello world", string(m.Bytes()))
}

func Test_Mem_Append_When_ExceedsCapacity(t *testing.T) {
	t.Parallel()

	m := storage.NewMem(4)

	n, err := m.Append([]byte("too long"))
	require.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, m.Len())
}

func Test_Mem_ReadAt_When_WithinBounds(t *testing.T) {
	t.Parallel()

	m := storage.NewMem(32)
	_, err := m.Append([]byte("abcdefghij"))
	require.NoError(t, err)

	dst := make([]byte, 4)
	require.NoError(t, m.ReadAt(dst, 3))
	assert.Equal(t, "defg", string(dst))
}

func Test_Mem_ReadAt_When_OutOfBounds(t *testing.T) {
	t.Parallel()

	m := storage.NewMem(32)
	_, err := m.Append([]byte("short"))
	require.NoError(t, err)

	dst := make([]byte, 10)
	err = m.ReadAt(dst, 0)
	require.Error(t, err)
}
