package interlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Region_Lengthen_When_Growing(t *testing.T) {
	t.Parallel()

	r := NewRegion(4, 10)
	grown := r.Lengthen(6)

	assert.Equal(t, 4, grown.Pos())
	assert.Equal(t, 16, grown.Len())
	assert.Equal(t, 20, grown.End())
}

func Test_Region_ChangePos_When_MovingStartForward(t *testing.T) {
	t.Parallel()

	r := NewRegion(0, 100)
	shrunk := r.ChangePos(30)

	assert.Equal(t, 30, shrunk.Pos())
	assert.Equal(t, 100, shrunk.End())
	assert.Equal(t, 70, shrunk.Len())
}

func Test_Region_Next_When_ChainingRegions(t *testing.T) {
	t.Parallel()

	r := NewRegion(0, 10)
	next := r.Next(5)

	assert.Equal(t, 10, next.Pos())
	assert.Equal(t, 5, next.Len())
}

func Test_Region_Read_When_WithinBounds(t *testing.T) {
	t.Parallel()

	buf := []byte("hello world")
	r := NewRegion(6, 5)

	got, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(got))
}

func Test_Region_Read_When_OutOfBounds(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 4)
	r := NewRegion(2, 10)

	_, err := r.Read(buf)
	require.Error(t, err)
}

func Test_Region_Write_When_SrcTooLarge(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 16)
	r := NewRegion(0, 4)

	err := r.Write(buf, []byte("too many bytes"))
	require.Error(t, err)
}

func Test_Region_Write_When_FitsExactly(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 8)
	r := NewRegion(2, 4)

	err := r.Write(buf, []byte("abcd"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 'a', 'b', 'c', 'd', 0, 0}, buf)
}
