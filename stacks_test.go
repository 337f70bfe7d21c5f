package forth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Stack_PushPopOrder(t *testing.T) {
	s := NewStack("data", 4, true)
	require.NoError(t, s.Push(1))
	require.NoError(t, s.Push(2))

	v, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, 1, s.Depth())
}

func Test_Stack_OverflowChecked(t *testing.T) {
	s := NewStack("data", 1, true)
	require.NoError(t, s.Push(1))

	err := s.Push(2)
	require.Error(t, err)
	require.Equal(t, CodeStackOverflow, err.(*VMError).Code)
}

func Test_Stack_UnderflowChecked(t *testing.T) {
	s := NewStack("data", 1, true)
	_, err := s.Pop()
	require.Error(t, err)
	require.Equal(t, CodeStackUnderflow, err.(*VMError).Code)
}

func Test_Stack_UnderflowUnchecked(t *testing.T) {
	s := NewStack("data", 1, false)
	v, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func Test_Stack_TopAndSet(t *testing.T) {
	s := NewStack("data", 4, true)
	require.NoError(t, s.Push(10))
	require.NoError(t, s.Push(20))

	v, err := s.Top(1)
	require.NoError(t, err)
	require.Equal(t, 10, v)

	require.NoError(t, s.Set(0, 99))
	v, err = s.Top(0)
	require.NoError(t, err)
	require.Equal(t, 99, v)
}
