package forth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_PictureQueue_HoldOverflow(t *testing.T) {
	var q pictureQueue
	q.init(1, 4)
	q.begin(false)
	require.NoError(t, q.hold('1'))
	require.NoError(t, q.hold('2'))
	require.NoError(t, q.hold('3'))
	require.NoError(t, q.hold('4'))

	err := q.hold('5')
	require.Error(t, err)
	ve, ok := err.(*VMError)
	require.True(t, ok)
	require.Equal(t, CodeBufOverflow, ve.Code)
}

func Test_PictureQueue_RoundRobinDoesNotClobber(t *testing.T) {
	var q pictureQueue
	q.init(2, 8)

	q.begin(false)
	require.NoError(t, q.hold('a'))
	outer := q.cur

	q.begin(false)
	require.NoError(t, q.hold('z'))
	inner := q.finish()
	require.Equal(t, "z", inner)

	require.Equal(t, byte('a'), outer[0])
}
