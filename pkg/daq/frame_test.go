package daq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrame(t *testing.T) {
	t.Run("single read", func(t *testing.T) {
		frame, err := ReadFrame(NewFake([]byte{1, 2, 3, 4}), 4)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, frame)
	})

	t.Run("accumulates partial reads", func(t *testing.T) {
		f := NewFake([]byte{1}, []byte{2, 3}, []byte{4, 5, 6})
		frame, err := ReadFrame(f, 6)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, frame)
	})

	t.Run("leaves excess bytes on the transport", func(t *testing.T) {
		f := NewFake([]byte{1, 2}, []byte{3, 4})
		frame, err := ReadFrame(f, 3)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, frame)

		rest, err := ReadFrame(f, 1)
		require.NoError(t, err)
		assert.Equal(t, []byte{4}, rest)
	})

	t.Run("timeout mid frame", func(t *testing.T) {
		f := NewFake([]byte{1, 2}, []byte{})
		frame, err := ReadFrame(f, 4)
		assert.ErrorIs(t, err, ErrAcquisitionTimeout)
		assert.Nil(t, frame)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := ReadFrame(NewFake(), 0)
		assert.Error(t, err)
	})
}
