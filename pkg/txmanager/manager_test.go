package txmanager

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	t.Run("sentinel", func(t *testing.T) {
		assert.True(t, IsSerializationFailure(ErrSerializationFailure))
	})

	t.Run("wrapped sentinel", func(t *testing.T) {
		err := fmt.Errorf("remove slots: %w", ErrSerializationFailure)
		assert.True(t, IsSerializationFailure(err))
	})

	t.Run("raw pq 40001", func(t *testing.T) {
		assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	})

	t.Run("wrapped pq 40001", func(t *testing.T) {
		err := fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})
		assert.True(t, IsSerializationFailure(err))
	})

	t.Run("unique violation is not a serialization failure", func(t *testing.T) {
		assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, IsSerializationFailure(nil))
	})
}
