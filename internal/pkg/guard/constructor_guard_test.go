package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStorageSlotNotConstructed = errors.New("storageSlot must be created via newStorageSlot")

type storageSlot struct {
	code  string
	guard guard.ConstructorGuard
}

func newStorageSlot(code string) storageSlot {
	return storageSlot{code: code, guard: guard.NewConstructorGuard()}
}

func (s storageSlot) Validate() error {
	return s.guard.Validate(errStorageSlotNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed guard passes with any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("order not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("struct built by constructor is valid", func(t *testing.T) {
		slot := newStorageSlot("A-01")

		require.NoError(t, slot.Validate())
		assert.Equal(t, "A-01", slot.code)
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		slot := storageSlot{code: "A-02"}

		require.ErrorIs(t, slot.Validate(), errStorageSlotNotConstructed)
	})
}
