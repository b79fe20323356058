package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		addr, err := kernel.NewAddress("  12 rue Didouche ", " Alger ", " 16000 ")

		require.NoError(t, err)
		assert.Equal(t, "12 rue Didouche", addr.Street())
		assert.Equal(t, "Alger", addr.City())
		assert.Equal(t, "16000", addr.PostalCode())
		assert.Equal(t, "12 rue Didouche, 16000 Alger", addr.String())
		require.NoError(t, addr.Validate())
	})

	t.Run("postal code is optional", func(t *testing.T) {
		addr, err := kernel.NewAddress("3 bd Zighout", "Oran", "")

		require.NoError(t, err)
		assert.Equal(t, "3 bd Zighout, Oran", addr.String())
	})

	t.Run("street and city are required", func(t *testing.T) {
		_, err := kernel.NewAddress(" ", "", "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "city")
	})
}

func TestAddress_SameCity(t *testing.T) {
	addr, err := kernel.NewAddress("1 place Emir", "Constantine", "")
	require.NoError(t, err)

	assert.True(t, addr.SameCity("constantine "))
	assert.False(t, addr.SameCity("Annaba"))
}

func TestAddress_ZeroValueIsInvalid(t *testing.T) {
	var addr kernel.Address

	require.ErrorIs(t, addr.Validate(), kernel.ErrAddressIsNotConstructed)
}
