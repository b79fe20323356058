package depot_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/depot"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepot(t *testing.T) {
	zoneID := kernel.NewUUID()
	managerID := kernel.NewUUID()

	t.Run("should create depot with layout", func(t *testing.T) {
		d, err := depot.NewDepot(kernel.NewUUID(), "Dakar Plateau", &zoneID, &managerID, []string{" A-01", "A-02 "})

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.Equal(t, []string{"A-01", "A-02"}, d.Layout())
		assert.True(t, d.ZoneID().IsEqual(zoneID))
		assert.True(t, d.ManagerID().IsEqual(managerID))
	})

	t.Run("should reject duplicate shelf", func(t *testing.T) {
		_, err := depot.NewDepot(kernel.NewUUID(), "Thiès", nil, nil, []string{"A-01", "A-01"})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject empty name and id", func(t *testing.T) {
		_, err := depot.NewDepot(kernel.UUID{}, " ", nil, nil, nil)

		require.ErrorIs(t, err, depot.ErrNameIsRequired)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestDepot_HasLocation(t *testing.T) {
	withLayout, err := depot.NewDepot(kernel.NewUUID(), "Plateau", nil, nil, []string{"A-01"})
	require.NoError(t, err)
	open, err := depot.NewDepot(kernel.NewUUID(), "Rufisque", nil, nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		depot    *depot.Depot
		location string
		want     bool
	}{
		{"declared shelf", withLayout, "A-01", true},
		{"undeclared shelf", withLayout, "Z-99", false},
		{"open layout accepts any shelf", open, "B-12", true},
		{"blank location never matches", open, "  ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.depot.HasLocation(tt.location))
		})
	}
}

func TestNewZone(t *testing.T) {
	z, err := depot.NewZone(kernel.NewUUID(), "Dakar Centre", "Dakar")
	require.NoError(t, err)
	assert.Equal(t, "Dakar", z.City())

	_, err = depot.NewZone(kernel.NewUUID(), "Dakar Centre", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
