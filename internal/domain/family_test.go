package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigForFamily_StartNumbers(t *testing.T) {
	cases := []struct {
		family OrderFamily
		start  int64
	}{
		{FamilyRegular, 10000001},
		{FamilyMealBox, 20000001},
		{FamilyBulkMeal, 30000001},
		{FamilyCatering, 40000001},
		{FamilyCorporate, 50000001},
	}

	for _, tc := range cases {
		cfg, err := ConfigForFamily(tc.family)
		require.NoError(t, err)
		assert.Equal(t, tc.start, cfg.StartNumber, "family %s", tc.family)
	}
}

func TestConfigForFamily_DisjointRanges(t *testing.T) {
	seen := map[int64]OrderFamily{}
	for _, family := range Families() {
		cfg, err := ConfigForFamily(family)
		require.NoError(t, err)

		prev, dup := seen[cfg.StartNumber]
		assert.False(t, dup, "families %s and %s share start number %d", prev, family, cfg.StartNumber)
		seen[cfg.StartNumber] = family
	}
}

func TestConfigForFamily_GuestCheckout(t *testing.T) {
	for _, family := range []OrderFamily{FamilyCatering, FamilyCorporate} {
		cfg, err := ConfigForFamily(family)
		require.NoError(t, err)
		assert.True(t, cfg.GuestAllowed, "family %s", family)
		assert.True(t, cfg.RequiresEventDate, "family %s", family)
		assert.False(t, cfg.RequiresAddress, "family %s", family)
	}

	for _, family := range []OrderFamily{FamilyRegular, FamilyMealBox, FamilyBulkMeal} {
		cfg, err := ConfigForFamily(family)
		require.NoError(t, err)
		assert.False(t, cfg.GuestAllowed, "family %s", family)
		assert.True(t, cfg.RequiresAddress, "family %s", family)
	}
}

func TestConfigForFamily_Unknown(t *testing.T) {
	_, err := ConfigForFamily(OrderFamily("drive-through"))
	assert.Error(t, err)
}
