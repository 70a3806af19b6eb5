package domain

import "fmt"

// OrderFamily identifies which storefront flow an order came from. Each family
// owns a disjoint order-number range so numbers never collide across families.
type OrderFamily string

const (
	FamilyRegular   OrderFamily = "regular"
	FamilyMealBox   OrderFamily = "mealbox"
	FamilyBulkMeal  OrderFamily = "bulkmeal"
	FamilyCatering  OrderFamily = "catering"
	FamilyCorporate OrderFamily = "corporate"
)

// FamilyConfig is the per-family policy table: where the family's numbering
// starts, whether guests may check out without a registered account, and which
// request fields are mandatory.
type FamilyConfig struct {
	Family            OrderFamily
	StartNumber       int64
	GuestAllowed      bool
	RequiresAddress   bool
	RequiresEventDate bool
}

var familyConfigs = map[OrderFamily]FamilyConfig{
	FamilyRegular: {
		Family:          FamilyRegular,
		StartNumber:     10000001,
		RequiresAddress: true,
	},
	FamilyMealBox: {
		Family:          FamilyMealBox,
		StartNumber:     20000001,
		RequiresAddress: true,
	},
	FamilyBulkMeal: {
		Family:          FamilyBulkMeal,
		StartNumber:     30000001,
		RequiresAddress: true,
	},
	FamilyCatering: {
		Family:            FamilyCatering,
		StartNumber:       40000001,
		GuestAllowed:      true,
		RequiresEventDate: true,
	},
	FamilyCorporate: {
		Family:            FamilyCorporate,
		StartNumber:       50000001,
		GuestAllowed:      true,
		RequiresEventDate: true,
	},
}

// ConfigForFamily resolves the policy for a family tag as it arrives from the
// outside (path segment, payload field).
func ConfigForFamily(family OrderFamily) (FamilyConfig, error) {
	cfg, ok := familyConfigs[family]
	if !ok {
		return FamilyConfig{}, fmt.Errorf("unknown order family %q", family)
	}
	return cfg, nil
}

// Families lists every known family. Order is not significant.
func Families() []OrderFamily {
	families := make([]OrderFamily, 0, len(familyConfigs))
	for f := range familyConfigs {
		families = append(families, f)
	}
	return families
}
