package game

import "tapmine/internal/domain"

// BoostSpec is one catalog entry: a fixed coin cost and a fixed additive
// effect on a single player field. Effects stack without a cap.
type BoostSpec struct {
	Type   domain.BoostType `json:"boost_type"`
	Cost   float64          `json:"cost"`
	Effect int              `json:"effect"`
}

// Catalog is the fixed boost shop. energy_limit raises energy_max,
// multi_tap raises coins_per_tap (energy cost stays 1 per tap),
// recharge_speed raises energy_recharge_rate.
var Catalog = map[domain.BoostType]BoostSpec{
	domain.BoostEnergyLimit:   {Type: domain.BoostEnergyLimit, Cost: 500, Effect: 500},
	domain.BoostMultiTap:      {Type: domain.BoostMultiTap, Cost: 1000, Effect: 1},
	domain.BoostRechargeSpeed: {Type: domain.BoostRechargeSpeed, Cost: 750, Effect: 1},
}

// LookupBoost resolves a caller-supplied boost type against the catalog.
func LookupBoost(boostType string) (BoostSpec, error) {
	spec, ok := Catalog[domain.BoostType(boostType)]
	if !ok {
		return BoostSpec{}, ErrUnknownBoost
	}
	return spec, nil
}
