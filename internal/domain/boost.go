package domain

import "time"

// BoostType identifies which economic parameter a boost raises.
type BoostType string

const (
	BoostEnergyLimit   BoostType = "energy_limit"
	BoostMultiTap      BoostType = "multi_tap"
	BoostRechargeSpeed BoostType = "recharge_speed"
)

// Boost records a permanent purchased upgrade. One row per
// (player, boost_type); repeat purchases increment Level.
type Boost struct {
	ID          int64     `db:"id" json:"id"`
	PlayerID    int64     `db:"player_id" json:"player_id"`
	Type        BoostType `db:"boost_type" json:"boost_type"`
	Level       int       `db:"boost_level" json:"boost_level"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}
