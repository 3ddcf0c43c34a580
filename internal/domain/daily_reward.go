package domain

import "time"

// DailyReward is one claim row per (player, server-local calendar day).
// StreakDays is recomputed from the previous day's claim at claim time,
// never trusted from a cached counter; a gap resets the streak to 1.
type DailyReward struct {
	ID         int64     `db:"id" json:"id"`
	PlayerID   int64     `db:"player_id" json:"player_id"`
	ClaimDate  time.Time `db:"claim_date" json:"claim_date"`
	StreakDays int       `db:"streak_days" json:"streak_days"`
	Reward     float64   `db:"reward" json:"reward"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
