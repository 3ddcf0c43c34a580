package domain

import "time"

// Player is one end-user's economic state in a bot's mining game, keyed by
// (bot_id, telegram_user_id). Invariants: 0 <= Energy <= EnergyMax and
// Coins >= 0 after every regeneration, spend or debit.
type Player struct {
	ID               int64      `db:"id" json:"id"`
	BotID            int64      `db:"bot_id" json:"bot_id"`
	TelegramUserID   int64      `db:"telegram_user_id" json:"telegram_user_id"`
	Username         string     `db:"username" json:"username"`
	FirstName        string     `db:"first_name" json:"first_name"`
	Coins            float64    `db:"coins" json:"coins"`
	Energy           int        `db:"energy" json:"energy"`
	EnergyMax        int        `db:"energy_max" json:"energy_max"`
	Level            int        `db:"level" json:"level"`
	XP               int64      `db:"xp" json:"xp"`
	CoinsPerTap      int        `db:"coins_per_tap" json:"coins_per_tap"`
	RechargeRate     int        `db:"energy_recharge_rate" json:"energy_recharge_rate"`
	TotalTaps        int64      `db:"total_taps" json:"total_taps"`
	ComboRecord      int        `db:"combo_record" json:"combo_record"`
	StreakDays       int        `db:"streak_days" json:"streak_days"`
	ReferralCode     string     `db:"referral_code" json:"referral_code"`
	ReferredBy       *int64     `db:"referred_by" json:"referred_by,omitempty"`
	ReferralEarnings float64    `db:"referral_earnings" json:"referral_earnings"`
	LastTapTime      *time.Time `db:"last_tap_time" json:"last_tap_time,omitempty"`
	LastEnergyUpdate time.Time  `db:"last_energy_update" json:"last_energy_update"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// LeaderboardEntry is one row of the per-bot leaderboard, ordered by coins.
type LeaderboardEntry struct {
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	Coins     float64 `json:"coins"`
	Level     int     `json:"level"`
	TotalTaps int64   `json:"total_taps"`
}
