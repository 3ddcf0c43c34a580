package domain

import (
	"encoding/json"
	"time"
)

// Bot is a read-only reference to the externally-owned bot record. The
// economy subsystem never writes it; bot CRUD and token encryption live in
// the dashboard service. Token is treated as opaque and assumed usable by
// the time it reaches the session authenticator.
type Bot struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"bot_name" json:"bot_name"`
	Token     string    `db:"bot_token" json:"-"`
	Username  string    `db:"bot_username" json:"bot_username"`
	Config    []byte    `db:"bot_config" json:"-"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GameSettings are the typed mining knobs for one bot. The dashboard stores
// them under "mining_settings" inside bot_config; absent or malformed
// values fall back to the platform defaults.
type GameSettings struct {
	TapReward          int     `json:"tap_reward"`
	MaxEnergy          int     `json:"max_energy"`
	EnergyRechargeRate int     `json:"energy_recharge_rate"`
	ReferralBonus      float64 `json:"referral_bonus"`
	MinWithdrawal      float64 `json:"min_withdrawal"`
	FeeRate            float64 `json:"fee_rate"`
	DailyRewardBase    float64 `json:"daily_reward_base"`
	DailyRewardStep    float64 `json:"daily_reward_step"`
}

// Valid reports whether the parsed settings can actually drive the economy.
func (s GameSettings) Valid() bool {
	return s.TapReward >= 1 &&
		s.MaxEnergy > 0 &&
		s.EnergyRechargeRate >= 1 &&
		s.MinWithdrawal > 0 &&
		s.FeeRate >= 0 && s.FeeRate < 1
}

type botConfig struct {
	MiningSettings *GameSettings `json:"mining_settings"`
}

// SettingsForBot merges a bot's stored mining settings over the defaults.
// Zero-valued fields in the stored blob keep their default.
func SettingsForBot(defaults GameSettings, rawConfig []byte) GameSettings {
	out := defaults

	if len(rawConfig) == 0 {
		return out
	}

	var cfg botConfig
	if err := json.Unmarshal(rawConfig, &cfg); err != nil || cfg.MiningSettings == nil {
		return out
	}

	m := cfg.MiningSettings
	if m.TapReward >= 1 {
		out.TapReward = m.TapReward
	}
	if m.MaxEnergy > 0 {
		out.MaxEnergy = m.MaxEnergy
	}
	if m.EnergyRechargeRate >= 1 {
		out.EnergyRechargeRate = m.EnergyRechargeRate
	}
	if m.ReferralBonus > 0 {
		out.ReferralBonus = m.ReferralBonus
	}
	if m.MinWithdrawal > 0 {
		out.MinWithdrawal = m.MinWithdrawal
	}
	if m.FeeRate > 0 && m.FeeRate < 1 {
		out.FeeRate = m.FeeRate
	}
	if m.DailyRewardBase > 0 {
		out.DailyRewardBase = m.DailyRewardBase
	}
	if m.DailyRewardStep > 0 {
		out.DailyRewardStep = m.DailyRewardStep
	}
	return out
}
