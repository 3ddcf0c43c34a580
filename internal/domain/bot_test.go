package domain

import "testing"

func defaults() GameSettings {
	return GameSettings{
		TapReward:          1,
		MaxEnergy:          1000,
		EnergyRechargeRate: 1,
		ReferralBonus:      500,
		MinWithdrawal:      10000,
		FeeRate:            0.02,
		DailyRewardBase:    100,
		DailyRewardStep:    10,
	}
}

func TestSettingsForBot(t *testing.T) {
	tests := []struct {
		name   string
		config []byte
		check  func(t *testing.T, s GameSettings)
	}{
		{
			name:   "nil config keeps defaults",
			config: nil,
			check: func(t *testing.T, s GameSettings) {
				if s != defaults() {
					t.Fatalf("expected defaults, got %+v", s)
				}
			},
		},
		{
			name:   "malformed json keeps defaults",
			config: []byte(`{not json`),
			check: func(t *testing.T, s GameSettings) {
				if s != defaults() {
					t.Fatalf("expected defaults, got %+v", s)
				}
			},
		},
		{
			name:   "config without mining settings keeps defaults",
			config: []byte(`{"welcome_message":"hi"}`),
			check: func(t *testing.T, s GameSettings) {
				if s != defaults() {
					t.Fatalf("expected defaults, got %+v", s)
				}
			},
		},
		{
			name:   "partial override keeps unset fields at defaults",
			config: []byte(`{"mining_settings":{"max_energy":2000,"fee_rate":0.05}}`),
			check: func(t *testing.T, s GameSettings) {
				if s.MaxEnergy != 2000 {
					t.Errorf("MaxEnergy = %d, want 2000", s.MaxEnergy)
				}
				if s.FeeRate != 0.05 {
					t.Errorf("FeeRate = %v, want 0.05", s.FeeRate)
				}
				if s.TapReward != 1 || s.MinWithdrawal != 10000 {
					t.Errorf("unset fields changed: %+v", s)
				}
			},
		},
		{
			name:   "out-of-range values are ignored",
			config: []byte(`{"mining_settings":{"tap_reward":0,"fee_rate":1.5,"max_energy":-10}}`),
			check: func(t *testing.T, s GameSettings) {
				if s != defaults() {
					t.Fatalf("invalid overrides should be ignored, got %+v", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, SettingsForBot(defaults(), tt.config))
		})
	}
}

func TestGameSettingsValid(t *testing.T) {
	s := defaults()
	if !s.Valid() {
		t.Fatal("defaults should be valid")
	}

	s.FeeRate = 1
	if s.Valid() {
		t.Error("fee rate of 1 should be invalid")
	}

	s = defaults()
	s.MaxEnergy = 0
	if s.Valid() {
		t.Error("zero max energy should be invalid")
	}
}
