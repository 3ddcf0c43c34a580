package service

import (
	"testing"
	"time"

	"tapmine/internal/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	testPlayerID = int64(7)
	testBotID    = int64(3)
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

var playerCols = []string{
	"id", "bot_id", "telegram_user_id", "username", "first_name",
	"coins", "energy", "energy_max", "level", "xp", "coins_per_tap", "energy_recharge_rate",
	"total_taps", "combo_record", "streak_days", "referral_code", "referred_by", "referral_earnings",
	"last_tap_time", "last_energy_update", "created_at",
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func basePlayer() *domain.Player {
	return &domain.Player{
		ID:               testPlayerID,
		BotID:            testBotID,
		TelegramUserID:   1001,
		Username:         "miner",
		FirstName:        "Miner",
		Coins:            10,
		Energy:           5,
		EnergyMax:        1000,
		Level:            1,
		XP:               0,
		CoinsPerTap:      1,
		RechargeRate:     1,
		TotalTaps:        5,
		ReferralCode:     "ref12345",
		LastEnergyUpdate: testNow,
		CreatedAt:        testNow.Add(-24 * time.Hour),
	}
}

func playerRows(p *domain.Player) *pgxmock.Rows {
	return pgxmock.NewRows(playerCols).AddRow(
		p.ID, p.BotID, p.TelegramUserID, p.Username, p.FirstName,
		p.Coins, p.Energy, p.EnergyMax, p.Level, p.XP, p.CoinsPerTap, p.RechargeRate,
		p.TotalTaps, p.ComboRecord, p.StreakDays, p.ReferralCode, p.ReferredBy, p.ReferralEarnings,
		p.LastTapTime, p.LastEnergyUpdate, p.CreatedAt,
	)
}

// expectAuth scripts the session token lookup every authenticated call
// starts with.
func expectAuth(mock pgxmock.PgxPoolIface, playerID int64) {
	mock.ExpectQuery(`SELECT player_id FROM game_sessions`).
		WithArgs(testToken).
		WillReturnRows(pgxmock.NewRows([]string{"player_id"}).AddRow(playerID))
}

func expectLockedPlayer(mock pgxmock.PgxPoolIface, p *domain.Player) {
	mock.ExpectQuery(`FROM mining_players WHERE id = \$1 FOR UPDATE`).
		WithArgs(p.ID).
		WillReturnRows(playerRows(p))
}

func defaultSettings() domain.GameSettings {
	return domain.GameSettings{
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
