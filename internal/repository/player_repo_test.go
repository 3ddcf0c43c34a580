package repository

import (
	"context"
	"testing"
	"time"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var playerTestCols = []string{
	"id", "bot_id", "telegram_user_id", "username", "first_name",
	"coins", "energy", "energy_max", "level", "xp", "coins_per_tap", "energy_recharge_rate",
	"total_taps", "combo_record", "streak_days", "referral_code", "referred_by", "referral_earnings",
	"last_tap_time", "last_energy_update", "created_at",
}

func newPlayerRepoMock(t *testing.T) (*PlayerRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPlayerRepository(mock), mock
}

func samplePlayerRow(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(playerTestCols).AddRow(
		int64(1), int64(3), int64(1001), "miner", "Miner",
		10.0, 5, 1000, 1, int64(0), 1, 1,
		int64(5), 0, 0, "ref12345", (*int64)(nil), 0.0,
		(*time.Time)(nil), now, now,
	)
}

func TestPlayerRepository_GetByBotAndTelegramID(t *testing.T) {
	now := time.Now()

	t.Run("existing player", func(t *testing.T) {
		repo, mock := newPlayerRepoMock(t)
		mock.ExpectQuery(`FROM mining_players WHERE bot_id = \$1 AND telegram_user_id = \$2`).
			WithArgs(int64(3), int64(1001)).
			WillReturnRows(samplePlayerRow(now))

		p, err := repo.GetByBotAndTelegramID(context.Background(), mock, 3, 1001)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int64(1), p.ID)
		assert.Equal(t, "miner", p.Username)
	})

	t.Run("missing player is nil not error", func(t *testing.T) {
		repo, mock := newPlayerRepoMock(t)
		mock.ExpectQuery(`FROM mining_players WHERE bot_id = \$1 AND telegram_user_id = \$2`).
			WithArgs(int64(3), int64(9999)).
			WillReturnError(pgx.ErrNoRows)

		p, err := repo.GetByBotAndTelegramID(context.Background(), mock, 3, 9999)
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestPlayerRepository_Create(t *testing.T) {
	repo, mock := newPlayerRepoMock(t)
	now := time.Now()
	settings := domain.GameSettings{TapReward: 2, MaxEnergy: 1500, EnergyRechargeRate: 3}

	mock.ExpectQuery(`INSERT INTO mining_players`).
		WithArgs(int64(3), int64(1001), "miner", "Miner", 1500, 2, 3, pgxmock.AnyArg(), (*int64)(nil)).
		WillReturnRows(samplePlayerRow(now))

	p, err := repo.Create(context.Background(), mock, 3, 1001, "miner", "Miner", settings, nil)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlayerRepository_Leaderboard(t *testing.T) {
	repo, mock := newPlayerRepoMock(t)
	mock.ExpectQuery(`ORDER BY coins DESC`).
		WithArgs(int64(3), 2).
		WillReturnRows(pgxmock.NewRows([]string{"username", "first_name", "coins", "level", "total_taps"}).
			AddRow("first", "F", 9000.0, 7, int64(9000)).
			AddRow("second", "S", 4000.0, 4, int64(4000)))

	entries, err := repo.Leaderboard(context.Background(), 3, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Username)
	assert.Greater(t, entries[0].Coins, entries[1].Coins)
}

func TestGenerateReferralCode(t *testing.T) {
	a := GenerateReferralCode()
	b := GenerateReferralCode()
	assert.Len(t, a, 11)
	assert.NotEqual(t, a, b)
}

func TestGenerateToken(t *testing.T) {
	a := GenerateToken()
	b := GenerateToken()
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
