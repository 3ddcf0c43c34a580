package repository

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
)

const playerColumns = `id, bot_id, telegram_user_id, COALESCE(username, ''), COALESCE(first_name, ''),
	coins, energy, energy_max, level, xp, coins_per_tap, energy_recharge_rate,
	total_taps, combo_record, streak_days, referral_code, referred_by, referral_earnings,
	last_tap_time, last_energy_update, created_at`

type PlayerRepository struct {
	db DB
}

func NewPlayerRepository(db DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.ID, &p.BotID, &p.TelegramUserID, &p.Username, &p.FirstName,
		&p.Coins, &p.Energy, &p.EnergyMax, &p.Level, &p.XP, &p.CoinsPerTap, &p.RechargeRate,
		&p.TotalTaps, &p.ComboRecord, &p.StreakDays, &p.ReferralCode, &p.ReferredBy, &p.ReferralEarnings,
		&p.LastTapTime, &p.LastEnergyUpdate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GenerateReferralCode returns a short URL-safe random code.
func GenerateReferralCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// GetByBotAndTelegramID resolves a player by its natural key. Returns
// (nil, nil) when the player does not exist yet.
func (r *PlayerRepository) GetByBotAndTelegramID(ctx context.Context, q Querier, botID, telegramUserID int64) (*domain.Player, error) {
	p, err := scanPlayer(q.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM mining_players WHERE bot_id = $1 AND telegram_user_id = $2`,
		botID, telegramUserID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// Create inserts a new player seeded from the bot's game settings.
func (r *PlayerRepository) Create(ctx context.Context, q Querier, botID, telegramUserID int64, username, firstName string, settings domain.GameSettings, referredBy *int64) (*domain.Player, error) {
	return scanPlayer(q.QueryRow(ctx,
		`INSERT INTO mining_players
			(bot_id, telegram_user_id, username, first_name,
			 energy, energy_max, coins_per_tap, energy_recharge_rate,
			 referral_code, referred_by)
		 VALUES ($1, $2, $3, $4, $5, $5, $6, $7, $8, $9)
		 RETURNING `+playerColumns,
		botID, telegramUserID, username, firstName,
		settings.MaxEnergy, settings.TapReward, settings.EnergyRechargeRate,
		GenerateReferralCode(), referredBy,
	))
}

// GetByID loads a player without locking.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	return scanPlayer(r.db.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM mining_players WHERE id = $1`, id,
	))
}

// GetForUpdate loads a player inside the caller's transaction with a row
// lock, serializing every balance-mutating operation per player.
func (r *PlayerRepository) GetForUpdate(ctx context.Context, tx Querier, id int64) (*domain.Player, error) {
	return scanPlayer(tx.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM mining_players WHERE id = $1 FOR UPDATE`, id,
	))
}

// GetByReferralCode resolves a referral code to a player of the same bot.
// Returns (nil, nil) when no such code exists.
func (r *PlayerRepository) GetByReferralCode(ctx context.Context, q Querier, botID int64, code string) (*domain.Player, error) {
	p, err := scanPlayer(q.QueryRow(ctx,
		`SELECT `+playerColumns+` FROM mining_players WHERE bot_id = $1 AND referral_code = $2`,
		botID, code,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

// UpdateEnergy persists a regeneration result: the new energy level and the
// refreshed last_energy_update timestamp.
func (r *PlayerRepository) UpdateEnergy(ctx context.Context, q Querier, id int64, energy int, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players SET energy = $1, last_energy_update = $2 WHERE id = $3`,
		energy, now, id,
	)
	return err
}

// ApplyTap writes the outcome of one successful tap.
func (r *PlayerRepository) ApplyTap(ctx context.Context, q Querier, p *domain.Player, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players
		 SET coins = $1, energy = $2, total_taps = $3, xp = $4, level = $5,
		     last_tap_time = $6, last_energy_update = $6
		 WHERE id = $7`,
		p.Coins, p.Energy, p.TotalTaps, p.XP, p.Level, now, p.ID,
	)
	return err
}

// ApplyBoost writes the debit and the additive effect of a boost purchase
// as one statement inside the purchase transaction.
func (r *PlayerRepository) ApplyBoost(ctx context.Context, q Querier, p *domain.Player, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players
		 SET coins = $1, energy = $2, energy_max = $3, coins_per_tap = $4,
		     energy_recharge_rate = $5, last_energy_update = $6
		 WHERE id = $7`,
		p.Coins, p.Energy, p.EnergyMax, p.CoinsPerTap, p.RechargeRate, now, p.ID,
	)
	return err
}

// ApplyDailyClaim writes the reward credit, the recomputed streak mirror
// and the regeneration result as one statement inside the claim transaction.
func (r *PlayerRepository) ApplyDailyClaim(ctx context.Context, q Querier, p *domain.Player, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players
		 SET coins = $1, streak_days = $2, energy = $3, last_energy_update = $4
		 WHERE id = $5`,
		p.Coins, p.StreakDays, p.Energy, now, p.ID,
	)
	return err
}

// AdjustCoins credits (positive) or debits (negative) a locked player row.
func (r *PlayerRepository) AdjustCoins(ctx context.Context, q Querier, id int64, delta float64) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players SET coins = coins + $1 WHERE id = $2`,
		delta, id,
	)
	return err
}

// SetStreak mirrors the recomputed streak on the player row for display.
func (r *PlayerRepository) SetStreak(ctx context.Context, q Querier, id int64, streak int) error {
	_, err := q.Exec(ctx,
		`UPDATE mining_players SET streak_days = $1 WHERE id = $2`,
		streak, id,
	)
	return err
}

// Leaderboard returns a bot's top players ordered by coins descending.
func (r *PlayerRepository) Leaderboard(ctx context.Context, botID int64, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT COALESCE(username, ''), COALESCE(first_name, ''), coins, level, total_taps
		 FROM mining_players
		 WHERE bot_id = $1
		 ORDER BY coins DESC
		 LIMIT $2`,
		botID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.FirstName, &e.Coins, &e.Level, &e.TotalTaps); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
