package repository

import (
	"context"
	"errors"
	"time"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
)

type DailyRewardRepository struct {
	db DB
}

func NewDailyRewardRepository(db DB) *DailyRewardRepository {
	return &DailyRewardRepository{db: db}
}

// GetByDate returns the claim for a given calendar day, or (nil, nil).
func (r *DailyRewardRepository) GetByDate(ctx context.Context, q Querier, playerID int64, day time.Time) (*domain.DailyReward, error) {
	var d domain.DailyReward
	err := q.QueryRow(ctx,
		`SELECT id, player_id, claim_date, streak_days, reward, created_at
		 FROM daily_rewards WHERE player_id = $1 AND claim_date = $2`,
		playerID, day,
	).Scan(&d.ID, &d.PlayerID, &d.ClaimDate, &d.StreakDays, &d.Reward, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetLatest returns the most recent claim, or (nil, nil) for none. The
// streak is always derived from this row, never from a cached counter, so
// a missed day correctly resets it.
func (r *DailyRewardRepository) GetLatest(ctx context.Context, q Querier, playerID int64) (*domain.DailyReward, error) {
	var d domain.DailyReward
	err := q.QueryRow(ctx,
		`SELECT id, player_id, claim_date, streak_days, reward, created_at
		 FROM daily_rewards WHERE player_id = $1
		 ORDER BY claim_date DESC LIMIT 1`,
		playerID,
	).Scan(&d.ID, &d.PlayerID, &d.ClaimDate, &d.StreakDays, &d.Reward, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts the claim row inside the claim transaction.
func (r *DailyRewardRepository) Create(ctx context.Context, q Querier, playerID int64, day time.Time, streak int, reward float64) (*domain.DailyReward, error) {
	d := &domain.DailyReward{PlayerID: playerID, ClaimDate: day, StreakDays: streak, Reward: reward}
	err := q.QueryRow(ctx,
		`INSERT INTO daily_rewards (player_id, claim_date, streak_days, reward)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		playerID, day, streak, reward,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
