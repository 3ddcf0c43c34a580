package service

import (
	"context"
	"errors"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/game"
	"tapmine/internal/repository"

	"github.com/jackc/pgx/v5"
)

// Task thresholds and rewards. Progress is derived from live counters on
// every read, so tasks complete retroactively and never need persistence.
const (
	taskTapTarget      = 1000
	taskTapReward      = 500
	taskReferralTarget = 5
	taskReferralReward = 2500
	taskStreakTarget   = 7
	taskStreakReward   = 1000
	taskCoinTarget     = 10000
	taskCoinReward     = 5000
)

// GameService owns the hot path: tap processing, plus the read-only
// leaderboard and task views.
type GameService struct {
	db        repository.DB
	auth      *Authenticator
	players   *repository.PlayerRepository
	referrals *repository.ReferralRepository

	now func() time.Time
}

func NewGameService(db repository.DB, auth *Authenticator) *GameService {
	return &GameService{
		db:        db,
		auth:      auth,
		players:   repository.NewPlayerRepository(db),
		referrals: repository.NewReferralRepository(db),
		now:       time.Now,
	}
}

// Tap applies one tap under a row lock: regenerate first, then spend one
// energy and credit coins_per_tap. Regeneration is persisted even when the
// tap itself is rejected, so a drained player still accumulates energy.
func (s *GameService) Tap(ctx context.Context, token string, botID int64) (*domain.Player, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.GetForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	newEnergy, _ := game.Regenerate(p.Energy, p.EnergyMax, p.RechargeRate, p.LastEnergyUpdate, now)
	p.Energy = newEnergy
	p.LastEnergyUpdate = now

	if p.BotID != botID {
		if err := s.commitRegen(ctx, tx, p, now); err != nil {
			return nil, err
		}
		return nil, game.ErrWrongBot
	}
	if p.Energy <= 0 {
		if err := s.commitRegen(ctx, tx, p, now); err != nil {
			return nil, err
		}
		return nil, game.ErrNoEnergy
	}

	p.Coins += float64(p.CoinsPerTap)
	p.Energy--
	p.TotalTaps++
	p.XP++
	p.Level = game.LevelForXP(p.XP)
	p.LastTapTime = &now

	if err := s.players.ApplyTap(ctx, tx, p, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	tapsTotal.Inc()
	return p, nil
}

// commitRegen persists the regeneration result of a rejected mutation. The
// business-rule error travels back to the caller, the energy update does not
// get lost with it.
func (s *GameService) commitRegen(ctx context.Context, tx pgx.Tx, p *domain.Player, now time.Time) error {
	if err := s.players.UpdateEnergy(ctx, tx, p.ID, p.Energy, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreditReferralBonus credits the referrer of a referred player. It is
// called by outside collaborators when the referred player hits a
// milestone; the core itself never decides when a bonus is due.
func (s *GameService) CreditReferralBonus(ctx context.Context, referredPlayerID int64, amount float64) error {
	if amount <= 0 {
		return game.ErrInvalidAmount
	}
	err := s.referrals.CreditBonus(ctx, referredPlayerID, amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return game.ErrNoReferral
	}
	return err
}

// Leaderboard returns a bot's top players by coins. Limit is clamped to
// [1, 100] with a default of 10.
func (s *GameService) Leaderboard(ctx context.Context, botID int64, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.players.Leaderboard(ctx, botID, limit)
}

// Tasks computes the derived progress view for a player.
func (s *GameService) Tasks(ctx context.Context, token string, botID int64) ([]domain.Task, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}

	p, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.BotID != botID {
		return nil, game.ErrWrongBot
	}

	referralCount, err := s.referrals.CountByReferrer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	tasks := []domain.Task{
		{ID: 1, Name: "Tap 1000 times", Progress: p.TotalTaps, Target: taskTapTarget, Reward: taskTapReward},
		{ID: 2, Name: "Invite 5 friends", Progress: referralCount, Target: taskReferralTarget, Reward: taskReferralReward},
		{ID: 3, Name: "Reach a 7-day streak", Progress: int64(p.StreakDays), Target: taskStreakTarget, Reward: taskStreakReward},
		{ID: 4, Name: "Earn 10000 coins", Progress: int64(p.Coins), Target: taskCoinTarget, Reward: taskCoinReward},
	}
	for i := range tasks {
		tasks[i].Completed = tasks[i].Progress >= tasks[i].Target
	}
	return tasks, nil
}
