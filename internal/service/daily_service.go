package service

import (
	"context"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/game"
	"tapmine/internal/repository"
)

// DailyService handles streak-based daily reward claims. The streak is
// recomputed from the claim history on every claim; a missed day resets it
// to 1 without any scheduled job.
type DailyService struct {
	db      repository.DB
	auth    *Authenticator
	bots    *repository.BotRepository
	players *repository.PlayerRepository
	rewards *repository.DailyRewardRepository

	defaults domain.GameSettings
	now      func() time.Time
}

// ClaimResult is the outcome of a successful daily claim.
type ClaimResult struct {
	Reward     float64        `json:"reward"`
	StreakDays int            `json:"streak_days"`
	Player     *domain.Player `json:"player"`
}

func NewDailyService(db repository.DB, auth *Authenticator, defaults domain.GameSettings) *DailyService {
	return &DailyService{
		db:       db,
		auth:     auth,
		bots:     repository.NewBotRepository(db),
		players:  repository.NewPlayerRepository(db),
		rewards:  repository.NewDailyRewardRepository(db),
		defaults: defaults,
		now:      time.Now,
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay compares calendar dates only. Stored claim dates come back at
// midnight UTC regardless of the server zone, so comparing instants would
// break streaks anywhere but UTC.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Claim grants today's reward exactly once per calendar day. The reward
// scales linearly with the streak: base + streak * step.
func (s *DailyService) Claim(ctx context.Context, token string, botID int64) (*ClaimResult, error) {
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
	if p.BotID != botID {
		return nil, game.ErrWrongBot
	}

	bot, err := s.bots.Get(ctx, p.BotID)
	if err != nil {
		return nil, err
	}
	settings := s.defaults
	if bot != nil {
		settings = domain.SettingsForBot(s.defaults, bot.Config)
	}

	now := s.now()
	today := midnight(now)

	newEnergy, _ := game.Regenerate(p.Energy, p.EnergyMax, p.RechargeRate, p.LastEnergyUpdate, now)
	p.Energy = newEnergy
	p.LastEnergyUpdate = now

	claimed, err := s.rewards.GetByDate(ctx, tx, playerID, today)
	if err != nil {
		return nil, err
	}
	if claimed != nil {
		if err := s.players.UpdateEnergy(ctx, tx, p.ID, p.Energy, now); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return nil, game.ErrAlreadyClaimed
	}

	latest, err := s.rewards.GetLatest(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	streak := 1
	if latest != nil && sameDay(latest.ClaimDate, today.AddDate(0, 0, -1)) {
		streak = latest.StreakDays + 1
	}

	reward := settings.DailyRewardBase + float64(streak)*settings.DailyRewardStep

	if _, err := s.rewards.Create(ctx, tx, playerID, today, streak, reward); err != nil {
		return nil, err
	}

	p.Coins += reward
	p.StreakDays = streak
	if err := s.players.ApplyDailyClaim(ctx, tx, p, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	dailyClaimsTotal.Inc()
	return &ClaimResult{Reward: reward, StreakDays: streak, Player: p}, nil
}
