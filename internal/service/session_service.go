package service

import (
	"context"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/game"
	"tapmine/internal/logger"
	"tapmine/internal/repository"
	"tapmine/internal/telegram"
)

// Authenticator resolves session tokens to player identities. Tokens are
// opaque persisted credentials; validation is a single point lookup.
type Authenticator struct {
	sessions *repository.SessionRepository
}

func NewAuthenticator(db repository.DB) *Authenticator {
	return &Authenticator{sessions: repository.NewSessionRepository(db)}
}

// PlayerID returns the player behind an unexpired token.
func (a *Authenticator) PlayerID(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, game.ErrAuthInvalid
	}
	playerID, err := a.sessions.ResolvePlayer(ctx, token)
	if err != nil {
		return 0, err
	}
	if playerID == 0 {
		return 0, game.ErrAuthInvalid
	}
	return playerID, nil
}

// SessionService validates signed mini-app launch payloads and issues
// session tokens, creating the player on first contact.
type SessionService struct {
	db        repository.DB
	bots      *repository.BotRepository
	players   *repository.PlayerRepository
	referrals *repository.ReferralRepository
	sessions  *repository.SessionRepository

	defaults domain.GameSettings
	ttl      time.Duration
	now      func() time.Time
}

// InitResult is the response of a successful mini-app launch.
type InitResult struct {
	Player       *domain.Player      `json:"player"`
	BotUsername  string              `json:"bot_username"`
	SessionToken string              `json:"session_token"`
	Settings     domain.GameSettings `json:"settings"`
}

func NewSessionService(db repository.DB, defaults domain.GameSettings, ttl time.Duration) *SessionService {
	return &SessionService{
		db:        db,
		bots:      repository.NewBotRepository(db),
		players:   repository.NewPlayerRepository(db),
		referrals: repository.NewReferralRepository(db),
		sessions:  repository.NewSessionRepository(db),
		defaults:  defaults,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Init authenticates a launch payload against the bot's token, performs
// player get-or-create (recording the referral edge on first contact) and
// issues a fresh opaque session token with an absolute expiry.
func (s *SessionService) Init(ctx context.Context, botID int64, initData, referralCode string) (*InitResult, error) {
	bot, err := s.bots.Get(ctx, botID)
	if err != nil {
		return nil, err
	}
	if bot == nil || !bot.IsActive {
		return nil, game.ErrBotNotFound
	}

	values, err := telegram.ValidateInitData(initData, bot.Token)
	if err != nil {
		return nil, game.ErrAuthInvalid
	}
	user, err := telegram.ParseUser(values)
	if err != nil {
		return nil, game.ErrAuthInvalid
	}

	settings := domain.SettingsForBot(s.defaults, bot.Config)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	player, err := s.players.GetByBotAndTelegramID(ctx, tx, botID, user.ID)
	if err != nil {
		return nil, err
	}

	if player == nil {
		var referredBy *int64
		if referralCode != "" {
			referrer, err := s.players.GetByReferralCode(ctx, tx, botID, referralCode)
			if err != nil {
				return nil, err
			}
			if referrer != nil && referrer.TelegramUserID != user.ID {
				referredBy = &referrer.ID
			}
		}

		player, err = s.players.Create(ctx, tx, botID, user.ID, user.Username, user.FirstName, settings, referredBy)
		if err != nil {
			return nil, err
		}
		if referredBy != nil {
			if err := s.referrals.Create(ctx, tx, *referredBy, player.ID); err != nil {
				return nil, err
			}
		}
	} else {
		// bring energy up to date before handing a snapshot to the client
		player, err = s.players.GetForUpdate(ctx, tx, player.ID)
		if err != nil {
			return nil, err
		}
		now := s.now()
		newEnergy, _ := game.Regenerate(player.Energy, player.EnergyMax, player.RechargeRate, player.LastEnergyUpdate, now)
		if err := s.players.UpdateEnergy(ctx, tx, player.ID, newEnergy, now); err != nil {
			return nil, err
		}
		player.Energy = newEnergy
		player.LastEnergyUpdate = now
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	token := repository.GenerateToken()
	if _, err := s.sessions.Create(ctx, player.ID, token, s.now().Add(s.ttl)); err != nil {
		return nil, err
	}
	if err := s.sessions.DeleteExpired(ctx); err != nil {
		logger.Warn("failed to purge expired sessions", "error", err)
	}
	sessionsIssuedTotal.Inc()

	return &InitResult{
		Player:       player,
		BotUsername:  bot.Username,
		SessionToken: token,
		Settings:     settings,
	}, nil
}
