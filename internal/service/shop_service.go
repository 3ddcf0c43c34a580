package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"tapmine/internal/domain"
	"tapmine/internal/game"
	"tapmine/internal/repository"
	"tapmine/internal/ton"
)

// ShopService sells permanent boosts for coins and builds payment links for
// buying coins with TON. The link path never credits coins; crediting
// happens through the deposit flow once the transfer is observed.
type ShopService struct {
	db      repository.DB
	auth    *Authenticator
	players *repository.PlayerRepository
	boosts  *repository.BoostRepository
	wallets *repository.WalletRepository

	receivingAddress string
	now              func() time.Time
}

func NewShopService(db repository.DB, auth *Authenticator, receivingAddress string) *ShopService {
	return &ShopService{
		db:               db,
		auth:             auth,
		players:          repository.NewPlayerRepository(db),
		boosts:           repository.NewBoostRepository(db),
		wallets:          repository.NewWalletRepository(db),
		receivingAddress: receivingAddress,
		now:              time.Now,
	}
}

// PurchaseBoost debits the catalog price and applies the boost's additive
// effect under a row lock. Regeneration runs first so the debit sees a
// current energy value, and persists even when the purchase is rejected.
func (s *ShopService) PurchaseBoost(ctx context.Context, token string, botID int64, boostType string) (*domain.Player, error) {
	spec, err := game.LookupBoost(boostType)
	if err != nil {
		return nil, err
	}

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
	if p.Coins < spec.Cost {
		if err := s.commitRegen(ctx, tx, p, now); err != nil {
			return nil, err
		}
		return nil, game.ErrInsufficientFunds
	}

	p.Coins -= spec.Cost
	switch spec.Type {
	case domain.BoostEnergyLimit:
		p.EnergyMax += spec.Effect
	case domain.BoostMultiTap:
		p.CoinsPerTap += spec.Effect
	case domain.BoostRechargeSpeed:
		p.RechargeRate += spec.Effect
	}

	if err := s.players.ApplyBoost(ctx, tx, p, now); err != nil {
		return nil, err
	}
	if _, err := s.boosts.Upsert(ctx, tx, playerID, spec.Type); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	boostPurchasesTotal.WithLabelValues(string(spec.Type)).Inc()
	return p, nil
}

func (s *ShopService) commitRegen(ctx context.Context, tx pgx.Tx, p *domain.Player, now time.Time) error {
	if err := s.players.UpdateEnergy(ctx, tx, p.ID, p.Energy, now); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// BoostLevels returns the player's purchased boost levels.
func (s *ShopService) BoostLevels(ctx context.Context, token string) ([]domain.Boost, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.boosts.ListByPlayer(ctx, playerID)
}

// CoinPurchaseLink builds a transfer deep link for buying coins with TON.
// It requires a connected wallet and a configured receiving address; the
// comment ties the on-chain transfer back to the player.
func (s *ShopService) CoinPurchaseLink(ctx context.Context, token string, amountTON float64) (string, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return "", err
	}
	if amountTON <= 0 {
		return "", game.ErrInvalidAmount
	}

	w, err := s.wallets.GetByPlayer(ctx, s.db, playerID)
	if err != nil {
		return "", err
	}
	if w == nil {
		return "", game.ErrWalletNotConnected
	}

	if !ton.ValidAddress(s.receivingAddress) {
		return "", errors.New("ton receiving address is not configured")
	}
	link, err := ton.PaymentLink(s.receivingAddress, amountTON, fmt.Sprintf("coins:%d", playerID))
	if err != nil {
		return "", err
	}
	return link, nil
}
