package repository

import (
	"context"
	"errors"
	"time"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
)

type WalletRepository struct {
	db DB
}

func NewWalletRepository(db DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetByPlayer returns the player's connected wallet, or (nil, nil).
func (r *WalletRepository) GetByPlayer(ctx context.Context, q Querier, playerID int64) (*domain.Wallet, error) {
	var w domain.Wallet
	err := q.QueryRow(ctx,
		`SELECT id, player_id, address, wallet_type, total_withdrawn, last_withdrawal_at, connected_at
		 FROM wallets WHERE player_id = $1`,
		playerID,
	).Scan(&w.ID, &w.PlayerID, &w.Address, &w.Type, &w.TotalWithdrawn, &w.LastWithdrawalAt, &w.ConnectedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Upsert connects or replaces the player's wallet address. Cumulative
// withdrawal totals survive a reconnect.
func (r *WalletRepository) Upsert(ctx context.Context, playerID int64, address, walletType string) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRow(ctx,
		`INSERT INTO wallets (player_id, address, wallet_type)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (player_id) DO UPDATE
		 SET address = EXCLUDED.address, wallet_type = EXCLUDED.wallet_type
		 RETURNING id, player_id, address, wallet_type, total_withdrawn, last_withdrawal_at, connected_at`,
		playerID, address, walletType,
	).Scan(&w.ID, &w.PlayerID, &w.Address, &w.Type, &w.TotalWithdrawn, &w.LastWithdrawalAt, &w.ConnectedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// RecordWithdrawal bumps the cumulative totals inside the withdrawal
// transaction.
func (r *WalletRepository) RecordWithdrawal(ctx context.Context, q Querier, playerID int64, amount float64, now time.Time) error {
	_, err := q.Exec(ctx,
		`UPDATE wallets SET total_withdrawn = total_withdrawn + $1, last_withdrawal_at = $2
		 WHERE player_id = $3`,
		amount, now, playerID,
	)
	return err
}
