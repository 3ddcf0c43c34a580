package repository

import (
	"context"

	"tapmine/internal/domain"
)

type WithdrawalRepository struct {
	db DB
}

func NewWithdrawalRepository(db DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create appends a pending ledger row inside the withdrawal transaction.
// The core never settles a withdrawal; status changes are external.
func (r *WithdrawalRepository) Create(ctx context.Context, q Querier, w *domain.Withdrawal) error {
	return q.QueryRow(ctx,
		`INSERT INTO withdrawals (player_id, amount, fee, net_amount, address, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		w.PlayerID, w.Amount, w.Fee, w.NetAmount, w.Address, w.Status,
	).Scan(&w.ID, &w.CreatedAt)
}

// ListByPlayer returns the player's withdrawal history, newest first.
func (r *WithdrawalRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]domain.Withdrawal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, amount, fee, net_amount, address, status, created_at
		 FROM withdrawals WHERE player_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		if err := rows.Scan(&w.ID, &w.PlayerID, &w.Amount, &w.Fee, &w.NetAmount, &w.Address, &w.Status, &w.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, w)
	}
	return list, rows.Err()
}
