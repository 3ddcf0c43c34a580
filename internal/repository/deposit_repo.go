package repository

import (
	"context"

	"tapmine/internal/domain"
)

type DepositRepository struct {
	db DB
}

func NewDepositRepository(db DB) *DepositRepository {
	return &DepositRepository{db: db}
}

// Create appends a completed ledger row inside the deposit transaction.
func (r *DepositRepository) Create(ctx context.Context, q Querier, d *domain.Deposit) error {
	return q.QueryRow(ctx,
		`INSERT INTO deposits (player_id, amount, reference, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		d.PlayerID, d.Amount, d.Reference, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
}

// ListByPlayer returns the player's deposit history, newest first.
func (r *DepositRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]domain.Deposit, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, amount, reference, status, created_at
		 FROM deposits WHERE player_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Deposit
	for rows.Next() {
		var d domain.Deposit
		if err := rows.Scan(&d.ID, &d.PlayerID, &d.Amount, &d.Reference, &d.Status, &d.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
