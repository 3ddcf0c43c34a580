package repository

import (
	"context"

	"tapmine/internal/domain"
)

type BoostRepository struct {
	db DB
}

func NewBoostRepository(db DB) *BoostRepository {
	return &BoostRepository{db: db}
}

// Upsert records a purchase: first purchase inserts at level 1, repeat
// purchases increment the level. Runs inside the purchase transaction.
func (r *BoostRepository) Upsert(ctx context.Context, q Querier, playerID int64, boostType domain.BoostType) (*domain.Boost, error) {
	b := &domain.Boost{PlayerID: playerID, Type: boostType}
	err := q.QueryRow(ctx,
		`INSERT INTO mining_boosts (player_id, boost_type)
		 VALUES ($1, $2)
		 ON CONFLICT (player_id, boost_type) DO UPDATE
		 SET boost_level = mining_boosts.boost_level + 1, purchased_at = now()
		 RETURNING id, boost_level, purchased_at`,
		playerID, boostType,
	).Scan(&b.ID, &b.Level, &b.PurchasedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListByPlayer returns all boosts a player owns.
func (r *BoostRepository) ListByPlayer(ctx context.Context, playerID int64) ([]domain.Boost, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, player_id, boost_type, boost_level, purchased_at
		 FROM mining_boosts WHERE player_id = $1 ORDER BY boost_type`,
		playerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boosts []domain.Boost
	for rows.Next() {
		var b domain.Boost
		if err := rows.Scan(&b.ID, &b.PlayerID, &b.Type, &b.Level, &b.PurchasedAt); err != nil {
			return nil, err
		}
		boosts = append(boosts, b)
	}
	return boosts, rows.Err()
}
