package repository

import (
	"context"
)

type ReferralRepository struct {
	db DB
}

func NewReferralRepository(db DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create records the referrer->referred edge. At most one edge may exist
// per referred player; re-creation attempts are silently ignored, which
// keeps player get-or-create idempotent.
func (r *ReferralRepository) Create(ctx context.Context, q Querier, referrerID, referredID int64) error {
	_, err := q.Exec(ctx,
		`INSERT INTO mining_referrals (referrer_id, referred_id)
		 VALUES ($1, $2)
		 ON CONFLICT (referred_id) DO NOTHING`,
		referrerID, referredID,
	)
	return err
}

// CountByReferrer returns how many players a referrer has brought in; the
// task-progress view reads this live.
func (r *ReferralRepository) CountByReferrer(ctx context.Context, referrerID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM mining_referrals WHERE referrer_id = $1`,
		referrerID,
	).Scan(&count)
	return count, err
}

// CreditBonus accumulates a bonus on the edge and the referrer's earnings.
// Crediting is triggered by external collaborators (e.g. the referred
// player hitting a milestone), not by the economy core itself.
func (r *ReferralRepository) CreditBonus(ctx context.Context, referredID int64, amount float64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var referrerID int64
	err = tx.QueryRow(ctx,
		`UPDATE mining_referrals SET bonus_earned = bonus_earned + $1
		 WHERE referred_id = $2
		 RETURNING referrer_id`,
		amount, referredID,
	).Scan(&referrerID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE mining_players
		 SET coins = coins + $1, referral_earnings = referral_earnings + $1
		 WHERE id = $2`,
		amount, referrerID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
