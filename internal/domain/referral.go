package domain

import "time"

// Referral is a directed referrer->referred edge, created at most once per
// referred player. Bonus crediting is triggered by external collaborators;
// the edge itself and the per-referrer count are the core contract.
type Referral struct {
	ID          int64     `db:"id" json:"id"`
	ReferrerID  int64     `db:"referrer_id" json:"referrer_id"`
	ReferredID  int64     `db:"referred_id" json:"referred_id"`
	BonusEarned float64   `db:"bonus_earned" json:"bonus_earned"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
