package domain

import "time"

// Wallet is a player's connected external wallet. One per player, upsert
// semantics: reconnecting replaces the address but keeps cumulative totals.
type Wallet struct {
	ID               int64      `db:"id" json:"id"`
	PlayerID         int64      `db:"player_id" json:"player_id"`
	Address          string     `db:"address" json:"address"`
	Type             string     `db:"wallet_type" json:"wallet_type"`
	TotalWithdrawn   float64    `db:"total_withdrawn" json:"total_withdrawn"`
	LastWithdrawalAt *time.Time `db:"last_withdrawal_at" json:"last_withdrawal_at,omitempty"`
	ConnectedAt      time.Time  `db:"connected_at" json:"connected_at"`
}

// WithdrawalStatus of a ledger row. The core only ever writes "pending";
// settlement (and hence "completed"/"failed") belongs to an external payer.
type WithdrawalStatus string

const (
	WithdrawalPending   WithdrawalStatus = "pending"
	WithdrawalCompleted WithdrawalStatus = "completed"
	WithdrawalFailed    WithdrawalStatus = "failed"
)

// Withdrawal is an append-only ledger row. Amount is debited from coins in
// full; the fee is withheld from the payout, not credited anywhere.
type Withdrawal struct {
	ID        int64            `db:"id" json:"id"`
	PlayerID  int64            `db:"player_id" json:"player_id"`
	Amount    float64          `db:"amount" json:"amount"`
	Fee       float64          `db:"fee" json:"fee"`
	NetAmount float64          `db:"net_amount" json:"net_amount"`
	Address   string           `db:"address" json:"address"`
	Status    WithdrawalStatus `db:"status" json:"status"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// Deposit is an append-only ledger row, inserted as "completed". The core
// trusts the caller-supplied amount; on-chain verification is an external
// collaborator's responsibility.
type Deposit struct {
	ID        int64     `db:"id" json:"id"`
	PlayerID  int64     `db:"player_id" json:"player_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Reference string    `db:"reference" json:"reference"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
