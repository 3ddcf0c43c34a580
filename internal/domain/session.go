package domain

import "time"

// GameSession maps an opaque bearer token to a player with an absolute
// expiry. It is the sole authorization mechanism for gameplay endpoints
// and is never refreshed; after expiry the mini-app re-authenticates with
// a signed launch payload.
type GameSession struct {
	ID        int64     `db:"id" json:"id"`
	PlayerID  int64     `db:"player_id" json:"player_id"`
	Token     string    `db:"session_token" json:"session_token"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}
