package repository

import (
	"context"
	"errors"

	"tapmine/internal/domain"

	"github.com/jackc/pgx/v5"
)

// BotRepository reads the externally-owned bot records. The economy core
// never writes this table; the dashboard service owns bot CRUD and hands
// over a usable bot token.
type BotRepository struct {
	db DB
}

func NewBotRepository(db DB) *BotRepository {
	return &BotRepository{db: db}
}

// Get returns a bot by id, or (nil, nil) when it does not exist.
func (r *BotRepository) Get(ctx context.Context, id int64) (*domain.Bot, error) {
	var b domain.Bot
	err := r.db.QueryRow(ctx,
		`SELECT id, bot_name, bot_token, COALESCE(bot_username, ''), bot_config, is_active, created_at
		 FROM bots WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.Name, &b.Token, &b.Username, &b.Config, &b.IsActive, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
