package main

import (
	"context"
	"os"
	"time"

	"tapmine/internal/db"
	"tapmine/internal/logger"
	"tapmine/internal/repository"

	"github.com/joho/godotenv"
)

// Seeds a development bot and player and prints a usable session token.
// Expects DATABASE_URL; optionally SEED_BOT_TOKEN for a real bot token.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	botToken := os.Getenv("SEED_BOT_TOKEN")
	if botToken == "" {
		botToken = "000000:dev-token"
	}

	pool := db.Connect(dsn)
	defer pool.Close()
	ctx := context.Background()

	var botID int64
	err := pool.QueryRow(ctx,
		`SELECT id FROM bots WHERE bot_name = 'dev_bot'`,
	).Scan(&botID)
	if err != nil {
		if err := pool.QueryRow(ctx,
			`INSERT INTO bots (bot_name, bot_token, bot_username, is_active)
			 VALUES ('dev_bot', $1, 'dev_bot', true)
			 RETURNING id`,
			botToken,
		).Scan(&botID); err != nil {
			logger.Fatal("failed to seed bot", "error", err)
		}
		logger.Info("dev bot created", "bot_id", botID)
	} else {
		logger.Info("dev bot already exists", "bot_id", botID)
	}

	players := repository.NewPlayerRepository(pool)
	tgID := int64(1234567890)

	player, err := players.GetByBotAndTelegramID(ctx, pool, botID, tgID)
	if err != nil {
		logger.Fatal("failed to look up player", "error", err)
	}
	if player == nil {
		_, err = pool.Exec(ctx,
			`INSERT INTO mining_players (bot_id, telegram_user_id, username, first_name, referral_code)
			 VALUES ($1, $2, 'testminer', 'Tester', $3)`,
			botID, tgID, repository.GenerateReferralCode(),
		)
		if err != nil {
			logger.Fatal("failed to create player", "error", err)
		}
		player, err = players.GetByBotAndTelegramID(ctx, pool, botID, tgID)
		if err != nil || player == nil {
			logger.Fatal("failed to re-read player", "error", err)
		}
		logger.Info("player created", "player_id", player.ID)
	} else {
		logger.Info("player already exists", "player_id", player.ID)
	}

	sessions := repository.NewSessionRepository(pool)
	token := repository.GenerateToken()
	if _, err := sessions.Create(ctx, player.ID, token, time.Now().Add(24*time.Hour)); err != nil {
		logger.Fatal("failed to create session", "error", err)
	}

	logger.Info("session issued",
		"bot_id", botID,
		"player_id", player.ID,
		"session_token", token,
	)
}
