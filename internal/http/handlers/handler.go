package handlers

import (
	"errors"
	"net/http"

	"tapmine/internal/config"
	"tapmine/internal/game"
	"tapmine/internal/http/middleware"
	"tapmine/internal/logger"
	"tapmine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler bundles the economy services behind the HTTP surface.
type Handler struct {
	Sessions *service.SessionService
	Game     *service.GameService
	Daily    *service.DailyService
	Shop     *service.ShopService
	Wallet   *service.WalletService
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config) *Handler {
	auth := service.NewAuthenticator(db)
	defaults := cfg.GameDefaults()
	return &Handler{
		Sessions: service.NewSessionService(db, defaults, cfg.SessionTTL),
		Game:     service.NewGameService(db, auth),
		Daily:    service.NewDailyService(db, auth, defaults),
		Shop:     service.NewShopService(db, auth, cfg.ReceivingAddress),
		Wallet:   service.NewWalletService(db, auth, defaults),
	}
}

// sessionToken resolves the caller's credential. Clients send it as a
// session_token body field or query parameter; an Authorization: Bearer
// header works too.
func sessionToken(c *gin.Context, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	if t := c.Query("session_token"); t != "" {
		return t
	}
	return middleware.BearerToken(c)
}

// fail maps a service error onto the response taxonomy: auth failures are
// 401, malformed input is 400, game-rule rejections are 200 with
// success=false (the client renders them in-game), everything else is 500.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrAuthInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrBotNotFound),
		errors.Is(err, game.ErrWrongBot),
		errors.Is(err, game.ErrUnknownBoost),
		errors.Is(err, game.ErrInvalidAmount),
		errors.Is(err, game.ErrInvalidAddress):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrNoEnergy),
		errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrAlreadyClaimed),
		errors.Is(err, game.ErrWalletNotConnected),
		errors.Is(err, game.ErrBelowMinimum),
		errors.Is(err, game.ErrNoReferral):
		c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
