package http

import (
	"time"

	"tapmine/internal/config"
	"tapmine/internal/http/handlers"
	"tapmine/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the economy API. /api/v1 is the canonical prefix;
// the bare /api group is kept for older mini-app builds.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authWindow := time.Duration(cfg.AuthRateWindow) * time.Second
	tapWindow := time.Duration(cfg.TapRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiWindow))
	registerGameRoutes(v1, h, cfg, authWindow, tapWindow)

	// Legacy prefix for older mini-app builds
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiWindow))
	api.GET("/health", healthHandler.Health)
	registerGameRoutes(api, h, cfg, authWindow, tapWindow)
}

func registerGameRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config, authWindow, tapWindow time.Duration) {
	game := api.Group("/game")

	// Session issuance is the only unauthenticated mutation, so it gets its
	// own tighter limit.
	game.POST("/init", middleware.RedisRateLimit(cfg.AuthRateLimit, authWindow), h.Init)

	// The hot path is limited per session token, not per IP.
	game.POST("/tap", middleware.TapRateLimit(cfg.TapRateLimit, tapWindow), h.Tap)

	game.POST("/boost", h.PurchaseBoost)
	game.GET("/boosts", h.MyBoosts)
	game.GET("/shop", h.BoostCatalog)
	game.POST("/shop/coins", h.CoinPurchaseLink)

	game.POST("/daily-reward", h.ClaimDaily)

	game.GET("/leaderboard", h.Leaderboard)
	game.GET("/tasks", h.Tasks)

	wallet := game.Group("/wallet")
	{
		wallet.POST("/connect", h.ConnectWallet)
		wallet.GET("", h.GetWallet)
		wallet.POST("/withdraw", h.Withdraw)
		wallet.GET("/withdrawals", h.Withdrawals)
		wallet.POST("/deposit", h.Deposit)
		wallet.GET("/deposits", h.Deposits)
	}

	// Internal hook for the platform's other services; not called by the
	// mini-app client, and gated by a shared secret.
	api.POST("/internal/referrals/credit", middleware.InternalAuth(cfg.InternalAPIToken), h.CreditReferral)
}
