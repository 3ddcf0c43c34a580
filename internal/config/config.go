package config

import (
	"fmt"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/logger"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the service. All game economy knobs are
// explicit, typed and defaulted here; per-bot overrides come from the
// bot_config column and are merged in domain.SettingsForBot.
type Config struct {
	AppPort     string `env:"APP_PORT"     envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"LOG_JSON"  envDefault:"false"`

	// Session tokens are opaque bearer credentials with an absolute expiry.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// Economy defaults, applied to new players unless the bot overrides them.
	TapReward          int     `env:"TAP_REWARD"           envDefault:"1"`
	MaxEnergy          int     `env:"MAX_ENERGY"           envDefault:"1000"`
	EnergyRechargeRate int     `env:"ENERGY_RECHARGE_RATE" envDefault:"1"`
	ReferralBonus      float64 `env:"REFERRAL_BONUS"       envDefault:"500"`

	// Withdrawal ledger.
	MinWithdrawal float64 `env:"MIN_WITHDRAWAL" envDefault:"10000"`
	FeeRate       float64 `env:"FEE_RATE"       envDefault:"0.02"`

	// Daily reward = base + streak*step.
	DailyRewardBase float64 `env:"DAILY_REWARD_BASE" envDefault:"100"`
	DailyRewardStep float64 `env:"DAILY_REWARD_STEP" envDefault:"10"`

	// TON address that receives coin purchases (two-phase shop flow).
	ReceivingAddress string `env:"TON_RECEIVING_ADDRESS"`

	// Shared secret for the /internal endpoints other platform services
	// call. The endpoints refuse all requests while it is unset.
	InternalAPIToken string `env:"INTERNAL_API_TOKEN"`

	// Rate limiting.
	APIRateLimit   int `env:"API_RATE_LIMIT"           envDefault:"120"`
	APIRateWindow  int `env:"API_RATE_WINDOW_SECONDS"  envDefault:"60"`
	TapRateLimit   int `env:"TAP_RATE_LIMIT"           envDefault:"600"`
	TapRateWindow  int `env:"TAP_RATE_WINDOW_SECONDS"  envDefault:"60"`
	AuthRateLimit  int `env:"AUTH_RATE_LIMIT"          envDefault:"10"`
	AuthRateWindow int `env:"AUTH_RATE_WINDOW_SECONDS" envDefault:"60"`
}

// Load reads .env (if present), parses the environment and validates the
// result. Invalid economy settings are a startup failure, not a runtime one.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		logger.Fatal("failed to parse environment", "error", err)
	}

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	return cfg
}

// GameDefaults bundles the platform-wide economy settings; per-bot values
// are merged over these in domain.SettingsForBot.
func (c *Config) GameDefaults() domain.GameSettings {
	return domain.GameSettings{
		TapReward:          c.TapReward,
		MaxEnergy:          c.MaxEnergy,
		EnergyRechargeRate: c.EnergyRechargeRate,
		ReferralBonus:      c.ReferralBonus,
		MinWithdrawal:      c.MinWithdrawal,
		FeeRate:            c.FeeRate,
		DailyRewardBase:    c.DailyRewardBase,
		DailyRewardStep:    c.DailyRewardStep,
	}
}

// Validate checks the economy invariants the rest of the code relies on.
func (c *Config) Validate() error {
	if c.FeeRate < 0 || c.FeeRate >= 1 {
		return fmt.Errorf("FEE_RATE must be in [0, 1), got %v", c.FeeRate)
	}
	if c.MinWithdrawal <= 0 {
		return fmt.Errorf("MIN_WITHDRAWAL must be positive, got %v", c.MinWithdrawal)
	}
	if c.MaxEnergy <= 0 {
		return fmt.Errorf("MAX_ENERGY must be positive, got %d", c.MaxEnergy)
	}
	if c.TapReward < 1 {
		return fmt.Errorf("TAP_REWARD must be at least 1, got %d", c.TapReward)
	}
	if c.EnergyRechargeRate < 1 {
		return fmt.Errorf("ENERGY_RECHARGE_RATE must be at least 1, got %d", c.EnergyRechargeRate)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %v", c.SessionTTL)
	}
	return nil
}
