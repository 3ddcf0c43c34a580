package service

import (
	"context"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/game"
	"tapmine/internal/repository"
	"tapmine/internal/ton"

	"github.com/google/uuid"
)

// WalletService owns wallet connection and the withdrawal/deposit ledger.
// Withdrawals debit the full amount and stay pending; settlement belongs to
// an external payer. Deposits credit the caller-supplied amount as-is and
// are recorded completed; on-chain verification is an external concern.
type WalletService struct {
	pool        repository.DB
	auth        *Authenticator
	players     *repository.PlayerRepository
	wallets     *repository.WalletRepository
	withdrawals *repository.WithdrawalRepository
	deposits    *repository.DepositRepository
	bots        *repository.BotRepository

	defaults domain.GameSettings
	now      func() time.Time
}

// WithdrawResult pairs the accepted ledger row with the updated balance.
type WithdrawResult struct {
	Withdrawal *domain.Withdrawal `json:"withdrawal"`
	Player     *domain.Player     `json:"player"`
}

func NewWalletService(db repository.DB, auth *Authenticator, defaults domain.GameSettings) *WalletService {
	return &WalletService{
		pool:        db,
		auth:        auth,
		players:     repository.NewPlayerRepository(db),
		wallets:     repository.NewWalletRepository(db),
		withdrawals: repository.NewWithdrawalRepository(db),
		deposits:    repository.NewDepositRepository(db),
		bots:        repository.NewBotRepository(db),
		defaults:    defaults,
		now:         time.Now,
	}
}

// Connect attaches (or replaces) the player's wallet address.
func (s *WalletService) Connect(ctx context.Context, token, address, walletType string) (*domain.Wallet, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ton.ValidAddress(address) {
		return nil, game.ErrInvalidAddress
	}
	if walletType == "" {
		walletType = "ton"
	}
	return s.wallets.Upsert(ctx, playerID, address, walletType)
}

// Wallet returns the player's connected wallet, or (nil, nil).
func (s *WalletService) Wallet(ctx context.Context, token string) (*domain.Wallet, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.wallets.GetByPlayer(ctx, s.pool, playerID)
}

// Withdraw debits the requested amount in full, withholds the configured
// fee from the payout and appends a pending ledger row. All validation runs
// before any mutation, under the player row lock.
func (s *WalletService) Withdraw(ctx context.Context, token string, amount float64) (*WithdrawResult, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, game.ErrInvalidAmount
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.GetForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	bot, err := s.bots.Get(ctx, p.BotID)
	if err != nil {
		return nil, err
	}
	settings := s.defaults
	if bot != nil {
		settings = domain.SettingsForBot(s.defaults, bot.Config)
	}

	w, err := s.wallets.GetByPlayer(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, game.ErrWalletNotConnected
	}
	if amount < settings.MinWithdrawal {
		return nil, game.ErrBelowMinimum
	}
	if p.Coins < amount {
		return nil, game.ErrInsufficientFunds
	}

	now := s.now()
	fee := amount * settings.FeeRate
	wd := &domain.Withdrawal{
		PlayerID:  playerID,
		Amount:    amount,
		Fee:       fee,
		NetAmount: amount - fee,
		Address:   w.Address,
		Status:    domain.WithdrawalPending,
	}

	if err := s.players.AdjustCoins(ctx, tx, playerID, -amount); err != nil {
		return nil, err
	}
	if err := s.withdrawals.Create(ctx, tx, wd); err != nil {
		return nil, err
	}
	if err := s.wallets.RecordWithdrawal(ctx, tx, playerID, amount, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	withdrawalsTotal.Inc()
	p.Coins -= amount
	return &WithdrawResult{Withdrawal: wd, Player: p}, nil
}

// Deposit credits coins for an externally observed transfer. The reference
// defaults to a generated id when the caller has no transaction hash.
func (s *WalletService) Deposit(ctx context.Context, token string, amount float64, txHash string) (*domain.Player, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, game.ErrInvalidAmount
	}
	reference := txHash
	if reference == "" {
		reference = uuid.NewString()
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.players.GetForUpdate(ctx, tx, playerID)
	if err != nil {
		return nil, err
	}

	if err := s.players.AdjustCoins(ctx, tx, playerID, amount); err != nil {
		return nil, err
	}
	d := &domain.Deposit{
		PlayerID:  playerID,
		Amount:    amount,
		Reference: reference,
		Status:    "completed",
	}
	if err := s.deposits.Create(ctx, tx, d); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	depositsTotal.Inc()
	p.Coins += amount
	return p, nil
}

// Withdrawals returns the player's withdrawal history, newest first.
func (s *WalletService) Withdrawals(ctx context.Context, token string, limit int) ([]domain.Withdrawal, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.withdrawals.ListByPlayer(ctx, playerID, limit)
}

// Deposits returns the player's deposit history, newest first.
func (s *WalletService) Deposits(ctx context.Context, token string, limit int) ([]domain.Deposit, error) {
	playerID, err := s.auth.PlayerID(ctx, token)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.deposits.ListByPlayer(ctx, playerID, limit)
}
