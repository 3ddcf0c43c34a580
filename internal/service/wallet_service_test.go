package service

import (
	"context"
	"testing"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/game"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "EQDrjaLahLkMB-hMCmkzOyBuHJ139ZUYmPHu6RRBKnbdLIYI"

var walletCols = []string{"id", "player_id", "address", "wallet_type", "total_withdrawn", "last_withdrawal_at", "connected_at"}

func newWalletService(mock pgxmock.PgxPoolIface) *WalletService {
	svc := NewWalletService(mock, NewAuthenticator(mock), defaultSettings())
	svc.now = func() time.Time { return testNow }
	return svc
}

func expectWalletRow(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`FROM wallets WHERE player_id = \$1`).
		WithArgs(testPlayerID).
		WillReturnRows(pgxmock.NewRows(walletCols).
			AddRow(int64(1), testPlayerID, testAddress, "ton", 0.0, (*time.Time)(nil), testNow))
}

func TestWalletService_Connect(t *testing.T) {
	t.Run("valid address upserts the wallet", func(t *testing.T) {
		mock := newMockPool(t)
		expectAuth(mock, testPlayerID)
		mock.ExpectQuery(`INSERT INTO wallets`).
			WithArgs(testPlayerID, testAddress, "ton").
			WillReturnRows(pgxmock.NewRows(walletCols).
				AddRow(int64(1), testPlayerID, testAddress, "ton", 0.0, (*time.Time)(nil), testNow))

		svc := newWalletService(mock)
		w, err := svc.Connect(context.Background(), testToken, testAddress, "")
		require.NoError(t, err)
		assert.Equal(t, testAddress, w.Address)
		assert.Equal(t, "ton", w.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("malformed address is rejected", func(t *testing.T) {
		mock := newMockPool(t)
		expectAuth(mock, testPlayerID)

		svc := newWalletService(mock)
		_, err := svc.Connect(context.Background(), testToken, "not-a-ton-address", "ton")
		assert.ErrorIs(t, err, game.ErrInvalidAddress)
	})
}

func TestWalletService_Withdraw(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
		check     func(t *testing.T, res *WithdrawResult)
	}{
		{
			name:   "fee is withheld from the payout and the full amount debited",
			amount: 10000,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAuth(mock, testPlayerID)
				mock.ExpectBegin()
				p := basePlayer()
				p.Coins = 15000
				expectLockedPlayer(mock, p)
				expectBotRow(mock)
				expectWalletRow(mock)
				mock.ExpectExec(`UPDATE mining_players SET coins = coins \+ \$1`).
					WithArgs(-10000.0, testPlayerID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(`INSERT INTO withdrawals`).
					WithArgs(testPlayerID, 10000.0, 200.0, 9800.0, testAddress, domain.WithdrawalPending).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), testNow))
				mock.ExpectExec(`UPDATE wallets SET total_withdrawn`).
					WithArgs(10000.0, testNow, testPlayerID).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectCommit()
			},
			check: func(t *testing.T, res *WithdrawResult) {
				assert.Equal(t, 200.0, res.Withdrawal.Fee)
				assert.Equal(t, 9800.0, res.Withdrawal.NetAmount)
				assert.Equal(t, domain.WithdrawalPending, res.Withdrawal.Status)
				assert.Equal(t, 5000.0, res.Player.Coins)
			},
		},
		{
			name:   "below the minimum is rejected before any debit",
			amount: 5000,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAuth(mock, testPlayerID)
				mock.ExpectBegin()
				p := basePlayer()
				p.Coins = 15000
				expectLockedPlayer(mock, p)
				expectBotRow(mock)
				expectWalletRow(mock)
				mock.ExpectRollback()
			},
			wantErr: game.ErrBelowMinimum,
		},
		{
			name:   "insufficient balance is rejected",
			amount: 10000,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAuth(mock, testPlayerID)
				mock.ExpectBegin()
				p := basePlayer()
				p.Coins = 9999
				expectLockedPlayer(mock, p)
				expectBotRow(mock)
				expectWalletRow(mock)
				mock.ExpectRollback()
			},
			wantErr: game.ErrInsufficientFunds,
		},
		{
			name:   "no connected wallet",
			amount: 10000,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAuth(mock, testPlayerID)
				mock.ExpectBegin()
				p := basePlayer()
				p.Coins = 15000
				expectLockedPlayer(mock, p)
				expectBotRow(mock)
				mock.ExpectQuery(`FROM wallets WHERE player_id = \$1`).
					WithArgs(testPlayerID).
					WillReturnError(pgx.ErrNoRows)
				mock.ExpectRollback()
			},
			wantErr: game.ErrWalletNotConnected,
		},
		{
			name:   "non-positive amount",
			amount: 0,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				expectAuth(mock, testPlayerID)
			},
			wantErr: game.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.mockSetup(mock)
			svc := newWalletService(mock)

			res, err := svc.Withdraw(context.Background(), testToken, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				require.NotNil(t, res)
				if tt.check != nil {
					tt.check(t, res)
				}
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestWalletService_Deposit(t *testing.T) {
	t.Run("credits the caller-supplied amount", func(t *testing.T) {
		mock := newMockPool(t)
		expectAuth(mock, testPlayerID)
		mock.ExpectBegin()
		expectLockedPlayer(mock, basePlayer())
		mock.ExpectExec(`UPDATE mining_players SET coins = coins \+ \$1`).
			WithArgs(250.0, testPlayerID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO deposits`).
			WithArgs(testPlayerID, 250.0, "txhash123", "completed").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), testNow))
		mock.ExpectCommit()

		svc := newWalletService(mock)
		p, err := svc.Deposit(context.Background(), testToken, 250, "txhash123")
		require.NoError(t, err)
		assert.Equal(t, 260.0, p.Coins)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("generates a reference when none is supplied", func(t *testing.T) {
		mock := newMockPool(t)
		expectAuth(mock, testPlayerID)
		mock.ExpectBegin()
		expectLockedPlayer(mock, basePlayer())
		mock.ExpectExec(`UPDATE mining_players SET coins = coins \+ \$1`).
			WithArgs(250.0, testPlayerID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectQuery(`INSERT INTO deposits`).
			WithArgs(testPlayerID, 250.0, pgxmock.AnyArg(), "completed").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), testNow))
		mock.ExpectCommit()

		svc := newWalletService(mock)
		_, err := svc.Deposit(context.Background(), testToken, 250, "")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		mock := newMockPool(t)
		expectAuth(mock, testPlayerID)

		svc := newWalletService(mock)
		_, err := svc.Deposit(context.Background(), testToken, -5, "")
		assert.ErrorIs(t, err, game.ErrInvalidAmount)
	})
}
