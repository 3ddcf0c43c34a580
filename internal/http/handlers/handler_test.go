package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tapmine/internal/domain"
	"tapmine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"
	testPlayerID = int64(7)
	testBotID    = int64(3)
	testAddress  = "EQDrjaLahLkMB-hMCmkzOyBuHJ139ZUYmPHu6RRBKnbdLIYI"
)

var playerCols = []string{
	"id", "bot_id", "telegram_user_id", "username", "first_name",
	"coins", "energy", "energy_max", "level", "xp", "coins_per_tap", "energy_recharge_rate",
	"total_taps", "combo_record", "streak_days", "referral_code", "referred_by", "referral_earnings",
	"last_tap_time", "last_energy_update", "created_at",
}

func testSettings() domain.GameSettings {
	return domain.GameSettings{
		TapReward:          1,
		MaxEnergy:          1000,
		EnergyRechargeRate: 1,
		ReferralBonus:      500,
		MinWithdrawal:      10000,
		FeeRate:            0.02,
		DailyRewardBase:    100,
		DailyRewardStep:    10,
	}
}

// newTestRouter builds the handler stack on a mock pool so requests can be
// driven end to end through gin.
func newTestRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	auth := service.NewAuthenticator(mock)
	h := &Handler{
		Game:   service.NewGameService(mock, auth),
		Shop:   service.NewShopService(mock, auth, testAddress),
		Wallet: service.NewWalletService(mock, auth, testSettings()),
	}

	r := gin.New()
	r.POST("/game/tap", h.Tap)
	r.GET("/game/tasks", h.Tasks)
	wallet := r.Group("/game/wallet")
	wallet.POST("/connect", h.ConnectWallet)
	wallet.POST("/withdraw", h.Withdraw)
	return r, mock
}

func expectAuth(mock pgxmock.PgxPoolIface) {
	mock.ExpectQuery(`SELECT player_id FROM game_sessions`).
		WithArgs(testToken).
		WillReturnRows(pgxmock.NewRows([]string{"player_id"}).AddRow(testPlayerID))
}

// expectLockedPlayer scripts the FOR UPDATE read with a saturated energy bar
// so regeneration is a no-op regardless of the wall clock.
func expectLockedPlayer(mock pgxmock.PgxPoolIface, coins float64) {
	now := time.Now()
	mock.ExpectQuery(`FROM mining_players WHERE id = \$1 FOR UPDATE`).
		WithArgs(testPlayerID).
		WillReturnRows(pgxmock.NewRows(playerCols).AddRow(
			testPlayerID, testBotID, int64(1001), "miner", "Miner",
			coins, 5, 5, 1, int64(0), 1, 1,
			int64(5), 1, 1, "ref12345", (*int64)(nil), 0.0,
			(*time.Time)(nil), now, now.Add(-24*time.Hour),
		))
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// Clients authenticate by sending session_token in the request body; no
// Authorization header is involved.
func TestTap_SessionTokenInBody(t *testing.T) {
	r, mock := newTestRouter(t)

	expectAuth(mock)
	mock.ExpectBegin()
	expectLockedPlayer(mock, 10)
	mock.ExpectExec(`UPDATE mining_players`).
		WithArgs(11.0, 4, int64(6), int64(1), 1, pgxmock.AnyArg(), testPlayerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	w := doJSON(t, r, "POST", "/game/tap", gin.H{
		"session_token": testToken,
		"bot_id":        testBotID,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Success bool `json:"success"`
		Player  struct {
			Coins  float64 `json:"coins"`
			Energy int     `json:"energy"`
		} `json:"player"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, 11.0, res.Player.Coins)
	assert.Equal(t, 4, res.Player.Energy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTap_MissingTokenIsUnauthorized(t *testing.T) {
	r, mock := newTestRouter(t)

	w := doJSON(t, r, "POST", "/game/tap", gin.H{"bot_id": testBotID})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// GET endpoints take the token as a query parameter.
func TestTasks_SessionTokenInQuery(t *testing.T) {
	r, mock := newTestRouter(t)

	expectAuth(mock)
	now := time.Now()
	mock.ExpectQuery(`FROM mining_players WHERE id = \$1`).
		WithArgs(testPlayerID).
		WillReturnRows(pgxmock.NewRows(playerCols).AddRow(
			testPlayerID, testBotID, int64(1001), "miner", "Miner",
			10.0, 5, 1000, 1, int64(0), 1, 1,
			int64(5), 1, 1, "ref12345", (*int64)(nil), 0.0,
			(*time.Time)(nil), now, now.Add(-24*time.Hour),
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM mining_referrals`).
		WithArgs(testPlayerID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/game/tasks?bot_id=3&session_token="+testToken, nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The withdraw response carries the ledger figures at the top level.
func TestWithdraw_ResponseShape(t *testing.T) {
	r, mock := newTestRouter(t)

	expectAuth(mock)
	mock.ExpectBegin()
	expectLockedPlayer(mock, 20000)
	mock.ExpectQuery(`FROM bots WHERE id = \$1`).
		WithArgs(testBotID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "bot_name", "bot_token", "bot_username", "bot_config", "is_active", "created_at"}).
			AddRow(testBotID, "miner_bot", "12345:token", "miner_bot", []byte(nil), true, time.Now()))
	mock.ExpectQuery(`FROM wallets WHERE player_id = \$1`).
		WithArgs(testPlayerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "player_id", "address", "wallet_type", "total_withdrawn", "last_withdrawal_at", "connected_at"}).
			AddRow(int64(1), testPlayerID, testAddress, "ton", 0.0, (*time.Time)(nil), time.Now()))
	mock.ExpectExec(`UPDATE mining_players SET coins = coins \+ \$1`).
		WithArgs(-10000.0, testPlayerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`INSERT INTO withdrawals`).
		WithArgs(testPlayerID, 10000.0, 200.0, 9800.0, testAddress, domain.WithdrawalPending).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), time.Now()))
	mock.ExpectExec(`UPDATE wallets SET total_withdrawn`).
		WithArgs(10000.0, pgxmock.AnyArg(), testPlayerID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	w := doJSON(t, r, "POST", "/game/wallet/withdraw", gin.H{
		"session_token": testToken,
		"amount":        10000,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Success      bool    `json:"success"`
		WithdrawalID int64   `json:"withdrawal_id"`
		Amount       float64 `json:"amount"`
		Fee          float64 `json:"fee"`
		NetAmount    float64 `json:"net_amount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, int64(42), res.WithdrawalID)
	assert.Equal(t, 10000.0, res.Amount)
	assert.Equal(t, 200.0, res.Fee)
	assert.Equal(t, 9800.0, res.NetAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The address field is named wallet_address on the wire.
func TestConnectWallet_BindsWalletAddress(t *testing.T) {
	r, mock := newTestRouter(t)

	expectAuth(mock)
	mock.ExpectQuery(`INSERT INTO wallets`).
		WithArgs(testPlayerID, testAddress, "ton").
		WillReturnRows(pgxmock.NewRows([]string{"id", "player_id", "address", "wallet_type", "total_withdrawn", "last_withdrawal_at", "connected_at"}).
			AddRow(int64(1), testPlayerID, testAddress, "ton", 0.0, (*time.Time)(nil), time.Now()))

	w := doJSON(t, r, "POST", "/game/wallet/connect", gin.H{
		"session_token":  testToken,
		"wallet_address": testAddress,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Success bool `json:"success"`
		Wallet  struct {
			Address string `json:"address"`
		} `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Equal(t, testAddress, res.Wallet.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}
