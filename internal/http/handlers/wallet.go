package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConnectWalletRequest struct {
	SessionToken string `json:"session_token"`
	Address      string `json:"wallet_address"`
	WalletType   string `json:"wallet_type"`
}

// ConnectWallet attaches a wallet address to the caller's player.
func (h *Handler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	wallet, err := h.Wallet.Connect(c.Request.Context(), sessionToken(c, req.SessionToken), req.Address, req.WalletType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wallet": wallet})
}

// GetWallet returns the connected wallet, or wallet=null when none.
func (h *Handler) GetWallet(c *gin.Context) {
	wallet, err := h.Wallet.Wallet(c.Request.Context(), sessionToken(c, ""))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "wallet": wallet})
}

type WithdrawRequest struct {
	SessionToken string  `json:"session_token"`
	Amount       float64 `json:"amount"`
}

// Withdraw debits coins and records a pending payout.
func (h *Handler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.Wallet.Withdraw(c.Request.Context(), sessionToken(c, req.SessionToken), req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"withdrawal_id": res.Withdrawal.ID,
		"amount":        res.Withdrawal.Amount,
		"fee":           res.Withdrawal.Fee,
		"net_amount":    res.Withdrawal.NetAmount,
		"player":        res.Player,
	})
}

type DepositRequest struct {
	SessionToken string  `json:"session_token"`
	Amount       float64 `json:"amount"`
	TxHash       string  `json:"transaction_hash"`
}

// Deposit credits coins for an externally observed transfer.
func (h *Handler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	player, err := h.Wallet.Deposit(c.Request.Context(), sessionToken(c, req.SessionToken), req.Amount, req.TxHash)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "player": player})
}

// Withdrawals returns the caller's withdrawal history.
func (h *Handler) Withdrawals(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.Wallet.Withdrawals(c.Request.Context(), sessionToken(c, ""), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "withdrawals": list})
}

// Deposits returns the caller's deposit history.
func (h *Handler) Deposits(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	list, err := h.Wallet.Deposits(c.Request.Context(), sessionToken(c, ""), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deposits": list})
}
