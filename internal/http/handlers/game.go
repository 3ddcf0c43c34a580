package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InitRequest struct {
	BotID        int64  `json:"bot_id"`
	InitData     string `json:"init_data"`
	ReferralCode string `json:"referral_code"`
}

// Init authenticates a mini-app launch and returns the player snapshot,
// session token and the bot's game settings.
func (h *Handler) Init(c *gin.Context) {
	var req InitRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.BotID <= 0 || req.InitData == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_id and init_data are required"})
		return
	}

	res, err := h.Sessions.Init(c.Request.Context(), req.BotID, req.InitData, req.ReferralCode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"player":        res.Player,
		"bot_username":  res.BotUsername,
		"session_token": res.SessionToken,
		"settings":      res.Settings,
	})
}

type TapRequest struct {
	SessionToken string `json:"session_token"`
	BotID        int64  `json:"bot_id"`
}

// Tap processes one tap and returns the updated player snapshot.
func (h *Handler) Tap(c *gin.Context) {
	var req TapRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	player, err := h.Game.Tap(c.Request.Context(), sessionToken(c, req.SessionToken), req.BotID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "player": player})
}

// Leaderboard returns a bot's top players. Public, no session required.
func (h *Handler) Leaderboard(c *gin.Context) {
	botID, err := strconv.ParseInt(c.Query("bot_id"), 10, 64)
	if err != nil || botID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_id is required"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := h.Game.Leaderboard(c.Request.Context(), botID, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": entries})
}

// Tasks returns the derived task-progress view.
func (h *Handler) Tasks(c *gin.Context) {
	botID, err := strconv.ParseInt(c.Query("bot_id"), 10, 64)
	if err != nil || botID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bot_id is required"})
		return
	}

	tasks, err := h.Game.Tasks(c.Request.Context(), sessionToken(c, ""), botID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": tasks})
}

type ReferralCreditRequest struct {
	PlayerID int64   `json:"player_id"`
	Amount   float64 `json:"amount"`
}

// CreditReferral is the internal hook other platform services call when a
// referred player hits a milestone. It is not part of the mini-app surface.
func (h *Handler) CreditReferral(c *gin.Context) {
	var req ReferralCreditRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if req.PlayerID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "player_id is required"})
		return
	}

	if err := h.Game.CreditReferralBonus(c.Request.Context(), req.PlayerID, req.Amount); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
