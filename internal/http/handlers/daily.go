package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DailyRequest struct {
	SessionToken string `json:"session_token"`
	BotID        int64  `json:"bot_id"`
}

// ClaimDaily claims today's streak reward.
func (h *Handler) ClaimDaily(c *gin.Context) {
	var req DailyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	res, err := h.Daily.Claim(c.Request.Context(), sessionToken(c, req.SessionToken), req.BotID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reward":  res.Reward,
		"streak":  res.StreakDays,
		"player":  res.Player,
	})
}
