package handlers

import (
	"net/http"

	"tapmine/internal/game"

	"github.com/gin-gonic/gin"
)

type BoostRequest struct {
	SessionToken string `json:"session_token"`
	BotID        int64  `json:"bot_id"`
	BoostType    string `json:"boost_type"`
}

// PurchaseBoost buys one level of a boost for coins.
func (h *Handler) PurchaseBoost(c *gin.Context) {
	var req BoostRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	player, err := h.Shop.PurchaseBoost(c.Request.Context(), sessionToken(c, req.SessionToken), req.BotID, req.BoostType)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "player": player})
}

// BoostCatalog returns the fixed shop catalog. Public.
func (h *Handler) BoostCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "boosts": game.Catalog})
}

// MyBoosts returns the purchased boost levels of the caller.
func (h *Handler) MyBoosts(c *gin.Context) {
	boosts, err := h.Shop.BoostLevels(c.Request.Context(), sessionToken(c, ""))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "boosts": boosts})
}

type CoinPurchaseRequest struct {
	SessionToken string  `json:"session_token"`
	AmountTON    float64 `json:"amount_ton"`
}

// CoinPurchaseLink returns a TON transfer deep link for buying coins. The
// coins are credited later through the deposit flow, never here.
func (h *Handler) CoinPurchaseLink(c *gin.Context) {
	var req CoinPurchaseRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	link, err := h.Shop.CoinPurchaseLink(c.Request.Context(), sessionToken(c, req.SessionToken), req.AmountTON)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "payment_link": link})
}
