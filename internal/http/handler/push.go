package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/leadline/leadline-portal/internal/domain"
)

type subscribeRequest struct {
	UserID       string `json:"user_id"`
	Subscription struct {
		Endpoint string `json:"endpoint"`
		Keys     struct {
			P256dh string `json:"p256dh"`
			Auth   string `json:"auth"`
		} `json:"keys"`
	} `json:"subscription"`
}

// PushSubscribe registers a browser push subscription for the session
// principal. The claimed owner must match the principal.
func (h *GatewayHandler) PushSubscribe(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}

	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subscription body"})
		return
	}

	saved, err := h.Push.Subscribe(c.Request.Context(), principalID, domain.PushSubscription{
		UserID:   req.UserID,
		Endpoint: req.Subscription.Endpoint,
		P256dh:   req.Subscription.Keys.P256dh,
		Auth:     req.Subscription.Keys.Auth,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription_id": saved.ID})
}

type pushSendRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
}

// PushSend queues a notification toward every subscription of one user. The
// caller authenticates with the shared webhook secret; when no secret is
// configured the check is skipped.
func (h *GatewayHandler) PushSend(c *gin.Context) {
	if h.Cfg.PushWebhookSecret != "" && !h.webhookSecretValid(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var req pushSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid push request body"})
		return
	}

	sent, err := h.Push.SendToUser(c.Request.Context(), req.UserID, req.Title, req.Body, req.URL)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

func (h *GatewayHandler) webhookSecretValid(c *gin.Context) bool {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return false
	}
	provided := strings.TrimSpace(parts[1])
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.Cfg.PushWebhookSecret)) == 1
}
