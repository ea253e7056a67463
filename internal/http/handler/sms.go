package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadline/leadline-portal/internal/messaging"
)

type sendSMSRequest struct {
	To     string `json:"to"`
	Text   string `json:"text"`
	From   string `json:"from"`
	LeadID *int64 `json:"lead_id"`
}

// SendSMS dispatches one outbound text and records it in the conversation
// log.
func (h *GatewayHandler) SendSMS(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}

	var req sendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sms request body"})
		return
	}

	result, err := h.SMS.SendSMS(c.Request.Context(), messaging.SendRequest{
		To:     req.To,
		Text:   req.Text,
		From:   req.From,
		LeadID: req.LeadID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
