package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadline/leadline-portal/internal/voice"
)

type initiateCallRequest struct {
	Destination string            `json:"destination"`
	Name        string            `json:"name"`
	Variables   map[string]string `json:"variables"`
}

// InitiateCall starts an outbound call for the session principal.
func (h *GatewayHandler) InitiateCall(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}

	var req initiateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid call request body"})
		return
	}

	result, err := h.Voice.InitiateOutboundCall(c.Request.Context(), voice.OutboundCallRequest{
		Destination: req.Destination,
		DisplayName: req.Name,
		Variables:   req.Variables,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type callRecordResponse struct {
	ID              string `json:"id"`
	ClientID        int64  `json:"client_id"`
	LeadID          *int64 `json:"lead_id"`
	Status          string `json:"status"`
	Direction       string `json:"direction"`
	FromNumber      string `json:"from_number"`
	ToNumber        string `json:"to_number"`
	DurationSeconds int    `json:"duration_seconds"`
	Summary         string `json:"summary"`
	Notes           string `json:"notes"`
	Recording       string `json:"recording_url"`
}

// UpdateCall applies a partial field update to one call record.
func (h *GatewayHandler) UpdateCall(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update body"})
		return
	}

	rec, err := h.Calls.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, callRecordResponse{
		ID:              rec.ID,
		ClientID:        rec.ClientID,
		LeadID:          rec.LeadID,
		Status:          rec.Status,
		Direction:       rec.Direction,
		FromNumber:      rec.FromNumber,
		ToNumber:        rec.ToNumber,
		DurationSeconds: rec.DurationSeconds,
		Summary:         rec.Summary,
		Notes:           rec.Notes,
		Recording:       rec.Recording,
	})
}

// DeleteCall removes one call record. Unknown ids succeed as no-ops.
func (h *GatewayHandler) DeleteCall(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}

	if err := h.Calls.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
