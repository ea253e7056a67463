package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// VoiceWebhook answers the telephony provider's call-control request. The
// provider retries on anything unparsable, so this endpoint always returns
// 200 with a well-formed routing document, spoken-error included.
//
// The inbound From number is never used as the caller id; only the configured
// override or the normalized destination is.
func (h *GatewayHandler) VoiceWebhook(c *gin.Context) {
	to := c.PostForm("To")

	doc := h.Voice.RoutingResponse(to, "")
	c.Data(http.StatusOK, "text/xml", doc)
}
