package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/calllog"
	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/domain"
	"github.com/leadline/leadline-portal/internal/http/middleware"
	"github.com/leadline/leadline-portal/internal/identity"
	"github.com/leadline/leadline-portal/internal/messaging"
	"github.com/leadline/leadline-portal/internal/push"
	"github.com/leadline/leadline-portal/internal/voice"
)

// GatewayHandler exposes the communication gateway over HTTP.
type GatewayHandler struct {
	Cfg      config.Config
	Identity *identity.Resolver
	Voice    *voice.Service
	SMS      *messaging.Service
	Calls    *calllog.Service
	Push     *push.Service
}

// NewGatewayHandler creates the handler set.
func NewGatewayHandler(cfg config.Config, resolver *identity.Resolver, voiceSvc *voice.Service, smsSvc *messaging.Service, callsSvc *calllog.Service, pushSvc *push.Service) *GatewayHandler {
	return &GatewayHandler{
		Cfg:      cfg,
		Identity: resolver,
		Voice:    voiceSvc,
		SMS:      smsSvc,
		Calls:    callsSvc,
		Push:     pushSvc,
	}
}

type accountResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type membershipResponse struct {
	ID       int64  `json:"id"`
	ClientID int64  `json:"client_id"`
	Role     string `json:"role"`
}

// Account returns the resolved account scope for the session principal. Both
// fields are null when the principal has no accessible account.
func (h *GatewayHandler) Account(c *gin.Context) {
	principalID, ok := principal(c)
	if !ok {
		return
	}

	idCtx, err := h.Identity.Resolve(c.Request.Context(), principalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"account": nil, "membership": nil}
	if idCtx.Account != nil {
		resp["account"] = accountResponse{ID: idCtx.Account.ID, Name: idCtx.Account.Name}
	}
	if idCtx.Membership != nil {
		resp["membership"] = membershipResponse{
			ID:       idCtx.Membership.ID,
			ClientID: idCtx.Membership.ClientID,
			Role:     idCtx.Membership.Role,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// principal fetches the session principal, answering 401 when absent. The
// auth middleware should have rejected such requests already; this is the
// handler-level backstop.
func principal(c *gin.Context) (string, bool) {
	id, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return id, ok
}

// respondError maps gateway failures onto the response envelope.
func (h *GatewayHandler) respondError(c *gin.Context, err error) {
	logger := zap.L()
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, domain.ErrForbidden):
		logger.Warn("forbidden request", zap.Error(err))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsProviderError(err):
		logger.Error("provider failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Error("gateway failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
