package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/leadline/leadline-portal/internal/config"
	"github.com/leadline/leadline-portal/internal/http/handler"
	httpmiddleware "github.com/leadline/leadline-portal/internal/http/middleware"
	"github.com/leadline/leadline-portal/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, gateway *handler.GatewayHandler, auth *httpmiddleware.Auth, rateLimiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	if rateLimiter != nil {
		r.Use(rateLimiter.Handler())
	}
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/account", auth.RequirePrincipal, gateway.Account)

		calls := api.Group("/calls")
		{
			calls.POST("", auth.RequirePrincipal, gateway.InitiateCall)
			calls.PATCH("/:id", auth.RequirePrincipal, gateway.UpdateCall)
			calls.DELETE("/:id", auth.RequirePrincipal, gateway.DeleteCall)
		}

		api.POST("/sms", auth.RequirePrincipal, gateway.SendSMS)

		pushGroup := api.Group("/push")
		{
			pushGroup.POST("/subscribe", auth.RequirePrincipal, gateway.PushSubscribe)
			// Send authenticates with the shared webhook secret inside the
			// handler, not with a session token.
			pushGroup.POST("/send", gateway.PushSend)
		}
	}

	// Telephony provider callback. No session auth: the provider signs
	// nothing here, and the response must always be a parsable document.
	r.POST("/webhooks/voice", gateway.VoiceWebhook)

	return r
}
