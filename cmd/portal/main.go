package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/leadline/leadline-portal/internal/calllog"
	"github.com/leadline/leadline-portal/internal/config"
	httptransport "github.com/leadline/leadline-portal/internal/http"
	"github.com/leadline/leadline-portal/internal/http/handler"
	httpmiddleware "github.com/leadline/leadline-portal/internal/http/middleware"
	"github.com/leadline/leadline-portal/internal/identity"
	"github.com/leadline/leadline-portal/internal/messaging"
	apimiddleware "github.com/leadline/leadline-portal/internal/middleware"
	"github.com/leadline/leadline-portal/internal/push"
	"github.com/leadline/leadline-portal/internal/repository"
	"github.com/leadline/leadline-portal/internal/server"
	"github.com/leadline/leadline-portal/internal/telemetry"
	"github.com/leadline/leadline-portal/internal/voice"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newPGXPool,
			newAccountRepository,
			newCallRepository,
			newConversationRepository,
			newSubscriptionRepository,
			newRateLimiter,
			newAuthMiddleware,
			identity.NewResolver,
			newVoiceService,
			newMessagingService,
			calllog.NewService,
			push.NewService,
			handler.NewGatewayHandler,
			httptransport.NewRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newPGXPool(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}

func newAccountRepository(pool *pgxpool.Pool) repository.AccountRepository {
	return repository.NewPostgresAccountRepo(pool)
}

func newCallRepository(pool *pgxpool.Pool) repository.CallRepository {
	return repository.NewPostgresCallRepo(pool)
}

func newConversationRepository(pool *pgxpool.Pool) repository.ConversationRepository {
	return repository.NewPostgresConversationRepo(pool)
}

func newSubscriptionRepository(pool *pgxpool.Pool) repository.SubscriptionRepository {
	return repository.NewPostgresSubscriptionRepo(pool)
}

func newRateLimiter(cfg config.Config) *apimiddleware.RateLimiter {
	return apimiddleware.NewRateLimiter(cfg.RateLimitRPM)
}

func newAuthMiddleware(cfg config.Config) *httpmiddleware.Auth {
	return httpmiddleware.NewAuth(cfg)
}

func newVoiceService(cfg config.Config) *voice.Service {
	return voice.NewService(cfg, voice.NewClient(cfg.VoiceAPIBaseURL, cfg.VoiceAPIKey))
}

func newMessagingService(cfg config.Config, conversations repository.ConversationRepository) *messaging.Service {
	return messaging.NewService(cfg, messaging.NewClient(cfg.SMSAPIBaseURL, cfg.SMSAPIKey), conversations)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, cfg config.Config, logger *zap.Logger) {
	addr := ":" + cfg.HTTPPort
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx, addr); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}
