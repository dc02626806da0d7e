package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paddlebook/paddlebook/internal/admin"
	"github.com/paddlebook/paddlebook/internal/auth"
	"github.com/paddlebook/paddlebook/internal/comment"
	"github.com/paddlebook/paddlebook/internal/config"
	"github.com/paddlebook/paddlebook/internal/core"
	"github.com/paddlebook/paddlebook/internal/health"
	"github.com/paddlebook/paddlebook/internal/middleware"
	"github.com/paddlebook/paddlebook/internal/paddle"
	"github.com/paddlebook/paddlebook/internal/player"
	"github.com/paddlebook/paddlebook/internal/server"
	"github.com/paddlebook/paddlebook/internal/user"
)

const shutdownDrainDelay = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	generateKeys := flag.Bool("generate-keys", false,
		"generate a new ES256 key pair at the configured paths and exit")
	flag.Parse()

	if err := run(*configPath, *generateKeys); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, generateKeys bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if generateKeys {
		err := auth.GenerateKeyPair(
			cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
		if err != nil {
			return fmt.Errorf("generate key pair: %w", err)
		}
		fmt.Printf("wrote %s and %s\n",
			cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
		return nil
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown", "error", err)
		}
	}()

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	rdb, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("init redis: %w", err)
	}
	defer rdb.Close()

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return fmt.Errorf("init jwt: %w", err)
	}

	userService := user.NewService(user.NewRepository(db.DB))
	authService := auth.NewService(jwtManager, userService)
	playerService := player.NewService(player.NewRepository(db.DB), logger)
	paddleService := paddle.NewService(
		paddle.NewRepository(db.DB), playerService, logger)
	commentService := comment.NewService(comment.NewRepository(db.DB), logger)

	authHandler := auth.NewHandler(authService)
	playerHandler := player.NewHandler(playerService)
	paddleHandler := paddle.NewHandler(paddleService)
	commentHandler := comment.NewHandler(commentService)
	adminHandler := admin.NewHandler(db, rdb,
		userService, playerService, paddleService, commentService)
	healthHandler := health.NewHandler(db, rdb)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	registerRoutes(srv.Router(), routeDeps{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		jwtManager:     jwtManager,
		authHandler:    authHandler,
		playerHandler:  playerHandler,
		paddleHandler:  paddleHandler,
		commentHandler: commentHandler,
		adminHandler:   adminHandler,
		healthHandler:  healthHandler,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, shutdownDrainDelay); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

type routeDeps struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *core.Redis
	jwtManager     *auth.JWTManager
	authHandler    *auth.Handler
	playerHandler  *player.Handler
	paddleHandler  *paddle.Handler
	commentHandler *comment.Handler
	adminHandler   *admin.Handler
	healthHandler  *health.Handler
}

func registerRoutes(r chi.Router, deps routeDeps) {
	cfg := deps.cfg

	generalLimiter := middleware.NewRateLimiter(deps.rdb.Client,
		middleware.RateLimitConfig{
			Limit:    middleware.ScopeLimit(cfg.RateLimit.General),
			Scope:    "general",
			FailOpen: true,
		})
	authLimiter := middleware.NewRateLimiter(deps.rdb.Client,
		middleware.RateLimitConfig{
			Limit: middleware.ScopeLimit(cfg.RateLimit.Auth),
			Scope: "auth",
		})
	commentLimiter := middleware.NewRateLimiter(deps.rdb.Client,
		middleware.RateLimitConfig{
			Limit: middleware.ScopeLimit(cfg.RateLimit.Comments),
			Scope: "comments",
		})

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(generalLimiter.Handler)

	deps.healthHandler.RegisterRoutes(r)
	r.Get("/.well-known/jwks.json", deps.jwtManager.GetJWKSHandler())

	requireAuth := middleware.Authenticator(deps.jwtManager)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Handler)
			deps.authHandler.RegisterRoutes(r)
		})

		deps.playerHandler.RegisterRoutes(r, requireAuth, middleware.RequireAdmin)
		deps.paddleHandler.RegisterRoutes(r, requireAuth, middleware.RequireAdmin)
		deps.commentHandler.RegisterRoutes(
			r, requireAuth, middleware.RequireAdmin, commentLimiter.Handler)
		deps.adminHandler.RegisterRoutes(r, requireAuth, middleware.RequireAdmin)
	})
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
