// Command webapp serves the Vroum-Auto marketplace frontend: a
// server-rendered site backed by the Vroum-Auto REST API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/vroumauto/webapp/internal/backend"
	"github.com/vroumauto/webapp/internal/compare"
	"github.com/vroumauto/webapp/internal/config"
	"github.com/vroumauto/webapp/internal/content"
	"github.com/vroumauto/webapp/internal/handlers"
	"github.com/vroumauto/webapp/internal/i18n"
	"github.com/vroumauto/webapp/internal/modal"
	"github.com/vroumauto/webapp/internal/session"
	"github.com/vroumauto/webapp/internal/web"
	"github.com/vroumauto/webapp/pkg/cache"
	"github.com/vroumauto/webapp/pkg/cookie"
	"github.com/vroumauto/webapp/pkg/health"
	"github.com/vroumauto/webapp/pkg/logger"
	redispkg "github.com/vroumauto/webapp/pkg/redis"
	"github.com/vroumauto/webapp/views"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("webapp exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(logLevel(cfg.LogLevel), logger.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
	}, web.RequestIDLogAttr, session.LogAttr)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient redis.UniversalClient
	if cfg.RedisURL != "" {
		redisClient, err = redispkg.Open(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	profiles, featured := buildCaches(redisClient, cfg)
	defer profiles.Close()
	defer featured.Close()

	api, err := backend.New(cfg.APIBaseURL, backend.WithTimeout(cfg.APITimeout))
	if err != nil {
		return err
	}

	cookies := cookie.New(cookie.WithSecret(cfg.CookieSecret), cookie.WithSecure(cfg.CookieSecure))
	modals := modal.New(cookies)
	sessions := session.New(cookies, profiles, api,
		session.WithProfileTTL(cfg.ProfileTTL),
		session.WithExpiredNotice(modals),
		session.WithLogger(log))

	bundle, err := i18n.New()
	if err != nil {
		return err
	}

	h := handlers.New(handlers.Config{
		API:      api,
		Sessions: sessions,
		Modals:   modals,
		Compare:  compare.New(cookies),
		Content:  content.NewStore(),
		I18n:     bundle,
		Featured: featured,
		BaseURL:  cfg.BaseURL,
		Log:      log,
	})

	srv := web.NewServer(web.WithLogger(log), web.WithErrorHandler(h.RenderError))
	srv.UseHTTP(sessions.Middleware)

	r := srv.Router()
	r.Use(
		web.RequestID(),
		web.Recover(),
		web.Logging(log),
		web.Timeout(cfg.RequestTimeout),
	)
	h.Register(r)
	srv.NotFound(h.NotFound)
	r.Mount("/static", http.StripPrefix("/static/", http.FileServerFS(views.Static())))
	r.Mount("/healthz", health.LivenessHandler())
	r.Mount("/readyz", health.ReadinessHandler(readinessChecks(api, redisClient)))

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 5m", func() { h.WarmFeatured(ctx) }); err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		h.WarmFeatured(ctx)
		scheduler.Start()
		<-ctx.Done()
		scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildCaches picks Redis-backed caches when configured, in-process
// memory otherwise.
func buildCaches(client redis.UniversalClient, cfg config.Config) (cache.Cache[backend.User], cache.Cache[[]backend.Vehicle]) {
	if client != nil {
		return cache.NewRedis[backend.User](client,
				cache.WithPrefix("profile"), cache.WithRedisDefaultTTL(cfg.ProfileTTL)),
			cache.NewRedis[[]backend.Vehicle](client,
				cache.WithPrefix("featured"), cache.WithRedisDefaultTTL(cfg.FeaturedTTL))
	}
	return cache.NewMemory[backend.User](cache.WithDefaultTTL(cfg.ProfileTTL)),
		cache.NewMemory[[]backend.Vehicle](cache.WithDefaultTTL(cfg.FeaturedTTL))
}

// readinessChecks wires the dependencies the site cannot serve without.
func readinessChecks(api *backend.Client, client redis.UniversalClient) health.Checks {
	checks := health.Checks{
		"api": func(ctx context.Context) error {
			_, _, err := api.ListVehicles(ctx, backend.VehicleFilter{Limit: 1})
			return err
		},
	}
	if client != nil {
		checks["redis"] = redispkg.Healthcheck(client)
	}
	return checks
}

func logLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
