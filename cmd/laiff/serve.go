package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/laiff-festival/internal/catalog"
	"github.com/iliyamo/laiff-festival/internal/config"
	"github.com/iliyamo/laiff-festival/internal/database"
	"github.com/iliyamo/laiff-festival/internal/handler"
	"github.com/iliyamo/laiff-festival/internal/middleware"
	"github.com/iliyamo/laiff-festival/internal/pkg/logger"
	"github.com/iliyamo/laiff-festival/internal/pkg/metrics"
	"github.com/iliyamo/laiff-festival/internal/prefs"
	"github.com/iliyamo/laiff-festival/internal/queue"
	"github.com/iliyamo/laiff-festival/internal/repository"
	"github.com/iliyamo/laiff-festival/internal/router"
	"github.com/iliyamo/laiff-festival/internal/service"
	"github.com/iliyamo/laiff-festival/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API with the consumer and checkout sweeper",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	festival, err := config.LoadFestival(cfg.FestivalConfig)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := prepareStore(ctx, db); err != nil {
		return err
	}
	store := repository.NewStore(db)

	m := metrics.New()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable; prefs stay in memory, cache and rate limit are off")
	} else {
		defer rdb.Close()
	}
	kv := prefs.New(rdb)
	modes := prefs.NewAdminMode(kv)

	var pub queue.Publisher = queue.NopPublisher{}
	if cfg.BrokerEnabled {
		pub = queue.NewRabbitPublisher(cfg.BrokerURL)
	}

	if cfg.TMDBAPIKey == "" {
		logger.Warn("TMDB_API_KEY is empty; catalog pages will be empty")
	}
	cat := catalog.New(cfg.TMDBBaseURL, cfg.TMDBAPIKey,
		catalog.WithMetrics(m),
		catalog.WithImageBase(cfg.TMDBImageBase),
		catalog.WithTimeout(cfg.TMDBTimeout),
	)

	films := service.NewFilmService(cat)
	schedule := service.NewScheduleService(films, festival, nil)
	checkout := service.NewCheckoutService(store, schedule, festival, pub, m, nil)
	events := service.NewEventService(store, nil)

	e := router.New(router.Handlers{
		Health:        handler.NewHealthHandler(db),
		Session:       handler.NewSessionHandler(cfg.SessionSecret, cfg.SessionTTL),
		Films:         handler.NewFilmHandler(films),
		Festival:      handler.NewFestivalHandler(service.NewHomeService(films, store.Events, festival, nil), schedule, service.NewFestivalService(festival, cfg.MapboxToken, nil), events),
		Notifications: handler.NewNotificationHandler(service.NewNotificationService(store.Notifications, nil)),
		Me:            handler.NewMeHandler(modes, prefs.NewSettings(kv)),
		Checkout:      handler.NewCheckoutHandler(checkout),
		Admin: &handler.AdminHandler{
			Movies:     service.NewMovieService(store, cat, nil),
			Showtimes:  service.NewShowtimeService(store, festival, nil),
			Tickets:    service.NewTicketService(store, festival, nil),
			Events:     events,
			Broadcasts: service.NewBroadcastService(store, festival, pub, m, nil),
			Dashboard:  service.NewDashboardService(store, festival, nil),
		},
	}, router.Options{
		SessionSecret:   cfg.SessionSecret,
		AdminModes:      modes,
		Cache:           middleware.NewRedisCache(config.LoadCacheConfig(), rdb, m),
		RateLimit:       middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Metrics:         m,
		MetricsUser:     cfg.MetricsUser,
		MetricsPassword: cfg.MetricsPassword,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := ":" + cfg.Port
		logger.Info("http server listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	sweeper := worker.NewCheckoutSweeper(checkout, cfg.SweepInterval, cfg.CheckoutTTL)
	g.Go(func() error {
		sweeper.Start(gctx)
		return nil
	})

	if cfg.BrokerEnabled {
		consumer := queue.NewConsumer(cfg.BrokerURL, cfg.LogDir)
		g.Go(func() error {
			if err := consumer.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("consumer stopped", zap.Error(err))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
