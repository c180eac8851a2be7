// The doorlist server exposes a door station's check-in flow over HTTP:
// scan, search, select, confirm, plus credential issuance for organizer
// tooling.
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

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"doorlist/internal/admission"
	"doorlist/internal/checkin/handler"
	checkinMetrics "doorlist/internal/checkin/metrics"
	"doorlist/internal/checkin/service"
	eventStore "doorlist/internal/event/store"
	"doorlist/internal/gallery"
	guestStore "doorlist/internal/guest/store"
	"doorlist/internal/notify"
	"doorlist/internal/platform/config"
	"doorlist/internal/platform/database"
	"doorlist/internal/platform/health"
	"doorlist/internal/platform/httpserver"
	"doorlist/internal/platform/logger"
	"doorlist/internal/platform/mailer"
	"doorlist/internal/platform/middleware"
	"doorlist/internal/resolver"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.LogDebug {
		level = slog.LevelDebug
	}
	log := logger.New(level)
	slog.SetDefault(log)

	db, err := database.Open(database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return err
	}

	var (
		guests  service.GuestWriter
		guestsR resolver.GuestDirectory
		guestsH handler.GuestDirectory
		events  resolver.EventDirectory
	)
	if db != nil {
		defer db.Close() //nolint:errcheck
		if err := database.Migrate(context.Background(), db); err != nil {
			return err
		}
		pg := guestStore.NewPostgres(db)
		pe := eventStore.NewPostgres(db)
		guests, guestsR, guestsH, events = pg, pg, pg, pe
		log.Info("using postgres stores")
	} else {
		mg := guestStore.New()
		me := eventStore.New()
		guests, guestsR, guestsH, events = mg, mg, mg, me
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	res := resolver.New(guestsR, events, resolver.WithLogger(log))
	policy := admission.Policy{
		EarlyWindow: cfg.AdmissionEarlyWindow,
		LateWindow:  cfg.AdmissionLateWindow,
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(checkinMetrics.New()),
		service.WithGallery(gallery.NewIssuer(cfg.GallerySigningKey, cfg.GalleryBaseURL, cfg.GalleryTokenTTL)),
	}

	if cfg.NATSURL != "" {
		pub, err := notify.NewNATSPublisher(cfg.NATSURL, log)
		if err != nil {
			return err
		}
		defer pub.Close() //nolint:errcheck
		opts = append(opts, service.WithPublisher(pub))
	}

	var mail mailer.Service
	if cfg.MailerSendAPIKey != "" {
		mail, err = mailer.NewMailerSend(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail)
		if err != nil {
			return err
		}
	} else {
		mail = mailer.NewDevMailer(log)
	}
	opts = append(opts, service.WithMailer(mail))

	svc, err := service.New(res, events, guests, policy, opts...)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.DeviceMetadata)
	r.Use(middleware.Timeout(30 * time.Second))

	healthHandler := health.New(cfg.Environment)
	if db != nil {
		healthHandler.RegisterCheck("database", db.Ping)
	}
	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		handler.New(svc, guestsH, handler.WithLogger(log)).RegisterRoutes(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		return httpserver.Shutdown(srv, 10*time.Second)
	})

	return g.Wait()
}
