// Command petcare serves the pet vaccination tracker API and web app.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	adapthttp "petcare/internal/adapter/http"
	"petcare/internal/adapter/memory"
	"petcare/internal/adapter/postgres"
	redisstore "petcare/internal/adapter/redis"
	"petcare/internal/app"
	"petcare/internal/config"
	"petcare/internal/domain"
	"petcare/internal/logger"
	"petcare/internal/metrics"
	"petcare/internal/validation"
)

// store is everything the services need from a backing database.
type store interface {
	domain.UserRepository
	domain.PetRepository
	domain.VaccineRepository
	domain.NotificationRepository
}

// Run is the testable entrypoint for the application.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	var (
		db       store
		sessions domain.SessionRepository
	)
	if cfg.DatabaseURL != "" {
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = pg.Close() }()
		db, sessions = pg, postgres.NewSessionRepo(pg)
		log.Info("using postgres storage")
	} else {
		mem := memory.New()
		db, sessions = mem, mem.NewSessionRepo()
		log.Warn("DATABASE_URL not set, data is kept in memory only")
	}

	if cfg.RedisURL != "" {
		client, err := redisstore.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
		sessions = redisstore.NewSessionRepo(client)
		log.Info("using redis session storage")
	}

	v := validation.New()
	cal := app.NewCalendar(nil, cfg.Location)
	m := metrics.New(nil)

	auth := app.NewAuthService(db, sessions, v, cal, cfg.SessionTTL)
	pets := app.NewPetService(db, v, cal)
	vaccines := app.NewVaccineService(db, db, v, cal)
	notifications := app.NewNotificationService(db, db, cal)

	opts := []adapthttp.Option{
		adapthttp.WithRateLimiter(adapthttp.NewRateLimiter(cfg.AuthRateRPS, cfg.AuthRateBurst)),
	}
	if cfg.OIDC.Enabled() {
		sso, err := adapthttp.NewSSO(ctx, cfg.OIDC)
		if err != nil {
			return err
		}
		opts = append(opts, adapthttp.WithSSO(sso))
		log.Info("sso enabled", zap.String("issuer", cfg.OIDC.Issuer))
	}

	h := adapthttp.New(log, m, adapthttp.Services{
		Auth:          auth,
		Profile:       app.NewProfileService(db, v),
		Pets:          pets,
		Vaccines:      vaccines,
		Notifications: notifications,
		Dashboard:     app.NewDashboardService(pets, vaccines, db),
	}, cfg.WebDir, opts...).Handler()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	worker := app.NewReminderWorker(log, notifications, auth, cfg.ReminderInterval, m.AddReminders)
	stopWorker := worker.Start(ctx)
	defer stopWorker()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctxShutdown)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := Run(ctx); err != nil {
		logger.New(os.Getenv("ENV")).Error("petcare failed", zap.Error(err))
		os.Exit(1)
	}
}
