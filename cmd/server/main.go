package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"hospitaladmin/config"
	_ "hospitaladmin/docs"
	"hospitaladmin/internal/adapters/auth"
	"hospitaladmin/internal/adapters/cache"
	"hospitaladmin/internal/adapters/email"
	"hospitaladmin/internal/adapters/events"
	deliveryhttp "hospitaladmin/internal/delivery/http"
	"hospitaladmin/internal/delivery/http/controllers"
	"hospitaladmin/internal/domain"
	"hospitaladmin/internal/repository/postgres"
	"hospitaladmin/internal/services"
)

// @title Hospital Admin API
// @version 1.0
// @description Admin backend for a hospital network: doctor schedules and slots, doctors, hospitals and patient feedback.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Identity provider token, as "Bearer <token>".
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	err = db.PingContext(pingCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	if cfg.RunMigrations {
		if _, err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	scheduleRepo := postgres.NewScheduleRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)

	scheduleCache, err := cache.NewLRUScheduleCache(cfg.Cache.ScheduleSize)
	if err != nil {
		return err
	}

	publisher, err := events.NewPublisher(events.PublisherConfig{
		Enabled:  cfg.RabbitMQ.Enabled,
		URL:      cfg.RabbitMQ.URL,
		Exchange: cfg.RabbitMQ.Exchange,
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := publisher.Close(); cerr != nil {
			logger.Error("failed to close event publisher", "err", cerr)
		}
	}()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.AWS.Region,
			AccessKeyID:        cfg.AWS.AccessKeyID,
			SecretAccessKey:    cfg.AWS.SecretAccessKey,
			InsecureSkipVerify: cfg.AWS.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer, logger)

	store := services.NewScheduleStore(scheduleRepo, scheduleCache, publisher, logger, cfg.DBTimeout)
	scheduleService := services.NewScheduleService(scheduleRepo, doctorRepo, store, publisher, logger, cfg.DBTimeout)
	doctorService := services.NewDoctorService(doctorRepo, store, cfg.DBTimeout)
	hospitalService := services.NewHospitalService(hospitalRepo, cfg.DBTimeout)
	feedbackService := services.NewFeedbackService(feedbackRepo, emailService, cfg.Email.AdminAddress, logger, cfg.DBTimeout)

	var verifier domain.TokenVerifier
	if cfg.Auth.Enabled {
		verifier = auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	} else {
		logger.Warn("authentication disabled, admin routes are open")
	}

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:         logger,
		Schedules:      controllers.NewScheduleController(logger, scheduleService, store),
		Doctors:        controllers.NewDoctorController(logger, doctorService),
		Hospitals:      controllers.NewHospitalController(logger, hospitalService),
		Feedback:       controllers.NewFeedbackController(logger, feedbackService),
		Verifier:       verifier,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		DB:             db,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "err", err)
		}
	}()

	logger.Info("hospital admin API listening", "addr", server.Addr, "env", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
