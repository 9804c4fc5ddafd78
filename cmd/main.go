package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/create_reservation"
	getAuditLogsHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/get_audit_logs"
	getAvailableSlotsHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/get_available_slots"
	getOperatingConfigHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/get_operating_config"
	getRefundCandidatesHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/get_refund_candidates"
	getReservationHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/get_reservation"
	paymentWebhookHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/payment_webhook"
	recordRefundHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/record_refund"
	runNotificationJobHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/run_notification_job"
	suspendReservationHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/suspend_reservation"
	updateOperatingConfigHandler "github.com/daiki-lova/Privateskytour-sub000/internal/api/handlers/update_operating_config"
	"github.com/daiki-lova/Privateskytour-sub000/internal/api/middleware"
	"github.com/daiki-lova/Privateskytour-sub000/internal/config"
	auditRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/audit"
	courseRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/course"
	notificationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/notification"
	operatingRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/operatinghours"
	reservationRepo "github.com/daiki-lova/Privateskytour-sub000/internal/infra/storage/reservation"
	mailerClient "github.com/daiki-lova/Privateskytour-sub000/internal/integrations/mailer"
	paymentClient "github.com/daiki-lova/Privateskytour-sub000/internal/integrations/payment"
	"github.com/daiki-lova/Privateskytour-sub000/internal/scheduler"
	operatingService "github.com/daiki-lova/Privateskytour-sub000/internal/service/operating"
	"github.com/daiki-lova/Privateskytour-sub000/internal/service/policy"
	reservationsService "github.com/daiki-lova/Privateskytour-sub000/internal/service/reservations"
	confirmPaymentUC "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/confirm_payment"
	createReservationUC "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/create_reservation"
	dispatchNotificationsUC "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/dispatch_notifications"
	getAvailableSlotsUC "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/get_available_slots"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/dbmetrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/logger"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/metrics"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/simpletxmanager"
	"github.com/daiki-lova/Privateskytour-sub000/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting skytour reservation service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	payment := paymentClient.NewClient(
		cfg.Payment.URL,
		time.Duration(cfg.Payment.Timeout)*time.Second,
		log,
	)
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Payment=%s timeout=%ds, Mailer=%s timeout=%ds)",
		cfg.Payment.URL, cfg.Payment.Timeout, cfg.Mailer.URL, cfg.Mailer.Timeout)

	var (
		reservationRepository  *reservationRepo.Repository
		courseRepository       *courseRepo.Repository
		auditRepository        *auditRepo.Repository
		notificationRepository *notificationRepo.Repository
		operatingRepository    *operatingRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		courseRepository = courseRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		operatingRepository = operatingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		courseRepository = courseRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		operatingRepository = operatingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	policyEngine := policy.NewEngine(cfg.CancellationPolicy.DomainTiers())

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		auditRepository,
		payment,
		policyEngine,
		txMgr,
		log,
	)
	operatingSvc := operatingService.NewService(
		operatingRepository,
		auditRepository,
		txMgr,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		courseRepository,
		operatingRepository,
		auditRepository,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		courseRepository,
		operatingRepository,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		reservationRepository,
		auditRepository,
		txMgr,
		log,
	)
	dispatchNotificationsUseCase := dispatchNotificationsUC.NewUseCase(
		reservationRepository,
		notificationRepository,
		auditRepository,
		mailer,
		txMgr,
		log,
	)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	suspendReservation := suspendReservationHandler.NewHandler(reservationSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(confirmPaymentUseCase, log)
	recordRefund := recordRefundHandler.NewHandler(reservationSvc, log)
	getRefundCandidates := getRefundCandidatesHandler.NewHandler(reservationSvc, log)
	getAuditLogs := getAuditLogsHandler.NewHandler(reservationSvc, log)
	getOperatingConfig := getOperatingConfigHandler.NewHandler(operatingSvc, log)
	updateOperatingConfig := updateOperatingConfigHandler.NewHandler(operatingSvc, log)
	runNotificationJob := runNotificationJobHandler.NewHandler(dispatchNotificationsUseCase, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Availability grid for one date
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Booking
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Customer self-service lookup (booking number + token)
	api.HandleFunc("/reservations/lookup", getReservation.HandleLookup).Methods(http.MethodGet)

	// Payment gateway webhook
	api.HandleFunc("/webhooks/payment", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// OPERATOR ROUTES (require X-Operator-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations/{reservationId:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/suspend", suspendReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId:[0-9]+}/refund", recordRefund.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/refund-candidates", getRefundCandidates.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/audit-logs", getAuditLogs.Handle).Methods(http.MethodGet)

	protected.HandleFunc("/operating-config", getOperatingConfig.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/operating-config", updateOperatingConfig.Handle).Methods(http.MethodPut)

	protected.HandleFunc("/notification-jobs/{jobType}/run", runNotificationJob.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Scheduler for the notification jobs
	schedCtx, stopScheduler := context.WithCancel(context.Background())
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(
			dispatchNotificationsUseCase,
			time.Duration(cfg.Scheduler.IntervalMinutes)*time.Minute,
			log,
		)
		go sched.Run(schedCtx)
	} else {
		log.Info("Scheduler disabled, notification jobs run only via API")
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopScheduler()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
