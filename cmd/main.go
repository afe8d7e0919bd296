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
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	cancelBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/create_booking"
	decideBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/decide_booking"
	getBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_booking"
	getLabOccupancyHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_lab_occupancy"
	getUserBookingsHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/get_user_bookings"
	labAdminHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/lab_admin"
	modifyBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/modify_booking"
	overrideBookingHandler "github.com/m04kA/SMC-LabBookingService/internal/api/handlers/override_booking"
	"github.com/m04kA/SMC-LabBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-LabBookingService/internal/config"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/booking"
	labRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/lab"
	bookingsService "github.com/m04kA/SMC-LabBookingService/internal/service/bookings"
	labsService "github.com/m04kA/SMC-LabBookingService/internal/service/labs"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/admission"
	createBookingUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_booking"
	getLabOccupancyUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_lab_occupancy"
	modifyBookingUC "github.com/m04kA/SMC-LabBookingService/internal/usecase/modify_booking"
	"github.com/m04kA/SMC-LabBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/metrics"
	"github.com/m04kA/SMC-LabBookingService/pkg/txmanager"
)

const (
	defaultConfigPath = "config.toml"
	envConfigPath     = "LAB_CONFIG"
	redisKeyPrefix    = "lab_booking:"
)

// Locker общий интерфейс локальной и redis блокировок
type Locker interface {
	Lock(ctx context.Context, key string) (lock.Unlock, error)
}

func main() {
	configPath := defaultConfigPath
	if p := os.Getenv(envConfigPath); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LabBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil, если выключены; все вызовы nil-безопасны)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Репозитории и транзакции
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	labRepository := labRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировка на (лаборатория, дата)
	var locker Locker
	switch cfg.Lock.Backend {
	case config.LockBackendRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		cancel()

		locker = lock.NewRedisLocker(redisClient, redisKeyPrefix, cfg.Lock.LockTTL(), log)
		log.Info("Redis lock enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Lock.LockTTL())
	default:
		locker = lock.NewLocalLocker()
		log.Info("In-process lock enabled")
	}

	// Use cases
	checker := admission.NewChecker(labRepository, bookingRepository, log)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		checker,
		locker,
		txMgr,
		metricsCollector,
		cfg.Lock.LockWait(),
		log,
	)
	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		bookingRepository,
		labRepository,
		checker,
		locker,
		txMgr,
		metricsCollector,
		cfg.Lock.LockWait(),
		log,
	)
	getLabOccupancyUseCase := getLabOccupancyUC.NewUseCase(
		labRepository,
		bookingRepository,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		labRepository,
		txMgr,
		metricsCollector,
		log,
	)
	labSvc := labsService.NewService(labRepository, cfg.Booking.MaxLabCapacity, log)

	// Handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	getLabOccupancy := getLabOccupancyHandler.NewHandler(getLabOccupancyUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	decideBooking := decideBookingHandler.NewHandler(bookingSvc, log)
	overrideBooking := overrideBookingHandler.NewHandler(bookingSvc, log)
	labAdmin := labAdminHandler.NewHandler(labSvc, log)

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := wrappedDB.PingContext(req.Context()); err != nil {
			log.Warn("GET /health - Database unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authenticator.Middleware)

	// --- Загрузка лабораторий ---
	api.HandleFunc("/labs/available", getLabOccupancy.HandleAvailable).Methods(http.MethodGet)
	api.HandleFunc("/labs/{labName}/occupancy", getLabOccupancy.HandleLab).Methods(http.MethodGet)
	api.HandleFunc("/lab-assistant/labs/assigned", getLabOccupancy.HandleAssigned).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id:[0-9]+}", modifyBooking.Handle).Methods(http.MethodPut)
	api.HandleFunc("/bookings/{id:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{id:[0-9]+}/decision", decideBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{id:[0-9]+}/override", overrideBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление лабораториями ---
	api.HandleFunc("/labs", labAdmin.List).Methods(http.MethodGet)
	api.HandleFunc("/labs/{id:[0-9]+}/availability", labAdmin.ListWindows).Methods(http.MethodGet)

	api.Handle("/labs", adminOnly(http.HandlerFunc(labAdmin.Create))).Methods(http.MethodPost)
	api.Handle("/labs/{id:[0-9]+}", adminOnly(http.HandlerFunc(labAdmin.Update))).Methods(http.MethodPut)
	api.Handle("/labs/{id:[0-9]+}", adminOnly(http.HandlerFunc(labAdmin.Delete))).Methods(http.MethodDelete)
	api.Handle("/labs/{id:[0-9]+}/availability", adminOnly(http.HandlerFunc(labAdmin.AddWindow))).Methods(http.MethodPost)
	api.Handle("/labs/{id:[0-9]+}/availability/{windowId:[0-9]+}", adminOnly(http.HandlerFunc(labAdmin.DeleteWindow))).Methods(http.MethodDelete)
	api.Handle("/labs/{id:[0-9]+}/disable", adminOnly(http.HandlerFunc(labAdmin.Disable))).Methods(http.MethodPost)
	api.Handle("/labs/{id:[0-9]+}/disable", adminOnly(http.HandlerFunc(labAdmin.Enable))).Methods(http.MethodDelete)
	api.Handle("/labs/{id:[0-9]+}/assistants", adminOnly(http.HandlerFunc(labAdmin.AssignAssistant))).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
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

	close(stopMetricsCh)

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
