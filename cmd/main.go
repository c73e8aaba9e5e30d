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

	commitBookingHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/commit_booking"
	getBookingHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/get_booking"
	getPolicyHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/get_policy"
	getRequesterBookingsHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/get_requester_bookings"
	listBookableDatesHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/list_bookable_dates"
	listFreeSlotsHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/list_free_slots"
	listSpacesHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/list_spaces"
	listValidEndDatesHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/list_valid_end_dates"
	rejectBookingHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/reject_booking"
	selectPeriodHandler "github.com/ufjf-cead/StudioBookingService/internal/api/handlers/select_period"
	"github.com/ufjf-cead/StudioBookingService/internal/api/middleware"
	"github.com/ufjf-cead/StudioBookingService/internal/config"
	"github.com/ufjf-cead/StudioBookingService/internal/draft"
	bookingRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/booking"
	limitsRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/limits"
	scheduleRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/schedule"
	spaceRepo "github.com/ufjf-cead/StudioBookingService/internal/infra/storage/space"
	notifyServiceClient "github.com/ufjf-cead/StudioBookingService/internal/integrations/notifyservice"
	termServiceClient "github.com/ufjf-cead/StudioBookingService/internal/integrations/termservice"
	bookingsService "github.com/ufjf-cead/StudioBookingService/internal/service/bookings"
	policyService "github.com/ufjf-cead/StudioBookingService/internal/service/policy"
	commitBookingUC "github.com/ufjf-cead/StudioBookingService/internal/usecase/commit_booking"
	listBookableDatesUC "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_bookable_dates"
	listFreeSlotsUC "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_free_slots"
	listValidEndDatesUC "github.com/ufjf-cead/StudioBookingService/internal/usecase/list_valid_end_dates"
	selectPeriodUC "github.com/ufjf-cead/StudioBookingService/internal/usecase/select_period"
	"github.com/ufjf-cead/StudioBookingService/pkg/dbmetrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/logger"
	"github.com/ufjf-cead/StudioBookingService/pkg/metrics"
	"github.com/ufjf-cead/StudioBookingService/pkg/simpletxmanager"
	"github.com/ufjf-cead/StudioBookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting StudioBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	termClient := termServiceClient.NewClient(
		cfg.TermService.URL,
		time.Duration(cfg.TermService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (TermService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.TermService.URL, cfg.TermService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Подписант черновиков бронирования
	draftSigner := draft.NewSigner(cfg.Draft.Secret, time.Duration(cfg.Draft.TTLMinutes)*time.Minute)

	// Инициализируем репозитории (с метриками или без)
	var (
		spaceRepository    *spaceRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		limitsRepository   *limitsRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		spaceRepository = spaceRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		limitsRepository = limitsRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		spaceRepository = spaceRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		limitsRepository = limitsRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	policySvc := policyService.NewService(spaceRepository, scheduleRepository, limitsRepository, log)

	// Инициализируем use cases
	listBookableDatesUseCase := listBookableDatesUC.NewUseCase(
		spaceRepository,
		scheduleRepository,
		limitsRepository,
		bookingRepository,
		log,
	)

	listValidEndDatesUseCase := listValidEndDatesUC.NewUseCase(
		spaceRepository,
		scheduleRepository,
		limitsRepository,
		bookingRepository,
		log,
	)

	selectPeriodUseCase := selectPeriodUC.NewUseCase(
		spaceRepository,
		scheduleRepository,
		limitsRepository,
		bookingRepository,
		draftSigner,
		log,
	)

	listFreeSlotsUseCase := listFreeSlotsUC.NewUseCase(
		spaceRepository,
		scheduleRepository,
		bookingRepository,
		draftSigner,
		log,
	)

	commitBookingUseCase := commitBookingUC.NewUseCase(
		spaceRepository,
		scheduleRepository,
		limitsRepository,
		bookingRepository,
		draftSigner,
		termClient,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	listSpaces := listSpacesHandler.NewHandler(policySvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	listBookableDates := listBookableDatesHandler.NewHandler(listBookableDatesUseCase, log)
	listValidEndDates := listValidEndDatesHandler.NewHandler(listValidEndDatesUseCase, log)
	selectPeriod := selectPeriodHandler.NewHandler(selectPeriodUseCase, log)
	listFreeSlots := listFreeSlotsHandler.NewHandler(listFreeSlotsUseCase, log)
	commitBooking := commitBookingHandler.NewHandler(commitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getRequesterBookings := getRequesterBookingsHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список активных пространств
	api.HandleFunc("/spaces", listSpaces.Handle).Methods(http.MethodGet)

	// Снимок действующей политики бронирования
	api.HandleFunc("/policy", getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Поток бронирования ---
	// Даты, доступные для начала бронирования
	protected.HandleFunc("/spaces/{spaceId}/bookable-dates", listBookableDates.Handle).Methods(http.MethodGet)

	// Допустимые даты окончания для выбранной даты начала
	protected.HandleFunc("/spaces/{spaceId}/valid-end-dates", listValidEndDates.Handle).Methods(http.MethodGet)

	// Фиксация периода, выпуск чернового токена
	protected.HandleFunc("/booking-drafts", selectPeriod.Handle).Methods(http.MethodPost)

	// Свободные слоты одобренного периода
	protected.HandleFunc("/booking-drafts/free-slots", listFreeSlots.Handle).Methods(http.MethodGet)

	// Атомарная фиксация бронирования
	protected.HandleFunc("/bookings", commitBooking.Handle).Methods(http.MethodPost)

	// --- Заявки ---
	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отклонение бронирования командой студии
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)

	// История бронирований запрашивающего
	protected.HandleFunc("/requesters/{requesterId}/bookings", getRequesterBookings.Handle).Methods(http.MethodGet)

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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
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
