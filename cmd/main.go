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

	claimSlotHandler "github.com/onmarkov/polyclinic/internal/api/handlers/claim_slot"
	createLineHandler "github.com/onmarkov/polyclinic/internal/api/handlers/create_schedule_line"
	createSpecHandler "github.com/onmarkov/polyclinic/internal/api/handlers/create_specialization"
	deleteLineHandler "github.com/onmarkov/polyclinic/internal/api/handlers/delete_schedule_line"
	deleteSpecHandler "github.com/onmarkov/polyclinic/internal/api/handlers/delete_specialization"
	generateSlotsHandler "github.com/onmarkov/polyclinic/internal/api/handlers/generate_slots"
	getPatientBookingsHandler "github.com/onmarkov/polyclinic/internal/api/handlers/get_patient_bookings"
	getLineHandler "github.com/onmarkov/polyclinic/internal/api/handlers/get_schedule_line"
	listFreeSlotsHandler "github.com/onmarkov/polyclinic/internal/api/handlers/list_free_slots"
	listLinesHandler "github.com/onmarkov/polyclinic/internal/api/handlers/list_schedule_lines"
	listSpecsHandler "github.com/onmarkov/polyclinic/internal/api/handlers/list_specializations"
	provisionProfileHandler "github.com/onmarkov/polyclinic/internal/api/handlers/provision_profile"
	releaseSlotHandler "github.com/onmarkov/polyclinic/internal/api/handlers/release_slot"
	removeSlotsHandler "github.com/onmarkov/polyclinic/internal/api/handlers/remove_slots"
	updateLineHandler "github.com/onmarkov/polyclinic/internal/api/handlers/update_schedule_line"
	"github.com/onmarkov/polyclinic/internal/api/middleware"
	"github.com/onmarkov/polyclinic/internal/config"
	profileRepo "github.com/onmarkov/polyclinic/internal/infra/storage/profile"
	scheduleLineRepo "github.com/onmarkov/polyclinic/internal/infra/storage/scheduleline"
	slotRepo "github.com/onmarkov/polyclinic/internal/infra/storage/slot"
	specializationRepo "github.com/onmarkov/polyclinic/internal/infra/storage/specialization"
	identityClient "github.com/onmarkov/polyclinic/internal/integrations/identity"
	registryService "github.com/onmarkov/polyclinic/internal/service/registry"
	scheduleService "github.com/onmarkov/polyclinic/internal/service/schedule"
	claimSlotUC "github.com/onmarkov/polyclinic/internal/usecase/claim_slot"
	generateSlotsUC "github.com/onmarkov/polyclinic/internal/usecase/generate_slots"
	listFreeSlotsUC "github.com/onmarkov/polyclinic/internal/usecase/list_free_slots"
	removeSlotsUC "github.com/onmarkov/polyclinic/internal/usecase/remove_slots"
	"github.com/onmarkov/polyclinic/pkg/dbmetrics"
	"github.com/onmarkov/polyclinic/pkg/logger"
	"github.com/onmarkov/polyclinic/pkg/metrics"
	"github.com/onmarkov/polyclinic/pkg/simpletxmanager"
	"github.com/onmarkov/polyclinic/pkg/txmanager"
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

	log.Info("Starting polyclinic registry service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
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

	// Инициализируем клиента identity-провайдера
	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		lineRepository    *scheduleLineRepo.Repository
		slotRepository    *slotRepo.Repository
		specRepository    *specializationRepo.Repository
		profileRepository *profileRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		lineRepository = scheduleLineRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		specRepository = specializationRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		lineRepository = scheduleLineRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		specRepository = specializationRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(lineRepository, slotRepository, specRepository, log)
	registrySvc := registryService.NewService(specRepository, profileRepository, identity, log)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(lineRepository, slotRepository, txMgr, log)
	removeSlotsUseCase := removeSlotsUC.NewUseCase(lineRepository, slotRepository, txMgr, log)
	listFreeSlotsUseCase := listFreeSlotsUC.NewUseCase(lineRepository, slotRepository, log)
	claimSlotUseCase := claimSlotUC.NewUseCase(
		slotRepository,
		lineRepository,
		specRepository,
		profileRepository,
		identity,
		log,
	)

	// Инициализируем handlers
	createLine := createLineHandler.NewHandler(scheduleSvc, log)
	updateLine := updateLineHandler.NewHandler(scheduleSvc, log)
	deleteLine := deleteLineHandler.NewHandler(scheduleSvc, log)
	getLine := getLineHandler.NewHandler(scheduleSvc, log)
	listLines := listLinesHandler.NewHandler(scheduleSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	removeSlots := removeSlotsHandler.NewHandler(removeSlotsUseCase, log)
	listFreeSlots := listFreeSlotsHandler.NewHandler(listFreeSlotsUseCase, log)
	claimSlot := claimSlotHandler.NewHandler(claimSlotUseCase, log)
	releaseSlot := releaseSlotHandler.NewHandler(scheduleSvc, log)
	getPatientBookings := getPatientBookingsHandler.NewHandler(scheduleSvc, log)
	provisionProfile := provisionProfileHandler.NewHandler(registrySvc, log)
	createSpec := createSpecHandler.NewHandler(registrySvc, log)
	listSpecs := listSpecsHandler.NewHandler(registrySvc, log)
	deleteSpec := deleteSpecHandler.NewHandler(registrySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание приема
	api.HandleFunc("/schedule-lines", listLines.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule-lines/{lineId}", getLine.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule-lines/{lineId}/free-slots", listFreeSlots.Handle).Methods(http.MethodGet)

	// Справочник специализаций
	api.HandleFunc("/specializations", listSpecs.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Пациенты ---
	// Бронирование талона
	protected.HandleFunc("/slots/{slotId}/claim", claimSlot.Handle).Methods(http.MethodPost)

	// Талоны пациента
	protected.HandleFunc("/users/{userId}/bookings", getPatientBookings.Handle).Methods(http.MethodGet)

	// Создание профиля
	protected.HandleFunc("/profiles", provisionProfile.Handle).Methods(http.MethodPost)

	// --- Регистратура ---
	// Строки расписания
	protected.HandleFunc("/schedule-lines", createLine.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule-lines/{lineId}", updateLine.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/schedule-lines/{lineId}", deleteLine.Handle).Methods(http.MethodDelete)

	// Талоны строки расписания
	protected.HandleFunc("/schedule-lines/{lineId}/slots", generateSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule-lines/{lineId}/slots", removeSlots.Handle).Methods(http.MethodDelete)

	// Снятие брони
	protected.HandleFunc("/slots/{slotId}/release", releaseSlot.Handle).Methods(http.MethodPatch)

	// Справочник специализаций
	protected.HandleFunc("/specializations", createSpec.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/specializations/{specializationId}", deleteSpec.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор статистики connection pool
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
