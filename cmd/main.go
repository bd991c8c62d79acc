package main

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_reservation"
	completeReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/complete_reservation"
	createPayoutHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_payout"
	createReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_reservation"
	extendReservationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/extend_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_slots"
	getHostDashboardHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_host_dashboard"
	getHostRequestsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_host_requests"
	getReservationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_reservations"
	setHostStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/set_host_status"
	updateHostRequestHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_host_request"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/broadcast"
	"github.com/m04kA/SMC-ParkingService/internal/infra/queue"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/documents"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/chatservice"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/service/catalog"
	"github.com/m04kA/SMC-ParkingService/internal/service/earnings"
	"github.com/m04kA/SMC-ParkingService/internal/service/replication"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests"
	"github.com/m04kA/SMC-ParkingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
	getHostDashboardUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_host_dashboard"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/mq"
	"github.com/m04kA/SMC-ParkingService/pkg/scheduler"
	"github.com/m04kA/SMC-ParkingService/pkg/types"
)

// listingsRefreshInterval период сверки реестра доступности со справочником парковок
const listingsRefreshInterval = time.Minute

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

	log.Info("Starting SMC-ParkingService (context=%s)...", cfg.Sync.ContextID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Redis нужен хранилищу и/или транспорту синхронизации
	var redisClient *redis.Client
	if cfg.Storage.Backend == config.BackendRedis || cfg.Sync.Backend == config.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Successfully connected to redis (addr=%s)", cfg.Redis.Addr)
	}

	// Хранилище документов
	var store documents.Store
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			store = documents.NewPostgresStore(dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh))
			log.Info("Database metrics collection started")
		} else {
			store = documents.NewPostgresStore(db)
		}

	case config.BackendRedis:
		store = documents.NewRedisStore(redisClient, cfg.Redis.KeyPrefix)

	default:
		store = documents.NewMemoryStore()
	}
	log.Info("Document store: %s", cfg.Storage.Backend)

	// Транспорт синхронизации между контекстами
	var bus replication.Broadcaster
	if cfg.Sync.Backend == config.BackendRedis {
		bus = broadcast.NewRedis(redisClient, cfg.Sync.Channel, log)
	} else {
		bus = broadcast.NewMemoryBus()
	}
	synchronizer := replication.NewSynchronizer(cfg.Sync.ContextID, store, bus, metricsCollector, log)

	// Справочник парковок и пул водителей
	var (
		listingDirectory interface {
			requests.ListingDirectory
			createReservationUC.ListingDirectory
		}
		drivers requests.DriverPool
	)
	static := listingservice.NewStatic(cfg.DomainListings(), cfg.DomainDrivers())
	if cfg.ListingService.URL != "" {
		client := listingservice.NewClient(cfg.ListingService.URL, time.Duration(cfg.ListingService.Timeout)*time.Second, log)
		listingDirectory = client
		drivers = client
		if len(cfg.Drivers) > 0 {
			drivers = static
		}
		log.Info("ListingService client initialized (url=%s, timeout=%ds)", cfg.ListingService.URL, cfg.ListingService.Timeout)
	} else {
		listingDirectory = static
		drivers = static
		log.Info("Static listing directory: %d listings, %d drivers", len(cfg.Listings), len(cfg.Drivers))
	}

	// Чат
	var chat queue.ChatService
	if cfg.ChatService.URL != "" {
		chat = chatservice.NewClient(cfg.ChatService.URL, time.Duration(cfg.ChatService.Timeout)*time.Second, log)
		log.Info("ChatService client initialized (url=%s)", cfg.ChatService.URL)
	} else {
		chat = chatservice.NewLocal(log)
	}

	var (
		chatDispatcher requests.ChatDispatcher
		worker         *queue.Worker
		asyncChat      *chatservice.AsyncDispatcher
	)
	if cfg.Queue.Enabled {
		redisOpt := asynq.RedisClientOpt{Addr: cfg.Queue.RedisAddr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		queueClient := asynq.NewClient(redisOpt)
		defer queueClient.Close()

		chatDispatcher = queue.NewChatDispatcher(queueClient, log)
		worker = queue.NewWorker(redisOpt, cfg.Queue.Concurrency, chat, log)
		if err := worker.Start(); err != nil {
			log.Fatal("Failed to start queue worker: %v", err)
		}
		log.Info("Chat tasks go through asynq (redis=%s)", cfg.Queue.RedisAddr)
	} else {
		asyncChat = chatservice.NewAsyncDispatcher(chat, log)
		chatDispatcher = asyncChat
	}

	// Уведомления
	var notifications requests.Notifier
	if cfg.Notifications.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.Notifications.AMQPURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to AMQP broker: %v", err)
		}
		defer publisher.Close()

		notifications = notifier.NewAMQP(publisher, log)
		log.Info("Notifications published to exchange=%s", cfg.Notifications.Exchange)
	} else {
		notifications = notifier.NewLog(log)
	}

	// Инициализируем сервисы
	slotCatalog, err := catalog.New(
		types.TimeString(cfg.Catalog.DayStart),
		types.TimeString(cfg.Catalog.DayEnd),
		cfg.Catalog.SlotMinutes,
	)
	if err != nil {
		log.Fatal("Failed to build slot catalog: %v", err)
	}
	log.Info("Slot catalog: %s-%s, %d slots", cfg.Catalog.DayStart, cfg.Catalog.DayEnd, len(slotCatalog.Slots()))

	ledger := availability.NewService(slotCatalog, store, metricsCollector, log)
	reservationSvc := reservations.NewService(slotCatalog, ledger, store, metricsCollector, log)
	earningsSvc := earnings.NewService(store, metricsCollector, log)

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	engineCfg := requests.Config{
		GenerateInterval: time.Duration(cfg.Engine.GenerateIntervalSeconds) * time.Second,
		SweepInterval:    time.Duration(cfg.Engine.SweepIntervalSeconds) * time.Second,
		MinDurationHours: cfg.Engine.MinDurationHours,
		MaxDurationHours: cfg.Engine.MaxDurationHours,
		HostID:           cfg.Engine.HostID,
		HostName:         cfg.Engine.HostName,
	}
	engine, err := requests.NewEngine(engineCfg, requests.Dependencies{
		Listings:   listingDirectory,
		Drivers:    drivers,
		Earnings:   earningsSvc,
		Chat:       chatDispatcher,
		Notifier:   notifications,
		Replicator: synchronizer,
		Store:      store,
		Metrics:    metricsCollector,
		Logger:     log,
		Random:     rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		log.Fatal("Failed to create request engine: %v", err)
	}

	// Восстанавливаем состояние из хранилища
	ledger.Load(ctx)
	reservationSvc.Load(ctx)
	earningsSvc.Load(ctx)
	engine.Load(ctx)
	syncListings(ctx, listingDirectory, ledger, log)

	// Подписываемся на изменения из других контекстов
	synchronizer.Register(domain.KeyHostRequests, engine.ApplyRequestsSnapshot)
	synchronizer.Register(domain.KeyHostOnline, engine.ApplyOnlineSnapshot)
	if err := synchronizer.Start(ctx); err != nil {
		log.Fatal("Failed to start synchronizer: %v", err)
	}

	// Таймеры
	cronScheduler := scheduler.NewCron()
	if err := engine.Start(cronScheduler); err != nil {
		log.Fatal("Failed to start request engine: %v", err)
	}
	if _, err := cronScheduler.Every(listingsRefreshInterval, func() {
		syncListings(ctx, listingDirectory, ledger, log)
	}); err != nil {
		log.Fatal("Failed to schedule listings refresh: %v", err)
	}

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(listingDirectory, slotCatalog, ledger, reservationSvc, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(listingDirectory, slotCatalog, ledger, log)
	getHostDashboardUseCase := getHostDashboardUC.NewUseCase(engine, earningsSvc, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservations := getReservationsHandler.NewHandler(reservationSvc, log)
	extendReservation := extendReservationHandler.NewHandler(reservationSvc, log)
	completeReservation := completeReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	setHostStatus := setHostStatusHandler.NewHandler(engine, log)
	getHostRequests := getHostRequestsHandler.NewHandler(engine, log)
	updateHostRequest := updateHostRequestHandler.NewHandler(engine, log)
	getHostDashboard := getHostDashboardHandler.NewHandler(getHostDashboardUseCase, log)
	createPayout := createPayoutHandler.NewHandler(earningsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recoverer(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Водитель ---
	api.HandleFunc("/listings/{listingId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations", getReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}/extend", extendReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{reservationId}", cancelReservation.Handle).Methods(http.MethodDelete)

	// --- Хост ---
	api.HandleFunc("/host/status", setHostStatus.Handle).Methods(http.MethodPut)
	api.HandleFunc("/host/requests", getHostRequests.Handle).Methods(http.MethodGet)
	api.HandleFunc("/host/requests/{requestId}/{action}", updateHostRequest.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/host/dashboard", getHostDashboard.Handle).Methods(http.MethodGet)
	api.HandleFunc("/host/payouts", createPayout.Handle).Methods(http.MethodPost)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем таймеры до отписки, чтобы поздние колбэки не публиковали снимки
	engine.Stop()
	cronScheduler.Stop()

	if err := synchronizer.Stop(); err != nil {
		log.Warn("Synchronizer stop: %v", err)
	}
	if worker != nil {
		worker.Shutdown()
	}
	if asyncChat != nil {
		asyncChat.Close()
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)
	cancel()

	log.Info("Server stopped gracefully")
}

// syncListings сверяет реестр доступности со справочником парковок
func syncListings(ctx context.Context, directory requests.ListingDirectory, ledger *availability.Service, log *logger.Logger) {
	listings, err := directory.ListListings(ctx)
	if err != nil {
		log.Warn("syncListings: failed to list listings: %v", err)
		return
	}
	ledger.SyncListings(ctx, listings)
}
