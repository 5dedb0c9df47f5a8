package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"totobot/internal/api"
	"totobot/internal/bot"
	"totobot/internal/config"
	"totobot/internal/database"
	"totobot/internal/domain"
	"totobot/internal/events"
	"totobot/internal/google"
	"totobot/internal/logging"
	"totobot/internal/metrics"
	"totobot/internal/models"
	"totobot/internal/repository"
	"totobot/internal/service"
	"totobot/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, loadErr := loadConfigAndLogger()
	if loadErr != nil {
		return loadErr
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, logger); err != nil {
		return err
	}

	db, err := initDatabase(cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		logger.Error().Err(err).Str("timezone", cfg.Bot.Timezone).Msg("Неизвестная тайм-зона")
		return err
	}

	redisClient, stateService := initStateService(ctx, cfg, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Google Sheets — опциональное зеркало, бот работает и без него
	var sheetsWorker *worker.SheetsWorker
	sheetsService, err := initGoogleSheets(ctx, cfg, logger)
	if err == nil && sheetsService != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker = worker.NewSheetsWorker(db, sheetsService, retryPolicy, logger)
		go sheetsWorker.Start(ctx)
	}

	eventBus := events.NewEventBus()
	subscribeSheetEvents(ctx, eventBus, sheetsWorker, logger)

	m := metrics.New()
	startMetricsServer(ctx, cfg, logger)

	authService := service.NewAuthService(db, eventBus, logger)
	catalogService := service.NewCatalogService(db, eventBus, logger)
	bettingService := service.NewBettingService(db, eventBus, loc, cfg.Bot.MaxScore, logger)

	watcher := worker.NewMatchWatcher(db, eventBus, m, loc, time.Duration(cfg.Bot.WatcherInterval)*time.Second, logger)
	go watcher.Start(ctx)

	if cfg.API.Enabled {
		apiServer := api.NewHTTPServer(cfg.API, db, catalogService, logger)
		go func() {
			if err := apiServer.Start(); err != nil {
				logger.Error().Err(err).Msg("API server error")
			}
		}()
		defer func() {
			_ = apiServer.Shutdown(context.Background())
		}()
	}

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
		go backupService.Start(ctx)
	}

	if err := seedTournaments(ctx, db, catalogService, logger); err != nil {
		logger.Error().Err(err).Msg("Ошибка загрузки стартовых турниров")
	}

	return startBot(ctx, cfg, stateService, authService, catalogService, bettingService, sheetsWorker, eventBus, m, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, &logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if cfg == nil {
		return os.ErrInvalid
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для экспорта")
		return err
	}
	return nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return nil, err
	}
	return db, nil
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*google.SheetsService, error) {
	if cfg.Google.GoogleCredentialsFile == "" || cfg.Google.UsersSpreadSheetID == "" || cfg.Google.BetsSpreadSheetID == "" {
		logger.Info().Msg("Google Sheets не настроен, выгрузка отключена")
		return nil, nil
	}

	sheetsSvc, err := google.NewSheetsService(
		cfg.Google.GoogleCredentialsFile,
		cfg.Google.UsersSpreadSheetID,
		cfg.Google.BetsSpreadSheetID,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil, err
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Error().Err(err).Msg("Google Sheets connection test failed")
		return nil, err
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc, nil
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, time.Duration(models.DefaultRedisTTL)*time.Second)
	fallbackRepo := repository.NewMemoryStateRepository(time.Duration(models.DefaultRedisTTL) * time.Second)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

// startMetricsServer поднимает отдельный /metrics, если включен мониторинг.
// Эндпоинт в составе API живет своей жизнью и может быть выключен.
func startMetricsServer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort),
		Handler: mux,
	}

	go func() {
		logger.Info().Int("port", cfg.Monitoring.PrometheusPort).Msg("Metrics server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// seedTournaments создает турниры из configs/seed.yaml, если их еще нет.
// Файл опционален: без него бот стартует с пустым каталогом.
func seedTournaments(ctx context.Context, db *database.DB, catalog *service.CatalogService, logger *zerolog.Logger) error {
	seedPath := os.Getenv("SEED_PATH")
	if seedPath == "" {
		seedPath = "configs/seed.yaml"
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var seed struct {
		Tournaments []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Rules       string `yaml:"rules"`
		} `yaml:"tournaments"`
	}
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return err
	}

	existing, err := db.ListAllTournaments(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.Name] = true
	}

	for _, t := range seed.Tournaments {
		if known[t.Name] {
			continue
		}
		if _, err := catalog.CreateTournament(ctx, t.Name, t.Description, t.Rules, 0); err != nil {
			logger.Error().Err(err).Str("name", t.Name).Msg("Ошибка создания турнира из seed")
			continue
		}
		logger.Info().Str("name", t.Name).Msg("Создан турнир из seed")
	}
	return nil
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	stateService *service.StateService,
	authService *service.AuthService,
	catalogService *service.CatalogService,
	bettingService *service.BettingService,
	sheetsWorker *worker.SheetsWorker,
	eventBus *events.EventBus,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	tgService := service.NewTelegramService(bot.NewTelegramAPI(botAPI))

	// Типизированный nil в интерфейсе сломал бы проверки sheetsWorker != nil
	var syncWorker domain.SyncWorker
	if sheetsWorker != nil {
		syncWorker = sheetsWorker
	}

	telegramBot, err := bot.NewBot(
		tgService, cfg, stateService, authService,
		catalogService, bettingService, syncWorker,
		eventBus, m, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// subscribeSheetEvents достраивает выгрузку в Sheets для событий, после
// которых бот не ставит задачу сам: бан и удаление ставки.
func subscribeSheetEvents(
	ctx context.Context,
	bus *events.EventBus,
	sheetsWorker *worker.SheetsWorker,
	logger *zerolog.Logger,
) {
	if bus == nil || sheetsWorker == nil {
		return
	}

	bus.Subscribe(events.EventUserBanned, func(ev *events.Event) error {
		if err := sheetsWorker.EnqueueUsersExport(ctx); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: enqueue users export")
		}
		return nil
	})

	bus.Subscribe(events.EventBetDeleted, func(ev *events.Event) error {
		var payload events.BetEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		if err := sheetsWorker.EnqueueBetsExport(ctx); err != nil {
			logger.Error().Err(err).Int64("user_id", payload.UserID).Msg("event bus: enqueue bets export")
		}
		return nil
	})
}
