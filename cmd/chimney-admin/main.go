package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gabrielwysoczanski31/aurora-sub001/common/database"
	"github.com/gabrielwysoczanski31/aurora-sub001/common/logger"
	commonmqtt "github.com/gabrielwysoczanski31/aurora-sub001/common/mqtt"
	rediscommon "github.com/gabrielwysoczanski31/aurora-sub001/common/redis"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/ceeb"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/config"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/events"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/export"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/generator"
	httpapi "github.com/gabrielwysoczanski31/aurora-sub001/internal/http"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/repository"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/service"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/settings"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/snapshot"
	"github.com/gabrielwysoczanski31/aurora-sub001/internal/store"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "chimney-admin")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("chimney-admin stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// KV + event stream
	var kv store.KV = store.NewMemoryKV()
	var redisClient *redis.Client
	notifiers := []events.Notifier{}
	if cfg.RedisEnabled {
		c := rediscommon.NewRedisClient(&cfg.Redis)
		if err := rediscommon.Ping(ctx, c); err == nil {
			redisClient = c
			kv = store.NewRedisKV(c)
			notifiers = append(notifiers, events.NewStreamNotifier(c, cfg.Events.Stream, cfg.Events.StreamMaxLen))
			log.Info("Redis enabled", zap.String("addr", cfg.Redis.Addr))
		} else {
			_ = rediscommon.Close(c)
			log.Warn("Redis enabled but connection failed, falling back to memory KV", zap.Error(err))
		}
	}
	defer func() {
		if redisClient != nil {
			_ = rediscommon.Close(redisClient)
		}
	}()

	var mqttClient *commonmqtt.Client
	var mqttState service.ConnectionChecker
	if cfg.MQTTEnabled {
		c, err := commonmqtt.NewClient(&cfg.MQTT, log)
		if err == nil {
			mqttClient = c
			mqttState = c
			notifiers = append(notifiers, events.NewMQTTNotifier(c, cfg.MQTT.TopicPrefix, cfg.MQTT.QoS))
			log.Info("MQTT enabled", zap.String("broker", cfg.MQTT.Broker))
		} else {
			log.Warn("MQTT enabled but connection failed, events will not be published to MQTT", zap.Error(err))
		}
	}
	defer func() {
		if mqttClient != nil {
			mqttClient.Disconnect()
		}
	}()
	notifier := events.NewMulti(log, notifiers...)

	// repositories
	var db *sql.DB
	var settingsRepo repository.SettingsRepository = repository.NewMemorySettingsRepo()
	var submissionsRepo repository.SubmissionsRepository = repository.NewMemorySubmissionsRepo()
	if cfg.DBEnabled {
		d, err := database.NewPostgresDB(ctx, &cfg.Database)
		if err == nil {
			err = repository.EnsureSchema(ctx, d)
			if err != nil {
				_ = d.Close()
			}
		}
		if err == nil {
			db = d
			settingsRepo = repository.NewPostgresSettingsRepository(d)
			submissionsRepo = repository.NewPostgresSubmissionsRepository(d)
			log.Info("DB enabled for chimney-admin")
		} else {
			log.Warn("DB enabled but connection failed, falling back to memory repositories", zap.Error(err))
		}
	}
	defer func() { _ = database.Close(db) }()

	// CEEB submitter
	var submitter ceeb.Submitter = ceeb.NewSimulatedSubmitter(cfg.Delays.Submit)
	if cfg.Ceeb.Mode == config.CeebModeHTTP {
		submitter = ceeb.NewHTTPSubmitter(cfg.Ceeb.Endpoint, cfg.Ceeb.Timeout, log)
		log.Info("CEEB submissions go to gateway", zap.String("endpoint", cfg.Ceeb.Endpoint))
	}

	// snapshot + services
	snapshots := snapshot.NewStore()
	gen := generator.New(generator.DefaultOptions(), cfg.Snapshot.Seed, nil)
	refresher := snapshot.NewRefresher(gen, snapshots, kv, notifier, cfg.Snapshot.RefreshInterval, log)

	dashboard := service.NewDashboardService(service.Deps{
		Snapshots:   snapshots,
		KV:          kv,
		Ceeb:        ceeb.NewService(snapshots, submitter, submissionsRepo, notifier, log),
		Exports:     export.NewService(cfg.Delays.Export, notifier, log),
		Settings:    settings.NewService(settingsRepo, cfg.Delays.Save, notifier, log),
		Submissions: submissionsRepo,
		MQTT:        mqttState,
		Logger:      log,
		Seed:        cfg.Snapshot.Seed,
	})

	router := httpapi.NewRouter(log)
	router.RegisterDashboardRoutes(httpapi.NewDashboardHandler(dashboard, log))
	limiter := httpapi.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.TrustProxy)
	handler := httpapi.Chain(router,
		httpapi.RequestLogger(log),
		httpapi.CORS(cfg.HTTP.AllowedOrigins),
		limiter.Middleware(),
	)
	srv := service.NewServer(cfg.HTTP.Addr, handler, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return refresher.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := limiter.Cleanup(30 * time.Minute); n > 0 {
					log.Debug("Dropped idle rate limiters", zap.Int("count", n))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}
