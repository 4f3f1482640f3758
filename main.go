package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genvo-server/config"
	"genvo-server/logger"
	"genvo-server/models"
	"genvo-server/repository"
	"genvo-server/routers"
	"genvo-server/routers/api"
	"genvo-server/service"
	"genvo-server/store"
	"genvo-server/videogen"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}
	cfg := config.AppConfig
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	st := initStore(cfg)
	repo := repository.New(st)
	versions := service.NewVersioning(repo)

	keys := videogen.NewKeys(st, cfg.Generation.APIKey)
	client := &videogen.Auto{
		Keys: keys,
		Fal: videogen.FalConfig{
			BaseURL:      cfg.Generation.BaseURL,
			PollInterval: cfg.Generation.PollInterval,
		},
		Demo:         &videogen.Simulator{Step: cfg.Generation.SimulateStep},
		DemoFallback: cfg.Generation.DemoFallback,
	}
	gen := service.NewGeneration(repo, versions, client, cfg.Generation.DefaultModel)

	var (
		queue     *service.Queue
		processor *service.Processor
		inline    *service.Inline
	)
	if cfg.Queue.Enabled {
		opt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		queue = service.NewQueue(opt, cfg.Queue.MaxRetry, cfg.Queue.Timeout)
		gen.SetDispatcher(queue)

		processor = service.NewProcessor(gen, opt, cfg.Queue.Concurrency)
		if err := processor.Start(); err != nil {
			log.Fatal().Err(err).Msg("start task processor failed")
		}
		log.Info().Str("redis", cfg.Redis.Addr).Msg("queue initialized")
	} else {
		inline = service.NewInline(gen)
		gen.SetDispatcher(inline)
		log.Info().Msg("queue disabled, tasks run in-process")
	}

	if cfg.MinIO.Enabled {
		oss, err := service.NewOSS(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
		if err != nil {
			log.Warn().Err(err).Msg("minio unavailable, generated videos will not be mirrored")
		} else {
			gen.SetMirror(oss)
			log.Info().Str("bucket", cfg.MinIO.Bucket).Msg("minio initialized")
		}
	}

	h := api.NewHandler(repo, versions, gen, keys)
	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: routers.InitRouter(h, cfg.Server.AllowedOrigins),
	}

	go func() {
		log.Info().Str("addr", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if processor != nil {
		processor.Shutdown()
	}
	if queue != nil {
		_ = queue.Close()
	}
	if inline != nil {
		inline.Wait()
	}
}

// initStore 按配置选择存储；连接失败时退回 Unavailable，读取示例数据、写入被忽略
func initStore(cfg *config.Config) store.Store {
	switch cfg.Store.Driver {
	case "mysql":
		db, err := models.InitDB(cfg.MySQL.DSN)
		if err != nil {
			log.Error().Err(err).Msg("mysql unavailable, falling back to read-only seed data")
			return store.Unavailable{}
		}
		return store.NewGorm(db)

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, falling back to read-only seed data")
			return store.Unavailable{}
		}
		return store.NewRedis(rdb, cfg.Store.KeyPrefix)

	default:
		return store.NewMemory()
	}
}
