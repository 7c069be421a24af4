package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/marcelsud/webhook-courier/config"
	deliverypg "github.com/marcelsud/webhook-courier/delivery/postgres"
	"github.com/marcelsud/webhook-courier/delivery/worker"
	"github.com/marcelsud/webhook-courier/internal/logger"
	"github.com/marcelsud/webhook-courier/metrics"
	"github.com/marcelsud/webhook-courier/queue"
	queueredis "github.com/marcelsud/webhook-courier/queue/redis"
	"github.com/marcelsud/webhook-courier/retention"
	"github.com/marcelsud/webhook-courier/subscription/cache"
	subscriptionpg "github.com/marcelsud/webhook-courier/subscription/postgres"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const schedulerInterval = 1 * time.Second

// The worker binary: delivery consumers, the queue scheduler and the
// retention sweeper share one composition root and one shutdown signal.
func main() {
	godotenv.Load()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	subRepo, err := subscriptionpg.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("connecting to postgres", zap.Error(err))
		os.Exit(1)
	}
	defer subRepo.Close(ctx)

	logRepo, err := deliverypg.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("connecting to postgres", zap.Error(err))
		os.Exit(1)
	}
	defer logRepo.Close(ctx)

	if err := logRepo.CreateTable(ctx); err != nil {
		log.Error("creating delivery_logs table", zap.Error(err))
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("parsing redis url", zap.Error(err))
		os.Exit(1)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("connecting to redis", zap.Error(err))
		os.Exit(1)
	}

	collector := metrics.NewPipelineCollector(client, logRepo, queue.Deliveries)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		log.Error("setting up metrics", zap.Error(err))
		os.Exit(1)
	}
	defer exporter.Shutdown(context.Background())

	instruments, err := metrics.NewInstruments(exporter.Meter())
	if err != nil {
		log.Error("registering instruments", zap.Error(err))
		os.Exit(1)
	}

	subCache := cache.New(client, subRepo, cfg.CacheTTL(), log, instruments)
	jobQueue := queueredis.NewQueue(client, cfg.VisibilityTimeout(), log)

	schedule, err := cfg.Backoff()
	if err != nil {
		log.Error("parsing backoff schedule", zap.Error(err))
		os.Exit(1)
	}

	w, err := worker.New(worker.Options{
		Queue:         jobQueue,
		Subscriptions: subCache,
		Logs:          logRepo,
		Timeout:       cfg.HTTPTimeout(),
		MaxAttempts:   cfg.MaxAttempts,
		Schedule:      schedule,
		Concurrency:   cfg.WorkerConcurrency,
		Logger:        log,
		Instruments:   instruments,
	})
	if err != nil {
		log.Error("building worker", zap.Error(err))
		os.Exit(1)
	}

	sweeper := retention.New(logRepo, cfg.Retention(), cfg.RetentionInterval(), log, instruments)

	go jobQueue.RunScheduler(ctx, queue.Deliveries, schedulerInterval)
	go sweeper.Start(ctx)
	go serveMetrics(ctx, cfg.Port, exporter.ServeHTTP(), log)

	log.Info("delivery worker started",
		zap.Int("concurrency", cfg.WorkerConcurrency),
		zap.Int("max_attempts", cfg.MaxAttempts),
	)

	if err := w.Run(ctx); err != nil {
		// Crash and let the supervisor restart; jobs stay durable in the
		// queue and come back after their visibility timeout
		log.Error("delivery worker failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("delivery worker stopped")
}

// serveMetrics exposes /health and /metrics for the worker process
func serveMetrics(ctx context.Context, port string, handler http.Handler, log *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn("metrics server failed", zap.Error(err))
	}
}
