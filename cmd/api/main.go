package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/marcelsud/webhook-courier/config"
	deliverypg "github.com/marcelsud/webhook-courier/delivery/postgres"
	chihandlers "github.com/marcelsud/webhook-courier/internal/http/chi"
	"github.com/marcelsud/webhook-courier/internal/logger"
	"github.com/marcelsud/webhook-courier/metrics"
	"github.com/marcelsud/webhook-courier/queue"
	queueredis "github.com/marcelsud/webhook-courier/queue/redis"
	"github.com/marcelsud/webhook-courier/seed"
	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/marcelsud/webhook-courier/subscription/cache"
	subscriptionpg "github.com/marcelsud/webhook-courier/subscription/postgres"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

/* A porta de entrada da aplicação: é aqui que as dependências são
 * construídas uma única vez e amarradas — sem singletons globais.
 * As importações seguem apenas uma direção: para baixo, do aplicativo
 * para as camadas de negócio e armazenamento.
 */

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		fmt.Println(err)
		return
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
		return
	}
	defer subRepo.Close(ctx)

	logRepo, err := deliverypg.NewRepository(cfg.DatabaseURL)
	if err != nil {
		log.Error("connecting to postgres", zap.Error(err))
		return
	}
	defer logRepo.Close(ctx)

	if err := subRepo.CreateTable(ctx); err != nil {
		log.Error("creating subscriptions table", zap.Error(err))
		return
	}
	if err := logRepo.CreateTable(ctx); err != nil {
		log.Error("creating delivery_logs table", zap.Error(err))
		return
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("parsing redis url", zap.Error(err))
		return
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("connecting to redis", zap.Error(err))
		return
	}

	collector := metrics.NewPipelineCollector(client, logRepo, queue.Deliveries)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		log.Error("setting up metrics", zap.Error(err))
		return
	}
	defer exporter.Shutdown(context.Background())

	instruments, err := metrics.NewInstruments(exporter.Meter())
	if err != nil {
		log.Error("registering instruments", zap.Error(err))
		return
	}

	subCache := cache.New(client, subRepo, cfg.CacheTTL(), log, instruments)
	jobQueue := queueredis.NewQueue(client, cfg.VisibilityTimeout(), log)
	svc := subscription.NewService(subRepo, subCache)

	if cfg.SeedFile != "" {
		loader := seed.NewLoader()
		if err := loader.Load(cfg.SeedFile); err != nil {
			log.Error("loading seed file", zap.Error(err))
			return
		}
		if err := loader.Apply(ctx, svc); err != nil {
			log.Error("applying seed file", zap.Error(err))
			return
		}
		log.Info("seeded subscriptions", zap.Int("count", len(loader.List())))
	}

	r := chihandlers.Handlers(chihandlers.Deps{
		Subscriptions: svc,
		Resolver:      subCache,
		Producer:      jobQueue,
		Logs:          logRepo,
		Metrics:       exporter.ServeHTTP(),
		Instruments:   instruments,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	})

	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	log.Info("listening", zap.String("port", cfg.Port))
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Error("serving", zap.Error(err))
		return
	}
	if err := <-errShutdown; err != nil {
		log.Error("shutting down", zap.Error(err))
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("forcing the server closed")
	default:
		errShutdown <- err
	}
}
