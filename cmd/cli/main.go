package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/marcelsud/webhook-courier/config"
	"github.com/marcelsud/webhook-courier/internal/logger"
	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/marcelsud/webhook-courier/subscription/cache"
	subscriptionpg "github.com/marcelsud/webhook-courier/subscription/postgres"
	"github.com/redis/go-redis/v9"
)

// Minimal operator tool: register a subscription and print its id.
func main() {
	targetURL := flag.String("target-url", "", "absolute http(s) URL to deliver webhooks to")
	secret := flag.String("secret", "", "optional opaque signing secret")
	events := flag.String("events", "", "optional comma-separated event tags")
	flag.Parse()

	if *targetURL == "" {
		fmt.Println("usage: cli -target-url <url> [-secret <secret>] [-events a,b]")
		return
	}

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

	ctx := context.Background()

	repo, err := subscriptionpg.NewRepository(cfg.DatabaseURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)

	if err := repo.CreateTable(ctx); err != nil {
		fmt.Println(err)
		return
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		fmt.Println(err)
		return
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		fmt.Println(err)
		return
	}

	var secretPtr *string
	if *secret != "" {
		secretPtr = secret
	}
	var eventTags []string
	if *events != "" {
		eventTags = strings.Split(*events, ",")
	}

	svc := subscription.NewService(repo, cache.New(client, repo, cfg.CacheTTL(), log, nil))
	sub, err := svc.Create(ctx, *targetURL, secretPtr, eventTags)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sub.ID)
}
