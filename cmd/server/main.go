package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"portfolio_chart/internal/app/di"
	"portfolio_chart/internal/app/router"
	contacthandler "portfolio_chart/internal/feature/contact/transport/handler"
	charthandler "portfolio_chart/internal/feature/pricechart/transport/handler"
	"portfolio_chart/internal/platform/config"
	"portfolio_chart/internal/platform/http/handler"
	infraredis "portfolio_chart/internal/platform/redis"
	"portfolio_chart/internal/platform/scheduler"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Redis
	var rdb *redisv9.Client
	if cfg.RedisEnabled() {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Println("[WARN] Redis unavailable. Running without frame cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Usecase
	board, err := di.NewBoard(cfg, rdb)
	if err != nil {
		log.Fatal(err)
	}
	defer board.Close()
	copyButton := di.NewCopyButton(cfg)
	defer copyButton.Dispose()

	// Daily series rebuild
	sched := scheduler.New(ctx, board)
	if err := sched.RegisterRebuild(cfg.Schedule.RebuildCron); err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	// Handler
	chartH := charthandler.NewChartHandler(board)
	contactH := contacthandler.NewContactHandler(copyButton)

	checks := []handler.Check{{
		Name: "charts",
		Probe: func(context.Context) error {
			if len(board.IDs()) == 0 {
				return errors.New("no charts mounted")
			}
			return nil
		},
	}}
	if rdb != nil {
		checks = append(checks, handler.Check{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.NewRouter(chartH, contactH, cfg.Server.CORSOrigins, checks...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Println("listening on", srv.Addr)
		return srv.ListenAndServe()
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Println("[ERROR] server stopped:", err)
	}
}
