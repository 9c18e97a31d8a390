// Package main boots the beverage stock service HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/beverage-stock-service/internal/alert"
	"github.com/fairyhunter13/beverage-stock-service/internal/config"
	httpapi "github.com/fairyhunter13/beverage-stock-service/internal/http"
	"github.com/fairyhunter13/beverage-stock-service/internal/ledger"
	"github.com/fairyhunter13/beverage-stock-service/internal/obs"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting", "ledger", cfg.LedgerName)

	q := alert.NewQueue(128)
	disp := alert.NewDispatcher(cfg, q, alert.NewLogSink(obs.Logger))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	disp.Start(ctx)

	led := ledger.New(cfg.LedgerName, obs.Logger, disp)

	app := httpapi.NewApp(cfg, led, disp)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	app.StartShutdown()
	obs.Logger.Info("shutdown_drain_begin", "backlog_size", disp.BacklogSize(), "worker_count", disp.WorkerCount())

	ctxDrain, cancelDrain := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelDrain()
	if drained := disp.DrainUntil(ctxDrain); !drained {
		obs.Logger.Warn("shutdown_drain_timeout")
	} else {
		obs.Logger.Info("shutdown_drain_complete")
	}

	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	disp.Stop()
	obs.Logger.Info("service_stopped")
}
