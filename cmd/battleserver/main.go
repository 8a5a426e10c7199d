package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AmirRezaM75/algobattle/battleserver"
	"github.com/AmirRezaM75/algobattle/pkg/logx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional
	_ = godotenv.Load()

	config, err := battleserver.LoadConfig()
	if err != nil {
		log.Fatalf(`level=error msg="%s" desc="%s"`, err.Error(), "could not load configuration")
	}

	logx.NewLogger(config.Environment)
	defer logx.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	// Any component failing stops the hub and running battles too.
	config.Context = groupCtx

	server, err := battleserver.NewBattleServer(config)
	if err != nil {
		logx.Logger.Fatal(err.Error(), zap.String("desc", "could not create battle server"))
	}

	httpServer := &http.Server{
		Addr:              config.Address,
		Handler:           server.GetRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group.Go(func() error {
		server.Run()
		return nil
	})

	group.Go(func() error {
		return server.RunSweeper(groupCtx)
	})

	group.Go(func() error {
		logx.Logger.Info("battle server is listening", zap.String("address", config.Address))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logx.Logger.Error(err.Error(), zap.String("desc", "battle server stopped with an error"))
	}

	server.Shutdown()

	logx.Logger.Info("battle server stopped")
}
