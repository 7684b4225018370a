package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "spacecrew/internal/config"
	router "spacecrew/internal/http"
	"spacecrew/internal/repositories"
	"spacecrew/internal/services"
	"spacecrew/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(utils.NewLogger(os.Stdout, env.LogLevel))
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	store, err := openStore(env)
	if err != nil {
		slog.Error("open store", "driver", env.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer intconfig.CloseDB()

	r := router.NewRouter(env, services.NewCrewMemberService(store))

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", env.AppAddr, "store", env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		return
	}

	slog.Info("server stopped")
}

func openStore(env intconfig.Env) (repositories.CrewMemberStore, error) {
	if env.StoreDriver == intconfig.StoreMemory {
		return repositories.NewMemoryCrewMemberStore(), nil
	}

	db, err := intconfig.ConnectDB(env.DB)
	if err != nil {
		return nil, err
	}
	repo := repositories.CrewMemberRepository{DB: db}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}
