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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/putget/internal/app/filehttp"
	"github.com/yourname/putget/internal/config"
	"github.com/yourname/putget/internal/logging"
	"github.com/yourname/putget/internal/repo"
	"github.com/yourname/putget/internal/usecase/transfersvc"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped with error", zap.Error(err))
	}
}

// run собирает зависимости и держит HTTP-сервер и чистильщик временных файлов
// в одной errgroup до сигнала SIGTERM/SIGINT.
func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, err := transfersvc.NewRoot(transfersvc.OSFS{}, cfg.StorageRoot)
	if err != nil {
		return err
	}

	journal, err := repo.Open(ctx, cfg.MetaDSN)
	if err != nil {
		return err
	}
	defer journal.Close()

	files := transfersvc.New(transfersvc.Deps{
		Root:      root,
		Journal:   journal,
		ChunkSize: cfg.ChunkSize,
		Logger:    logger.Named("transfer"),
	})

	server := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: filehttp.New(filehttp.Deps{
			Files:   files,
			Root:    root.Path(),
			TempTTL: cfg.TempTTL,
			Logger:  logger.Named("http"),
		}),
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		logger.Info("listening",
			zap.String("addr", cfg.ListenAddr),
			zap.String("root", root.Path()),
			zap.Bool("memory_journal", repo.IsMemoryDSN(cfg.MetaDSN)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	eg.Go(func() error {
		return filehttp.RunSweeper(egCtx, root.Path(), cfg.TempTTL, cfg.SweepEvery, logger.Named("sweeper"))
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении соседней горутины.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("shutdown error", zap.Error(err))
		}
		return nil
	})

	return eg.Wait()
}
