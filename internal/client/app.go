package client

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/syncer"
	"github.com/MKhiriev/go-library-sync/internal/workers"
	"github.com/MKhiriev/go-library-sync/models"
)

type App struct {
	engine    *syncer.Engine
	scheduler *workers.SyncScheduler
	resolver  *workers.ConflictResolver
	jobs      *workers.Workers
	logger    *logger.Logger
}

func NewApp(engine *syncer.Engine, scheduler *workers.SyncScheduler, resolver *workers.ConflictResolver, log *logger.Logger) (*App, error) {
	return &App{
		engine:    engine,
		scheduler: scheduler,
		resolver:  resolver,
		jobs:      workers.NewWorkers(resolver, scheduler),
		logger:    log,
	}, nil
}

// Run starts the background workers, kicks an immediate first sync, and
// blocks until a stop signal arrives. Shutdown cancels any running sync and
// waits for the workers to exit.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	a.jobs.Run()
	defer a.resolver.Stop()
	defer a.scheduler.Stop()

	if started := a.engine.Start(ctx, models.NormalSync, models.AllLibraries(), 0); started {
		a.logger.Info().Msg("initial sync started")
	}

	<-ctx.Done()

	a.engine.Cancel()
	a.logger.Info().Msg("client shutdown gracefully")

	return nil
}
