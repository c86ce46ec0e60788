package main

import (
	"fmt"

	"github.com/MKhiriev/go-library-sync/internal/adapter"
	"github.com/MKhiriev/go-library-sync/internal/client"
	"github.com/MKhiriev/go-library-sync/internal/config"
	"github.com/MKhiriev/go-library-sync/internal/logger"
	"github.com/MKhiriev/go-library-sync/internal/store"
	"github.com/MKhiriev/go-library-sync/internal/syncer"
	"github.com/MKhiriev/go-library-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("go-library-sync")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	creator := syncer.NewActionsCreator(localStorage.SyncRepository, log)
	engine := syncer.NewEngine(serverAdapter, localStorage.SyncRepository, creator, cfg.Sync, log)

	scheduler := workers.NewSyncScheduler(engine, cfg.Sync, log)
	resolver := workers.NewConflictResolver(engine, log)

	app, err := client.NewApp(engine, scheduler, resolver, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
