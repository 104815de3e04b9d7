package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"leximap/internal/config"
	"leximap/internal/db"
	"leximap/internal/handlers/api"
	"leximap/internal/jobs"
	"leximap/internal/lexeme"
	"leximap/internal/logging"
	"leximap/internal/metrics"
	"leximap/internal/relations"
	"leximap/internal/server"
	"leximap/internal/wordnet"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.New("error", "text").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		log.Error("failed to load config file", "path", cfg.ConfigFile, "error", err)
		os.Exit(1)
	}
	rules, err := lexeme.RulesFromConfig(yamlCfg)
	if err != nil {
		log.Error("invalid category rules", "path", cfg.ConfigFile, "error", err)
		os.Exit(1)
	}

	// Database is optional unless it backs the lexicon.
	var database *db.DB
	if cfg.HasDatabase() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		log.Info("migrations completed successfully")
	}

	var lexicon lexeme.Lexicon
	switch cfg.LexiconBackend {
	case config.BackendPostgres:
		lexicon = database
	default:
		dict, err := wordnet.Open(cfg.WordNetDir)
		if err != nil {
			log.Error("failed to open wordnet dictionary", "dir", cfg.WordNetDir, "error", err)
			os.Exit(1)
		}
		defer dict.Close()
		lexicon = dict
	}
	log.Info("lexicon ready", "backend", cfg.LexiconBackend)

	var lookupStore metrics.WordLookupStore
	if database != nil {
		lookupStore = database
	}
	metrics.Init(lookupStore)

	relationsClient := relations.NewClient(relations.Options{
		BaseURL: cfg.RelationsBaseURL,
		Timeout: cfg.RelationsTimeout,
		RPS:     cfg.RelationsRPS,
		Burst:   cfg.RelationsBurst,
	}, log)
	log.Info("relation service configured",
		"base_url", relationsClient.BaseURL(),
		"timeout", cfg.RelationsTimeout,
		"rps", cfg.RelationsRPS,
	)

	assembler := lexeme.NewAssembler(lexeme.NewResolver(lexicon, rules), relationsClient)

	var relationsStatus api.RelationsStatus
	if cfg.RelationsProbeInterval > 0 {
		probe := jobs.NewRelationsProbe(relationsClient, cfg.RelationsProbeInterval, cfg.RelationsTimeout, log)
		go probe.Start(ctx)
		relationsStatus = probe
	}

	srv := server.New(cfg, log)
	srv.RegisterRoutes(assembler, relationsStatus)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("server error", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server exited")
}
