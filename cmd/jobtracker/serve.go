package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Khushi740/job-tracker/internal/config"
	"github.com/Khushi740/job-tracker/internal/logger"
	"github.com/Khushi740/job-tracker/internal/server"
	"github.com/Khushi740/job-tracker/internal/store"
)

var (
	servePort   int
	serveMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for tracking job applications.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveMemory, "memory", false, "Use the in-memory store instead of PostgreSQL")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	if serveMemory {
		// Flag wins over the environment so it is visible to the config.
		if err := os.Setenv("MEMORY_STORE", "true"); err != nil {
			return err
		}
	}

	cfg, err := config.NewServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	var jobs store.Store
	var users store.UserStore
	var closeStore func()
	if cfg.MemoryStore {
		mem := store.NewMemory()
		jobs, users = mem, mem
		log.Warn("using in-memory store, data will not survive a restart")
	} else {
		pg, err := store.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		jobs, users = pg, pg
		closeStore = pg.Close
	}

	srv, err := server.New(server.Config{Port: cfg.Port}, jobs, users, log)
	if err != nil {
		if closeStore != nil {
			closeStore()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}
	if closeStore != nil {
		srv.OnClose(closeStore)
	}

	log.Info("starting job tracker", zap.Int("port", cfg.Port))
	return srv.Start()
}
