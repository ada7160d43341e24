package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arjun-palani-sada/aiops-demo-service/internal/config"
	"github.com/arjun-palani-sada/aiops-demo-service/internal/core"
	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
)

const version = "0.1.0"

var (
	configPath = flag.String("config", "", "Path to configuration file (empty runs on defaults and environment)")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warning, error, critical, fatal)")
)

func main() {
	// Parse command line flags
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Override log level if specified
	if *logLevel != "" {
		cfg.Global.LogLevel = *logLevel
	}

	// Initialize logger
	logLevelEnum := logger.ParseLogLevel(cfg.Global.LogLevel)
	logger.SetDefaultLogger(logger.NewLogger(logLevelEnum))

	logger.Info("Starting %s", cfg.Service.Name)
	logger.Info("Version: %s", version)
	logger.Info("Configuration: %s", config.GetConfigSummary(cfg))

	// Create the engine
	engine := core.NewEngine(cfg)

	// Initialize the engine
	if err := engine.Initialize(); err != nil {
		logger.Fatal("Failed to initialize engine: %v", err)
	}

	// Create context that can be canceled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		logger.Fatal("Failed to start engine: %v", err)
	}

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info("Received signal: %v", sig)
	logger.Info("Shutting down...")

	// Stop the engine
	engine.Stop()

	logger.Info("%s stopped", cfg.Service.Name)
}
