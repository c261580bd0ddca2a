package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sarthakds/admitdesk/config"
	"github.com/sarthakds/admitdesk/gmail"
	"github.com/sarthakds/admitdesk/pipeline"
	"github.com/sarthakds/admitdesk/rules"
	"github.com/sarthakds/admitdesk/tui"
)

// Short delay so the TUI can draw before the initial fetch lands.
const initialFetchDelay = 1 * time.Second

func main() {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "admitdesk: %v\n", err)
		os.Exit(1)
	}

	// Log to a file; the TUI owns the terminal.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "admitdesk: opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		Prefix:          "admitdesk",
	})
	logger.Info("application starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received, cancelling context")
		cancel()
	}()

	ruleStore, err := rules.OpenStore(cfg.DBPath)
	if err != nil {
		logger.Fatal("opening rule store", "error", err)
	}
	defer ruleStore.Close()
	logger.Info("rule store ready", "path", cfg.DBPath)

	client, err := gmail.NewClient(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		logger.Fatal("initializing Gmail client; ensure credentials.json is present and valid", "error", err)
	}
	logger.Info("Gmail client initialized")

	orch := pipeline.New(client, ruleStore, logger.With("component", "pipeline"), cfg.Query, cfg.Workers)
	results := make(chan pipeline.Result, 1)
	go orch.Monitor(ctx, results, initialFetchDelay, cfg.PollInterval(), cfg.InitialFetch, cfg.PollFetch)
	logger.Info("monitoring configured", "query", cfg.Query, "interval", cfg.PollInterval())

	program := tea.NewProgram(
		tui.NewInitialModel(results, cfg.PollInterval()),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		logger.Fatal("running TUI", "error", err)
	}

	logger.Info("application stopped")
}
