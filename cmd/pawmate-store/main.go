package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/adapters/repository"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/app"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/config"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
)

func main() {
	var (
		file = flag.String("file", "", "Path to a record or validation envelope (default: stdin)")
		dir  = flag.String("dir", "", "Root submissions directory (default: config)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	root := cfg.StoreRoot
	if *dir != "" {
		root = *dir
	}

	data, err := readInput(*file)
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
	rec, err := app.UnwrapDocument(data)
	if err != nil {
		os.Stderr.WriteString("Error: invalid JSON: " + err.Error() + "\n")
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(repository.NewFSStore(root, repository.WithLogger(log.Named("store")))),
	)
	env := svc.StoreRecord(ctx, rec)

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		os.Stderr.WriteString("failed to encode output: " + err.Error() + "\n")
		os.Exit(1)
	}
	if !env.Success {
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
