package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/app"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/config"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/extract"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
)

func main() {
	var (
		file   = flag.String("file", "", "Path to a GitHub issue event file (default: stdin)")
		envVar = flag.String("env", "", "Environment variable naming the event file (e.g. GITHUB_EVENT_PATH)")
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

	event, err := readEvent(*file, *envVar)
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithExtractor(extract.New(extract.WithMaxScanBytes(cfg.MaxExtractBytes))),
	)
	env := svc.Ingest(ctx, event)

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

// readEvent resolves the event source: an env-var-named file wins, then an
// explicit file, then stdin.
func readEvent(file, envVar string) ([]byte, error) {
	if envVar != "" {
		if path, ok := os.LookupEnv(envVar); ok {
			return os.ReadFile(path)
		}
	}
	if file != "" {
		return os.ReadFile(file)
	}
	return io.ReadAll(os.Stdin)
}
