package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"

	"github.com/fastcraft-ai/pawmate-ai-results/internal/adapters/schema"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/app"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/config"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/record"
	"github.com/fastcraft-ai/pawmate-ai-results/internal/domain/validate"
	"github.com/fastcraft-ai/pawmate-ai-results/pkg/logger"
)

func main() {
	var (
		output     = flag.String("output", "text", "Output format: text or json")
		schemaPath = flag.String("schema", "", "Path to a JSON Schema descriptor (default: config)")
		noSchema   = flag.Bool("no-schema", false, "Skip the schema descriptor pass")
		dir        = flag.String("dir", "", "Validate every matching file in a directory")
		pattern    = flag.String("pattern", "*.json", "Glob pattern for -dir mode")
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

	svc := app.New(
		app.WithLogger(log),
		app.WithValidator(buildValidator(ctx, log, cfg, *schemaPath, *noSchema)),
	)

	if *dir != "" {
		env := svc.ValidateDir(ctx, *dir, *pattern)
		if *output == "json" {
			emit(env)
		} else {
			os.Stdout.WriteString(app.RenderBatchText(env) + "\n")
		}
		if !env.Success || env.InvalidFiles > 0 {
			os.Exit(1)
		}
		return
	}

	path := flag.Arg(0)
	data, err := readInput(path)
	if err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
	rec, err := record.Parse(data)
	if err != nil {
		os.Stderr.WriteString("Error: invalid JSON: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := svc.Validate(ctx, rec)
	env.File = path
	if *output == "json" {
		emit(env)
	} else {
		os.Stdout.WriteString(app.RenderText(env, path) + "\n")
	}
	if !env.Valid {
		os.Exit(1)
	}
}

// buildValidator wires the descriptor pass when a schema is configured. A
// missing or broken descriptor degrades to a logged warning.
func buildValidator(ctx context.Context, log logger.Logger, cfg *config.Config, override string, skip bool) *validate.Validator {
	opts := []validate.Option{validate.WithVersion(cfg.ValidatorVersion)}

	path := cfg.SchemaPath
	if override != "" {
		path = override
	}
	if !skip && path != "" {
		descriptor, err := schema.Load(path)
		if err != nil {
			log.Warn(ctx, "schema descriptor unavailable; explicit passes only",
				logger.String("path", path), logger.Error(err))
		} else {
			opts = append(opts, validate.WithExtraPass(descriptor.Check))
		}
	}
	return validate.New(opts...)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func emit(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		os.Stderr.WriteString("failed to encode output: " + err.Error() + "\n")
		os.Exit(1)
	}
}
