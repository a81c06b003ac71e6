package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/starford/gebo/internal/index"
	"github.com/starford/gebo/internal/insert"
	"github.com/starford/gebo/internal/mcpserver"
	"github.com/starford/gebo/internal/models"
)

// RunSuggest syncs the index and prints ranked link suggestions for one note
// as JSON on stdout. With no suggestion above the quality threshold it falls
// back to the looser related-notes listing.
func RunSuggest(ctx context.Context, cfg *Config, notePath string) error {
	logger := newLogger(cfg)

	v, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := index.Sync(v.db, v.store, logger); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	suggestions, err := v.svc.Suggest(ctx, notePath, nil)
	if err != nil {
		return err
	}

	out := map[string]any{"suggestions": suggestions}
	if len(suggestions) == 0 {
		related, relErr := v.svc.Related(ctx, notePath)
		if relErr != nil {
			return relErr
		}
		out["related"] = related
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RunInsert reads a JSON array of link suggestions from path (or stdin when
// path is "-"), applies them through the insertion engine, and prints per-note
// results as JSON. A non-zero count of failed notes is reported as an error so
// scripts can detect partial failure.
func RunInsert(ctx context.Context, cfg *Config, suggestionsPath string, opts insert.Options) error {
	logger := newLogger(cfg)

	var raw []byte
	var err error
	if suggestionsPath == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(suggestionsPath)
	}
	if err != nil {
		return fmt.Errorf("read suggestions: %w", err)
	}

	var suggestions []models.LinkSuggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		return fmt.Errorf("parse suggestions: %w", err)
	}
	if len(suggestions) == 0 {
		return fmt.Errorf("no suggestions to insert")
	}

	v, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := index.Sync(v.db, v.store, logger); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	progress := func(done, total int, path string) {
		logger.Info("insert progress",
			slog.Int("done", done),
			slog.Int("total", total),
			slog.String("path", path))
	}

	results, err := v.svc.Insert(ctx, suggestions, opts, progress)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"results": results}); err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d notes failed", failed, len(results))
	}
	return nil
}

// RunSync brings the index up to date with the vault and exits.
func RunSync(_ context.Context, cfg *Config) error {
	logger := newLogger(cfg)

	v, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	return index.Sync(v.db, v.store, logger)
}

// RunMCP serves the MCP tools over stdio. The logger goes to stderr because
// stdout carries the protocol stream.
func RunMCP(_ context.Context, cfg *Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	v, err := openVault(cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	if err := index.Sync(v.db, v.store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(v.svc).ServeStdio()
}
