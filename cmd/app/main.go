package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/gebo/internal"
	"github.com/starford/gebo/internal/insert"
	pkgconfig "github.com/starford/gebo/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "gebo",
		Usage: "Markdown vault linker: suggests and inserts wikilinks between related notes",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API, file watcher, and SSE event stream",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.Run(ctx, internal.WithConfig(cfg))
				},
			},
			{
				Name:      "suggest",
				Usage:     "Print ranked link suggestions for a note as JSON",
				ArgsUsage: "<note-path>",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one note path")
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunSuggest(ctx, cfg, cmd.Args().First())
				},
			},
			{
				Name:      "insert",
				Usage:     "Apply a JSON file of accepted suggestions ('-' reads stdin)",
				ArgsUsage: "<suggestions.json>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "validate-targets",
						Usage: "Reject suggestions whose target note does not exist",
					},
					&cli.BoolFlag{
						Name:  "create-sections",
						Usage: "Append a '## Related' section when no known heading exists",
					},
					&cli.BoolFlag{
						Name:  "best-effort",
						Usage: "Apply what succeeds instead of rolling back the whole note on failure",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.Args().Len() != 1 {
						return fmt.Errorf("expected exactly one suggestions file")
					}
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					opts := insert.DefaultOptions()
					opts.ValidateTargets = cmd.Bool("validate-targets")
					opts.CreateSections = cmd.Bool("create-sections")
					opts.AutoDetectLocation = true
					opts.CheckDuplicates = true
					if cmd.Bool("best-effort") {
						opts.Atomic = false
					}
					return internal.RunInsert(ctx, cfg, cmd.Args().First(), opts)
				},
			},
			{
				Name:  "sync",
				Usage: "Rebuild the SQLite index from the vault and exit",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunSync(ctx, cfg)
				},
			},
			{
				Name:  "mcp",
				Usage: "Serve MCP tools over stdio for LLM integration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return internal.RunMCP(ctx, cfg)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
