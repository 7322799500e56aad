package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/harrisonrobin/duke/pkg/config"
	"github.com/harrisonrobin/duke/pkg/duke"
	"github.com/harrisonrobin/duke/pkg/storage"
)

// NewRootCommand returns the duke command tree. Without a subcommand it
// starts the interactive shell.
func NewRootCommand() *cli.Command {
	configPath, err := config.GetConfigPath()
	if err != nil {
		configPath = "config.json"
	}

	return &cli.Command{
		Name:  "duke",
		Usage: "Keep track of todos, deadlines and events",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file; Google credentials, token and event index live beside it",
				Value:   configPath,
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path to the task file (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return ctx, nil
		},
		Action: runShell,
		Commands: []*cli.Command{
			newListCommand(),
			newTodoCommand(),
			newDeadlineCommand(),
			newEventCommand(),
			newNumberCommand("mark", "Mark a task as done"),
			newNumberCommand("unmark", "Mark a task as not done"),
			newNumberCommand("delete", "Delete a task"),
			newFindCommand(),
			newConfigCommand(),
			newAuthCommand(),
			newSyncCommand(),
		},
	}
}

// loadConfig reads the config named by the root --config flag and applies
// the --file override.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	root := cmd.Root()
	path := root.String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if f := root.String("file"); f != "" {
		cfg.DataFile = f
	}
	slog.Debug("config loaded", "path", path, "data_file", cfg.DataFile, "calendar", cfg.Calendar)
	return cfg, nil
}

func openApp(cmd *cli.Command) (*duke.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return duke.Open(storage.New(cfg.DataFile), writer(cmd))
}

func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func runShell(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(cmd)
	if err != nil {
		return err
	}
	in := cmd.Root().Reader
	if in == nil {
		in = os.Stdin
	}
	if err := app.Run(ctx, in); err != nil && ctx.Err() == nil {
		return fmt.Errorf("shell: %w", err)
	}
	return nil
}
