package commands

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/harrisonrobin/duke/pkg/auth"
	"github.com/harrisonrobin/duke/pkg/config"
	"github.com/harrisonrobin/duke/pkg/google"
	"github.com/harrisonrobin/duke/pkg/index"
	"github.com/harrisonrobin/duke/pkg/storage"
)

func newConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or change settings",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective config",
				Action: runConfigShow,
			},
			{
				Name:      "set-calendar",
				Usage:     "Set the Google Calendar used by sync",
				ArgsUsage: "<name>",
				Action:    runSetCalendar,
			},
		},
		DefaultCommand: "show",
	}
}

func runConfigShow(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := writer(cmd)
	fmt.Fprintf(w, "config:    %s\n", cmd.Root().String("config"))
	fmt.Fprintf(w, "data file: %s\n", cfg.DataFile)
	fmt.Fprintf(w, "calendar:  %s\n", cfg.Calendar)
	return nil
}

func runSetCalendar(_ context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return fmt.Errorf("usage: duke config set-calendar <name>")
	}
	path := cmd.Root().String("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg.Calendar = name
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	fmt.Fprintf(writer(cmd), "Default calendar set to: %s\n", name)
	return nil
}

func newAuthCommand() *cli.Command {
	return &cli.Command{
		Name:   "auth",
		Usage:  "Authenticate with Google Calendar",
		Action: runAuth,
	}
}

func runAuth(ctx context.Context, cmd *cli.Command) error {
	dir := configDir(cmd)
	if err := auth.RemoveToken(dir); err != nil {
		return fmt.Errorf("could not delete old token, please delete it manually: %w", err)
	}
	if _, err := auth.GetClient(ctx, dir, auth.Scopes); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
	return nil
}

// configDir is where the OAuth credentials, token and event index live: next
// to the config file chosen with --config.
func configDir(cmd *cli.Command) string {
	return filepath.Dir(cmd.Root().String("config"))
}

func newSyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Mirror deadlines and events to Google Calendar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "calendar",
				Usage: "Google Calendar name to sync with (overrides config)",
			},
		},
		Action: runSync,
	}
}

func runSync(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	calendarName := cfg.Calendar
	if name := cmd.String("calendar"); name != "" {
		calendarName = name
	}

	tasks, err := storage.New(cfg.DataFile).Load()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	dir := configDir(cmd)
	idx, err := index.NewEventIndex(dir)
	if err != nil {
		log.Printf("Warning: failed to load event index, falling back to search: %v", err)
		idx = nil
	}

	client, err := google.NewClient(ctx, dir, calendarName, idx)
	if err != nil {
		return fmt.Errorf("error creating Google Calendar client: %w", err)
	}

	res, syncErr := client.Sync(ctx, tasks, time.Now())
	if idx != nil {
		if err := idx.Save(); err != nil {
			log.Printf("Warning: failed to save event index: %v", err)
		}
	}
	if syncErr != nil {
		return syncErr
	}

	fmt.Fprintf(writer(cmd), "Synced with %q: %d created, %d updated, %d deleted, %d skipped\n",
		calendarName, res.Created, res.Updated, res.Deleted, res.Skipped)
	return nil
}
