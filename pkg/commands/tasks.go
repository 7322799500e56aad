package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/harrisonrobin/duke/pkg/command"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List all tasks",
		Action: lineAction(func(*cli.Command) string { return "list" }),
	}
}

func newTodoCommand() *cli.Command {
	return &cli.Command{
		Name:      "todo",
		Usage:     "Add a todo",
		ArgsUsage: "<description>",
		Action: lineAction(func(cmd *cli.Command) string {
			return "todo " + strings.Join(cmd.Args().Slice(), " ")
		}),
	}
}

func newDeadlineCommand() *cli.Command {
	return &cli.Command{
		Name:      "deadline",
		Usage:     "Add a task due by a given time",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "by", Usage: "Due time, e.g. 2024-01-31 18:00", Required: true},
		},
		Action: lineAction(func(cmd *cli.Command) string {
			return fmt.Sprintf("deadline %s /by %s", strings.Join(cmd.Args().Slice(), " "), cmd.String("by"))
		}),
	}
}

func newEventCommand() *cli.Command {
	return &cli.Command{
		Name:      "event",
		Usage:     "Add an event with a start and end",
		ArgsUsage: "<description>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "Start time", Required: true},
			&cli.StringFlag{Name: "to", Usage: "End time", Required: true},
		},
		Action: lineAction(func(cmd *cli.Command) string {
			return fmt.Sprintf("event %s /from %s /to %s",
				strings.Join(cmd.Args().Slice(), " "), cmd.String("from"), cmd.String("to"))
		}),
	}
}

func newNumberCommand(name, usage string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<task_number>",
		Action: lineAction(func(cmd *cli.Command) string {
			return name + " " + cmd.Args().First()
		}),
	}
}

func newFindCommand() *cli.Command {
	return &cli.Command{
		Name:      "find",
		Usage:     "Find tasks whose description contains a keyword",
		ArgsUsage: "<keyword>",
		Action: lineAction(func(cmd *cli.Command) string {
			return "find " + strings.Join(cmd.Args().Slice(), " ")
		}),
	}
}

// lineAction runs the shell line built by line as a one-shot command.
// Unlike the shell, invalid input fails the process.
func lineAction(line func(*cli.Command) string) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		parsed, err := command.Parse(line(cmd))
		if err != nil {
			return fmt.Errorf("usage: duke %s %s: %w", cmd.Name, cmd.ArgsUsage, err)
		}
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		_, err = app.Execute(parsed)
		return err
	}
}
