package duke

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/harrisonrobin/duke/pkg/command"
	"github.com/harrisonrobin/duke/pkg/storage"
	"github.com/harrisonrobin/duke/pkg/task"
)

const (
	greeting = "Hello! I'm Duke\nWhat can I do for you?"
	farewell = "Bye. Hope to see you again soon!"
)

// App runs commands against the task list and writes the list back to
// storage after every command that changes it.
type App struct {
	tasks *task.List
	store *storage.Storage
	out   io.Writer
}

// Open loads the task list from store.
func Open(store *storage.Storage, out io.Writer) (*App, error) {
	tasks, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	return &App{tasks: task.NewList(tasks), store: store, out: out}, nil
}

func (a *App) Tasks() *task.List { return a.tasks }

// ExecuteLine parses and runs one shell line. Parse errors are reported to
// the user and do not end the session.
func (a *App) ExecuteLine(line string) (exit bool, err error) {
	cmd, err := command.Parse(line)
	if err != nil {
		a.reply("OOPS!!! %v", err)
		return false, nil
	}
	return a.Execute(cmd)
}

// Execute runs cmd. Only storage failures are returned; bad task numbers
// are reported to the user.
func (a *App) Execute(cmd command.Command) (exit bool, err error) {
	switch cmd.Verb {
	case command.Bye:
		a.reply(farewell)
		return true, nil
	case command.List:
		a.list()
		return false, nil
	case command.Find:
		a.find(cmd.Keyword)
		return false, nil
	}

	if err := a.mutate(cmd); err != nil {
		if errors.Is(err, task.ErrNoSuchTask) {
			a.reply("OOPS!!! %v", err)
			return false, nil
		}
		return false, err
	}
	if err := a.store.UpdateFile(a.tasks.All()); err != nil {
		return false, fmt.Errorf("failed to save tasks: %w", err)
	}
	return false, nil
}

func (a *App) mutate(cmd command.Command) error {
	switch cmd.Verb {
	case command.Todo, command.Deadline, command.Event:
		var t task.Task
		switch cmd.Verb {
		case command.Todo:
			t = task.NewTodo(cmd.Description)
		case command.Deadline:
			t = task.NewDeadline(cmd.Description, cmd.By)
		default:
			t = task.NewEvent(cmd.Description, cmd.From, cmd.To)
		}
		a.tasks.Add(t)
		a.reply("Got it. I've added this task:\n  %s\nNow you have %d tasks in the list.", t, a.tasks.Len())
	case command.Mark:
		t, err := a.tasks.Mark(cmd.Number)
		if err != nil {
			return err
		}
		a.reply("Nice! I've marked this task as done:\n  %s", t)
	case command.Unmark:
		t, err := a.tasks.Unmark(cmd.Number)
		if err != nil {
			return err
		}
		a.reply("OK, I've marked this task as not done yet:\n  %s", t)
	case command.Delete:
		t, err := a.tasks.Delete(cmd.Number)
		if err != nil {
			return err
		}
		a.reply("Noted. I've removed this task:\n  %s\nNow you have %d tasks in the list.", t, a.tasks.Len())
	default:
		return fmt.Errorf("%w: %q", command.ErrUnknownCommand, cmd.Verb)
	}
	return nil
}

func (a *App) list() {
	if a.tasks.Len() == 0 {
		a.reply("Your list is empty.")
		return
	}
	var b strings.Builder
	b.WriteString("Here are the tasks in your list:")
	for i, t := range a.tasks.All() {
		fmt.Fprintf(&b, "\n%d.%s", i+1, t)
	}
	a.reply("%s", b.String())
}

func (a *App) find(keyword string) {
	matches := a.tasks.Find(keyword)
	if len(matches) == 0 {
		a.reply("No tasks match %q.", keyword)
		return
	}
	var b strings.Builder
	b.WriteString("Here are the matching tasks in your list:")
	for _, m := range matches {
		fmt.Fprintf(&b, "\n%d.%s", m.Number, m.Task)
	}
	a.reply("%s", b.String())
}

// Run is the interactive shell. It returns when the user says bye, input
// ends or ctx is cancelled.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	a.reply(greeting)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			exit, err := a.ExecuteLine(line)
			if err != nil {
				return err
			}
			if exit {
				return nil
			}
		}
	}
}

func (a *App) reply(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}
