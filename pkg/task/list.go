package task

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoSuchTask = errors.New("no such task")

// List is the ordered in-memory task collection. Tasks are addressed by
// 1-based display numbers.
type List struct {
	tasks []Task
}

func NewList(tasks []Task) *List {
	return &List{tasks: tasks}
}

func (l *List) Len() int { return len(l.tasks) }

// All returns the tasks in display order. The slice must not be modified.
func (l *List) All() []Task { return l.tasks }

func (l *List) Add(t Task) {
	l.tasks = append(l.tasks, t)
}

func (l *List) Get(n int) (Task, error) {
	if n < 1 || n > len(l.tasks) {
		return nil, fmt.Errorf("task %d: %w", n, ErrNoSuchTask)
	}
	return l.tasks[n-1], nil
}

func (l *List) Mark(n int) (Task, error) {
	t, err := l.Get(n)
	if err != nil {
		return nil, err
	}
	t.MarkDone()
	return t, nil
}

func (l *List) Unmark(n int) (Task, error) {
	t, err := l.Get(n)
	if err != nil {
		return nil, err
	}
	t.MarkUndone()
	return t, nil
}

// Delete removes task n; later tasks move up one display number.
func (l *List) Delete(n int) (Task, error) {
	t, err := l.Get(n)
	if err != nil {
		return nil, err
	}
	l.tasks = append(l.tasks[:n-1], l.tasks[n:]...)
	return t, nil
}

// Match is a search hit together with its display number.
type Match struct {
	Number int
	Task   Task
}

// Find returns tasks whose description contains keyword, case-insensitively.
func (l *List) Find(keyword string) []Match {
	keyword = strings.ToLower(keyword)
	var matches []Match
	for i, t := range l.tasks {
		if strings.Contains(strings.ToLower(t.Description()), keyword) {
			matches = append(matches, Match{Number: i + 1, Task: t})
		}
	}
	return matches
}
