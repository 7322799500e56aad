package task

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind identifies a task variant. Its value doubles as the storage tag.
type Kind string

const (
	KindTodo     Kind = "T"
	KindDeadline Kind = "D"
	KindEvent    Kind = "E"
)

// Task is one of *Todo, *Deadline or *Event.
type Task interface {
	Kind() Kind
	Description() string
	IsDone() bool
	MarkDone()
	MarkUndone()
	String() string

	sealed()
}

type base struct {
	description string
	done        bool
}

func (b *base) Description() string { return b.description }
func (b *base) IsDone() bool        { return b.done }
func (b *base) MarkDone()           { b.done = true }
func (b *base) MarkUndone()         { b.done = false }
func (b *base) sealed()             {}

func (b *base) statusIcon() string {
	if b.done {
		return "X"
	}
	return " "
}

type Todo struct {
	base
}

func NewTodo(description string) *Todo {
	return &Todo{base{description: description}}
}

func (t *Todo) Kind() Kind { return KindTodo }

func (t *Todo) String() string {
	return fmt.Sprintf("[%s][%s] %s", KindTodo, t.statusIcon(), t.description)
}

// Deadline is a task that has to be done before By.
// By is free text; calendar sync tries to parse it.
type Deadline struct {
	base
	By string
}

func NewDeadline(description, by string) *Deadline {
	return &Deadline{base: base{description: description}, By: by}
}

func (d *Deadline) Kind() Kind { return KindDeadline }

func (d *Deadline) String() string {
	return fmt.Sprintf("[%s][%s] %s (by: %s)", KindDeadline, d.statusIcon(), d.description, d.By)
}

type Event struct {
	base
	From string
	To   string
}

func NewEvent(description, from, to string) *Event {
	return &Event{base: base{description: description}, From: from, To: to}
}

func (e *Event) Kind() Kind { return KindEvent }

func (e *Event) String() string {
	return fmt.Sprintf("[%s][%s] %s (from: %s to: %s)", KindEvent, e.statusIcon(), e.description, e.From, e.To)
}

var keyNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/harrisonrobin/duke"))

// Key returns a stable identifier for t derived from its kind, description
// and time fields. The done flag is not part of the key.
func Key(t Task) string {
	name := string(t.Kind()) + "|" + t.Description()
	switch v := t.(type) {
	case *Deadline:
		name += "|" + v.By
	case *Event:
		name += "|" + v.From + "|" + v.To
	}
	return uuid.NewSHA1(keyNamespace, []byte(name)).String()
}
