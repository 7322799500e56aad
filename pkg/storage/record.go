package storage

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/harrisonrobin/duke/pkg/task"
)

const (
	fieldSeparator = "|"
	eventSeparator = " to "
	doneFlag       = "1"
	notDoneFlag    = "0"
)

// ErrCorruptRecord is matched by every *RecordError.
var ErrCorruptRecord = errors.New("corrupt storage record")

// eventSplit finds the first standalone "to" between an event's start and end.
var eventSplit = regexp.MustCompile(`\s+to\s+`)

// RecordError reports a storage line that could not be decoded.
type RecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s at line %d (%q): %s", ErrCorruptRecord, e.Line, e.Text, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrCorruptRecord }

// ParseRecord decodes one storage line. Unknown tags yield a nil task and a
// nil error. Malformed lines yield an error describing what is missing.
func ParseRecord(line string) (task.Task, error) {
	fields := strings.Split(line, fieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var t task.Task
	switch task.Kind(fields[0]) {
	case task.KindTodo:
		if len(fields) != 3 {
			return nil, fmt.Errorf("todo needs 3 fields, got %d", len(fields))
		}
		t = task.NewTodo(fields[2])
	case task.KindDeadline:
		if len(fields) != 4 {
			return nil, fmt.Errorf("deadline needs 4 fields, got %d", len(fields))
		}
		t = task.NewDeadline(fields[2], fields[3])
	case task.KindEvent:
		if len(fields) != 4 {
			return nil, fmt.Errorf("event needs 4 fields, got %d", len(fields))
		}
		span := eventSplit.FindStringIndex(fields[3])
		if span == nil {
			return nil, fmt.Errorf("event time %q has no %q separator", fields[3], strings.TrimSpace(eventSeparator))
		}
		t = task.NewEvent(fields[2], fields[3][:span[0]], fields[3][span[1]:])
	default:
		return nil, nil
	}

	if fields[1] == doneFlag {
		t.MarkDone()
	}
	return t, nil
}

// FormatRecord encodes t as one storage line without the trailing newline.
func FormatRecord(t task.Task) string {
	flag := notDoneFlag
	if t.IsDone() {
		flag = doneFlag
	}

	fields := []string{string(t.Kind()), flag, t.Description()}
	switch v := t.(type) {
	case *task.Todo:
	case *task.Deadline:
		fields = append(fields, v.By)
	case *task.Event:
		fields = append(fields, v.From+eventSeparator+v.To)
	}
	return strings.Join(fields, " "+fieldSeparator+" ")
}
