package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harrisonrobin/duke/pkg/task"
	"google.golang.org/api/calendar/v3"
)

// TaskIDProperty is the private extended property linking an event to a task key.
const TaskIDProperty = "duke_id"

const (
	deadlineDuration = 30 * time.Minute
	eventDuration    = time.Hour
)

// ErrNotSchedulable is returned for tasks that have no calendar slot:
// todos, and deadlines or events whose times cannot be parsed.
var ErrNotSchedulable = errors.New("task has no parseable time")

// Layouts accepted for deadline and event times, most specific first.
var dateTimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2/1/2006 1504",
	"2/1/2006 15:04",
}

var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
}

// ParseWhen parses a user supplied time in the local zone. dateOnly is true
// when the text carried no time of day.
func ParseWhen(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, false, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognised time %q", s)
}

// ConvertTaskToCalendarEvent builds the calendar event mirroring t. key is
// stored on the event so it can be found again.
func ConvertTaskToCalendarEvent(t task.Task, key string, now time.Time) (*calendar.Event, error) {
	if t == nil {
		return nil, fmt.Errorf("could not convert nil Task")
	}

	var start, end time.Time
	overdue := false

	switch v := t.(type) {
	case *task.Deadline:
		due, dateOnly, err := ParseWhen(v.By)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotSchedulable, err)
		}
		if dateOnly {
			due = due.Add(24*time.Hour - time.Minute)
		}
		end = due
		start = due.Add(-deadlineDuration)
		overdue = !v.IsDone() && due.Before(now)
	case *task.Event:
		from, _, err := ParseWhen(v.From)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotSchedulable, err)
		}
		start = from
		end = start.Add(eventDuration)
		if to, dateOnly, err := ParseWhen(v.To); err == nil {
			if dateOnly {
				to = to.Add(24*time.Hour - time.Minute)
			}
			if to.After(start) {
				end = to
			}
		}
	default:
		return nil, ErrNotSchedulable
	}

	summary := t.Description()
	if t.IsDone() {
		summary = "✓ " + summary
	} else if overdue {
		summary = "! " + summary
	}

	return &calendar.Event{
		Summary:     summary,
		Description: fmt.Sprintf("%s\n\nDuke ID: %s", t, key),
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskIDProperty: key,
			},
		},
	}, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil if they already match.
func EventNeedsUpdate(existingEvent *calendar.Event, targetEvent *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existingEvent.Summary != targetEvent.Summary {
		patch.Summary = targetEvent.Summary
		needsUpdate = true
	}
	if existingEvent.Description != targetEvent.Description {
		patch.Description = targetEvent.Description
		needsUpdate = true
	}

	sameStart, err := sameTime(existingEvent.Start, targetEvent.Start)
	if err != nil {
		return nil, err
	}
	sameEnd, err := sameTime(existingEvent.End, targetEvent.End)
	if err != nil {
		return nil, err
	}
	if !sameStart || !sameEnd {
		patch.Start = targetEvent.Start
		patch.End = targetEvent.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

func sameTime(a, b *calendar.EventDateTime) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	at, err := time.Parse(time.RFC3339, a.DateTime)
	if err != nil {
		return false, err
	}
	bt, err := time.Parse(time.RFC3339, b.DateTime)
	if err != nil {
		return false, err
	}
	return at.Equal(bt), nil
}

// GetTaskIDFromEvent returns the task key stored on an event by
// ConvertTaskToCalendarEvent.
func GetTaskIDFromEvent(event *calendar.Event) (string, bool) {
	if event == nil || event.ExtendedProperties == nil {
		return "", false
	}
	id, ok := event.ExtendedProperties.Private[TaskIDProperty]
	return id, ok && id != ""
}
