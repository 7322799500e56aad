package google

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/harrisonrobin/duke/pkg/index"
	"github.com/harrisonrobin/duke/pkg/task"
	"github.com/harrisonrobin/duke/pkg/util"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

// CalendarClient mirrors Duke tasks into one Google calendar.
type CalendarClient struct {
	srv        *calendar.Service
	calendarID string
	index      *index.EventIndex
}

func NewCalendarClient(srv *calendar.Service, calendarID string, idx *index.EventIndex) *CalendarClient {
	return &CalendarClient{srv: srv, calendarID: calendarID, index: idx}
}

// SyncResult counts what a Sync run did.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
}

// Sync mirrors every schedulable task and deletes events whose task is gone.
func (c *CalendarClient) Sync(ctx context.Context, tasks []task.Task, now time.Time) (SyncResult, error) {
	var res SyncResult
	live := make(map[string]bool, len(tasks))

	for _, t := range tasks {
		key := task.Key(t)
		live[key] = true

		outcome, err := c.SyncEvent(ctx, t, key, now)
		switch {
		case errors.Is(err, util.ErrNotSchedulable):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("sync %q: %w", t.Description(), err)
		default:
			switch outcome {
			case Created:
				res.Created++
			case Updated:
				res.Updated++
			}
		}
	}

	deleted, err := c.Prune(ctx, live)
	res.Deleted = deleted
	return res, err
}

type SyncOutcome int

const (
	Unchanged SyncOutcome = iota
	Created
	Updated
)

// SyncEvent creates the event for t or patches the existing one.
func (c *CalendarClient) SyncEvent(ctx context.Context, t task.Task, key string, now time.Time) (SyncOutcome, error) {
	event, err := util.ConvertTaskToCalendarEvent(t, key, now)
	if err != nil {
		return Unchanged, err
	}

	var existingEvent *calendar.Event
	if c.index != nil {
		if eventID := c.index.Get(key); eventID != "" {
			existingEvent, err = c.srv.Events.Get(c.calendarID, eventID).Context(ctx).Do()
			if err != nil || existingEvent.Status == "cancelled" || !ownedBy(existingEvent, key) {
				existingEvent = nil
			}
		}
	}

	if existingEvent == nil {
		existingEvent, err = c.GetEventByTaskID(ctx, key)
		if err != nil {
			return Unchanged, fmt.Errorf("error searching for event: %w", err)
		}
	}

	if existingEvent != nil {
		if c.index != nil {
			c.index.Set(key, existingEvent.Id)
		}
		patch, err := util.EventNeedsUpdate(existingEvent, event)
		if err != nil {
			log.Printf("could not compare task with its calendar event: %v", err)
			return Unchanged, err
		}
		if patch == nil {
			return Unchanged, nil
		}
		if _, err := c.PatchEvent(ctx, existingEvent.Id, patch); err != nil {
			return Unchanged, err
		}
		return Updated, nil
	}

	createdEvent, err := c.srv.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return Unchanged, err
	}
	if c.index != nil {
		c.index.Set(key, createdEvent.Id)
	}
	return Created, nil
}

// Prune deletes indexed events whose task key is not in live. Events that are
// already gone from the calendar are dropped from the index too.
func (c *CalendarClient) Prune(ctx context.Context, live map[string]bool) (int, error) {
	if c.index == nil {
		return 0, nil
	}
	deleted := 0
	for _, key := range c.index.Keys() {
		if live[key] {
			continue
		}
		if err := c.DeleteEvent(ctx, c.index.Get(key)); err != nil && !isGone(err) {
			log.Printf("Warning: could not delete event for removed task %s: %v", key, err)
			continue
		}
		c.index.Remove(key)
		deleted++
	}
	return deleted, nil
}

func (c *CalendarClient) PatchEvent(ctx context.Context, eventID string, patch *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Patch(c.calendarID, eventID, patch).Context(ctx).Do()
}

func (c *CalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	return c.srv.Events.Delete(c.calendarID, eventID).Context(ctx).Do()
}

// GetEventByTaskID finds the event carrying the given task key, or nil.
func (c *CalendarClient) GetEventByTaskID(ctx context.Context, key string) (*calendar.Event, error) {
	events, err := c.srv.Events.List(c.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", util.TaskIDProperty, key)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	for _, e := range events.Items {
		if e.Status != "cancelled" && ownedBy(e, key) {
			return e, nil
		}
	}
	return nil, nil
}

// ownedBy reports whether event carries the given task key.
func ownedBy(event *calendar.Event, key string) bool {
	id, ok := util.GetTaskIDFromEvent(event)
	return ok && id == key
}

// isGone reports a delete of an event that no longer exists.
func isGone(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusNotFound || gerr.Code == http.StatusGone
}
