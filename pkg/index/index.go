package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const indexFile = "events.json"

// EventIndex maps task keys to calendar event IDs so sync can skip the
// extended-property search for tasks it has seen before.
type EventIndex struct {
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.RWMutex
	dirty    bool
}

// NewEventIndex opens the index stored in dir, if any.
func NewEventIndex(dir string) (*EventIndex, error) {
	path := filepath.Join(dir, indexFile)

	idx := &EventIndex{
		Mappings: make(map[string]string),
		Path:     path,
	}

	if _, err := os.Stat(path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}

	return idx, nil
}

func (idx *EventIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(taskKey string) string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.Mappings[taskKey]
}

func (idx *EventIndex) Set(taskKey, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[taskKey] != eventID {
		idx.Mappings[taskKey] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(taskKey string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[taskKey]; exists {
		delete(idx.Mappings, taskKey)
		idx.dirty = true
	}
}

// Keys returns every task key currently mapped.
func (idx *EventIndex) Keys() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	keys := make([]string, 0, len(idx.Mappings))
	for k := range idx.Mappings {
		keys = append(keys, k)
	}
	return keys
}
