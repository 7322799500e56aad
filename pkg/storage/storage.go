package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/duke/pkg/task"
)

// MaxRecordLength is the longest line Load accepts.
const MaxRecordLength = 1 << 20

// Storage loads and saves the task list as a pipe-delimited text file.
// It holds no tasks itself; every call goes to disk.
type Storage struct {
	Path string
}

func New(path string) *Storage {
	return &Storage{Path: path}
}

// Load reads all tasks from the storage file, creating an empty file (and
// its parent directories) if there is none yet. A corrupt line aborts the
// whole load with a *RecordError.
func (s *Storage) Load() ([]task.Task, error) {
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	var tasks []task.Task
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxRecordLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		t, err := ParseRecord(line)
		if err != nil {
			return nil, &RecordError{Line: lineNo, Text: line, Reason: err.Error()}
		}
		if t == nil {
			continue
		}
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	return tasks, nil
}

func (s *Storage) ensureFile() error {
	_, err := os.Stat(s.Path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("could not check task file '%s': %w", s.Path, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create task file directory: %w", err)
	}
	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create task file: %w", err)
	}
	return f.Close()
}

// UpdateFile replaces the storage file with one record per task, in order.
// The new content is written next to the file and renamed over it, so a
// failed write leaves the previous file in place.
func (s *Storage) UpdateFile(tasks []task.Task) error {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(FormatRecord(t))
		b.WriteByte('\n')
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create task file directory: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := writeSynced(tmp, b.String()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write task file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}

// writeSynced writes content to path and flushes it to disk before returning.
func writeSynced(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
