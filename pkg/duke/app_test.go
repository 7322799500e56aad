package duke

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrisonrobin/duke/pkg/storage"
)

func newApp(t *testing.T) (*App, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "duke.txt")
	out := &bytes.Buffer{}
	app, err := Open(storage.New(path), out)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return app, out, path
}

func TestRunSession(t *testing.T) {
	app, out, path := newApp(t)

	input := strings.Join([]string{
		"todo read book",
		"deadline return book /by 2019-12-02",
		"event project meeting /from Mon 2pm /to 4pm",
		"mark 1",
		"list",
		"bye",
		"todo never reached",
	}, "\n")

	if err := app.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	want := "T | 1 | read book\n" +
		"D | 0 | return book | 2019-12-02\n" +
		"E | 0 | project meeting | Mon 2pm to 4pm\n"
	if string(got) != want {
		t.Errorf("Expected file:\n%s\ngot:\n%s", want, got)
	}

	for _, s := range []string{
		"Hello! I'm Duke",
		"1.[T][X] read book",
		"3.[E][ ] project meeting (from: Mon 2pm to: 4pm)",
		"Bye. Hope to see you again soon!",
	} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("Expected output to contain %q, got:\n%s", s, out.String())
		}
	}
}

func TestUserErrorsDoNotStopSession(t *testing.T) {
	app, out, _ := newApp(t)

	for _, line := range []string{"blah", "mark 5", "deadline x"} {
		exit, err := app.ExecuteLine(line)
		if err != nil {
			t.Fatalf("ExecuteLine(%q) returned error: %v", line, err)
		}
		if exit {
			t.Fatalf("ExecuteLine(%q) ended session", line)
		}
	}
	if strings.Count(out.String(), "OOPS!!!") != 3 {
		t.Errorf("Expected 3 error replies, got:\n%s", out.String())
	}
}

func TestReopenSeesChanges(t *testing.T) {
	app, _, path := newApp(t)
	for _, line := range []string{"todo a", "todo b", "delete 1"} {
		if _, err := app.ExecuteLine(line); err != nil {
			t.Fatalf("ExecuteLine(%q) failed: %v", line, err)
		}
	}

	reopened, err := Open(storage.New(path), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if reopened.Tasks().Len() != 1 {
		t.Fatalf("Expected 1 task, got %d", reopened.Tasks().Len())
	}
	first, _ := reopened.Tasks().Get(1)
	if first.Description() != "b" {
		t.Errorf("Expected 'b', got '%s'", first.Description())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duke.txt")
	if err := os.WriteFile(path, []byte("D | 0 | no due date\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(storage.New(path), &bytes.Buffer{}); err == nil {
		t.Error("Expected Open to fail on corrupt file")
	}
}

func TestFind(t *testing.T) {
	app, out, _ := newApp(t)
	for _, line := range []string{"todo read book", "todo buy milk", "find BOOK"} {
		if _, err := app.ExecuteLine(line); err != nil {
			t.Fatal(err)
		}
	}
	if !strings.Contains(out.String(), "1.[T][ ] read book") {
		t.Errorf("Expected match for book, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "2.[T][ ] buy milk") {
		t.Errorf("Did not expect milk in find output")
	}
}
