package command

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"list", Command{Verb: List}},
		{"  BYE  ", Command{Verb: Bye}},
		{"todo read book", Command{Verb: Todo, Description: "read book"}},
		{"todo read\tbook", Command{Verb: Todo, Description: "read\tbook"}},
		{"deadline return book /by 2019-12-02 18:00", Command{Verb: Deadline, Description: "return book", By: "2019-12-02 18:00"}},
		{"event project meeting /from Mon 2pm /to 4pm", Command{Verb: Event, Description: "project meeting", From: "Mon 2pm", To: "4pm"}},
		{"event fly to Spain /from today /to Fri to Sat", Command{Verb: Event, Description: "fly to Spain", From: "today", To: "Fri to Sat"}},
		{"mark 2", Command{Verb: Mark, Number: 2}},
		{"unmark 10", Command{Verb: Unmark, Number: 10}},
		{"delete 1", Command{Verb: Delete, Number: 1}},
		{"find book", Command{Verb: Find, Keyword: "book"}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q): expected %+v, got %+v", tt.line, tt.want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"blah", ErrUnknownCommand},
		{"", ErrUnknownCommand},
		{"todo", ErrEmptyDescription},
		{"todo a | b", ErrReservedCharacter},
		{"deadline return book", ErrMissingField},
		{"deadline /by tomorrow", ErrEmptyDescription},
		{"deadline x /by a|b", ErrReservedCharacter},
		{"event party /from 2pm", ErrMissingField},
		{"event party /to 4pm", ErrMissingField},
		{"event trip /from Mon to Tue /to Fri", ErrAmbiguousStart},
		{"mark two", ErrBadNumber},
		{"delete 0", ErrBadNumber},
		{"find", ErrMissingField},
		{"todo pay\nrent", ErrControlCharacter},
		{"deadline pay\nrent /by 2024-01-01", ErrControlCharacter},
		{"deadline pay rent /by 2024-01-01\r5pm", ErrControlCharacter},
		{"event party /from 2pm /to 4pm\x00", ErrControlCharacter},
		{"todo " + strings.Repeat("a", MaxTextLength+1), ErrTextTooLong},
	}
	for _, tt := range tests {
		_, err := Parse(tt.line)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q): expected %v, got %v", tt.line, tt.want, err)
		}
	}
}

func TestMutates(t *testing.T) {
	if (Command{Verb: List}).Mutates() {
		t.Error("Expected list not to mutate")
	}
	if !(Command{Verb: Delete}).Mutates() {
		t.Error("Expected delete to mutate")
	}
}
