package command

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type Verb string

const (
	List     Verb = "list"
	Bye      Verb = "bye"
	Todo     Verb = "todo"
	Deadline Verb = "deadline"
	Event    Verb = "event"
	Mark     Verb = "mark"
	Unmark   Verb = "unmark"
	Delete   Verb = "delete"
	Find     Verb = "find"
)

var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrEmptyDescription  = errors.New("description cannot be empty")
	ErrMissingField      = errors.New("missing field")
	ErrBadNumber         = errors.New("task number must be a positive integer")
	ErrReservedCharacter = errors.New(`text cannot contain "|"`)
	ErrAmbiguousStart    = errors.New(`event start cannot contain the word "to"`)
	ErrControlCharacter  = errors.New("text cannot contain line breaks or control characters")
	ErrTextTooLong       = fmt.Errorf("text cannot be longer than %d bytes", MaxTextLength)
)

// MaxTextLength bounds each description or time so a whole record stays well
// under storage.MaxRecordLength.
const MaxTextLength = 16 * 1024

// toWord matches "to" as a standalone word, which storage uses to split an
// event's start from its end.
var toWord = regexp.MustCompile(`(^|\s)to(\s|$)`)

// Command is a parsed shell line. Only the fields relevant to Verb are set.
type Command struct {
	Verb        Verb
	Number      int
	Description string
	By          string
	From        string
	To          string
	Keyword     string
}

// Mutates reports whether running c changes the task list.
func (c Command) Mutates() bool {
	switch c.Verb {
	case Todo, Deadline, Event, Mark, Unmark, Delete:
		return true
	}
	return false
}

// Parse parses a line such as "deadline return book /by 2019-12-02".
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch v := Verb(strings.ToLower(word)); v {
	case List, Bye:
		return Command{Verb: v}, nil
	case Todo:
		if err := checkText(rest); err != nil {
			return Command{}, err
		}
		return Command{Verb: v, Description: rest}, nil
	case Deadline:
		desc, by, ok := cutFlag(rest, "/by")
		if !ok || by == "" {
			return Command{}, fmt.Errorf("%w: deadline needs /by <time>", ErrMissingField)
		}
		if err := checkText(desc, by); err != nil {
			return Command{}, err
		}
		return Command{Verb: v, Description: desc, By: by}, nil
	case Event:
		desc, span, ok := cutFlag(rest, "/from")
		if !ok {
			return Command{}, fmt.Errorf("%w: event needs /from <start> /to <end>", ErrMissingField)
		}
		from, to, ok := cutFlag(span, "/to")
		if !ok || from == "" || to == "" {
			return Command{}, fmt.Errorf("%w: event needs /from <start> /to <end>", ErrMissingField)
		}
		if err := checkText(desc, from, to); err != nil {
			return Command{}, err
		}
		if toWord.MatchString(from) {
			return Command{}, ErrAmbiguousStart
		}
		return Command{Verb: v, Description: desc, From: from, To: to}, nil
	case Mark, Unmark, Delete:
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return Command{}, fmt.Errorf("%w: %q", ErrBadNumber, rest)
		}
		return Command{Verb: v, Number: n}, nil
	case Find:
		if rest == "" {
			return Command{}, fmt.Errorf("%w: find needs a keyword", ErrMissingField)
		}
		return Command{Verb: v, Keyword: rest}, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
	}
}

// cutFlag splits s around the first occurrence of flag and trims both sides.
func cutFlag(s, flag string) (before, after string, found bool) {
	before, after, found = strings.Cut(s, flag)
	return strings.TrimSpace(before), strings.TrimSpace(after), found
}

// checkText validates a description followed by any time fields.
func checkText(desc string, times ...string) error {
	if desc == "" {
		return ErrEmptyDescription
	}
	for _, s := range append(times, desc) {
		if len(s) > MaxTextLength {
			return ErrTextTooLong
		}
		if strings.Contains(s, "|") {
			return ErrReservedCharacter
		}
		if strings.ContainsFunc(s, isControl) {
			return ErrControlCharacter
		}
	}
	return nil
}

// isControl reports runes that would break a storage line. Tabs are allowed.
func isControl(r rune) bool {
	return r != '\t' && unicode.IsControl(r)
}
