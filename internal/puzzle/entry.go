// internal/puzzle/entry.go
//
// Parser for puzzle definition entries.
//
// Grammar:
//   PUZZLE_<YYYYMMDD> = ANSWER|CLUE[|WIN_SOUND[,LOSE_SOUND]]
//
// ParseEntry never fails loudly: a malformed entry yields a Reason that the
// catalog records as a Rejection, and loading continues with the rest.

package puzzle

import (
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"

	"github.com/NRay7882/astrogoblin-wordle/internal/game"
)

// KeyPrefix marks configuration keys that define a puzzle.
const KeyPrefix = "PUZZLE_"

const dateKeyLayout = "20060102"

// RawEntry is one unparsed definition: its configuration key and payload.
type RawEntry struct {
	Key     string
	Payload string
}

// Reason explains why an entry was rejected. Accepted is the zero value.
type Reason string

const (
	Accepted               Reason = ""
	ReasonBadKey           Reason = "bad_date_key"
	ReasonMissingDelimiter Reason = "missing_delimiter"
	ReasonAnswerLength     Reason = "answer_length"
	ReasonAnswerCharset    Reason = "answer_charset"
	ReasonDuplicateDate    Reason = "duplicate_date"
)

// Rejection records an entry excluded from the catalog.
type Rejection struct {
	Key    string
	Reason Reason
}

// Optional holds a value that may be unspecified.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a specified value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None is the unspecified value.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it was specified.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSet reports whether a value was specified.
func (o Optional[T]) IsSet() bool { return o.ok }

// Record is one dated puzzle.
type Record struct {
	ID        string     // date key, YYYYMMDD
	Answer    string     // uppercase, 5 chars of [A-Z0-9-]
	Clue      string
	Date      civil.Date
	WinSound  Optional[string]
	LoseSound Optional[string]
}

// ParseDateKey extracts the calendar date from PUZZLE_YYYYMMDD (the prefix is
// optional).
func ParseDateKey(key string) (civil.Date, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(key), KeyPrefix)
	if len(s) != len(dateKeyLayout) {
		return civil.Date{}, false
	}
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

// IDFor formats the puzzle id for a date.
func IDFor(d civil.Date) string {
	return d.In(time.UTC).Format(dateKeyLayout)
}

// ParseEntry validates e and builds its Record. Checks run in order:
// date key, delimiter, answer length, answer charset.
func ParseEntry(e RawEntry) (Record, Reason) {
	date, ok := ParseDateKey(e.Key)
	if !ok {
		return Record{}, ReasonBadKey
	}

	answer, rest, ok := strings.Cut(e.Payload, "|")
	if !ok {
		return Record{}, ReasonMissingDelimiter
	}
	answer = strings.ToUpper(strings.TrimSpace(answer))
	if utf8.RuneCountInString(answer) != game.WordLength {
		return Record{}, ReasonAnswerLength
	}
	if !game.ValidWord(answer) {
		return Record{}, ReasonAnswerCharset
	}

	clue, sounds, _ := strings.Cut(rest, "|")
	rec := Record{
		ID:     IDFor(date),
		Answer: answer,
		Clue:   strings.TrimSpace(clue),
		Date:   date,
	}
	win, lose, _ := strings.Cut(sounds, ",")
	if w := strings.TrimSpace(win); w != "" {
		rec.WinSound = Some(w)
	}
	if l := strings.TrimSpace(lose); l != "" {
		rec.LoseSound = Some(l)
	}
	return rec, Accepted
}
