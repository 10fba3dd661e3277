// internal/service/service.go
//
// Puzzle service: composes the catalog, availability clock, evaluator,
// vocabulary and asset resolver behind the operations the HTTP layer serves.
//
// Every puzzle-scoped operation is gated by availability: a puzzle dated
// after the clock's current date is ErrNotYetAvailable. The service holds no
// mutable state of its own; the resolver cache is the only shared write path.

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/daily"
	"github.com/NRay7882/astrogoblin-wordle/internal/game"
	"github.com/NRay7882/astrogoblin-wordle/internal/puzzle"
	"github.com/NRay7882/astrogoblin-wordle/internal/words"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrNotYetAvailable = errors.New("not yet available")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownWord     = errors.New("unknown word")
)

// Service answers puzzle, guess and media requests.
type Service struct {
	catalog  *puzzle.Catalog
	clock    *daily.Clock
	resolver *assets.Resolver
	vocab    *words.Vocabulary

	// soundRelease maps an alternate sound filename to the earliest date of
	// a puzzle that references it.
	soundRelease map[string]civil.Date
}

// New wires a Service. vocab may be nil (no vocabulary enforced).
func New(catalog *puzzle.Catalog, clock *daily.Clock, resolver *assets.Resolver, vocab *words.Vocabulary) *Service {
	s := &Service{
		catalog:      catalog,
		clock:        clock,
		resolver:     resolver,
		vocab:        vocab,
		soundRelease: make(map[string]civil.Date),
	}
	for _, r := range catalog.All() {
		for _, o := range []puzzle.Optional[string]{r.WinSound, r.LoseSound} {
			if name, ok := o.Get(); ok {
				if _, seen := s.soundRelease[name]; !seen {
					s.soundRelease[name] = r.Date
				}
			}
		}
	}
	return s
}

// PuzzleView is a released puzzle without its answer.
type PuzzleView struct {
	Record puzzle.Record
	Number int
}

// TodayView describes the current puzzle. Puzzle is nil when nothing has
// been released yet.
type TodayView struct {
	Puzzle         *PuzzleView
	TotalAvailable int
	TotalPuzzles   int
	NextPuzzleTime time.Time
	HasMore        bool
}

// ListView lists every released puzzle.
type ListView struct {
	Puzzles        []PuzzleView
	TotalPuzzles   int
	NextPuzzleTime time.Time
	HasMore        bool
}

// GuessView is the evaluation of one guess.
type GuessView struct {
	Result  game.Result
	Correct bool
}

// Today returns the latest released puzzle.
func (s *Service) Today() TodayView {
	today := s.clock.CurrentDate()
	available := len(s.catalog.AvailableAsOf(today))
	v := TodayView{
		TotalAvailable: available,
		TotalPuzzles:   s.catalog.Len(),
		NextPuzzleTime: s.clock.NextRollover(),
		HasMore:        s.catalog.Len() > available,
	}
	rec, ok := s.catalog.LatestAsOf(today)
	if !ok {
		if next, ok := s.catalog.NextAfter(today); ok {
			v.NextPuzzleTime = s.clock.ReleaseTime(next.Date)
		}
		return v
	}
	v.Puzzle = &PuzzleView{Record: rec, Number: s.catalog.PuzzleNumber(rec.Date)}
	return v
}

// Puzzle returns a released puzzle by id.
func (s *Service) Puzzle(id string) (PuzzleView, error) {
	rec, err := s.released(id)
	if err != nil {
		return PuzzleView{}, err
	}
	return PuzzleView{Record: rec, Number: s.catalog.PuzzleNumber(rec.Date)}, nil
}

// List returns every released puzzle in date order.
func (s *Service) List() ListView {
	recs := s.catalog.AvailableAsOf(s.clock.CurrentDate())
	out := make([]PuzzleView, 0, len(recs))
	for i, r := range recs {
		out = append(out, PuzzleView{Record: r, Number: i + 1})
	}
	return ListView{
		Puzzles:        out,
		TotalPuzzles:   s.catalog.Len(),
		NextPuzzleTime: s.clock.NextRollover(),
		HasMore:        s.catalog.Len() > len(recs),
	}
}

// Guess validates raw, then evaluates it against the puzzle's answer. The
// guess shape is checked before the puzzle is looked up.
func (s *Service) Guess(id, raw string) (GuessView, error) {
	guess, err := game.Normalize(raw)
	if err != nil {
		return GuessView{}, fmt.Errorf("guess %q: %w", raw, ErrInvalidInput)
	}
	rec, err := s.released(id)
	if err != nil {
		return GuessView{}, err
	}
	if !s.vocab.IsAllowed(guess) {
		return GuessView{}, fmt.Errorf("guess %s: %w", guess, ErrUnknownWord)
	}
	return GuessView{
		Result:  game.Evaluate(guess, rec.Answer),
		Correct: game.IsCorrect(guess, rec.Answer),
	}, nil
}

// Reveal returns the answer of a released puzzle.
func (s *Service) Reveal(id string) (string, error) {
	rec, err := s.released(id)
	if err != nil {
		return "", err
	}
	return rec.Answer, nil
}

// AnswerImage resolves the answer image of a released puzzle.
func (s *Service) AnswerImage(ctx context.Context, id string) (assets.Asset, error) {
	if _, err := s.released(id); err != nil {
		return assets.Asset{}, err
	}
	a, ok := s.resolver.Resolve(ctx, assets.ImageKey(id))
	if !ok {
		return assets.Asset{}, fmt.Errorf("image %s: %w", id, ErrNotFound)
	}
	return a, nil
}

// Sound resolves a sound file. Names outside the safe pattern are rejected
// before resolution; sounds referenced only by unreleased puzzles are gated.
func (s *Service) Sound(ctx context.Context, filename string) (assets.Asset, error) {
	key, err := assets.SoundKey(filename)
	if err != nil {
		return assets.Asset{}, fmt.Errorf("sound %q: %w", filename, ErrInvalidInput)
	}
	if d, ok := s.soundRelease[filename]; ok && !s.clock.Available(d) {
		return assets.Asset{}, fmt.Errorf("sound %s: %w", filename, ErrNotYetAvailable)
	}
	a, ok := s.resolver.Resolve(ctx, key)
	if !ok {
		return assets.Asset{}, fmt.Errorf("sound %s: %w", filename, ErrNotFound)
	}
	return a, nil
}

// Stats reports catalog and cache sizes for diagnostics.
func (s *Service) Stats() (totalPuzzles, available, cachedAssets, vocabulary int) {
	return s.catalog.Len(),
		len(s.catalog.AvailableAsOf(s.clock.CurrentDate())),
		s.resolver.CacheLen(),
		s.vocab.Len()
}

// released looks up id and applies the availability gate.
func (s *Service) released(id string) (puzzle.Record, error) {
	rec, ok := s.catalog.LookupByID(id)
	if !ok {
		return puzzle.Record{}, fmt.Errorf("puzzle %s: %w", id, ErrNotFound)
	}
	if !s.clock.Available(rec.Date) {
		return puzzle.Record{}, fmt.Errorf("puzzle %s: %w", id, ErrNotYetAvailable)
	}
	return rec, nil
}
