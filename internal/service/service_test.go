package service

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/daily"
	"github.com/NRay7882/astrogoblin-wordle/internal/game"
	"github.com/NRay7882/astrogoblin-wordle/internal/puzzle"
	"github.com/NRay7882/astrogoblin-wordle/internal/words"
)

// 2025-03-10 08:00 in New York.
var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, entries []puzzle.RawEntry, vocab *words.Vocabulary) *Service {
	t.Helper()
	catalog, _ := puzzle.Load(entries)
	clock, err := daily.NewClock("America/New_York", func() time.Time { return testNow })
	require.NoError(t, err)
	resolver := assets.NewResolver(assets.Options{
		Local: []assets.Source{assets.NewFSSource(
			fstest.MapFS{
				"20250308.png": {Data: []byte("alloy-png")},
				"20250311.png": {Data: []byte("future-png")},
			},
			fstest.MapFS{
				"robot-win.mp3": {Data: []byte("beep")},
				"secret.mp3":    {Data: []byte("spoiler")},
				"try.wav":       {Data: []byte("try")},
			},
		)},
	})
	return New(catalog, clock, resolver, vocab)
}

func defaultEntries() []puzzle.RawEntry {
	return []puzzle.RawEntry{
		{Key: "PUZZLE_20250308", Payload: "ALLOY|Metal mix"},
		{Key: "PUZZLE_20250310", Payload: "ROBOT|Beep boop|robot-win.mp3"},
		{Key: "PUZZLE_20250311", Payload: "X-RAY|Bones|,secret.mp3"},
		{Key: "PUZZLE_20250309", Payload: "BAD"},
	}
}

func TestToday(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)

	v := s.Today()
	require.NotNil(t, v.Puzzle)
	assert.Equal(t, "20250310", v.Puzzle.Record.ID)
	assert.Equal(t, 2, v.Puzzle.Number)
	assert.Equal(t, 2, v.TotalAvailable)
	assert.Equal(t, 3, v.TotalPuzzles)
	assert.True(t, v.HasMore)
	assert.True(t, v.NextPuzzleTime.Equal(time.Date(2025, 3, 11, 4, 0, 0, 0, time.UTC)))
}

func TestToday_NothingReleased(t *testing.T) {
	s := newTestService(t, []puzzle.RawEntry{
		{Key: "PUZZLE_20250320", Payload: "LATER|soon"},
	}, nil)

	v := s.Today()
	assert.Nil(t, v.Puzzle)
	assert.Equal(t, 0, v.TotalAvailable)
	assert.Equal(t, 1, v.TotalPuzzles)
	assert.True(t, v.NextPuzzleTime.Equal(time.Date(2025, 3, 20, 4, 0, 0, 0, time.UTC)))

	empty := newTestService(t, nil, nil)
	v = empty.Today()
	assert.Nil(t, v.Puzzle)
	assert.True(t, v.NextPuzzleTime.Equal(time.Date(2025, 3, 11, 4, 0, 0, 0, time.UTC)))
}

func TestPuzzle(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)

	v, err := s.Puzzle("20250308")
	require.NoError(t, err)
	assert.Equal(t, 1, v.Number)
	assert.Equal(t, "Metal mix", v.Record.Clue)

	_, err = s.Puzzle("20250311")
	assert.ErrorIs(t, err, ErrNotYetAvailable)

	_, err = s.Puzzle("20250309")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)

	v := s.List()
	require.Len(t, v.Puzzles, 2)
	assert.Equal(t, "20250308", v.Puzzles[0].Record.ID)
	assert.Equal(t, 1, v.Puzzles[0].Number)
	assert.Equal(t, "20250310", v.Puzzles[1].Record.ID)
	assert.Equal(t, 2, v.Puzzles[1].Number)
	assert.Equal(t, 3, v.TotalPuzzles)
	assert.True(t, v.HasMore)
}

func TestGuess(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)

	v, err := s.Guess("20250308", "lolly")
	require.NoError(t, err)
	assert.False(t, v.Correct)
	assert.Equal(t, game.StatusPresent, v.Result[0].Status)
	assert.Equal(t, game.StatusAbsent, v.Result[3].Status)

	v, err = s.Guess("20250310", "ROBOT")
	require.NoError(t, err)
	assert.True(t, v.Correct)
	assert.Equal(t, 5, v.Result.CountCorrect())
}

func TestGuess_Errors(t *testing.T) {
	s := newTestService(t, defaultEntries(), words.New([]string{"CRANE"}, []string{"ALLOY", "ROBOT"}))

	// Shape is checked before lookup, even for unknown puzzles.
	_, err := s.Guess("nope", "AB_CD")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = s.Guess("nope", "TOOLONG")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Guess("nope", "CRANE")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Guess("20250311", "CRANE")
	assert.ErrorIs(t, err, ErrNotYetAvailable)

	_, err = s.Guess("20250308", "QQQQQ")
	assert.ErrorIs(t, err, ErrUnknownWord)

	_, err = s.Guess("20250308", "crane")
	assert.NoError(t, err)
}

func TestReveal(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)

	a, err := s.Reveal("20250310")
	require.NoError(t, err)
	assert.Equal(t, "ROBOT", a)

	_, err = s.Reveal("20250311")
	assert.ErrorIs(t, err, ErrNotYetAvailable)
	_, err = s.Reveal("19990101")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnswerImage(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)
	ctx := context.Background()

	a, err := s.AnswerImage(ctx, "20250308")
	require.NoError(t, err)
	assert.Equal(t, "alloy-png", string(a.Data))
	assert.Equal(t, "image/png", a.ContentType)

	_, err = s.AnswerImage(ctx, "20250311")
	assert.ErrorIs(t, err, ErrNotYetAvailable)

	_, err = s.AnswerImage(ctx, "20250310")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.AnswerImage(ctx, "20250309")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSound(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)
	ctx := context.Background()

	a, err := s.Sound(ctx, "robot-win.mp3")
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", a.ContentType)

	_, err = s.Sound(ctx, "try.wav")
	assert.NoError(t, err)

	_, err = s.Sound(ctx, "secret.mp3")
	assert.ErrorIs(t, err, ErrNotYetAvailable)

	_, err = s.Sound(ctx, "../secret.mp3")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Sound(ctx, "missing.mp3")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	s := newTestService(t, defaultEntries(), nil)
	_, _ = s.AnswerImage(context.Background(), "20250308")

	total, available, cached, vocab := s.Stats()
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, available)
	assert.Equal(t, 1, cached)
	assert.Equal(t, 0, vocab)
}
