// internal/httpserver/routes_api.go
//
// HTTP routes for the puzzle API, mounted under /api:
//   - GET  /api/today                 → latest released puzzle (or inactive notice)
//   - GET  /api/puzzle/{id}           → one released puzzle's metadata
//   - POST /api/guess                 → evaluate a guess
//   - GET  /api/puzzles/list          → every released puzzle
//   - POST /api/reveal                → answer of a released puzzle
//   - GET  /api/answer-image/{id}     → answer image (binary)
//   - GET  /api/sounds/{filename}     → sound file (binary)
//
// Service errors map 1:1 to status codes with a short code in the body;
// internal detail never reaches the client.

package httpserver

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/NRay7882/astrogoblin-wordle/internal/assets"
	"github.com/NRay7882/astrogoblin-wordle/internal/game"
	"github.com/NRay7882/astrogoblin-wordle/internal/service"
)

const mediaCacheControl = "public, max-age=86400"

const inactiveMessage = "No puzzle is available yet. Check back at the next puzzle time."

// mountAPI registers all /api routes.
func (s *Server) mountAPI() {
	s.r.Route("/api", func(r chi.Router) {
		r.Use(jsonContentType)
		r.Get("/today", s.handleToday)
		r.Get("/puzzle/{id}", s.handlePuzzle)
		r.Post("/guess", s.handleGuess)
		r.Get("/puzzles/list", s.handleList)
		r.Post("/reveal", s.handleReveal)
		r.Get("/answer-image/{id}", s.handleAnswerImage)
		r.Get("/sounds/{filename}", s.handleSound)
	})
}

// -----------------------------------------------------------------------------
// payloads

// puzzleRes is puzzle metadata; it never carries the answer.
type puzzleRes struct {
	PuzzleNumber int    `json:"puzzleNumber"`
	PuzzleID     string `json:"puzzleId"`
	Clue         string `json:"clue"`
	Date         string `json:"date"`
	AltWinSound  string `json:"altWinSound,omitempty"`
	AltLoseSound string `json:"altLoseSound,omitempty"`
}

type todayRes struct {
	Active bool `json:"active"`
	puzzleRes
	TotalAvailable int    `json:"totalAvailable"`
	TotalPuzzles   int    `json:"totalPuzzles"`
	NextPuzzleTime string `json:"nextPuzzleTime"`
	HasMorePuzzles bool   `json:"hasMorePuzzles"`
}

type inactiveTodayRes struct {
	Active         bool   `json:"active"`
	Message        string `json:"message"`
	NextPuzzleTime string `json:"nextPuzzleTime"`
	TotalAvailable int    `json:"totalAvailable"`
	TotalPuzzles   int    `json:"totalPuzzles"`
}

type listRes struct {
	Puzzles        []puzzleRes `json:"puzzles"`
	TotalPuzzles   int         `json:"totalPuzzles"`
	NextPuzzleTime string      `json:"nextPuzzleTime"`
	HasMorePuzzles bool        `json:"hasMorePuzzles"`
}

type guessReq struct {
	PuzzleID string `json:"puzzleId"`
	Guess    string `json:"guess"`
}

type guessRes struct {
	Result  game.Result `json:"result"`
	Correct bool        `json:"correct"`
}

type revealReq struct {
	PuzzleID string `json:"puzzleId"`
}

type revealRes struct {
	Answer string `json:"answer"`
}

func toPuzzleRes(v service.PuzzleView) puzzleRes {
	out := puzzleRes{
		PuzzleNumber: v.Number,
		PuzzleID:     v.Record.ID,
		Clue:         v.Record.Clue,
		Date:         v.Record.Date.String(),
	}
	if w, ok := v.Record.WinSound.Get(); ok {
		out.AltWinSound = w
	}
	if l, ok := v.Record.LoseSound.Get(); ok {
		out.AltLoseSound = l
	}
	return out
}

func formatInstant(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// -----------------------------------------------------------------------------
// handlers

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	v := s.svc.Today()
	if v.Puzzle == nil {
		writeJSON(w, http.StatusOK, inactiveTodayRes{
			Active:         false,
			Message:        inactiveMessage,
			NextPuzzleTime: formatInstant(v.NextPuzzleTime),
			TotalAvailable: 0,
			TotalPuzzles:   v.TotalPuzzles,
		})
		return
	}
	writeJSON(w, http.StatusOK, todayRes{
		Active:         true,
		puzzleRes:      toPuzzleRes(*v.Puzzle),
		TotalAvailable: v.TotalAvailable,
		TotalPuzzles:   v.TotalPuzzles,
		NextPuzzleTime: formatInstant(v.NextPuzzleTime),
		HasMorePuzzles: v.HasMore,
	})
}

func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Puzzle(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPuzzleRes(v))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	v := s.svc.List()
	out := listRes{
		Puzzles:        make([]puzzleRes, 0, len(v.Puzzles)),
		TotalPuzzles:   v.TotalPuzzles,
		NextPuzzleTime: formatInstant(v.NextPuzzleTime),
		HasMorePuzzles: v.HasMore,
	}
	for _, p := range v.Puzzles {
		out.Puzzles = append(out.Puzzles, toPuzzleRes(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	v, err := s.svc.Guess(req.PuzzleID, req.Guess)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Result: v.Result, Correct: v.Correct})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req revealReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	answer, err := s.svc.Reveal(req.PuzzleID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revealRes{Answer: answer})
}

func (s *Server) handleAnswerImage(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.AnswerImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMedia(w, r, a)
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	a, err := s.svc.Sound(r.Context(), chi.URLParam(r, "filename"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeMedia(w, r, a)
}

// -----------------------------------------------------------------------------
// responses

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		code := "invalid_guess"
		if strings.HasPrefix(r.URL.Path, "/api/sounds/") {
			code = "invalid_filename"
		}
		writeError(w, http.StatusBadRequest, code)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrNotYetAvailable):
		writeError(w, http.StatusForbidden, "not_yet_available")
	case errors.Is(err, service.ErrUnknownWord):
		writeError(w, http.StatusUnprocessableEntity, "unknown_word")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled service error")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// writeMedia sends asset bytes with a day of caching and a content ETag.
func writeMedia(w http.ResponseWriter, r *http.Request, a assets.Asset) {
	sum := blake2b.Sum256(a.Data)
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`

	h := w.Header()
	h.Set("Content-Type", a.ContentType)
	h.Set("Cache-Control", mediaCacheControl)
	h.Set("ETag", etag)

	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(a.Data)
}
