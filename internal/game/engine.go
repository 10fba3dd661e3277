// internal/game/engine.go
//
// Guess evaluation for the daily puzzle.
// Responsibilities:
//   - Normalize and validate a raw guess (length, charset A–Z, 0–9, '-').
//   - Score guesses using the two-pass, duplicate-aware algorithm.
//
// Notes:
//   - Evaluate is pure and total over normalized 5-character inputs; it does
//     not re-validate. Callers run Normalize first.
package game

import (
	"errors"
	"strings"
)

// ErrInvalidGuess is returned by Normalize for a guess of the wrong length or
// containing characters outside the allowed charset.
var ErrInvalidGuess = errors.New("invalid guess")

// Normalize trims and uppercases a raw guess and checks its shape.
func Normalize(raw string) (string, error) {
	g := strings.ToUpper(strings.TrimSpace(raw))
	if len(g) != WordLength || !ValidWord(g) {
		return "", ErrInvalidGuess
	}
	return g, nil
}

// ValidWord reports whether s consists only of A–Z, 0–9 and '-'.
// Length is not checked.
func ValidWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
			return false
		}
	}
	return true
}

// Evaluate scores guess against answer.
//
// Pass 1:
//   - Mark exact matches as correct and claim that answer position.
//
// Pass 2:
//   - For each remaining guess letter, in ascending index order, claim the
//     leftmost unclaimed answer position holding the same letter (present),
//     or mark absent when none is left.
//
// Repeated letters are therefore consumed first-come-first-served: with
// answer ALLOY, guess LOLLY marks the first L present and the last L absent.
func Evaluate(guess, answer string) Result {
	var res Result
	var claimed [WordLength]bool

	for i := 0; i < WordLength; i++ {
		res[i].Letter = guess[i : i+1]
		if guess[i] == answer[i] {
			res[i].Status = StatusCorrect
			claimed[i] = true
		}
	}

	for i := 0; i < WordLength; i++ {
		if res[i].Status == StatusCorrect {
			continue
		}
		res[i].Status = StatusAbsent
		for j := 0; j < WordLength; j++ {
			if !claimed[j] && answer[j] == guess[i] {
				claimed[j] = true
				res[i].Status = StatusPresent
				break
			}
		}
	}
	return res
}

// IsCorrect reports whether the guess solves the puzzle.
func IsCorrect(guess, answer string) bool {
	return guess == answer
}
