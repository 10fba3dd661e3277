// internal/game/types.go
//
// Core type definitions for guess evaluation.
// Defines:
//   - Status: per-letter verdict of a guess (correct/present/absent).
//   - LetterMark: one letter of a guess together with its verdict.
//   - Result: the index-aligned marks for a whole guess.

package game

// WordLength is the number of characters in every answer and guess.
const WordLength = 5

// Status represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the answer at the same position.
//   - "present": letter exists in the answer at an unclaimed other position.
//   - "absent":  no unclaimed occurrence of the letter remains in the answer.
type Status string

const (
	StatusCorrect Status = "correct"
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

// LetterMark pairs a guessed character with its verdict.
type LetterMark struct {
	Letter string `json:"letter"`
	Status Status `json:"status"`
}

// Result is exactly WordLength marks, index-aligned with the submitted guess.
type Result [WordLength]LetterMark

// CountCorrect returns how many marks are StatusCorrect.
func (r Result) CountCorrect() int {
	n := 0
	for _, m := range r {
		if m.Status == StatusCorrect {
			n++
		}
	}
	return n
}
