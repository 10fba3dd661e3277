// internal/words/words.go
//
// Optional accepted-guess vocabulary.
//
// Responsibilities:
//   - Load an allowed-guess list from a file (one word per line).
//   - Answer membership checks for guesses.
//
// Word lists:
//   - Lines are trimmed and uppercased; blank lines and "#" comments are skipped.
//   - Only 5-character words over A–Z, 0–9, '-' are kept.
//   - Puzzle answers are always added, so a configured answer is never
//     rejected as an unknown word.
//
// A nil *Vocabulary accepts every word (no vocabulary enforced).

package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/NRay7882/astrogoblin-wordle/internal/game"
)

// Vocabulary is a read-only set of accepted guesses.
type Vocabulary struct {
	allowed map[string]struct{}
}

// New builds a vocabulary from words; invalid words are dropped.
func New(words ...[]string) *Vocabulary {
	v := &Vocabulary{allowed: make(map[string]struct{})}
	for _, list := range words {
		for _, w := range list {
			v.add(w)
		}
	}
	return v
}

// Load reads path and merges extra (typically the catalog answers).
func Load(path string, extra []string) (*Vocabulary, error) {
	list, err := readWordFile(path)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return New(list, extra), nil
}

// IsAllowed reports whether w is an accepted guess.
func (v *Vocabulary) IsAllowed(w string) bool {
	if v == nil {
		return true
	}
	_, ok := v.allowed[strings.ToUpper(w)]
	return ok
}

// Len returns the number of accepted words; 0 for a nil vocabulary.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.allowed)
}

func (v *Vocabulary) add(w string) {
	w = strings.ToUpper(strings.TrimSpace(w))
	if len(w) == game.WordLength && game.ValidWord(w) {
		v.allowed[w] = struct{}{}
	}
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
