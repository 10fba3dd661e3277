// internal/puzzle/source.go
//
// Entry sources for the catalog.
//   - FromEnviron: PUZZLE_* variables of the process environment (.env files
//     are merged into the environment by godotenv before this runs).
//   - FromYAMLFile: a flat YAML mapping of the same keys to payloads.
//
// Only keys whose suffix carries a digit are entries. Settings that share
// the prefix (PUZZLE_TIMEZONE) are configuration and are skipped; a
// mistyped date such as PUZZLE_2025XX02 is still kept so the catalog
// rejects it as bad_date_key.

package puzzle

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromEnviron selects PUZZLE_* entries from KEY=VALUE pairs, sorted by key.
func FromEnviron(environ []string) []RawEntry {
	var out []RawEntry
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !IsEntryKey(k) {
			continue
		}
		out = append(out, RawEntry{Key: k, Payload: v})
	}
	sortEntries(out)
	return out
}

// FromYAMLFile reads entries from a YAML mapping such as:
//
//	PUZZLE_20250101: "CRANE|A tall bird|fanfare.mp3,sad-trombone.mp3"
func FromYAMLFile(path string) ([]RawEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read puzzles file: %w", err)
	}
	var m map[string]string
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse puzzles file %s: %w", path, err)
	}
	out := make([]RawEntry, 0, len(m))
	for k, v := range m {
		if !IsEntryKey(k) {
			continue
		}
		out = append(out, RawEntry{Key: k, Payload: v})
	}
	sortEntries(out)
	return out, nil
}

// IsEntryKey reports whether key names a puzzle entry rather than a
// PUZZLE_-prefixed setting.
func IsEntryKey(key string) bool {
	suffix, ok := strings.CutPrefix(key, KeyPrefix)
	return ok && strings.ContainsAny(suffix, "0123456789")
}

func sortEntries(es []RawEntry) {
	sort.Slice(es, func(i, j int) bool { return es[i].Key < es[j].Key })
}
