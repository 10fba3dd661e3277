package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statuses(r Result) []Status {
	out := make([]Status, 0, len(r))
	for _, m := range r {
		out = append(out, m.Status)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	c, p, a := StatusCorrect, StatusPresent, StatusAbsent
	tests := []struct {
		name   string
		guess  string
		answer string
		want   []Status
	}{
		{"duplicate letters in guess", "LOLLY", "ALLOY", []Status{p, p, c, a, c}},
		{"exact match", "ROBOT", "ROBOT", []Status{c, c, c, c, c}},
		{"nothing shared", "CRANE", "BOXUP", []Status{a, a, a, a, a}},
		{"earlier duplicate claims the only copy", "EERIE", "THOSE", []Status{a, a, a, a, c}},
		{"single copy claimed by first present", "SPEED", "ABIDE", []Status{a, a, p, a, p}},
		{"digits and hyphens", "X-9-1", "1-9-X", []Status{p, c, c, c, p}},
		{"all present", "LEMON", "MELON", []Status{p, c, p, c, c}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.guess, tt.answer)
			assert.Equal(t, tt.want, statuses(got))
			for i, m := range got {
				assert.Equal(t, tt.guess[i:i+1], m.Letter)
			}
		})
	}
}

func TestEvaluate_CorrectCountMatchesAlignedEquals(t *testing.T) {
	pairs := [][2]string{
		{"LOLLY", "ALLOY"}, {"ROBOT", "ROBOT"}, {"AAAAA", "ABABA"},
		{"12-34", "12-43"}, {"ZZZZZ", "AZAZA"}, {"OTTER", "TOTEM"},
	}
	for _, p := range pairs {
		g, a := p[0], p[1]
		want := 0
		for i := 0; i < WordLength; i++ {
			if g[i] == a[i] {
				want++
			}
		}
		res := Evaluate(g, a)
		assert.Len(t, res, WordLength)
		assert.Equal(t, want, res.CountCorrect(), "%s vs %s", g, a)
	}
}

func TestEvaluate_Pure(t *testing.T) {
	first := Evaluate("LOLLY", "ALLOY")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate("LOLLY", "ALLOY"))
	}
}

func TestIsCorrect(t *testing.T) {
	assert.True(t, IsCorrect("ROBOT", "ROBOT"))
	assert.False(t, IsCorrect("ROBOS", "ROBOT"))
}

func TestNormalize(t *testing.T) {
	g, err := Normalize("  robot ")
	require.NoError(t, err)
	assert.Equal(t, "ROBOT", g)

	g, err = Normalize("a-1b2")
	require.NoError(t, err)
	assert.Equal(t, "A-1B2", g)

	for _, bad := range []string{"", "ROBO", "ROBOTS", "ROB T", "ROB_T", "RÖBOT", "ROB.T"} {
		_, err := Normalize(bad)
		assert.ErrorIs(t, err, ErrInvalidGuess, "input %q", bad)
	}
}
