package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
	"github.com/robalobadob/wordle/apps/go-rules/internal/words"
)

func newPlayGame(t *testing.T, budget int) *game.Game {
	t.Helper()
	dict, err := words.New([]string{"apple"}, []string{"grape", "guess"})
	require.NoError(t, err)
	g, err := game.New(dict, game.WithMaxGuesses(budget))
	require.NoError(t, err)
	return g
}

func asciiOutput(buf *bytes.Buffer) *termenv.Output {
	return termenv.NewOutput(buf, termenv.WithProfile(termenv.Ascii))
}

func TestPlay_Win(t *testing.T) {
	g := newPlayGame(t, 6)
	var buf bytes.Buffer
	in := strings.NewReader("toolong\nzzzzz\n  grape \napple\nguess\n")

	require.NoError(t, play(in, asciiOutput(&buf), g))
	out := buf.String()
	assert.Contains(t, out, "Guesses must be 5 letters.")
	assert.Contains(t, out, "Not in word list.")
	assert.Contains(t, out, "G. R. A~ P~ E=")
	assert.Contains(t, out, "A= P= P= L= E=")
	assert.Contains(t, out, "Solved in 2/6!")
	assert.Equal(t, 2, g.CurrentGuess, "input after the win is never read as a guess")
}

func TestPlay_Loss(t *testing.T) {
	g := newPlayGame(t, 1)
	var buf bytes.Buffer
	require.NoError(t, play(strings.NewReader("guess\n"), asciiOutput(&buf), g))
	assert.Contains(t, buf.String(), "Out of guesses. The word was APPLE.")
}

func TestPlay_EOF(t *testing.T) {
	g := newPlayGame(t, 6)
	var buf bytes.Buffer
	require.NoError(t, play(strings.NewReader("grape\n"), asciiOutput(&buf), g))
	assert.Equal(t, 1, g.CurrentGuess)
	assert.False(t, g.ShouldEndGame())
}
