package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
	"github.com/robalobadob/wordle/apps/go-rules/internal/words"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "data", "history.db")
	s, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dsn
}

func playedGame(t *testing.T, budget int, guesses ...string) *game.Game {
	t.Helper()
	l, err := words.New([]string{"apple"}, []string{"guess", "grape"})
	require.NoError(t, err)
	g, err := game.New(l, game.WithMaxGuesses(budget))
	require.NoError(t, err)
	for _, w := range guesses {
		_, err := g.SubmitGuess(w)
		require.NoError(t, err)
	}
	return g
}

func TestRecordAndGet(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	g := playedGame(t, 6, "grape", "apple")
	require.NoError(t, s.Record(ctx, g, at))

	e, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "APPLE", e.Word)
	assert.Equal(t, game.StateWon, e.Outcome)
	assert.Equal(t, 2, e.GuessesUsed)
	assert.Equal(t, 6, e.MaxGuesses)
	assert.Equal(t, "simple", e.Scoring)
	assert.Equal(t, []string{"GRAPE", "APPLE"}, e.Guesses)
	assert.True(t, at.Equal(e.FinishedAt))

	// Duplicate records are ignored.
	assert.NoError(t, s.Record(ctx, g, at.Add(time.Hour)))
	e, err = s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, at.Equal(e.FinishedAt))
}

func TestRecord_RejectsInProgress(t *testing.T) {
	s, _ := openTemp(t)
	g := playedGame(t, 6, "grape")
	assert.ErrorIs(t, s.Record(context.Background(), g, time.Now()), ErrNotFinished)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecent(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

	lost := playedGame(t, 1, "guess")
	won := playedGame(t, 2, "apple")
	require.NoError(t, s.Record(ctx, lost, base))
	require.NoError(t, s.Record(ctx, won, base.Add(time.Minute)))

	rows, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, won.ID, rows[0].ID)
	assert.Equal(t, game.StateLost, rows[1].Outcome)
	assert.Equal(t, []string{"GUESS"}, rows[1].Guesses)

	rows, err = s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	s, dsn := openTemp(t)
	require.NoError(t, s.Close())

	again, err := Open(dsn)
	require.NoError(t, err)
	defer again.Close()

	var n int
	require.NoError(t, again.db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}
