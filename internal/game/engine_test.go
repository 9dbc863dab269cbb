package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider always deals the same word and accepts guesses unless reject is set.
type stubProvider struct {
	word   string
	reject map[string]bool
	asked  []string
}

func (s *stubProvider) GetWord() string { return s.word }

func (s *stubProvider) IsWord(w string) bool {
	s.asked = append(s.asked, w)
	return !s.reject[w]
}

func newTestGame(t *testing.T, opts ...Option) (*Game, *stubProvider) {
	t.Helper()
	p := &stubProvider{word: "APPLE", reject: map[string]bool{}}
	g, err := New(p, opts...)
	require.NoError(t, err)
	return g, p
}

func TestNew_Defaults(t *testing.T) {
	g, _ := newTestGame(t)
	assert.Equal(t, 6, g.MaxGuesses)
	assert.Len(t, g.Guesses, 6)
	assert.Equal(t, 0, g.CurrentGuess)
	assert.Equal(t, "APPLE", g.Word)
	assert.Equal(t, ScoringSimple, g.Scoring)
	assert.Len(t, g.ID, 16)
	for _, slot := range g.Guesses {
		assert.Equal(t, Guess{}, slot)
	}
}

func TestNew_Options(t *testing.T) {
	g, _ := newTestGame(t, WithMaxGuesses(10), WithScoring(ScoringStrict))
	assert.Equal(t, 10, g.MaxGuesses)
	assert.Len(t, g.Guesses, 10)
	assert.Equal(t, ScoringStrict, g.Scoring)
}

func TestNew_NormalizesSecret(t *testing.T) {
	g, err := New(&stubProvider{word: " apple\n"})
	require.NoError(t, err)
	assert.Equal(t, "APPLE", g.Word)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoProvider)

	_, err = New(&stubProvider{word: "APPLE"}, WithMaxGuesses(0))
	assert.ErrorIs(t, err, ErrInvalidBudget)

	_, err = New(&stubProvider{word: "APPLES"})
	assert.ErrorIs(t, err, ErrInvalidSecret)

	_, err = New(&stubProvider{word: "APPLE"}, WithScoring("hard"))
	assert.Error(t, err)
}

func TestBuildGuessFromWord(t *testing.T) {
	g, _ := newTestGame(t)

	assert.Equal(t, StatusCorrect, g.BuildGuessFromWord("A____")[0].Status)
	assert.Equal(t, StatusPresent, g.BuildGuessFromWord("E____")[0].Status)
	assert.Equal(t, StatusAbsent, g.BuildGuessFromWord("z____")[0].Status)

	guess := g.BuildGuessFromWord("grape")
	assert.Equal(t, "GRAPE", guess.Word())
	assert.Equal(t, Guess{
		{Char: 'G', Status: StatusAbsent},
		{Char: 'R', Status: StatusAbsent},
		{Char: 'A', Status: StatusPresent},
		{Char: 'P', Status: StatusPresent},
		{Char: 'E', Status: StatusCorrect},
	}, guess)

	// Pure with respect to state.
	assert.Equal(t, 0, g.CurrentGuess)
	assert.Equal(t, Guess{}, g.Guesses[0])
}

func TestBuildGuessFromWord_StrictScoring(t *testing.T) {
	g, _ := newTestGame(t, WithScoring(ScoringStrict))
	guess := g.BuildGuessFromWord("PEPPY")
	assert.Equal(t, StatusAbsent, guess[3].Status)

	simple, _ := newTestGame(t)
	assert.Equal(t, StatusPresent, simple.BuildGuessFromWord("PEPPY")[3].Status)
}

func TestSubmitGuess_IncrementsCurrentGuess(t *testing.T) {
	g, p := newTestGame(t)
	guess, err := g.SubmitGuess("guess")
	require.NoError(t, err)
	assert.Equal(t, 1, g.CurrentGuess)
	assert.Equal(t, guess, g.Guesses[0])
	assert.Equal(t, "GUESS", g.Guesses[0].Word())
	assert.Equal(t, []string{"GUESS"}, p.asked)
	assert.Equal(t, 5, g.Remaining())
}

func TestSubmitGuess_InvalidLength(t *testing.T) {
	g, p := newTestGame(t)
	for _, raw := range []string{"GLOBES", "GLOB", "", " APPLE\t", "APPLE "} {
		_, err := g.SubmitGuess(raw)
		assert.ErrorIs(t, err, ErrInvalidLength, raw)
	}
	assert.Equal(t, 0, g.CurrentGuess)
	assert.Empty(t, p.asked, "length is checked before the dictionary")
}

func TestSubmitGuess_NotAWord(t *testing.T) {
	g, p := newTestGame(t)
	p.reject["GUESS"] = true

	_, err := g.SubmitGuess("GUESS")
	assert.ErrorIs(t, err, ErrNotAWord)
	assert.Equal(t, 0, g.CurrentGuess)
	assert.Equal(t, Guess{}, g.Guesses[0])
}

func TestSubmitGuess_BudgetExhausted(t *testing.T) {
	p := &stubProvider{word: "APPLE"}
	g, err := New(p, WithMaxGuesses(1))
	require.NoError(t, err)

	_, err = g.SubmitGuess("GUESS")
	require.NoError(t, err)
	assert.True(t, g.ShouldEndGame())
	assert.Equal(t, StateLost, g.State())

	_, err = g.SubmitGuess("GUESS")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, g.CurrentGuess)
	assert.Len(t, p.asked, 1, "a finished game never consults the provider")
}

func TestSubmitGuess_FullBudgetOfMisses(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < g.MaxGuesses; i++ {
		assert.False(t, g.ShouldEndGame())
		_, err := g.SubmitGuess("GUESS")
		require.NoError(t, err)
	}
	assert.True(t, g.ShouldEndGame())
	assert.False(t, g.IsSolved())
	assert.Equal(t, 0, g.Remaining())

	_, err := g.SubmitGuess("APPLE")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, g.MaxGuesses, g.CurrentGuess)
}

func TestSubmitGuess_BlockedAfterWin(t *testing.T) {
	g, _ := newTestGame(t)
	_, err := g.SubmitGuess("apple")
	require.NoError(t, err)
	assert.Equal(t, StateWon, g.State())

	_, err = g.SubmitGuess("GUESS")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 1, g.CurrentGuess)
	assert.True(t, g.IsSolved(), "the winning row stays the latest")
}

func TestSubmitGuess_AllMismatchedPositionsNeverCorrect(t *testing.T) {
	g, _ := newTestGame(t)
	for _, w := range []string{"LEAPP", "ZZZZZ", "PLAPA", "EALPP"} {
		guess := g.BuildGuessFromWord(w)
		for i, l := range guess {
			assert.NotEqual(t, StatusCorrect, l.Status, "%s[%d]", w, i)
			assert.Contains(t, []Status{StatusPresent, StatusAbsent}, l.Status)
		}
	}
}

func TestIsSolved(t *testing.T) {
	g, _ := newTestGame(t)
	assert.False(t, g.IsSolved(), "no guesses yet")

	_, err := g.SubmitGuess("GUESS")
	require.NoError(t, err)
	assert.False(t, g.IsSolved())

	_, err = g.SubmitGuess("APPLE")
	require.NoError(t, err)
	assert.True(t, g.IsSolved())
	assert.True(t, g.ShouldEndGame())
	assert.Len(t, g.Submitted(), 2)
}

func TestSubmitted_ReturnsCopy(t *testing.T) {
	g, _ := newTestGame(t)
	_, err := g.SubmitGuess("GRAPE")
	require.NoError(t, err)

	got := g.Submitted()
	got[0] = Guess{}
	assert.Equal(t, "GRAPE", g.Guesses[0].Word())
	assert.Equal(t, "GRAPE", g.Submitted()[0].Word())
}

func TestValidate(t *testing.T) {
	g, _ := newTestGame(t)
	require.NoError(t, g.Validate())

	tests := []struct {
		name   string
		mutate func(*Game)
	}{
		{"no slots", func(g *Game) { g.Guesses = nil }},
		{"slots shorter than budget", func(g *Game) { g.Guesses = g.Guesses[:2] }},
		{"zero budget", func(g *Game) { g.MaxGuesses = 0 }},
		{"negative cursor", func(g *Game) { g.CurrentGuess = -1 }},
		{"cursor past budget", func(g *Game) { g.CurrentGuess = g.MaxGuesses + 1 }},
		{"short secret", func(g *Game) { g.Word = "APP" }},
		{"unknown scoring", func(g *Game) { g.Scoring = "hard" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad, _ := newTestGame(t)
			tt.mutate(bad)
			assert.ErrorIs(t, bad.Validate(), ErrCorruptGame)
		})
	}
}

func TestShouldEndGame(t *testing.T) {
	g, _ := newTestGame(t)
	assert.False(t, g.ShouldEndGame())
	assert.Equal(t, StateInProgress, g.State())

	_, err := g.SubmitGuess("GUESS")
	require.NoError(t, err)
	assert.False(t, g.ShouldEndGame())
}

func TestGame_JSONRoundTripAndAttach(t *testing.T) {
	g, p := newTestGame(t)
	_, err := g.SubmitGuess("GRAPE")
	require.NoError(t, err)

	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"status":"correct"`)

	var back Game
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, g.Guesses, back.Guesses)

	_, err = back.SubmitGuess("APPLE")
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.Equal(t, 1, back.CurrentGuess)

	back.Attach(p)
	_, err = back.SubmitGuess("APPLE")
	require.NoError(t, err)
	assert.True(t, back.IsSolved())
}
