// apps/go-rules/internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create new games with a fixed word length and a configurable budget.
//   - Validate and apply guesses (budget, length, dictionary).
//   - Classify guesses letter by letter.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - Secret words and dictionary checks come from an injected WordProvider.
//   - Guess slots are pre-allocated; CurrentGuess is the cursor into them.
//   - Validation always precedes mutation, so a rejected guess changes nothing.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Option configures a Game at construction.
type Option func(*Game)

// WithMaxGuesses sets the attempt budget.
func WithMaxGuesses(n int) Option {
	return func(g *Game) { g.MaxGuesses = n }
}

// WithScoring selects the classifier.
func WithScoring(mode ScoringMode) Option {
	return func(g *Game) { g.Scoring = mode }
}

// New constructs a new game with a secret word fetched from p.
func New(p WordProvider, opts ...Option) (*Game, error) {
	if p == nil {
		return nil, ErrNoProvider
	}
	g := &Game{
		ID:         randomID(),
		MaxGuesses: DefaultMaxGuesses,
		Scoring:    ScoringSimple,
		provider:   p,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.MaxGuesses <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, g.MaxGuesses)
	}
	mode, err := ParseScoringMode(string(g.Scoring))
	if err != nil {
		return nil, err
	}
	g.Scoring = mode

	word := normalize(p.GetWord())
	if utf8.RuneCountInString(word) != WordLength {
		return nil, fmt.Errorf("%w: provider returned %q", ErrInvalidSecret, word)
	}
	g.Word = word
	g.Guesses = make([]Guess, g.MaxGuesses)
	return g, nil
}

// Attach rebinds the word provider, e.g. after a game was decoded from storage.
func (g *Game) Attach(p WordProvider) { g.provider = p }

// BuildGuessFromWord classifies raw against the secret word without touching game state.
// Characters past WordLength are ignored; missing positions stay empty.
func (g *Game) BuildGuessFromWord(raw string) Guess {
	var out Guess
	classify := classifierFor(g.Scoring)
	norm := strings.ToUpper(raw)
	pos := 0
	for _, ch := range norm {
		if pos >= WordLength {
			break
		}
		out[pos] = Letter{Char: ch, Status: classify(ch, pos, g.Word, norm)}
		pos++
	}
	return out
}

// SubmitGuess validates raw, classifies it and stores it in the next slot.
//
// Validation rules, in order:
//   - Game must not be over (won, or budget exhausted) → ErrGameOver.
//   - Guess must be exactly WordLength characters as given → ErrInvalidLength.
//     Surrounding whitespace counts; trimming input is the caller's job.
//   - Guess must be accepted by the provider → ErrNotAWord.
func (g *Game) SubmitGuess(raw string) (Guess, error) {
	if g.ShouldEndGame() {
		return Guess{}, fmt.Errorf("%w: %s after %d of %d guesses", ErrGameOver, g.State(), g.CurrentGuess, g.MaxGuesses)
	}
	norm := strings.ToUpper(raw)
	if n := utf8.RuneCountInString(norm); n != WordLength {
		return Guess{}, fmt.Errorf("%w: got %d letters, want %d", ErrInvalidLength, n, WordLength)
	}
	if g.provider == nil {
		return Guess{}, ErrNoProvider
	}
	if !g.provider.IsWord(norm) {
		return Guess{}, fmt.Errorf("%w: %q", ErrNotAWord, norm)
	}

	guess := g.BuildGuessFromWord(norm)
	g.Guesses[g.CurrentGuess] = guess
	g.CurrentGuess++
	return guess, nil
}

// IsSolved reports whether the most recent guess matched every letter.
// A game with no guesses is not solved.
func (g *Game) IsSolved() bool {
	if g.CurrentGuess == 0 {
		return false
	}
	return g.Guesses[g.CurrentGuess-1].IsCorrect()
}

// ShouldEndGame reports whether the game reached a terminal state.
func (g *Game) ShouldEndGame() bool {
	return g.IsSolved() || g.CurrentGuess >= g.MaxGuesses
}

// State reports the coarse lifecycle state.
func (g *Game) State() State {
	switch {
	case g.IsSolved():
		return StateWon
	case g.CurrentGuess >= g.MaxGuesses:
		return StateLost
	}
	return StateInProgress
}

// Remaining returns how many guesses are left in the budget.
func (g *Game) Remaining() int {
	if g.ShouldEndGame() {
		return 0
	}
	return g.MaxGuesses - g.CurrentGuess
}

// Submitted returns a copy of the filled guess slots, oldest first.
func (g *Game) Submitted() []Guess {
	out := make([]Guess, g.CurrentGuess)
	copy(out, g.Guesses)
	return out
}

// Validate checks the invariants of a game rebuilt from outside New,
// such as a decoded snapshot. A game that passes is safe to play.
func (g *Game) Validate() error {
	switch {
	case g.MaxGuesses <= 0:
		return fmt.Errorf("%w: max guesses %d", ErrCorruptGame, g.MaxGuesses)
	case len(g.Guesses) != g.MaxGuesses:
		return fmt.Errorf("%w: %d guess slots for a budget of %d", ErrCorruptGame, len(g.Guesses), g.MaxGuesses)
	case g.CurrentGuess < 0 || g.CurrentGuess > g.MaxGuesses:
		return fmt.Errorf("%w: cursor %d outside 0..%d", ErrCorruptGame, g.CurrentGuess, g.MaxGuesses)
	case utf8.RuneCountInString(g.Word) != WordLength:
		return fmt.Errorf("%w: secret %q", ErrCorruptGame, g.Word)
	}
	if _, err := ParseScoringMode(string(g.Scoring)); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptGame, err)
	}
	return nil
}

// normalize trims surrounding whitespace and uppercases a provider word.
func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
