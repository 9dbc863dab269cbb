// apps/go-rules/internal/game/types.go
//
// Core type definitions for the Wordle rules engine.
// Defines:
//   - Status: per-letter classification of a guess.
//   - Letter / Guess: a classified character and a full row of them.
//   - Game: state for a single in-progress or finished game.
//   - WordProvider: the dictionary collaborator injected into a Game.

package game

import (
	"errors"
	"fmt"
)

// WordLength is the fixed number of letters in every secret word and guess.
const WordLength = 5

// DefaultMaxGuesses is the attempt budget used when none is configured.
const DefaultMaxGuesses = 6

// Status represents the evaluation result for a single letter in a guess.
//   - StatusEmpty:   slot not filled yet (zero value).
//   - StatusCorrect: letter is in the secret word at this position.
//   - StatusPresent: letter is in the secret word at another position.
//   - StatusAbsent:  letter does not occur in the secret word.
type Status uint8

const (
	StatusEmpty Status = iota
	StatusCorrect
	StatusPresent
	StatusAbsent
)

var statusNames = [...]string{
	StatusEmpty:   "empty",
	StatusCorrect: "correct",
	StatusPresent: "present",
	StatusAbsent:  "absent",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// MarshalText encodes the status by name, so JSON payloads read "correct" etc.
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("game: unknown status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText decodes a status name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("game: unknown status %q", b)
}

// Letter is one classified character of a guess.
type Letter struct {
	Char   rune   `json:"char"`
	Status Status `json:"status"`
}

// Guess is an ordered row of classified letters. The zero value is an empty slot.
type Guess [WordLength]Letter

// Word returns the guessed characters as a string.
func (g Guess) Word() string {
	b := make([]rune, 0, WordLength)
	for _, l := range g {
		if l.Char != 0 {
			b = append(b, l.Char)
		}
	}
	return string(b)
}

// IsCorrect reports whether every letter in the row is StatusCorrect.
func (g Guess) IsCorrect() bool {
	for _, l := range g {
		if l.Status != StatusCorrect {
			return false
		}
	}
	return true
}

// State is the coarse lifecycle position of a game.
type State string

const (
	StateInProgress State = "in_progress"
	StateWon        State = "won"
	StateLost       State = "lost"
)

// ScoringMode selects the classifier a game uses.
type ScoringMode string

const (
	// ScoringSimple marks any in-word letter Present, with no duplicate budget.
	ScoringSimple ScoringMode = "simple"
	// ScoringStrict uses the two-pass algorithm that limits Present marks
	// to the unmatched occurrences in the secret word.
	ScoringStrict ScoringMode = "strict"
)

// ParseScoringMode maps a config string to a ScoringMode; "" means simple.
func ParseScoringMode(s string) (ScoringMode, error) {
	switch ScoringMode(s) {
	case "", ScoringSimple:
		return ScoringSimple, nil
	case ScoringStrict:
		return ScoringStrict, nil
	}
	return "", fmt.Errorf("game: unknown scoring mode %q", s)
}

// WordProvider supplies secret words and validates guesses.
type WordProvider interface {
	// GetWord returns a candidate secret word. Called once per game.
	GetWord() string
	// IsWord reports whether candidate is a recognised dictionary word.
	IsWord(candidate string) bool
}

// Validation failures returned by SubmitGuess. State is unchanged when any is returned.
var (
	ErrGameOver      = errors.New("game over")
	ErrInvalidLength = errors.New("invalid guess length")
	ErrNotAWord      = errors.New("not in word list")
)

// Construction failures returned by New.
var (
	ErrInvalidBudget = errors.New("max guesses must be positive")
	ErrInvalidSecret = errors.New("secret word must be five letters")
	ErrNoProvider    = errors.New("no word provider")
)

// ErrCorruptGame is returned by Validate for a game whose fields break its invariants.
var ErrCorruptGame = errors.New("corrupt game state")

// Game holds the state of a single Wordle game session.
// A Game is owned by one caller at a time and is not safe for concurrent use.
type Game struct {
	ID           string      `json:"id"`           // random hex identifier
	Word         string      `json:"word"`         // secret word, uppercase
	MaxGuesses   int         `json:"maxGuesses"`   // attempt budget
	Guesses      []Guess     `json:"guesses"`      // len == MaxGuesses, pre-allocated
	CurrentGuess int         `json:"currentGuess"` // next slot to fill
	Scoring      ScoringMode `json:"scoring"`

	provider WordProvider
}
