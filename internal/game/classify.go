// apps/go-rules/internal/game/classify.go
//
// Letter classifiers.
//
// Classify is the default, simplified rule set: a letter is Correct at a
// matching position, Present anywhere else in the word, Absent otherwise.
// Repeated letters are not budgeted, so "PEPPY" against "APPLE" marks
// every P as Correct or Present.
//
// ClassifyStrict is the classic two-pass Wordle algorithm and is only used
// by games created with ScoringStrict.

package game

import (
	"strings"
	"unicode"
)

// Classifier maps one guessed character at pos to a Status.
// guess is the whole guessed word; the caller guarantees it has the same
// rune length as secret.
type Classifier func(ch rune, pos int, secret, guess string) Status

// Classify compares case-insensitively and never looks at other letters of guess.
func Classify(ch rune, pos int, secret, _ string) Status {
	sec := []rune(strings.ToUpper(secret))
	ch = unicode.ToUpper(ch)
	if pos >= 0 && pos < len(sec) && sec[pos] == ch {
		return StatusCorrect
	}
	for _, r := range sec {
		if r == ch {
			return StatusPresent
		}
	}
	return StatusAbsent
}

// ClassifyStrict scores the full guess and returns the status at pos.
func ClassifyStrict(_ rune, pos int, secret, guess string) Status {
	marks := scoreGuess(strings.ToUpper(secret), strings.ToUpper(guess))
	if pos < 0 || pos >= len(marks) {
		return StatusAbsent
	}
	return marks[pos]
}

// scoreGuess implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1: mark exact matches Correct and count the remaining answer letters.
// Pass 2: a non-Correct guess letter is Present while that count is > 0
// (decrementing it), Absent otherwise.
func scoreGuess(answer, guess string) []Status {
	answerRunes := []rune(answer)
	guessRunes := []rune(guess)
	n := len(guessRunes)
	if len(answerRunes) < n {
		n = len(answerRunes)
	}
	res := make([]Status, len(guessRunes))
	counts := make(map[rune]int, n)

	for i := 0; i < n; i++ {
		if guessRunes[i] == answerRunes[i] {
			res[i] = StatusCorrect
		} else {
			counts[answerRunes[i]]++
		}
	}
	for i := range guessRunes {
		if res[i] == StatusCorrect {
			continue
		}
		if c := guessRunes[i]; counts[c] > 0 {
			res[i] = StatusPresent
			counts[c]--
		} else {
			res[i] = StatusAbsent
		}
	}
	return res
}

func classifierFor(mode ScoringMode) Classifier {
	if mode == ScoringStrict {
		return ClassifyStrict
	}
	return Classify
}
