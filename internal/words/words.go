// apps/go-rules/internal/words/words.go
//
// Word list management: the dictionary collaborator of the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or the embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Implement game.WordProvider (GetWord, IsWord).
//
// Word Lists:
//   - "answers": canonical solutions (exactly 5 letters).
//   - "allowed": valid guesses (always includes answers).
//
// Load behavior:
//   1. answers and allowed paths both set → load each file.
//   2. only allowed path set → use that file for both.
//   3. neither set → embedded assets.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); other lines are skipped.
//   • Lists are normalized to lowercase; lookups are case-insensitive.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-rules/assets"
)

// ErrEmpty is returned when no usable answer words were loaded.
var ErrEmpty = errors.New("words: answers list is empty")

// List is an immutable dictionary of answers and allowed guesses.
// It is safe for concurrent use.
type List struct {
	answers    []string            // canonical answers
	answersSet map[string]struct{} // answers only
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load builds a List from the given files, falling back to embedded defaults.
func Load(answersPath, allowedPath string) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, err
		}
		ansList = filterWords(raw)
		raw, err = assets.AllowedList()
		if err != nil {
			return nil, err
		}
		allowList = filterWords(raw)
	}

	return New(ansList, allowList)
}

// New builds a List from in-memory slices. Invalid entries are dropped.
func New(answers, allowed []string) (*List, error) {
	ans := filterWords(answers)
	if len(ans) == 0 {
		return nil, ErrEmpty
	}
	l := &List{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range filterWords(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
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
		out = append(out, sc.Text())
	}
	return filterWords(out), sc.Err()
}

// filterWords lowercases, trims, and keeps only valid 5-letter alphabetic words.
func filterWords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if len(w) == 5 && isAlpha(w) {
			out = append(out, w)
		}
	}
	return out
}

func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// GetWord returns a cryptographically random answer.
func (l *List) GetWord() string {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[nBig.Int64()]
}

// IsWord reports whether w is a valid guess (answers ∪ guesses).
func (l *List) IsWord(w string) bool {
	_, ok := l.allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToLower(w)]
	return ok
}

// Answers returns a copy of the answers list in load order.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
