package words

import (
	"strings"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

// fixed deals a pinned answer and delegates dictionary checks.
type fixed struct {
	answer string
	dict   game.WordProvider
}

// Fixed returns a provider whose GetWord always yields answer.
// Guesses are still validated against dict; the answer itself is always accepted.
func Fixed(answer string, dict game.WordProvider) game.WordProvider {
	return &fixed{answer: answer, dict: dict}
}

func (f *fixed) GetWord() string { return f.answer }

func (f *fixed) IsWord(w string) bool {
	if strings.EqualFold(strings.TrimSpace(w), strings.TrimSpace(f.answer)) {
		return true
	}
	return f.dict != nil && f.dict.IsWord(w)
}
