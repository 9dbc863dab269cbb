// apps/go-rules/internal/daily/daily.go
//
// Deterministic "word of the day" selection.
//
// The index for a date is HMAC-SHA256(salt, YYYY-MM-DD) mod len(answers),
// so every player sees the same word on the same UTC day and the sequence
// cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Dictionary is the subset of words.List the daily provider needs.
type Dictionary interface {
	Answers() []string
	IsWord(w string) bool
}

// Provider deals the word of the day and validates guesses against dict.
// It implements game.WordProvider.
type Provider struct {
	dict    Dictionary
	answers []string
	salt    string
	now     func() time.Time
}

// NewProvider builds a daily provider. now defaults to time.Now.
func NewProvider(dict Dictionary, salt string, now func() time.Time) *Provider {
	if now == nil {
		now = time.Now
	}
	return &Provider{dict: dict, answers: dict.Answers(), salt: salt, now: now}
}

// GetWord returns today's answer, or "" when the dictionary has none.
func (p *Provider) GetWord() string {
	if len(p.answers) == 0 {
		return ""
	}
	return p.answers[WordIndex(p.now(), p.salt, len(p.answers))]
}

// IsWord delegates to the dictionary.
func (p *Provider) IsWord(w string) bool { return p.dict.IsWord(w) }

// Today returns the current date key.
func (p *Provider) Today() string { return DateKey(p.now()) }
