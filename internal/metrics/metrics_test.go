package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

func TestGuessResult(t *testing.T) {
	assert.Equal(t, ResultAccepted, GuessResult(nil))
	assert.Equal(t, ResultGameOver, GuessResult(fmt.Errorf("%w: lost", game.ErrGameOver)))
	assert.Equal(t, ResultInvalidLength, GuessResult(game.ErrInvalidLength))
	assert.Equal(t, ResultNotAWord, GuessResult(game.ErrNotAWord))
	assert.Equal(t, ResultError, GuessResult(errors.New("boom")))
}

func TestObserveGuess(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveGuess(nil)
	m.ObserveGuess(nil)
	m.ObserveGuess(game.ErrNotAWord)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Guesses.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Guesses.WithLabelValues(ResultNotAWord)))
}
