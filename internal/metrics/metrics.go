// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

// Guess results used as the "result" label.
const (
	ResultAccepted      = "accepted"
	ResultGameOver      = "game_over"
	ResultInvalidLength = "invalid_length"
	ResultNotAWord      = "not_a_word"
	ResultError         = "error"
)

// Metrics groups the server's collectors.
type Metrics struct {
	GamesStarted  *prometheus.CounterVec
	Guesses       *prometheus.CounterVec
	GamesFinished *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_started_total",
				Help: "Games created, by word mode.",
			},
			[]string{"mode"},
		),
		Guesses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_guesses_total",
				Help: "Guess submissions, by validation result.",
			},
			[]string{"result"},
		),
		GamesFinished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordle_games_finished_total",
				Help: "Games that reached a terminal state, by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.GamesStarted, m.Guesses, m.GamesFinished)
	return m
}

// ObserveGuess counts one SubmitGuess outcome.
func (m *Metrics) ObserveGuess(err error) {
	m.Guesses.WithLabelValues(GuessResult(err)).Inc()
}

// GuessResult maps a SubmitGuess error to its label value.
func GuessResult(err error) string {
	switch {
	case err == nil:
		return ResultAccepted
	case errors.Is(err, game.ErrGameOver):
		return ResultGameOver
	case errors.Is(err, game.ErrInvalidLength):
		return ResultInvalidLength
	case errors.Is(err, game.ErrNotAWord):
		return ResultNotAWord
	}
	return ResultError
}
