// apps/go-rules/internal/httpserver/routes_game.go
//
// Game routes:
//   - POST /game/new     → create a game, return its ID and token
//   - POST /game/guess   → submit a guess (token required)
//   - GET  /game/{id}    → board snapshot
//   - DELETE /game/{id}  → abandon a game (token required)
//   - GET  /games/recent → archived finished games

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
	"github.com/robalobadob/wordle/apps/go-rules/internal/store"
	"github.com/robalobadob/wordle/apps/go-rules/internal/words"
)

// letterDTO is the wire form of game.Letter.
type letterDTO struct {
	Letter string      `json:"letter"`
	Status game.Status `json:"status"`
}

func toDTO(g game.Guess) []letterDTO {
	out := make([]letterDTO, len(g))
	for i, l := range g {
		out[i] = letterDTO{Status: l.Status}
		if l.Char != 0 {
			out[i].Letter = string(l.Char)
		}
	}
	return out
}

// ------------------------------ /game/new ----------------------------------

type newGameReq struct {
	MaxGuesses int    `json:"maxGuesses" validate:"omitempty,min=1,max=20"`
	Answer     string `json:"answer" validate:"omitempty,len=5,alpha"` // fixed answer, if enabled
}

type newGameRes struct {
	GameID     string `json:"gameId"`
	Token      string `json:"token"`
	MaxGuesses int    `json:"maxGuesses"`
	WordLength int    `json:"wordLength"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	provider, mode := s.provider, s.opts.WordMode
	if req.Answer != "" {
		if !s.opts.AllowFixedAnswer {
			writeError(w, http.StatusForbidden, "fixed_answer_disabled")
			return
		}
		// Stored games are re-attached to the plain dictionary, so the
		// pinned answer has to be a dictionary word too.
		if s.dict == nil || !s.dict.IsWord(req.Answer) {
			writeError(w, http.StatusBadRequest, "not_in_word_list")
			return
		}
		provider, mode = words.Fixed(req.Answer, s.dict), "fixed"
	}
	budget := s.opts.MaxGuesses
	if req.MaxGuesses > 0 {
		budget = req.MaxGuesses
	}

	g, err := game.New(provider, game.WithMaxGuesses(budget), game.WithScoring(s.opts.Scoring))
	if err != nil {
		log.Error().Err(err).Msg("new game")
		writeError(w, http.StatusInternalServerError, "new_game_failed")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signGameToken(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}

	s.metrics.GamesStarted.WithLabelValues(mode).Inc()
	log.Info().Str("gameId", g.ID).Str("mode", mode).Int("maxGuesses", g.MaxGuesses).Msg("game started")
	_ = json.NewEncoder(w).Encode(newGameRes{GameID: g.ID, Token: tok, MaxGuesses: g.MaxGuesses, WordLength: game.WordLength})
}

// ----------------------------- /game/guess ---------------------------------

type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

type guessRes struct {
	Guess     []letterDTO `json:"guess"`
	State     game.State  `json:"state"`
	Remaining int         `json:"remaining"`
	Word      string      `json:"word,omitempty"` // revealed once the game ends
}

// handleGuess applies a guess to a stored game and archives it once finished.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID == "" {
		writeError(w, http.StatusBadRequest, "missing_game_id")
		return
	}
	if err := s.verifyGameToken(r, req.GameID); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	unlock := s.lockGame(req.GameID)
	defer unlock()

	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.forgetGame(req.GameID)
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		log.Error().Err(err).Str("gameId", req.GameID).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}

	guess, err := g.SubmitGuess(req.Guess)
	s.metrics.ObserveGuess(err)
	if err != nil {
		log.Debug().Err(err).Str("gameId", g.ID).Msg("guess rejected")
		status, code := guessErrorCode(err)
		writeError(w, status, code)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Str("gameId", g.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}

	res := guessRes{Guess: toDTO(guess), State: g.State(), Remaining: g.Remaining()}
	if g.ShouldEndGame() {
		res.Word = g.Word
		s.finish(r, g)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// finish records a terminal game. Archive failures are logged, not returned.
func (s *Server) finish(r *http.Request, g *game.Game) {
	s.metrics.GamesFinished.WithLabelValues(string(g.State())).Inc()
	log.Info().Str("gameId", g.ID).Str("state", string(g.State())).Int("guesses", g.CurrentGuess).Msg("game finished")
	s.forgetGame(g.ID)
	if s.history == nil {
		return
	}
	if err := s.history.Record(r.Context(), g, s.now()); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("archive game")
	}
}

// guessErrorCode maps SubmitGuess errors to HTTP status and error code.
func guessErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrInvalidLength):
		return http.StatusBadRequest, "invalid_length"
	case errors.Is(err, game.ErrNotAWord):
		return http.StatusBadRequest, "not_in_word_list"
	}
	return http.StatusInternalServerError, "guess_failed"
}

// ------------------------------ /game/{id} ---------------------------------

// handleAbandon deletes an unfinished or finished game. Abandoned games are
// not archived.
func (s *Server) handleAbandon(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.verifyGameToken(r, id); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}
	unlock := s.lockGame(id)
	err := s.store.Delete(r.Context(), id)
	unlock()
	s.forgetGame(id)
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("delete game")
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}
	log.Info().Str("gameId", id).Msg("game abandoned")
	w.WriteHeader(http.StatusNoContent)
}

type boardRes struct {
	GameID       string        `json:"gameId"`
	MaxGuesses   int           `json:"maxGuesses"`
	CurrentGuess int           `json:"currentGuess"`
	State        game.State    `json:"state"`
	Remaining    int           `json:"remaining"`
	Guesses      [][]letterDTO `json:"guesses"` // every slot, empty ones included
	Word         string        `json:"word,omitempty"`
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	// Only lock IDs that exist, so lookups of unknown IDs allocate nothing.
	unlock := s.lockGame(g.ID)
	res := boardRes{
		GameID:       g.ID,
		MaxGuesses:   g.MaxGuesses,
		CurrentGuess: g.CurrentGuess,
		State:        g.State(),
		Remaining:    g.Remaining(),
		Guesses:      make([][]letterDTO, len(g.Guesses)),
	}
	for i, slot := range g.Guesses {
		res.Guesses[i] = toDTO(slot)
	}
	ended := g.ShouldEndGame()
	if ended {
		res.Word = g.Word
	}
	unlock()
	if ended {
		s.forgetGame(g.ID)
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ---------------------------- /games/recent --------------------------------

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > 100 {
		limit = 100
	}
	rows, err := s.history.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("recent games")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}
