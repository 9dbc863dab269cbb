package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, provider, err := setup()
		if err != nil {
			return err
		}
		budget := cfg.MaxGuesses
		if n, _ := cmd.Flags().GetInt("max-guesses"); n > 0 {
			budget = n
		}
		g, err := game.New(provider, game.WithMaxGuesses(budget), game.WithScoring(cfg.ScoringMode()))
		if err != nil {
			return err
		}
		return play(cmd.InOrStdin(), termenv.NewOutput(os.Stdout), g)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().IntP("max-guesses", "n", 0, "Attempt budget (overrides MAX_GUESSES)")
}

// play reads one guess per line until the game ends or input runs out.
func play(in io.Reader, out *termenv.Output, g *game.Game) error {
	fmt.Fprintf(out, "Guess the %d-letter word. You have %d tries.\n", game.WordLength, g.MaxGuesses)
	sc := bufio.NewScanner(in)
	for !g.ShouldEndGame() {
		fmt.Fprintf(out, "[%d/%d] > ", g.CurrentGuess+1, g.MaxGuesses)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		guess, err := g.SubmitGuess(strings.TrimSpace(sc.Text()))
		switch {
		case errors.Is(err, game.ErrInvalidLength):
			fmt.Fprintf(out, "Guesses must be %d letters.\n", game.WordLength)
			continue
		case errors.Is(err, game.ErrNotAWord):
			fmt.Fprintln(out, "Not in word list.")
			continue
		case err != nil:
			return err
		}
		fmt.Fprintln(out, renderGuess(out, guess))
	}

	if g.IsSolved() {
		fmt.Fprintf(out, "Solved in %d/%d!\n", g.CurrentGuess, g.MaxGuesses)
	} else {
		fmt.Fprintf(out, "Out of guesses. The word was %s.\n", g.Word)
	}
	return nil
}

var tileColors = map[game.Status]string{
	game.StatusCorrect: "#6aaa64",
	game.StatusPresent: "#c9b458",
	game.StatusAbsent:  "#787c7e",
}

// renderGuess draws one tile per letter. Without colour support each
// letter is followed by a marker: = correct, ~ present, . absent.
func renderGuess(out *termenv.Output, g game.Guess) string {
	var b strings.Builder
	for _, l := range g {
		if out.Profile == termenv.Ascii {
			b.WriteString(string(l.Char) + marker(l.Status) + " ")
			continue
		}
		tile := out.String(" " + string(l.Char) + " ").Bold().
			Foreground(out.Color("#ffffff")).
			Background(out.Color(tileColors[l.Status]))
		b.WriteString(tile.String())
	}
	return strings.TrimRight(b.String(), " ")
}

func marker(s game.Status) string {
	switch s {
	case game.StatusCorrect:
		return "="
	case game.StatusPresent:
		return "~"
	}
	return "."
}
