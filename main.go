package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-rules/internal/config"
	"github.com/robalobadob/wordle/apps/go-rules/internal/daily"
	"github.com/robalobadob/wordle/apps/go-rules/internal/game"
	"github.com/robalobadob/wordle/apps/go-rules/internal/words"
)

var rootCmd = &cobra.Command{
	Use:           "wordle",
	Short:         "Wordle rules engine",
	Long:          `Serves the Wordle rules engine over HTTP, or plays it in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, configures logging and builds the word provider.
func setup() (config.Config, *words.List, game.WordProvider, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, nil, err
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	dict, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		return cfg, nil, nil, fmt.Errorf("load word lists: %w", err)
	}
	var provider game.WordProvider = dict
	if cfg.WordMode == config.ModeDaily {
		provider = daily.NewProvider(dict, cfg.DailySalt, nil)
	}
	return cfg, dict, provider, nil
}
