package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-rules/internal/history"
	"github.com/robalobadob/wordle/apps/go-rules/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-rules/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dict, provider, err := setup()
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var st store.Store = store.NewMemoryStore()
		if cfg.RedisAddr != "" {
			rs := store.NewRedis(cfg.RedisAddr, cfg.RedisPassword, 0, dict, store.WithTTL(cfg.GameTTL))
			if err := rs.Ping(ctx); err != nil {
				return err
			}
			defer rs.Close()
			st = rs
			log.Info().Str("addr", cfg.RedisAddr).Msg("using redis game store")
		}

		var hist *history.Store
		if cfg.DBPath != "" {
			if hist, err = history.Open(cfg.DBPath); err != nil {
				return err
			}
			defer hist.Close()
			log.Info().Str("path", cfg.DBPath).Msg("archiving finished games")
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		srv := httpserver.New(httpserver.Deps{
			Store:    st,
			Dict:     dict,
			Provider: provider,
			History:  hist,
			Registry: reg,
		}, httpserver.Options{
			MaxGuesses:       cfg.MaxGuesses,
			Scoring:          cfg.ScoringMode(),
			WordMode:         cfg.WordMode,
			JWTSecret:        cfg.JWTSecret,
			TokenTTL:         cfg.GameTTL,
			ClientOrigin:     cfg.ClientOrigin,
			AllowFixedAnswer: cfg.AllowFixedAnswer,
			RequestTimeout:   cfg.RequestTimeout,
		})

		answers, allowed := dict.Stats()
		log.Info().Str("port", cfg.Port).Str("mode", cfg.WordMode).
			Int("answers", answers).Int("allowed", allowed).Msg("starting go-rules")
		if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
			return err
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
}
