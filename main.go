package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/bot"
	"github.com/SteveHaveIt/Blog/config"
	"github.com/SteveHaveIt/Blog/db"
	"github.com/SteveHaveIt/Blog/handler"
	"github.com/SteveHaveIt/Blog/handler/submission"
	"github.com/SteveHaveIt/Blog/server"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	level, err := zerolog.ParseLevel(config.Cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	store, err := db.Open(config.Cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening database")
	}
	defer store.Close()

	tg, err := bot.New(config.Cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating Telegram session")
	}

	ttl := time.Duration(config.Cfg.Submission.SessionTTLMinutes) * time.Minute
	states := submission.NewMemoryStore(ttl)
	flow := submission.NewFlow(states, tg, store, config.Cfg.Submission.DefaultAuthor)

	router := handler.NewRouter(tg.Username())
	flow.RegisterHandlers(router)

	if config.Cfg.Telegram.WebhookURL != "" {
		if err := tg.SetWebhook(config.Cfg.Telegram.WebhookURL); err != nil {
			log.Error().Err(err).Msg("error setting webhook")
		}
	}

	srv := &http.Server{
		Addr:    config.Cfg.Server.Addr,
		Handler: server.New(store, router, tg).Handler(),
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server is now running, press CTRL-C to exit")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("error running server")
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down server")
	}
}
