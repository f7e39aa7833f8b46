package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/config"
	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/physics"
	"github.com/Garsondee/Fruit-Drop/internal/store"
	"github.com/Garsondee/Fruit-Drop/internal/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []game.SessionOption{game.WithSeed(cfg.ResolveSeed(time.Now()))}
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Printf("high score storage disabled: %v", err)
		} else {
			defer st.Close()
			opts = append(opts, game.WithStore(st))
		}
	}

	ranks := game.DefaultRankTable()
	world := physics.NewWorld(ranks, cfg.Settings(), cfg.Physics())
	session, err := game.NewSession(context.Background(), world, cfg.Settings(), opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer session.Close()

	if err := term.New(session).Run(ctx); err != nil {
		log.Printf("terminal: %v", err)
	}
}
