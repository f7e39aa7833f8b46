package main

import (
	"context"
	"log"
	"time"

	"github.com/Garsondee/Fruit-Drop/internal/audio"
	"github.com/Garsondee/Fruit-Drop/internal/config"
	"github.com/Garsondee/Fruit-Drop/internal/game"
	"github.com/Garsondee/Fruit-Drop/internal/physics"
	"github.com/Garsondee/Fruit-Drop/internal/store"
	"github.com/Garsondee/Fruit-Drop/internal/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	opts := []game.SessionOption{game.WithSeed(cfg.ResolveSeed(time.Now()))}
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			log.Printf("high score storage disabled: %v", err)
		} else {
			defer func() {
				if err := st.Close(); err != nil {
					log.Printf("close store: %v", err)
				}
			}()
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

	if cfg.Sound {
		player, err := audio.New()
		if err != nil {
			log.Printf("sound disabled: %v", err)
		} else {
			defer player.Close()
			session.Subscribe(player.Handle)
		}
	}

	g := ui.New(session)
	w, h := g.Size()
	ebiten.SetWindowTitle("Fruit Drop")
	ebiten.SetWindowSize(int(float64(w)*cfg.Scale), int(float64(h)*cfg.Scale))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
