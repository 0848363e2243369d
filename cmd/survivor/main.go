package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelsurvivor/internal/audio"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/data"
	"voxelsurvivor/internal/survivor"
	"voxelsurvivor/internal/terrain"
	"voxelsurvivor/internal/termui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", os.Getenv("SURVIVOR_CONFIG"), "YAML balance file")
	storeDSN := flag.String("store", "file:saves", "account store: memory:, file:dir, sqlite:path or postgres:// URL")
	accountID := flag.String("account", "local", "account to play")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	mute := flag.Bool("mute", false, "start without sound")
	flag.Parse()

	// The terminal owns stdout and stderr while the screen is up.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	store, err := data.Open(*storeDSN)
	if err != nil {
		log.Fatalf("failed to open data store: %v", err)
	}
	defer store.Close()

	sound := audio.DefaultConfig()
	sound.Muted = *mute
	bank := audio.NewBank(sound)
	if err := bank.Start(); err != nil {
		logger.Printf("Audio initialization failed: %v", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	field := terrain.Generate(cfg.Map, rng)
	game := survivor.NewGame(cfg, survivor.Options{
		AccountID: *accountID,
		Store:     store,
		Terrain:   field,
		Audio:     bank,
		Rand:      rng,
		Logger:    logger,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to initialize screen: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = termui.NewApp(screen, game, field, cfg, logger).Run(ctx)
	stop()
	screen.Fini()

	if acc := game.Account(); acc != nil {
		fmt.Printf("Level %d, %d coins, best day %d over %d runs\n", acc.Level, acc.Coins, acc.HighestDay, acc.TotalRuns)
	}
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
