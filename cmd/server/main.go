package main

import (
	"log"
	"net/http"
	"os"

	"voxelsurvivor/internal/arena"
	"voxelsurvivor/internal/auth"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/data"
	"voxelsurvivor/internal/lobby"
	"voxelsurvivor/internal/presence"
)

func main() {
	// 1. Load the balance and deployment values
	cfg, err := config.Load(os.Getenv("SURVIVOR_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Open the account store
	store, err := data.Open(cfg.Server.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open data store: %v", err)
	}
	defer store.Close()

	// 3. Configure Routes
	a := auth.NewAuth(store)
	http.HandleFunc("/api/register", a.RegisterHandler)
	http.HandleFunc("/api/login", a.LoginHandler)
	http.HandleFunc("/api/logout", a.LogoutHandler)

	http.HandleFunc("/api/account", lobby.NewAccountHandler(store))
	http.HandleFunc("/api/shop/upgrades", lobby.NewUpgradesHandler(store))
	http.HandleFunc("/api/shop/buy", lobby.NewBuyHandler(store))
	http.HandleFunc("/api/catalog", lobby.NewCatalogHandler())
	http.HandleFunc("/api/config/schema", lobby.NewSchemaHandler())

	// 4. Every websocket connection runs its own game loop
	games := arena.NewServer(cfg, store, log.Default())
	http.HandleFunc("/ws", games.HandleWS)
	http.HandleFunc("/api/online", presence.NewService(games).OnlineHandler)

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s (%d ticks/s, %s frames)", port, cfg.Server.TickRate, cfg.Server.Codec)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}
