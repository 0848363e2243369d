package lobby

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"voxelsurvivor/internal/auth"
	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/data"
	"voxelsurvivor/internal/progression"
)

type BuyRequest struct {
	ItemID string `json:"item_id"`
}

type BuyResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Coins   int               `json:"coins"`
	Level   int               `json:"level"`
	Item    catalog.UpgradeID `json:"item_id"`
}

// NewBuyHandler buys one level of a permanent upgrade for the caller.
func NewBuyHandler(store data.Store) http.HandlerFunc {
	var mu sync.Mutex // load, purchase and save must not interleave
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// 1. Auth Check
		userID, err := auth.UserID(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Parse Request
		var req BuyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		id := catalog.UpgradeID(req.ItemID)

		mu.Lock()
		defer mu.Unlock()

		// 3. Purchase
		acc, err := loadAccount(r.Context(), store, userID)
		if err != nil {
			log.Printf("lobby: load account %s: %v", userID, err)
			http.Error(w, "DB Error", http.StatusInternalServerError)
			return
		}
		if err := acc.Purchase(id); err != nil {
			http.Error(w, err.Error(), purchaseStatus(err))
			return
		}
		if err := store.SaveAccount(r.Context(), userID, acc); err != nil {
			log.Println("Purchase error:", err)
			http.Error(w, "Transaction failed", http.StatusInternalServerError)
			return
		}

		// 4. Return New State
		writeJSON(w, BuyResponse{
			Success: true,
			Message: catalog.Upgrades[id].Name + " upgraded!",
			Coins:   acc.Coins,
			Level:   acc.UpgradeLevel(id),
			Item:    id,
		})
	}
}

func purchaseStatus(err error) int {
	switch {
	case errors.Is(err, progression.ErrUnknownUpgrade):
		return http.StatusBadRequest
	case errors.Is(err, progression.ErrMaxLevel):
		return http.StatusConflict
	case errors.Is(err, progression.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}
