package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"voxelsurvivor/internal/auth"
	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/config"
	"voxelsurvivor/internal/data"
	"voxelsurvivor/internal/progression"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("lobby: encode response:", err)
	}
}

// loadAccount reads the caller's account. A registered id with no save yet
// gets the default account, so a fresh player can open the shop at once.
func loadAccount(ctx context.Context, store data.Store, userID string) (*progression.Account, error) {
	acc, err := store.LoadAccount(ctx, userID)
	if errors.Is(err, data.ErrNotFound) {
		acc = progression.NewAccount()
		acc.ID = userID
		return acc, nil
	}
	if err != nil {
		return nil, err
	}
	acc.Normalize()
	return acc, nil
}

// NewAccountHandler returns the caller's account with derived values.
func NewAccountHandler(store data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userID, err := auth.UserID(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		acc, err := loadAccount(r.Context(), store, userID)
		if err != nil {
			log.Printf("lobby: load account %s: %v", userID, err)
			http.Error(w, "DB Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, newAccountView(acc))
	}
}

// NewUpgradesHandler lists the permanent upgrades with the caller's levels
// and next costs. Category titles follow ?lang=en|ua|ru.
func NewUpgradesHandler(store data.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		userID, err := auth.UserID(r)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		acc, err := loadAccount(r.Context(), store, userID)
		if err != nil {
			log.Printf("lobby: load account %s: %v", userID, err)
			http.Error(w, "DB Error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, newShopPage(acc, r.URL.Query().Get("lang")))
	}
}

// CatalogPage is the static game content a front-end needs for tooltips.
type CatalogPage struct {
	Skills        map[catalog.SkillID]catalog.SkillDef               `json:"skills"`
	AutoSkills    map[catalog.AutoSkillID]catalog.AutoSkillDef       `json:"autoSkills"`
	Passives      map[catalog.PassiveID]catalog.PassiveDef           `json:"passives"`
	SkillUpgrades map[catalog.SkillUpgradeID]catalog.SkillUpgradeDef `json:"skillUpgrades"`
	Monsters      map[catalog.MonsterType]catalog.MonsterDef         `json:"monsters"`
}

func NewCatalogHandler() http.HandlerFunc {
	page := CatalogPage{
		Skills:        catalog.Skills,
		AutoSkills:    catalog.AutoSkills,
		Passives:      catalog.Passives,
		SkillUpgrades: catalog.SkillUpgrades,
		Monsters:      catalog.Monsters,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, page)
	}
}

// NewSchemaHandler serves the JSON schema of the game config file.
func NewSchemaHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := config.Schema()
		if err != nil {
			log.Println("lobby:", err)
			http.Error(w, "schema unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		_, _ = w.Write(doc)
	}
}
