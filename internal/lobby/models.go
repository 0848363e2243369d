package lobby

import (
	"voxelsurvivor/internal/catalog"
	"voxelsurvivor/internal/progression"
)

// AccountView is the lobby's read of an account: the saved state plus the
// values a front-end would otherwise have to derive.
type AccountView struct {
	ID           string                    `json:"id"`
	Nickname     string                    `json:"nickname"`
	Level        int                       `json:"level"`
	Exp          int                       `json:"exp"`
	MaxExp       int                       `json:"maxExp"`
	XPPercentage int                       `json:"xpPercentage"`
	Coins        int                       `json:"coins"`
	TotalCoins   int                       `json:"totalCoins"`
	HighestDay   int                       `json:"highestDay"`
	TotalRuns    int                       `json:"totalRuns"`
	TotalKills   int                       `json:"totalKills"`
	Upgrades     map[catalog.UpgradeID]int `json:"upgrades"`
	StartStats   catalog.Stats             `json:"startStats"`
	Bonuses      progression.RunBonuses    `json:"bonuses"`
}

type UpgradeView struct {
	ID          catalog.UpgradeID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Level       int               `json:"level"`
	MaxLevel    int               `json:"maxLevel"`
	NextCost    int               `json:"nextCost,omitempty"`
	Maxed       bool              `json:"maxed"`
	Affordable  bool              `json:"affordable"`
}

type UpgradeCategory struct {
	Key      string        `json:"key"`
	Title    string        `json:"title"`
	Upgrades []UpgradeView `json:"upgrades"`
}

type ShopPage struct {
	Lang       string            `json:"lang"`
	Coins      int               `json:"coins"`
	Categories []UpgradeCategory `json:"categories"`
}

// categoryTitles translates the upgrade category keys.
var categoryTitles = map[string]map[string]string{
	"en": {
		"Stats": "Stats", "Combat": "Combat", "Skills": "Skills", "Starting Bonus": "Starting Bonus",
		"Economy": "Economy", "Growth": "Growth", "Survival": "Survival", "Special": "Special",
	},
	"ua": {
		"Stats": "Характеристики", "Combat": "Бій", "Skills": "Навички", "Starting Bonus": "Стартовий бонус",
		"Economy": "Економіка", "Growth": "Розвиток", "Survival": "Виживання", "Special": "Особливе",
	},
	"ru": {
		"Stats": "Характеристики", "Combat": "Бой", "Skills": "Навыки", "Starting Bonus": "Стартовый бонус",
		"Economy": "Экономика", "Growth": "Развитие", "Survival": "Выживание", "Special": "Особое",
	},
}

func normalizeLang(raw string) string {
	switch raw {
	case "ua", "ru", "en":
		return raw
	default:
		return "en"
	}
}

func newAccountView(acc *progression.Account) AccountView {
	maxExp := acc.Level * 100
	pct := 0
	if maxExp > 0 {
		pct = acc.Exp * 100 / maxExp
	}
	ups := make(map[catalog.UpgradeID]int, len(acc.Upgrades))
	for id, lvl := range acc.Upgrades {
		ups[id] = lvl
	}
	return AccountView{
		ID:           acc.ID,
		Nickname:     acc.Nickname,
		Level:        acc.Level,
		Exp:          acc.Exp,
		MaxExp:       maxExp,
		XPPercentage: pct,
		Coins:        acc.Coins,
		TotalCoins:   acc.TotalCoins,
		HighestDay:   acc.HighestDay,
		TotalRuns:    acc.TotalRuns,
		TotalKills:   acc.TotalKills,
		Upgrades:     ups,
		StartStats:   acc.StartingStats(),
		Bonuses:      acc.Bonuses(),
	}
}

// newShopPage lists every upgrade grouped by category in catalog category
// order, upgrades in shop display order within a category.
func newShopPage(acc *progression.Account, lang string) ShopPage {
	lang = normalizeLang(lang)
	titles := categoryTitles[lang]
	page := ShopPage{Lang: lang, Coins: acc.Coins}
	for _, key := range catalog.UpgradeCategories {
		cat := UpgradeCategory{Key: key, Title: titles[key]}
		for _, id := range catalog.UpgradeOrder {
			u := catalog.Upgrades[id]
			if u.Category != key {
				continue
			}
			v := UpgradeView{
				ID:          u.ID,
				Name:        u.Name,
				Description: u.Description,
				Level:       acc.UpgradeLevel(id),
				MaxLevel:    u.MaxLevel,
			}
			if cost, ok := acc.UpgradeCost(id); ok {
				v.NextCost = cost
				v.Affordable = acc.Coins >= cost
			} else {
				v.Maxed = true
			}
			cat.Upgrades = append(cat.Upgrades, v)
		}
		if len(cat.Upgrades) > 0 {
			page.Categories = append(page.Categories, cat)
		}
	}
	return page
}
