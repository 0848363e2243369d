package progression

import (
	"encoding/json"
	"errors"

	"voxelsurvivor/internal/catalog"
)

// Purchase failures. The simulation collapses both into a false return; the
// shop API reports them.
var (
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrMaxLevel          = errors.New("upgrade already at max level")
	ErrInsufficientFunds = errors.New("not enough coins")
)

// ErrAccountNotFound is what account stores return for an id they have
// never saved.
var ErrAccountNotFound = errors.New("account not found")

// ========================================
// ACCOUNT
// ========================================

// Account is the state that survives between runs.
type Account struct {
	ID         string                    `json:"id" msgpack:"id"`
	Nickname   string                    `json:"nickname" msgpack:"nickname"`
	Level      int                       `json:"level" msgpack:"level"`
	Exp        int                       `json:"exp" msgpack:"exp"`
	Coins      int                       `json:"coins" msgpack:"coins"`
	TotalCoins int                       `json:"totalCoins" msgpack:"totalCoins"`
	Upgrades   map[catalog.UpgradeID]int `json:"upgrades" msgpack:"upgrades"`
	HighestDay int                       `json:"highestDay" msgpack:"highestDay"`
	TotalRuns  int                       `json:"totalRuns" msgpack:"totalRuns"`
	TotalKills int                       `json:"totalKills" msgpack:"totalKills"`
	LastRunID  string                    `json:"lastRunId,omitempty" msgpack:"lastRunId"`
}

// NewAccount is the documented default used whenever a saved account is
// missing or unreadable.
func NewAccount() *Account {
	return &Account{
		Level:    1,
		Upgrades: make(map[catalog.UpgradeID]int),
	}
}

// Normalize repairs a decoded account in place so the invariants hold even
// for hand-edited or outdated saves.
func (a *Account) Normalize() {
	if a.Level < 1 {
		a.Level = 1
	}
	if a.Exp < 0 {
		a.Exp = 0
	}
	if a.Coins < 0 {
		a.Coins = 0
	}
	if a.TotalCoins < a.Coins {
		a.TotalCoins = a.Coins
	}
	if a.Upgrades == nil {
		a.Upgrades = make(map[catalog.UpgradeID]int)
	}
	for id, lvl := range a.Upgrades {
		up, ok := catalog.Upgrades[id]
		switch {
		case !ok || lvl <= 0:
			delete(a.Upgrades, id)
		case lvl > up.MaxLevel:
			a.Upgrades[id] = up.MaxLevel
		}
	}
}

func (a *Account) Clone() *Account {
	out := *a
	out.Upgrades = make(map[catalog.UpgradeID]int, len(a.Upgrades))
	for id, lvl := range a.Upgrades {
		out.Upgrades[id] = lvl
	}
	return &out
}

func (a *Account) UpgradeLevel(id catalog.UpgradeID) int {
	return a.Upgrades[id]
}

// UpgradeCost is the price of the next level. ok is false for unknown or
// maxed upgrades.
func (a *Account) UpgradeCost(id catalog.UpgradeID) (cost int, ok bool) {
	up, found := catalog.Upgrades[id]
	if !found {
		return 0, false
	}
	lvl := a.Upgrades[id]
	if lvl >= up.MaxLevel {
		return 0, false
	}
	return up.Cost(lvl), true
}

// Purchase buys one level. On any error the account is unchanged.
func (a *Account) Purchase(id catalog.UpgradeID) error {
	up, ok := catalog.Upgrades[id]
	if !ok {
		return ErrUnknownUpgrade
	}
	lvl := a.Upgrades[id]
	if lvl >= up.MaxLevel {
		return ErrMaxLevel
	}
	cost := up.Cost(lvl)
	if a.Coins < cost {
		return ErrInsufficientFunds
	}
	a.Coins -= cost
	a.Upgrades[id] = lvl + 1
	return nil
}

// Bonus is the accumulated effect magnitude of an upgrade.
func (a *Account) Bonus(id catalog.UpgradeID) float64 {
	return float64(a.Upgrades[id]) * catalog.Upgrades[id].PerLevel
}

// Credit adds coins earned outside the shop. Negative amounts are ignored.
func (a *Account) Credit(coins int) {
	if coins <= 0 {
		return
	}
	a.Coins += coins
	a.TotalCoins += coins
}

// ========================================
// SERIALIZE/DESERIALIZE FOR STORAGE
// ========================================

func (a *Account) ToJSON() string {
	data, _ := json.Marshal(a)
	return string(data)
}

// AccountFromJSON never fails: malformed input yields the default account.
func AccountFromJSON(raw string) *Account {
	acc := NewAccount()
	if raw == "" {
		return acc
	}
	if err := json.Unmarshal([]byte(raw), acc); err != nil {
		return NewAccount()
	}
	acc.Normalize()
	return acc
}
