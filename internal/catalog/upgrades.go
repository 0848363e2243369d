package catalog

import "math"

// ========================================
// PERMANENT UPGRADES (Meta-Shop)
// ========================================

type UpgradeID string

const (
	UpgradeHP              UpgradeID = "hp"
	UpgradeAttack          UpgradeID = "atk"
	UpgradeDefense         UpgradeID = "def"
	UpgradeSpeed           UpgradeID = "speed"
	UpgradeCrit            UpgradeID = "crit"
	UpgradeStartingHealing UpgradeID = "startingHealing"
	UpgradeCoinMagnet      UpgradeID = "coinMagnet"
	UpgradeExpBoost        UpgradeID = "expBoost"
	UpgradeRevival         UpgradeID = "revival"
	UpgradeStartingDamage  UpgradeID = "startingDamage"
	UpgradeDashCooldown    UpgradeID = "dashCooldown"
	UpgradeSpinRadius      UpgradeID = "spinRadius"
	UpgradeAttackSpeed     UpgradeID = "attackSpeed"
	UpgradeExplosiveKills  UpgradeID = "explosiveKills"
	UpgradeTreasureHunter  UpgradeID = "treasureHunter"
	UpgradeVampiricStart   UpgradeID = "vampiricStart"
	UpgradeTimeWarp        UpgradeID = "timeWarp"
	UpgradeMonsterMagnet   UpgradeID = "monsterMagnet"
)

type Upgrade struct {
	ID             UpgradeID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	MaxLevel       int       `json:"maxLevel"`
	BaseCost       int       `json:"baseCost"`
	CostMultiplier float64   `json:"costMultiplier"`
	PerLevel       float64   `json:"perLevel"` // Effect magnitude gained per purchased level
}

// Cost is the price of buying the level after current.
func (u Upgrade) Cost(current int) int {
	if current < 0 {
		current = 0
	}
	return int(math.Floor(float64(u.BaseCost) * math.Pow(u.CostMultiplier, float64(current))))
}

var Upgrades = map[UpgradeID]Upgrade{
	UpgradeHP: {
		ID: UpgradeHP, Name: "Vitality", Description: "+10 Max HP per level", Category: "Stats",
		MaxLevel: 20, BaseCost: 50, CostMultiplier: 1.5, PerLevel: 10,
	},
	UpgradeAttack: {
		ID: UpgradeAttack, Name: "Strength", Description: "+2 Attack per level", Category: "Stats",
		MaxLevel: 20, BaseCost: 50, CostMultiplier: 1.5, PerLevel: 2,
	},
	UpgradeDefense: {
		ID: UpgradeDefense, Name: "Armor", Description: "+1 Defense per level", Category: "Stats",
		MaxLevel: 20, BaseCost: 50, CostMultiplier: 1.5, PerLevel: 1,
	},
	UpgradeSpeed: {
		ID: UpgradeSpeed, Name: "Swiftness", Description: "+5% Movement Speed per level", Category: "Stats",
		MaxLevel: 10, BaseCost: 80, CostMultiplier: 1.6, PerLevel: 0.05,
	},
	UpgradeCrit: {
		ID: UpgradeCrit, Name: "Precision", Description: "+2% Critical Rate per level", Category: "Stats",
		MaxLevel: 15, BaseCost: 100, CostMultiplier: 1.7, PerLevel: 0.02,
	},
	UpgradeStartingHealing: {
		ID: UpgradeStartingHealing, Name: "First Aid Kit", Description: "Start with +20 HP", Category: "Starting Bonus",
		MaxLevel: 5, BaseCost: 150, CostMultiplier: 2.0, PerLevel: 20,
	},
	UpgradeCoinMagnet: {
		ID: UpgradeCoinMagnet, Name: "Coin Magnet", Description: "+10% Coin drop rate per level", Category: "Economy",
		MaxLevel: 10, BaseCost: 100, CostMultiplier: 1.8, PerLevel: 0.1,
	},
	UpgradeExpBoost: {
		ID: UpgradeExpBoost, Name: "Quick Learner", Description: "+5% EXP gain per level", Category: "Growth",
		MaxLevel: 10, BaseCost: 120, CostMultiplier: 1.8, PerLevel: 0.05,
	},
	UpgradeRevival: {
		ID: UpgradeRevival, Name: "Second Chance", Description: "Revive once per run with 30% HP", Category: "Survival",
		MaxLevel: 1, BaseCost: 1000, CostMultiplier: 1, PerLevel: 0.3,
	},
	UpgradeStartingDamage: {
		ID: UpgradeStartingDamage, Name: "Warrior Training", Description: "+5% damage for first 3 days", Category: "Starting Bonus",
		MaxLevel: 5, BaseCost: 200, CostMultiplier: 1.8, PerLevel: 0.05,
	},
	UpgradeDashCooldown: {
		ID: UpgradeDashCooldown, Name: "Dash Mastery", Description: "-0.5s Dash cooldown per level", Category: "Skills",
		MaxLevel: 6, BaseCost: 150, CostMultiplier: 1.6, PerLevel: 0.5,
	},
	UpgradeSpinRadius: {
		ID: UpgradeSpinRadius, Name: "Whirlwind", Description: "+0.3 Spin Attack radius per level", Category: "Skills",
		MaxLevel: 5, BaseCost: 150, CostMultiplier: 1.6, PerLevel: 0.3,
	},
	UpgradeAttackSpeed: {
		ID: UpgradeAttackSpeed, Name: "Rapid Strikes", Description: "-5% Attack cooldown per level", Category: "Combat",
		MaxLevel: 8, BaseCost: 120, CostMultiplier: 1.7, PerLevel: 0.05,
	},
	UpgradeExplosiveKills: {
		ID: UpgradeExplosiveKills, Name: "Explosive Finale", Description: "10% chance enemies explode on death", Category: "Special",
		MaxLevel: 5, BaseCost: 300, CostMultiplier: 2.0, PerLevel: 0.1,
	},
	UpgradeTreasureHunter: {
		ID: UpgradeTreasureHunter, Name: "Treasure Hunter", Description: "+15% chance for rare drops", Category: "Economy",
		MaxLevel: 5, BaseCost: 250, CostMultiplier: 1.9, PerLevel: 0.15,
	},
	UpgradeVampiricStart: {
		ID: UpgradeVampiricStart, Name: "Vampiric Aura", Description: "Start with 2% lifesteal", Category: "Starting Bonus",
		MaxLevel: 3, BaseCost: 400, CostMultiplier: 2.5, PerLevel: 0.02,
	},
	UpgradeTimeWarp: {
		ID: UpgradeTimeWarp, Name: "Time Warp", Description: "-3 seconds per day duration", Category: "Survival",
		MaxLevel: 5, BaseCost: 200, CostMultiplier: 1.8, PerLevel: 3,
	},
	UpgradeMonsterMagnet: {
		ID: UpgradeMonsterMagnet, Name: "Monster Magnet", Description: "+20% monster spawn rate (more EXP!)", Category: "Growth",
		MaxLevel: 5, BaseCost: 150, CostMultiplier: 1.7, PerLevel: 0.2,
	},
}

var UpgradeCategories = []string{"Stats", "Combat", "Skills", "Starting Bonus", "Economy", "Growth", "Survival", "Special"}

// UpgradeOrder is the shop display order.
var UpgradeOrder = []UpgradeID{
	UpgradeHP, UpgradeAttack, UpgradeDefense, UpgradeSpeed, UpgradeCrit,
	UpgradeStartingHealing, UpgradeCoinMagnet, UpgradeExpBoost, UpgradeRevival,
	UpgradeStartingDamage, UpgradeDashCooldown, UpgradeSpinRadius, UpgradeAttackSpeed,
	UpgradeExplosiveKills, UpgradeTreasureHunter, UpgradeVampiricStart, UpgradeTimeWarp,
	UpgradeMonsterMagnet,
}
