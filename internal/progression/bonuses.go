package progression

import "voxelsurvivor/internal/catalog"

// StartingDamageDays is how long the startingDamage bonus lasts.
const StartingDamageDays = 3

// RunBonuses flattens the purchased upgrades into the multipliers and flags
// one run reads. Computed once at run start.
type RunBonuses struct {
	ExpMultiplier     float64 `json:"expMultiplier"`
	CoinMultiplier    float64 `json:"coinMultiplier"`
	Revival           bool    `json:"revival"`
	RevivalFraction   float64 `json:"revivalFraction"`
	EarlyDamage       float64 `json:"earlyDamage"` // Extra damage fraction during the first days
	DashCooldownCut   float64 `json:"dashCooldownCut"`
	SpinRadiusBonus   float64 `json:"spinRadiusBonus"`
	AttackCooldownMul float64 `json:"attackCooldownMul"`
	ExplosionChance   float64 `json:"explosionChance"`
	TreasureChance    float64 `json:"treasureChance"`
	Lifesteal         float64 `json:"lifesteal"`
	DayShortening     float64 `json:"dayShortening"`
	SpawnRate         float64 `json:"spawnRate"`
}

func (a *Account) Bonuses() RunBonuses {
	b := RunBonuses{
		ExpMultiplier:     1 + a.Bonus(catalog.UpgradeExpBoost),
		CoinMultiplier:    1 + a.Bonus(catalog.UpgradeCoinMagnet),
		Revival:           a.Upgrades[catalog.UpgradeRevival] > 0,
		RevivalFraction:   catalog.Upgrades[catalog.UpgradeRevival].PerLevel,
		EarlyDamage:       a.Bonus(catalog.UpgradeStartingDamage),
		DashCooldownCut:   a.Bonus(catalog.UpgradeDashCooldown),
		SpinRadiusBonus:   a.Bonus(catalog.UpgradeSpinRadius),
		AttackCooldownMul: 1 - a.Bonus(catalog.UpgradeAttackSpeed),
		ExplosionChance:   a.Bonus(catalog.UpgradeExplosiveKills),
		TreasureChance:    a.Bonus(catalog.UpgradeTreasureHunter),
		Lifesteal:         a.Bonus(catalog.UpgradeVampiricStart),
		DayShortening:     a.Bonus(catalog.UpgradeTimeWarp),
		SpawnRate:         1 + a.Bonus(catalog.UpgradeMonsterMagnet),
	}
	if b.AttackCooldownMul < 0.1 {
		b.AttackCooldownMul = 0.1
	}
	return b
}

// StartingStats is the base stat block plus the stat upgrades. The
// startingHealing upgrade adds to starting max HP as well as current HP.
func (a *Account) StartingStats() catalog.Stats {
	return catalog.BaseStats.Apply(catalog.StatDelta{
		catalog.StatMaxHP:   a.Bonus(catalog.UpgradeHP) + a.Bonus(catalog.UpgradeStartingHealing),
		catalog.StatAttack:  a.Bonus(catalog.UpgradeAttack),
		catalog.StatDefense: a.Bonus(catalog.UpgradeDefense),
		catalog.StatSpeed:   a.Bonus(catalog.UpgradeSpeed),
		catalog.StatCrit:    a.Bonus(catalog.UpgradeCrit),
	})
}
