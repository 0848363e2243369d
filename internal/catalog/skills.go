package catalog

// ========================================
// ACTIVE SKILLS
// ========================================

type SkillID string

const (
	SkillSpin SkillID = "spinAttack"
	SkillDash SkillID = "dash"
	SkillHeal SkillID = "heal"
)

type SkillDef struct {
	ID          SkillID `json:"id"`
	Name        string  `json:"name"`
	Cooldown    float64 `json:"cooldown"`
	DamageMul   float64 `json:"damage,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Distance    float64 `json:"distance,omitempty"`
	HealPercent float64 `json:"healPercent,omitempty"`
}

var Skills = map[SkillID]SkillDef{
	SkillSpin: {ID: SkillSpin, Name: "Spin Attack", Cooldown: 5, DamageMul: 1.5, Radius: 3},
	SkillDash: {ID: SkillDash, Name: "Dash", Cooldown: 8, Distance: 5},
	SkillHeal: {ID: SkillHeal, Name: "Healing", Cooldown: 15, HealPercent: 0.3},
}

// ========================================
// AUTO SKILLS
// ========================================

type AutoSkillID string

const (
	AutoOrbital        AutoSkillID = "orbital"
	AutoFireball       AutoSkillID = "fireball"
	AutoLightning      AutoSkillID = "lightning"
	AutoPoisonAura     AutoSkillID = "poisonAura"
	AutoFrostNova      AutoSkillID = "frostNova"
	AutoSpinningBlades AutoSkillID = "spinningBlades"
)

// AutoEffect is the closed set of auto-skill behaviours. Each variant carries
// only the parameters its handler reads.
type AutoEffect interface {
	autoEffect()
}

// Orbit revolves Count hitboxes around the player.
type Orbit struct {
	Damage       float64 `json:"damage"`
	Count        int     `json:"count"`
	Radius       float64 `json:"radius"`
	AngularSpeed float64 `json:"speed"`
	HitRadius    float64 `json:"hitRadius"`
	HitCooldown  float64 `json:"hitCooldown"`
}

// Projectile fires at the nearest monster in Range.
type Projectile struct {
	Damage    float64 `json:"damage"`
	Cooldown  float64 `json:"cooldown"`
	Speed     float64 `json:"speed"`
	Range     float64 `json:"range"`
	Lifetime  float64 `json:"lifetime"`
	HitRadius float64 `json:"hitRadius"`
}

// Chain strikes a random monster and arcs to the nearest unhit ones.
type Chain struct {
	Damage      float64 `json:"damage"`
	Cooldown    float64 `json:"cooldown"`
	ChainCount  int     `json:"chainCount"`
	ChainRange  float64 `json:"chainRange"`
	ChainFactor float64 `json:"chainFactor"`
}

// Aura damages everything in Radius every TickRate seconds.
type Aura struct {
	Damage   float64 `json:"damage"`
	TickRate float64 `json:"tickRate"`
	Radius   float64 `json:"radius"`
}

// Nova bursts around the player and slows what it hits.
type Nova struct {
	Damage       float64 `json:"damage"`
	Cooldown     float64 `json:"cooldown"`
	Radius       float64 `json:"radius"`
	SlowFactor   float64 `json:"slowAmount"`
	SlowDuration float64 `json:"slowDuration"`
}

func (Orbit) autoEffect()      {}
func (Projectile) autoEffect() {}
func (Chain) autoEffect()      {}
func (Aura) autoEffect()       {}
func (Nova) autoEffect()       {}

type AutoSkillDef struct {
	ID     AutoSkillID `json:"id"`
	Name   string      `json:"name"`
	Desc   string      `json:"desc"`
	Effect AutoEffect  `json:"effect"`
}

var AutoSkills = map[AutoSkillID]AutoSkillDef{
	AutoOrbital: {
		ID: AutoOrbital, Name: "Orbital", Desc: "Rotating orbs that damage enemies on contact",
		Effect: Orbit{Damage: 8, Count: 2, Radius: 2.5, AngularSpeed: 2, HitRadius: 1.2, HitCooldown: 0.5},
	},
	AutoFireball: {
		ID: AutoFireball, Name: "Fireball", Desc: "Shoots fireballs at nearest enemy every 3s",
		Effect: Projectile{Damage: 15, Cooldown: 3, Speed: 12, Range: 15, Lifetime: 3, HitRadius: 1.2},
	},
	AutoLightning: {
		ID: AutoLightning, Name: "Lightning", Desc: "Strikes random enemy with chain lightning",
		Effect: Chain{Damage: 20, Cooldown: 4, ChainCount: 3, ChainRange: 5, ChainFactor: 0.7},
	},
	AutoPoisonAura: {
		ID: AutoPoisonAura, Name: "Poison Aura", Desc: "Poisons nearby enemies over time",
		Effect: Aura{Damage: 3, TickRate: 0.5, Radius: 4},
	},
	AutoFrostNova: {
		ID: AutoFrostNova, Name: "Frost Nova", Desc: "Freezes and damages nearby enemies",
		Effect: Nova{Damage: 12, Cooldown: 5, Radius: 5, SlowFactor: 0.5, SlowDuration: 2},
	},
	AutoSpinningBlades: {
		ID: AutoSpinningBlades, Name: "Spinning Blades", Desc: "Blades orbit around you dealing damage",
		Effect: Orbit{Damage: 6, Count: 3, Radius: 3.5, AngularSpeed: 3, HitRadius: 1.5, HitCooldown: 0.3},
	},
}

// AutoSkillOrder fixes iteration order so ticks are reproducible.
var AutoSkillOrder = []AutoSkillID{
	AutoOrbital, AutoFireball, AutoLightning, AutoPoisonAura, AutoFrostNova, AutoSpinningBlades,
}

// ========================================
// PASSIVES
// ========================================

type PassiveID string

const (
	PassiveLifesteal    PassiveID = "lifesteal"
	PassiveThorns       PassiveID = "thorns"
	PassiveMagnet       PassiveID = "magnet"
	PassiveRegeneration PassiveID = "regeneration"
	PassiveLuck         PassiveID = "luck"
	PassiveBerserk      PassiveID = "berserk"
)

type PassiveDef struct {
	ID        PassiveID `json:"id"`
	Name      string    `json:"name"`
	Desc      string    `json:"desc"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold,omitempty"`
}

var Passives = map[PassiveID]PassiveDef{
	PassiveLifesteal:    {ID: PassiveLifesteal, Name: "Lifesteal", Desc: "Heal 5% of damage dealt", Value: 0.05},
	PassiveThorns:       {ID: PassiveThorns, Name: "Thorns", Desc: "Reflect 20% damage to attackers", Value: 0.2},
	PassiveMagnet:       {ID: PassiveMagnet, Name: "Magnet", Desc: "Increase pickup range by 50%", Value: 1.5},
	PassiveRegeneration: {ID: PassiveRegeneration, Name: "Regeneration", Desc: "Recover 1 HP per second", Value: 1},
	PassiveLuck:         {ID: PassiveLuck, Name: "Luck", Desc: "Increase critical rate by 10%", Value: 0.1},
	PassiveBerserk:      {ID: PassiveBerserk, Name: "Berserk", Desc: "ATK +30% when HP below 50%", Value: 0.3, Threshold: 0.5},
}

var PassiveOrder = []PassiveID{
	PassiveLifesteal, PassiveThorns, PassiveMagnet, PassiveRegeneration, PassiveLuck, PassiveBerserk,
}

// ========================================
// SKILL UPGRADES
// ========================================

type SkillUpgradeID string

const (
	UpgradeSpinMaster  SkillUpgradeID = "spinMaster"
	UpgradeDashMaster  SkillUpgradeID = "dashMaster"
	UpgradeMultiStrike SkillUpgradeID = "multiStrike"
)

type SkillUpgradeDef struct {
	ID                SkillUpgradeID `json:"id"`
	Name              string         `json:"name"`
	Desc              string         `json:"desc"`
	Target            SkillID        `json:"target,omitempty"`
	RadiusBonus       float64        `json:"radiusBonus,omitempty"`
	DamageBonus       float64        `json:"damageBonus,omitempty"`
	CooldownReduction float64        `json:"cooldownReduction,omitempty"`
	DistanceBonus     float64        `json:"distanceBonus,omitempty"`
	AttackCount       int            `json:"attackCount,omitempty"`
}

var SkillUpgrades = map[SkillUpgradeID]SkillUpgradeDef{
	UpgradeSpinMaster: {
		ID: UpgradeSpinMaster, Name: "Spin Master", Desc: "Spin Attack: Range +1, Damage +20%",
		Target: SkillSpin, RadiusBonus: 1, DamageBonus: 0.2,
	},
	UpgradeDashMaster: {
		ID: UpgradeDashMaster, Name: "Dash Master", Desc: "Dash: Cooldown -2s, Distance +2",
		Target: SkillDash, CooldownReduction: 2, DistanceBonus: 2,
	},
	UpgradeMultiStrike: {
		ID: UpgradeMultiStrike, Name: "Multi Strike", Desc: "Basic attacks hit twice",
		AttackCount: 2,
	},
}

var SkillUpgradeOrder = []SkillUpgradeID{UpgradeSpinMaster, UpgradeDashMaster, UpgradeMultiStrike}
