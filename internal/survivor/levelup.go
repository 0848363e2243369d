package survivor

import (
	"math/rand"

	"voxelsurvivor/internal/catalog"
)

type ChoiceKind string

const (
	ChoiceStat         ChoiceKind = "stat"
	ChoiceItem         ChoiceKind = "item"
	ChoiceAutoSkill    ChoiceKind = "autoSkill"
	ChoicePassive      ChoiceKind = "passive"
	ChoiceSkillUpgrade ChoiceKind = "skillUpgrade"
)

// ChoiceEffect is what picking a choice does. Exactly one of the grant types
// below.
type ChoiceEffect interface {
	choiceEffect()
}

type StatBoost struct{ Delta catalog.StatDelta }
type AutoSkillGrant struct{ ID catalog.AutoSkillID }
type PassiveGrant struct{ ID catalog.PassiveID }
type UpgradeGrant struct{ ID catalog.SkillUpgradeID }

func (StatBoost) choiceEffect()      {}
func (AutoSkillGrant) choiceEffect() {}
func (PassiveGrant) choiceEffect()   {}
func (UpgradeGrant) choiceEffect()   {}

// Choice is one card of the level-up prompt.
type Choice struct {
	ID     string       `json:"id" msgpack:"id"`
	Kind   ChoiceKind   `json:"kind" msgpack:"kind"`
	Name   string       `json:"name" msgpack:"name"`
	Desc   string       `json:"desc" msgpack:"desc"`
	Effect ChoiceEffect `json:"-" msgpack:"-"`
}

func statChoice(kind ChoiceKind, s catalog.StatChoice) Choice {
	return Choice{
		ID:     string(kind) + ":" + s.ID,
		Kind:   kind,
		Name:   s.Name,
		Desc:   s.Desc,
		Effect: StatBoost{Delta: s.Delta},
	}
}

// choicePool lists everything offerable to this run: unowned grants plus
// items, in catalog order.
func choicePool(run *Run) []Choice {
	var pool []Choice
	for _, id := range catalog.AutoSkillOrder {
		if run.AutoSkills[id] {
			continue
		}
		def := catalog.AutoSkills[id]
		pool = append(pool, Choice{ID: "auto:" + string(id), Kind: ChoiceAutoSkill, Name: def.Name, Desc: def.Desc, Effect: AutoSkillGrant{ID: id}})
	}
	for _, id := range catalog.PassiveOrder {
		if run.Passives[id] {
			continue
		}
		def := catalog.Passives[id]
		pool = append(pool, Choice{ID: "passive:" + string(id), Kind: ChoicePassive, Name: def.Name, Desc: def.Desc, Effect: PassiveGrant{ID: id}})
	}
	for _, id := range catalog.SkillUpgradeOrder {
		if run.SkillUpgrades[id] {
			continue
		}
		def := catalog.SkillUpgrades[id]
		pool = append(pool, Choice{ID: "upgrade:" + string(id), Kind: ChoiceSkillUpgrade, Name: def.Name, Desc: def.Desc, Effect: UpgradeGrant{ID: id}})
	}
	for _, it := range catalog.Items {
		pool = append(pool, statChoice(ChoiceItem, it))
	}
	for _, s := range catalog.StatChoices {
		pool = append(pool, statChoice(ChoiceStat, s))
	}
	return pool
}

// rollChoices draws n distinct choices. Generic stat boosts back-fill the
// prompt when the pool is short.
func rollChoices(run *Run, n int, rng *rand.Rand) []Choice {
	pool := choicePool(run)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	seen := make(map[string]bool, len(pool))
	for _, c := range pool {
		seen[c.ID] = true
	}
	for _, s := range catalog.StatChoices {
		if len(pool) >= n {
			break
		}
		c := statChoice(ChoiceStat, s)
		if !seen[c.ID] {
			pool = append(pool, c)
			seen[c.ID] = true
		}
	}
	return pool
}

// applyChoice resolves the grant. Luck pays its crit bonus once on pickup.
func applyChoice(run *Run, skills *AutoSkills, c Choice) bool {
	switch e := c.Effect.(type) {
	case StatBoost:
		run.ApplyStats(e.Delta)
	case AutoSkillGrant:
		if run.AutoSkills[e.ID] || !skills.Acquire(e.ID) {
			return false
		}
		run.AutoSkills[e.ID] = true
	case PassiveGrant:
		if run.Passives[e.ID] {
			return false
		}
		run.Passives[e.ID] = true
		if e.ID == catalog.PassiveLuck {
			run.ApplyStats(catalog.StatDelta{catalog.StatCrit: catalog.Passives[e.ID].Value})
		}
	case UpgradeGrant:
		if run.SkillUpgrades[e.ID] {
			return false
		}
		run.SkillUpgrades[e.ID] = true
	default:
		return false
	}
	return true
}
