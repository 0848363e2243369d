package catalog

import "sort"

// ========================================
// MONSTERS
// ========================================

type MonsterType string

const (
	MonsterSlime    MonsterType = "slime"
	MonsterGoblin   MonsterType = "goblin"
	MonsterWolf     MonsterType = "wolf"
	MonsterSkeleton MonsterType = "skeleton"
	MonsterOrc      MonsterType = "orc"
	MonsterMage     MonsterType = "mage"
)

type MonsterDef struct {
	Type   MonsterType `json:"type"`
	Name   string      `json:"name"`
	HP     float64     `json:"hp"`
	Attack float64     `json:"atk"`
	Speed  float64     `json:"speed"`
	Exp    int         `json:"exp"`
	Coins  int         `json:"coins"`
	Size   float64     `json:"size"` // Also the contact radius on the ground plane
	MinDay int         `json:"minDay"`
}

var Monsters = map[MonsterType]MonsterDef{
	MonsterSlime: {
		Type: MonsterSlime, Name: "Slime",
		HP: 20, Attack: 5, Speed: 2, Exp: 10, Coins: 5, Size: 0.8, MinDay: 2,
	},
	MonsterGoblin: {
		Type: MonsterGoblin, Name: "Goblin",
		HP: 30, Attack: 8, Speed: 4, Exp: 15, Coins: 8, Size: 0.9, MinDay: 2,
	},
	MonsterWolf: {
		Type: MonsterWolf, Name: "Wolf",
		HP: 40, Attack: 12, Speed: 6, Exp: 20, Coins: 12, Size: 1.0, MinDay: 5,
	},
	MonsterSkeleton: {
		Type: MonsterSkeleton, Name: "Skeleton",
		HP: 50, Attack: 10, Speed: 3, Exp: 25, Coins: 15, Size: 1.1, MinDay: 5,
	},
	MonsterOrc: {
		Type: MonsterOrc, Name: "Orc",
		HP: 100, Attack: 20, Speed: 2.5, Exp: 40, Coins: 25, Size: 1.4, MinDay: 10,
	},
	MonsterMage: {
		Type: MonsterMage, Name: "Mage",
		HP: 60, Attack: 25, Speed: 3, Exp: 50, Coins: 30, Size: 1.0, MinDay: 10,
	},
}

// ========================================
// SPAWN RULES
// ========================================

// SpawnRule lists the monster pool that unlocks once the run reaches Day.
type SpawnRule struct {
	Day   int           `json:"day"`
	Types []MonsterType `json:"types"`
}

var SpawnRules = []SpawnRule{
	{Day: 2, Types: []MonsterType{MonsterSlime, MonsterGoblin}},
	{Day: 5, Types: []MonsterType{MonsterSlime, MonsterGoblin, MonsterWolf, MonsterSkeleton}},
	{Day: 10, Types: []MonsterType{MonsterSlime, MonsterGoblin, MonsterWolf, MonsterSkeleton, MonsterOrc, MonsterMage}},
	{Day: 15, Types: []MonsterType{MonsterGoblin, MonsterWolf, MonsterSkeleton, MonsterOrc, MonsterMage}},
}

// RuleForDay picks the rule with the highest threshold not above day.
func RuleForDay(rules []SpawnRule, day int) (SpawnRule, bool) {
	sorted := make([]SpawnRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Day > sorted[j].Day })
	for _, r := range sorted {
		if day >= r.Day {
			return r, true
		}
	}
	return SpawnRule{}, false
}

// AvailableTypes returns the spawnable monster types for day, honouring each
// type's own minimum day. The result may be empty.
func AvailableTypes(rules []SpawnRule, day int) []MonsterType {
	rule, ok := RuleForDay(rules, day)
	if !ok {
		return nil
	}
	out := make([]MonsterType, 0, len(rule.Types))
	for _, t := range rule.Types {
		def, ok := Monsters[t]
		if !ok || def.MinDay > day {
			continue
		}
		out = append(out, t)
	}
	return out
}
