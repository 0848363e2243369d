package catalog

// ========================================
// LEVEL-UP STAT CHOICES
// ========================================

// StatChoice is a generic stat bump offered on level-up. They are always
// available and back-fill the prompt when the pool of unowned grants runs dry.
type StatChoice struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Desc  string    `json:"desc"`
	Delta StatDelta `json:"delta"`
}

var StatChoices = []StatChoice{
	{ID: "atk", Name: "Power Strike", Desc: "ATK +5", Delta: StatDelta{StatAttack: 5}},
	{ID: "def", Name: "Iron Skin", Desc: "DEF +3", Delta: StatDelta{StatDefense: 3}},
	{ID: "hp", Name: "Vitality", Desc: "Max HP +20", Delta: StatDelta{StatMaxHP: 20}},
	{ID: "spd", Name: "Swift Foot", Desc: "SPD +10%", Delta: StatDelta{StatSpeed: 0.1}},
	{ID: "crit", Name: "Precision", Desc: "CRIT +5%", Delta: StatDelta{StatCrit: 0.05}},
}

// Items are stronger stat bumps that join the level-up pool.
var Items = []StatChoice{
	{ID: "sword", Name: "Sharp Blade", Desc: "ATK +10", Delta: StatDelta{StatAttack: 10}},
	{ID: "shield", Name: "Steel Shield", Desc: "DEF +8", Delta: StatDelta{StatDefense: 8}},
	{ID: "ring", Name: "Crit Ring", Desc: "CRIT +8%", Delta: StatDelta{StatCrit: 0.08}},
	{ID: "boots", Name: "Wind Boots", Desc: "SPD +15%", Delta: StatDelta{StatSpeed: 0.15}},
}
