package catalog

// ========================================
// ARTIFACTS
// ========================================

type ArtifactKind string

const (
	ArtifactCrystal  ArtifactKind = "crystal"
	ArtifactChest    ArtifactKind = "chest"
	ArtifactFountain ArtifactKind = "fountain"
	ArtifactAltar    ArtifactKind = "altar"
	ArtifactGrass    ArtifactKind = "grass"
)

// ArtifactEffect selects what collecting an artifact does.
type ArtifactEffect string

const (
	EffectExp     ArtifactEffect = "exp"
	EffectHeal    ArtifactEffect = "heal"
	EffectLevelUp ArtifactEffect = "levelup"
	EffectRandom  ArtifactEffect = "random"
)

type ArtifactDef struct {
	Kind   ArtifactKind   `json:"kind"`
	Name   string         `json:"name"`
	Effect ArtifactEffect `json:"effect"`
	Value  int            `json:"value,omitempty"`
}

var Artifacts = map[ArtifactKind]ArtifactDef{
	ArtifactCrystal:  {Kind: ArtifactCrystal, Name: "EXP Crystal", Effect: EffectExp, Value: 50},
	ArtifactChest:    {Kind: ArtifactChest, Name: "Treasure Chest", Effect: EffectRandom},
	ArtifactFountain: {Kind: ArtifactFountain, Name: "Healing Fountain", Effect: EffectHeal, Value: 30},
	ArtifactAltar:    {Kind: ArtifactAltar, Name: "Level Altar", Effect: EffectLevelUp},
	ArtifactGrass:    {Kind: ArtifactGrass, Name: "Glowing Grass", Effect: EffectExp, Value: 10},
}

// ChestRoll bounds the randomized chest reward: Base + rand[0, Spread).
type ChestRoll struct {
	ExpChance   float64
	ExpBase     int
	ExpSpread   int
	CoinsBase   int
	CoinsSpread int
}

var Chest = ChestRoll{ExpChance: 0.5, ExpBase: 30, ExpSpread: 50, CoinsBase: 10, CoinsSpread: 30}
