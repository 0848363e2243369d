package audio

import "time"

type recipe struct {
	tones []tone
	loop  bool
}

const ms = time.Millisecond

func blip(freq float64, d time.Duration, w Wave) tone {
	return tone{freq: freq, dur: d, wave: w, gain: 0.8, attack: 5 * ms, release: d / 2}
}

func sweep(from, to float64, d time.Duration, w Wave) tone {
	return tone{freq: from, slide: to - from, dur: d, wave: w, gain: 0.8, attack: 5 * ms, release: d / 3}
}

func rest(d time.Duration) tone { return tone{dur: d, wave: Sine} }

// notes builds a melody line of equal-length sine notes.
func notes(d time.Duration, freqs ...float64) []tone {
	out := make([]tone, 0, len(freqs))
	for _, f := range freqs {
		if f == 0 {
			out = append(out, rest(d))
			continue
		}
		out = append(out, tone{freq: f, dur: d, wave: Sine, gain: 0.6, attack: 10 * ms, release: d / 2})
	}
	return out
}

var recipes = map[string]recipe{
	// combat
	"sfx_attack_1":           {tones: []tone{sweep(900, 300, 80*ms, Noise)}},
	"sfx_attack_2":           {tones: []tone{sweep(1000, 350, 80*ms, Noise)}},
	"sfx_attack_3":           {tones: []tone{sweep(1100, 400, 90*ms, Noise)}},
	"sfx_player_hit":         {tones: []tone{blip(110, 150*ms, Saw)}},
	"sfx_player_death":       {tones: []tone{sweep(440, 60, 900*ms, Saw)}},
	"sfx_player_heal":        {tones: notes(90*ms, 523, 659, 784)},
	"sfx_skill_spin":         {tones: []tone{sweep(200, 800, 350*ms, Saw)}},
	"sfx_skill_dash":         {tones: []tone{sweep(1500, 200, 200*ms, Noise)}},
	"sfx_orbital_hit":        {tones: []tone{blip(1320, 40*ms, Sine)}},
	"sfx_fireball_shoot":     {tones: []tone{sweep(300, 700, 150*ms, Square)}},
	"sfx_fireball_explosion": {tones: []tone{sweep(400, 40, 400*ms, Noise)}},
	"sfx_lightning_strike":   {tones: []tone{blip(3000, 60*ms, Noise), blip(2000, 120*ms, Noise)}},
	"sfx_poison_tick":        {tones: []tone{blip(180, 60*ms, Square)}},
	"sfx_frost_nova":         {tones: []tone{sweep(2000, 800, 300*ms, Sine)}},
	"sfx_blade_hit":          {tones: []tone{blip(1760, 35*ms, Square)}},
	"sfx_monster_hit":        {tones: []tone{blip(220, 50*ms, Square)}},
	"sfx_monster_death":      {tones: []tone{sweep(330, 80, 250*ms, Square)}},
	"sfx_monster_spawn":      {tones: []tone{sweep(60, 140, 200*ms, Saw)}},

	// progression
	"sfx_levelup":        {tones: notes(100*ms, 523, 659, 784, 1047)},
	"sfx_choice_select":  {tones: []tone{blip(880, 70*ms, Sine)}},
	"sfx_coin_collect":   {tones: notes(60*ms, 988, 1319)},
	"sfx_exp_collect":    {tones: []tone{blip(1568, 60*ms, Sine)}},
	"sfx_game_start":     {tones: notes(120*ms, 392, 523, 659, 784)},
	"sfx_day_change":     {tones: notes(200*ms, 440, 0, 440)},
	"sfx_warning_low_hp": {tones: []tone{blip(660, 120*ms, Square), rest(80 * ms), blip(660, 120*ms, Square)}},

	// music
	"bgm_lobby":          {loop: true, tones: notes(400*ms, 262, 330, 392, 330, 294, 349, 440, 349)},
	"bgm_gameplay_early": {loop: true, tones: notes(250*ms, 330, 392, 494, 392, 330, 0, 294, 0)},
	"bgm_gameplay_mid":   {loop: true, tones: notes(200*ms, 220, 262, 330, 262, 247, 294, 349, 294)},
	"bgm_gameplay_late":  {loop: true, tones: notes(150*ms, 147, 175, 220, 175, 139, 165, 208, 165)},
	"bgm_gameover":       {tones: notes(500*ms, 392, 349, 311, 262)},
}
