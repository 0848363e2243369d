package survivor

// HitCooldowns rate-limits repeated hits from one effect instance on one
// monster. Every auto-skill that touches monsters more than once shares it.
type HitCooldowns struct {
	left map[hitKey]float64
}

type hitKey struct {
	instance int
	monster  int
}

func newHitCooldowns() *HitCooldowns {
	return &HitCooldowns{left: make(map[hitKey]float64)}
}

func (h *HitCooldowns) Ready(instance, monster int) bool {
	return h.left[hitKey{instance, monster}] <= 0
}

func (h *HitCooldowns) Mark(instance, monster int, cooldown float64) {
	h.left[hitKey{instance, monster}] = cooldown
}

func (h *HitCooldowns) Tick(dt float64) {
	for k, v := range h.left {
		v -= dt
		if v <= 0 {
			delete(h.left, k)
			continue
		}
		h.left[k] = v
	}
}

// Forget drops every entry for a monster that left the run.
func (h *HitCooldowns) Forget(monster int) {
	for k := range h.left {
		if k.monster == monster {
			delete(h.left, k)
		}
	}
}

func (h *HitCooldowns) Len() int { return len(h.left) }
