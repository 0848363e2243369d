package progression

// ========================================
// RUN SETTLEMENT
// ========================================

// RunResult is what a finished run hands to the account.
type RunResult struct {
	RunID       string `json:"runId"`
	Day         int    `json:"day"`
	Kills       int    `json:"kills"`
	Level       int    `json:"level"`
	CoinsEarned int    `json:"coinsEarned"`
}

// RewardExp is the account experience a run is worth.
func RewardExp(r RunResult) int {
	exp := r.Day*10 + r.Kills*5 + r.Level*20
	if exp < 0 {
		return 0
	}
	return exp
}

// Settle folds a run into the account. A run id that was already settled is
// ignored, so repeated end-of-run calls never double count. Returns whether
// anything changed.
func (a *Account) Settle(r RunResult) bool {
	if r.RunID != "" && r.RunID == a.LastRunID {
		return false
	}
	a.LastRunID = r.RunID
	a.Credit(r.CoinsEarned)
	a.TotalRuns++
	if r.Kills > 0 {
		a.TotalKills += r.Kills
	}
	if r.Day > a.HighestDay {
		a.HighestDay = r.Day
	}

	a.Exp += RewardExp(r)
	for a.Exp >= a.Level*100 {
		a.Exp -= a.Level * 100
		a.Level++
	}
	return true
}
