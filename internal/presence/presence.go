package presence

import (
	"encoding/json"
	"net/http"
	"sort"

	"voxelsurvivor/internal/survivor"
)

// Player is one connected account and how far its current run has got.
type Player struct {
	AccountID string         `json:"account_id"`
	Phase     survivor.Phase `json:"phase"`
	Day       int            `json:"day"`
	Level     int            `json:"level"`
	Kills     int            `json:"kills"`
}

// Lister reports who is connected right now.
type Lister interface {
	Online() []Player
}

type Service struct {
	Source Lister
}

func NewService(source Lister) *Service {
	return &Service{Source: source}
}

type onlineResponse struct {
	Count   int      `json:"count"`
	Playing int      `json:"playing"`
	Players []Player `json:"players"`
}

// OnlineHandler lists connected players, deepest run first.
func (s *Service) OnlineHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	players := s.Source.Online()
	sort.Slice(players, func(i, j int) bool {
		if players[i].Day != players[j].Day {
			return players[i].Day > players[j].Day
		}
		if players[i].Kills != players[j].Kills {
			return players[i].Kills > players[j].Kills
		}
		return players[i].AccountID < players[j].AccountID
	})

	resp := onlineResponse{Count: len(players), Players: players}
	for _, p := range players {
		if p.Phase != survivor.PhaseLobby {
			resp.Playing++
		}
	}
	if resp.Players == nil {
		resp.Players = []Player{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
