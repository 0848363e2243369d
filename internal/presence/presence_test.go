package presence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"voxelsurvivor/internal/survivor"
)

type fixedLister []Player

func (f fixedLister) Online() []Player { return append([]Player(nil), f...) }

func TestOnlineOrdersDeepestRunFirst(t *testing.T) {
	svc := NewService(fixedLister{
		{AccountID: "u_a", Phase: survivor.PhaseLobby},
		{AccountID: "u_b", Phase: survivor.PhasePlaying, Day: 4, Kills: 10},
		{AccountID: "u_c", Phase: survivor.PhasePaused, Day: 4, Kills: 30},
		{AccountID: "u_d", Phase: survivor.PhaseGameOver, Day: 2},
	})
	rec := httptest.NewRecorder()
	svc.OnlineHandler(rec, httptest.NewRequest(http.MethodGet, "/api/online", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp onlineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 4 || resp.Playing != 3 {
		t.Fatalf("count %d playing %d, want 4 and 3", resp.Count, resp.Playing)
	}
	want := []string{"u_c", "u_b", "u_d", "u_a"}
	for i, id := range want {
		if resp.Players[i].AccountID != id {
			t.Fatalf("players[%d] = %s, want %s", i, resp.Players[i].AccountID, id)
		}
	}
}

func TestOnlineEmptyAndMethod(t *testing.T) {
	svc := NewService(fixedLister(nil))

	rec := httptest.NewRecorder()
	svc.OnlineHandler(rec, httptest.NewRequest(http.MethodGet, "/api/online", nil))
	if body := rec.Body.String(); body != "{\"count\":0,\"playing\":0,\"players\":[]}\n" {
		t.Fatalf("empty body = %q", body)
	}

	rec = httptest.NewRecorder()
	svc.OnlineHandler(rec, httptest.NewRequest(http.MethodPost, "/api/online", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST status = %d, want 405", rec.Code)
	}
}
