package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"voxelsurvivor/internal/data"
)

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func userCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			return c.Value
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return ""
}

func TestRegisterThenLogin(t *testing.T) {
	a := NewAuth(data.NewMemoryStore())

	rec := post(a.RegisterHandler, `{"nickname":" Max "}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register status = %d, want 200", rec.Code)
	}
	var reg registerResponse
	if err := json.NewDecoder(rec.Body).Decode(&reg); err != nil {
		t.Fatal(err)
	}
	if reg.Nickname != "Max" || reg.Tag < 1 || reg.Tag > 9999 || !strings.HasPrefix(reg.UserID, "u_") {
		t.Fatalf("register response %+v", reg)
	}
	if got := userCookie(t, rec); got != reg.UserID {
		t.Fatalf("cookie = %q, want %q", got, reg.UserID)
	}

	body, _ := json.Marshal(loginRequest{Nickname: "Max", Tag: reg.Tag})
	rec = post(a.LoginHandler, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200", rec.Code)
	}
	if got := userCookie(t, rec); got != reg.UserID {
		t.Fatalf("login cookie = %q, want %q", got, reg.UserID)
	}
}

func TestRegisterAndLoginRejections(t *testing.T) {
	a := NewAuth(data.NewMemoryStore())
	tests := []struct {
		name string
		h    http.HandlerFunc
		body string
		want int
	}{
		{"bad json", a.RegisterHandler, `{`, http.StatusBadRequest},
		{"blank nickname", a.RegisterHandler, `{"nickname":"  "}`, http.StatusBadRequest},
		{"long nickname", a.RegisterHandler, `{"nickname":"` + strings.Repeat("x", 33) + `"}`, http.StatusBadRequest},
		{"login without tag", a.LoginHandler, `{"nickname":"Max"}`, http.StatusBadRequest},
		{"unknown user", a.LoginHandler, `{"nickname":"Max","tag":12}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := post(tt.h, tt.body); rec.Code != tt.want {
			t.Fatalf("%s: status = %d, want %d", tt.name, rec.Code, tt.want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	a.RegisterHandler(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET register status = %d, want 405", rec.Code)
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	a := NewAuth(data.NewMemoryStore())
	rec := post(a.LogoutHandler, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
}

func TestUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := UserID(req); err == nil {
		t.Fatalf("missing cookie accepted")
	}
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "u_1"})
	if id, err := UserID(req); err != nil || id != "u_1" {
		t.Fatalf("UserID = %q, %v", id, err)
	}
}
