package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"voxelsurvivor/internal/data"
)

// CookieName carries the account id between the lobby API and the arena.
const CookieName = "user_id"

type Auth struct {
	Store data.Store
}

func NewAuth(store data.Store) *Auth {
	return &Auth{Store: store}
}

type registerRequest struct {
	Nickname string `json:"nickname"`
}

type registerResponse struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Tag      int    `json:"tag"`
}

type loginRequest struct {
	Nickname string `json:"nickname"`
	Tag      int    `json:"tag"`
}

// RegisterHandler creates an account with a nickname and an auto-generated tag.
func (a *Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	nick := strings.TrimSpace(req.Nickname)
	if nick == "" {
		http.Error(w, "empty nickname", http.StatusBadRequest)
		return
	}
	if len(nick) > 32 {
		http.Error(w, "nickname too long", http.StatusBadRequest)
		return
	}

	u, err := a.Store.Register(r.Context(), nick)
	if err != nil {
		log.Println("register:", err)
		http.Error(w, "failed to create user", http.StatusInternalServerError)
		return
	}

	setUserCookie(w, u.ID)
	writeUser(w, u)
}

// LoginHandler sets the cookie for an existing nickname+tag combo.
func (a *Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	nick := strings.TrimSpace(req.Nickname)
	if nick == "" || req.Tag <= 0 {
		http.Error(w, "invalid credentials", http.StatusBadRequest)
		return
	}

	u, err := a.Store.FindUser(r.Context(), nick, req.Tag)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		log.Println("login:", err)
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	setUserCookie(w, u.ID)
	writeUser(w, u)
}

// LogoutHandler expires the cookie. The account itself stays saved.
func (a *Auth) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func setUserCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    userID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func writeUser(w http.ResponseWriter, u data.User) {
	resp := registerResponse{
		UserID:   u.ID,
		Nickname: u.Nickname,
		Tag:      u.Tag,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// UserID extracts the user_id cookie.
func UserID(r *http.Request) (string, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", errors.New("missing user id cookie")
	}
	return c.Value, nil
}
