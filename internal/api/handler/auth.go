package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/hszk-dev/tubedigest/internal/api/middleware"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler issues admin tokens against the configured credentials.
type AuthHandler struct {
	issuer   *middleware.TokenIssuer
	username string
	password string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(issuer *middleware.TokenIssuer, username, password string) *AuthHandler {
	return &AuthHandler{issuer: issuer, username: username, password: password}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) == 1
	if !userOK || !passOK {
		Error(w, http.StatusUnauthorized, "invalid_credentials", "Unknown username or password")
		return
	}

	token, err := h.issuer.Issue(req.Username)
	if err != nil {
		Error(w, http.StatusInternalServerError, "token_error", "Failed to issue token")
		return
	}

	JSON(w, http.StatusOK, LoginResponse{Token: token})
}
