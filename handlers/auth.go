package handlers

import (
	"cfb-trends-go/interfaces"
	"cfb-trends-go/logging"
	"cfb-trends-go/middleware"
	"cfb-trends-go/models"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxTokenRequestBytes = 4 << 10

// AuthHandler issues admin tokens
type AuthHandler struct {
	authService interfaces.AuthService
	logger      *logging.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService interfaces.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logging.WithPrefix("AuthHandler"),
	}
}

// IssueToken handles POST /auth/token with {"apiKey": "..."}
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TokenRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxTokenRequestBytes)).Decode(&req); err != nil {
		middleware.WriteError(w, r, start, http.StatusBadRequest, "invalid JSON")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		middleware.WriteError(w, r, start, http.StatusBadRequest, "apiKey is required")
		return
	}

	token, err := h.authService.IssueToken(req.APIKey)
	if err != nil {
		h.logger.Warnf("Token request from %s rejected: %v", r.RemoteAddr, err)
		middleware.WriteError(w, r, start, http.StatusUnauthorized, "invalid API key")
		return
	}

	middleware.WriteJSON(w, r, start, http.StatusOK, token)
}
