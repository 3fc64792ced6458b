package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"appointment-planner-api/internal/auth"
	"appointment-planner-api/internal/logger"
	"appointment-planner-api/internal/model"
	"appointment-planner-api/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}
	if body.Email == "" || body.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(body.Password) < 8 {
		respondMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(body.Password)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "An error occurred during registration")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        body.Email,
		PasswordHash: hash,
		Name:         body.Name,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			respondMessage(w, http.StatusConflict, "User with this email already exists")
			return
		}
		logger.Error().Err(err).Msg("create user")
		respondMessage(w, http.StatusInternalServerError, "An error occurred during registration")
		return
	}

	h.respondTokens(w, r, u, http.StatusCreated, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondInvalidJSON(w)
		return
	}
	if body.Email == "" || body.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), body.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, body.Password) {
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondTokens(w, r, u, http.StatusOK, "Login successful")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken rotates a live refresh token and issues a fresh access token.
// A revoked or expired token is rejected and, on a revoked one, every token
// for that user is invalidated since reuse suggests theft.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var body refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		respondMessage(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	rt, err := h.store.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(body.RefreshToken))
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if rt.Revoked {
		_ = h.store.RevokeAllRefreshTokens(r.Context(), rt.UserID)
		respondMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	if time.Now().After(rt.ExpiresAt) {
		respondMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "An error occurred while refreshing token")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, u.ID, newHash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		logger.Error().Err(err).Msg("rotate refresh token")
		respondMessage(w, http.StatusInternalServerError, "An error occurred while refreshing token")
		return
	}

	tok, err := auth.IssueToken(u.ID, u.Email, h.secret)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "An error occurred while refreshing token")
		return
	}

	respond(w, http.StatusOK, map[string]any{
		"message":       "Token refreshed successfully",
		"token":         tok,
		"refresh_token": newRaw,
	})
}

func (h *Handler) respondTokens(w http.ResponseWriter, r *http.Request, u *model.User, status int, message string) {
	tok, err := auth.IssueToken(u.ID, u.Email, h.secret)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, refreshHash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		logger.Error().Err(err).Msg("store refresh token")
		respondMessage(w, http.StatusInternalServerError, "An error occurred during authentication")
		return
	}

	respond(w, status, map[string]any{
		"message":       message,
		"token":         tok,
		"refresh_token": rawRefresh,
		"user": map[string]string{
			"id":    u.ID,
			"email": u.Email,
			"name":  u.Name,
		},
	})
}
