package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/good-yellow-bee/liveguide/internal/api/respond"
	"github.com/good-yellow-bee/liveguide/internal/metrics"
)

// Credentials is the single configured operator account.
type Credentials struct {
	Username     string
	PasswordHash string // bcrypt
}

// Handler handles authentication endpoints.
type Handler struct {
	creds          Credentials
	jwtService     *JWTService
	tokenService   *TokenService
	lockoutTracker *LockoutTracker
}

// NewHandler creates a new auth handler.
func NewHandler(creds Credentials, jwt *JWTService, lockout *LockoutTracker, refreshTTL time.Duration) *Handler {
	return &Handler{
		creds:          creds,
		jwtService:     jwt,
		tokenService:   NewTokenService(refreshTTL),
		lockoutTracker: lockout,
	}
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest is the request body for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest is the request body for logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login handles operator login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if req.Username == "" || req.Password == "" {
		respond.JSONError(w, respond.NewBadRequest("username and password required"))
		return
	}

	// Check lockout
	if h.lockoutTracker.IsLocked(req.Username) {
		remaining := h.lockoutTracker.RemainingLockoutTime(req.Username)
		log.Printf("login blocked: account %s locked for %v", req.Username, remaining)
		metrics.AuthAttemptsTotal.WithLabelValues("locked").Inc()
		respond.JSONError(w, respond.ErrAccountLocked)
		return
	}

	// Verify credentials. The bcrypt comparison runs even for a wrong
	// username so both failure paths cost the same.
	usernameOK := constantTimeEquals(req.Username, h.creds.Username)
	passwordErr := bcrypt.CompareHashAndPassword([]byte(h.creds.PasswordHash), []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		h.lockoutTracker.RecordFailure(req.Username)
		log.Printf("login failed: invalid credentials for %s", req.Username)
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		respond.JSONError(w, respond.ErrUnauthorized)
		return
	}

	// Clear lockout on success
	h.lockoutTracker.ClearFailures(req.Username)

	// Generate access token
	accessToken, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		log.Printf("login error: generate access token: %v", err)
		respond.JSONError(w, respond.ErrInternalServer)
		return
	}

	// Generate refresh token
	refreshToken, err := h.tokenService.CreateRefreshToken(req.Username)
	if err != nil {
		log.Printf("login error: generate refresh token: %v", err)
		respond.JSONError(w, respond.ErrInternalServer)
		return
	}

	log.Printf("login success: %s", req.Username)
	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	respond.OK(w, &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    h.jwtService.TTLSeconds(),
		TokenType:    "Bearer",
	})
}

// Refresh handles token refresh.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		respond.JSONError(w, respond.NewBadRequest("refresh_token required"))
		return
	}

	// Validate refresh token
	username, err := h.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		log.Printf("refresh failed: %v", err)
		respond.JSONError(w, respond.ErrInvalidToken)
		return
	}

	// Generate new access token
	accessToken, err := h.jwtService.GenerateToken(username)
	if err != nil {
		log.Printf("refresh error: generate access token: %v", err)
		respond.JSONError(w, respond.ErrInternalServer)
		return
	}

	// Rotate refresh token (revoke old, create new)
	newRefreshToken, err := h.tokenService.RotateRefreshToken(req.RefreshToken, username)
	if err != nil {
		log.Printf("refresh error: rotate refresh token: %v", err)
		respond.JSONError(w, respond.ErrInternalServer)
		return
	}

	log.Printf("token refresh success: %s", username)
	metrics.AuthTokensIssued.WithLabelValues("access").Inc()
	metrics.AuthTokensIssued.WithLabelValues("refresh").Inc()

	respond.OK(w, &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    h.jwtService.TTLSeconds(),
		TokenType:    "Bearer",
	})
}

// Logout handles operator logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSONError(w, respond.NewBadRequest("invalid request body"))
		return
	}

	if req.RefreshToken == "" {
		respond.JSONError(w, respond.NewBadRequest("refresh_token required"))
		return
	}

	// Revoking an already-revoked token is fine.
	h.tokenService.RevokeRefreshToken(req.RefreshToken)

	log.Printf("logout success")

	respond.NoContent(w)
}
