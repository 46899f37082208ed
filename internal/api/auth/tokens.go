package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// TokenService issues and validates refresh tokens. Tokens live in
// memory only; a restart invalidates every outstanding refresh token
// and the operator logs in again.
type TokenService struct {
	mu     sync.Mutex
	tokens map[string]refreshToken // keyed by token hash
	ttl    time.Duration
}

type refreshToken struct {
	username  string
	expiresAt time.Time
}

// NewTokenService creates a new token service.
func NewTokenService(ttl time.Duration) *TokenService {
	return &TokenService{
		tokens: make(map[string]refreshToken),
		ttl:    ttl,
	}
}

// CreateRefreshToken creates and stores a new refresh token.
// Returns the plaintext token to send to the client.
func (s *TokenService) CreateRefreshToken(username string) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	plain := hex.EncodeToString(raw)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneExpiredLocked()
	s.tokens[hashToken(plain)] = refreshToken{
		username:  username,
		expiresAt: time.Now().Add(s.ttl),
	}
	return plain, nil
}

// ValidateRefreshToken validates a refresh token and returns the
// associated username.
func (s *TokenService) ValidateRefreshToken(plain string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[hashToken(plain)]
	if !ok {
		return "", fmt.Errorf("token not found")
	}
	if time.Now().After(tok.expiresAt) {
		delete(s.tokens, hashToken(plain))
		return "", fmt.Errorf("token expired")
	}
	return tok.username, nil
}

// RevokeRefreshToken revokes a refresh token. Revoking an unknown
// token is not an error.
func (s *TokenService) RevokeRefreshToken(plain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, hashToken(plain))
}

// RotateRefreshToken revokes the old token and creates a new one.
// Returns the new plaintext token.
func (s *TokenService) RotateRefreshToken(oldPlain, username string) (string, error) {
	s.RevokeRefreshToken(oldPlain)
	return s.CreateRefreshToken(username)
}

// TTL returns the refresh token time-to-live.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

func (s *TokenService) pruneExpiredLocked() {
	now := time.Now()
	for h, tok := range s.tokens {
		if now.After(tok.expiresAt) {
			delete(s.tokens, h)
		}
	}
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// constantTimeEquals compares two strings without leaking length-based
// timing beyond equality of lengths.
func constantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
