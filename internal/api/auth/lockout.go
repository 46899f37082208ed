package auth

import (
	"sync"
	"time"
)

// lockoutEntry is the failure record behind one login key.
type lockoutEntry struct {
	failures  int
	lockedAt  time.Time
	expiresAt time.Time
}

// LockoutTracker counts failed logins per key and locks the key out
// once the threshold is reached. State is in-memory only; the guide
// runs single-instance and a restart clears all lockouts.
type LockoutTracker struct {
	mu              sync.RWMutex
	entries         map[string]*lockoutEntry // keyed by username or IP
	threshold       int
	lockoutDuration time.Duration
}

// NewLockoutTracker creates a tracker that locks a key after threshold
// consecutive failures for the given duration.
func NewLockoutTracker(threshold int, duration time.Duration) *LockoutTracker {
	tracker := &LockoutTracker{
		entries:         make(map[string]*lockoutEntry),
		threshold:       threshold,
		lockoutDuration: duration,
	}
	go tracker.cleanupLoop()
	return tracker
}

// RecordFailure counts one failed login. Returns true when the key is
// now locked. Failures during an active lockout do not extend it.
func (t *LockoutTracker) RecordFailure(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[key]
	if !ok {
		entry = &lockoutEntry{}
		t.entries[key] = entry
	}

	now := time.Now()
	if !entry.lockedAt.IsZero() {
		if now.Before(entry.expiresAt) {
			return true
		}
		// Expired lockout: the key starts over.
		entry.failures = 0
		entry.lockedAt = time.Time{}
		entry.expiresAt = time.Time{}
	}

	entry.failures++
	if entry.failures >= t.threshold {
		entry.lockedAt = now
		entry.expiresAt = now.Add(t.lockoutDuration)
		return true
	}
	return false
}

// IsLocked reports whether the key is inside an active lockout window.
func (t *LockoutTracker) IsLocked(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, ok := t.entries[key]
	if !ok || entry.lockedAt.IsZero() {
		return false
	}
	return time.Now().Before(entry.expiresAt)
}

// RemainingLockoutTime returns how long until the key's lockout expires,
// zero when it is not locked.
func (t *LockoutTracker) RemainingLockoutTime(key string) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, ok := t.entries[key]
	if !ok || entry.lockedAt.IsZero() {
		return 0
	}
	remaining := time.Until(entry.expiresAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ClearFailures drops the key's record after a successful login.
func (t *LockoutTracker) ClearFailures(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// cleanupLoop periodically drops stale entries.
func (t *LockoutTracker) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		t.cleanup()
	}
}

// cleanup removes entries with no failures or an expired lockout.
func (t *LockoutTracker) cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	for key, entry := range t.entries {
		if entry.failures == 0 || (!entry.lockedAt.IsZero() && now.After(entry.expiresAt)) {
			delete(t.entries, key)
		}
	}
}
