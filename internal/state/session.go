// Package state holds the in-memory conversational state of the bot: the
// live-menu registry, the registration wizard and the pending threshold
// edits. All stores share the lazily-expiring map from internal/expiry and
// follow the same lifecycle: create-or-overwrite, self-expiring read,
// explicit clear. Nothing here survives a restart.
package state

import (
	"time"

	"thermobot/internal/domain"
	"thermobot/internal/expiry"
)

// SessionRegistry tracks the single live interactive message per user
type SessionRegistry struct {
	sessions *expiry.Map[int64, *domain.UserSession]
	now      func() time.Time
}

// NewSessionRegistry creates a registry with the given inactivity TTL
func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return newSessionRegistry(ttl, time.Now)
}

func newSessionRegistry(ttl time.Duration, now func() time.Time) *SessionRegistry {
	return &SessionRegistry{
		sessions: expiry.NewWithClock[int64, *domain.UserSession](ttl, now),
		now:      now,
	}
}

// Track records the live message of a user. The previous session is replaced
// wholesale; context maps are never merged.
func (r *SessionRegistry) Track(userID, chatID int64, messageID int, kind domain.MenuKind, ctx map[string]string) {
	if ctx == nil {
		ctx = make(map[string]string)
	}
	r.sessions.Put(userID, &domain.UserSession{
		UserID:    userID,
		ChatID:    chatID,
		Ref:       domain.MessageRef{ChatID: chatID, MessageID: messageID},
		Kind:      kind,
		Context:   ctx,
		UpdatedAt: r.now(),
	})
}

// Get returns the live session of a user, or nil if absent or expired
func (r *SessionRegistry) Get(userID int64) *domain.UserSession {
	session, ok := r.sessions.Get(userID)
	if !ok {
		return nil
	}
	return session
}

// Kind returns the live menu kind of a user, or MenuKind("") if none
func (r *SessionRegistry) Kind(userID int64) domain.MenuKind {
	session := r.Get(userID)
	if session == nil {
		return ""
	}
	return session.Kind
}

// Clear forgets the live message of a user
func (r *SessionRegistry) Clear(userID int64) {
	r.sessions.Delete(userID)
}

// SweepExpired evicts expired sessions and returns the removed count
func (r *SessionRegistry) SweepExpired() int {
	return r.sessions.Sweep()
}

// ActiveCount returns the number of tracked sessions
func (r *SessionRegistry) ActiveCount() int {
	return r.sessions.Len()
}
