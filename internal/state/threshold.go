package state

import (
	"time"

	"thermobot/internal/domain"
	"thermobot/internal/expiry"
)

// ThresholdContext holds at most one pending "awaiting numeric pair" request
// per user. A second prompt silently supersedes the first: a user can only
// be mid-prompt for one threshold edit at a time.
type ThresholdContext struct {
	pending *expiry.Map[int64, *domain.ThresholdEditRequest]
	now     func() time.Time
}

// NewThresholdContext creates a store with the given prompt TTL
func NewThresholdContext(ttl time.Duration) *ThresholdContext {
	return newThresholdContext(ttl, time.Now)
}

func newThresholdContext(ttl time.Duration, now func() time.Time) *ThresholdContext {
	return &ThresholdContext{
		pending: expiry.NewWithClock[int64, *domain.ThresholdEditRequest](ttl, now),
		now:     now,
	}
}

// SetPending records the request a numeric pair is expected for,
// overwriting any previous one for that user.
func (c *ThresholdContext) SetPending(userID, chatID int64, messageID int, op domain.OperationKind, groupKey, deviceKey string) {
	c.pending.Put(userID, &domain.ThresholdEditRequest{
		UserID:          userID,
		ChatID:          chatID,
		TargetMessageID: messageID,
		Op:              op,
		GroupKey:        groupKey,
		DeviceKey:       deviceKey,
		CreatedAt:       c.now(),
	})
}

// GetPending returns the pending request of a user, or nil if absent or expired
func (c *ThresholdContext) GetPending(userID int64) *domain.ThresholdEditRequest {
	req, ok := c.pending.Get(userID)
	if !ok {
		return nil
	}
	return req
}

// ClearPending drops the pending request of a user
func (c *ThresholdContext) ClearPending(userID int64) {
	c.pending.Delete(userID)
}

// SweepExpired evicts expired requests and returns the removed count
func (c *ThresholdContext) SweepExpired() int {
	return c.pending.Sweep()
}
