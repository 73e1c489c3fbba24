package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// fakeClock lets tests advance time manually
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func newTestMap(ttl time.Duration) (*Map[int64, string], *fakeClock) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	return NewWithClock[int64, string](ttl, clock.Now), clock
}

func TestMap_PutGet(t *testing.T) {
	m, _ := newTestMap(time.Hour)

	_, ok := m.Get(1)
	assert.False(t, ok)

	m.Put(1, "first")
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "first", v)

	// Last write wins
	m.Put(1, "second")
	v, ok = m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestMap_LazyExpiry(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		advance  time.Duration
		expected bool
	}{
		{
			name:     "fresh entry",
			ttl:      time.Hour,
			advance:  time.Minute,
			expected: true,
		},
		{
			name:     "exactly at ttl",
			ttl:      time.Hour,
			advance:  time.Hour,
			expected: true,
		},
		{
			name:     "one second past ttl",
			ttl:      time.Hour,
			advance:  time.Hour + time.Second,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := newTestMap(tt.ttl)
			m.Put(7, "value")

			clock.Advance(tt.advance)

			_, ok := m.Get(7)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestMap_ExpiredEntryEvictedOnRead(t *testing.T) {
	m, clock := newTestMap(time.Minute)
	m.Put(1, "value")

	clock.Advance(2 * time.Minute)

	_, ok := m.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMap_Touch(t *testing.T) {
	m, clock := newTestMap(time.Minute)
	m.Put(1, "value")

	clock.Advance(50 * time.Second)
	assert.True(t, m.Touch(1))

	// Would have expired without the touch
	clock.Advance(50 * time.Second)
	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	clock.Advance(2 * time.Minute)
	assert.False(t, m.Touch(1))
}

func TestMap_Delete(t *testing.T) {
	m, _ := newTestMap(time.Hour)
	m.Put(1, "value")
	m.Delete(1)

	_, ok := m.Get(1)
	assert.False(t, ok)

	// Deleting an absent key is a no-op
	m.Delete(2)
}

func TestMap_Sweep(t *testing.T) {
	m, clock := newTestMap(time.Minute)
	m.Put(1, "old")
	m.Put(2, "old")

	clock.Advance(2 * time.Minute)
	m.Put(3, "fresh")

	removed := m.Sweep()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Len())

	v, ok := m.Get(3)
	assert.True(t, ok)
	assert.Equal(t, "fresh", v)
}

// TestMap_LastWriteWins checks that after any sequence of puts and deletes
// a read reflects exactly the latest non-expired write.
func TestMap_LastWriteWins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m, clock := newTestMap(time.Hour)

		latest := make(map[int64]string)
		ops := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			key := rapid.Int64Range(0, 5).Draw(t, "key")
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				value := rapid.String().Draw(t, "value")
				m.Put(key, value)
				latest[key] = value
			case 1:
				m.Delete(key)
				delete(latest, key)
			case 2:
				clock.Advance(time.Duration(rapid.Int64Range(0, 60).Draw(t, "seconds")) * time.Second)
			}
		}

		for key := int64(0); key <= 5; key++ {
			got, ok := m.Get(key)
			want, exists := latest[key]
			// Entries may have expired, but a present entry must hold the
			// latest written value and no deleted entry may resurface.
			if ok {
				assert.True(t, exists)
				assert.Equal(t, want, got)
			}
		}
	})
}
