package cart

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStoreIsolatesSessions(t *testing.T) {
	store := NewStore(time.Hour)
	alice := uuid.New()
	bob := uuid.New()

	store.Add(alice, product(1, "tulip", 100), "")
	store.Add(alice, product(1, "tulip", 100), "")
	store.Add(bob, product(2, "sunflower", 50), "")

	assert.EqualValues(t, 2, store.TotalItems(alice))
	assert.EqualValues(t, 1, store.TotalItems(bob))
	assert.True(t, store.TotalPrice(alice).Equal(decimal.NewFromInt(200)))
	assert.True(t, store.TotalPrice(bob).Equal(decimal.NewFromInt(50)))
}

func TestStoreCreatesEmptyCartOnFirstTouch(t *testing.T) {
	store := NewStore(time.Hour)
	sessionID := uuid.New()

	assert.True(t, store.IsEmpty(sessionID))
	assert.Empty(t, store.Lines(sessionID))
}

func TestStoreClearOnlyTouchesOwnSession(t *testing.T) {
	store := NewStore(time.Hour)
	alice := uuid.New()
	bob := uuid.New()
	store.Add(alice, product(1, "tulip", 100), "")
	store.Add(bob, product(2, "sunflower", 50), "")

	store.Clear(alice)

	assert.True(t, store.IsEmpty(alice))
	assert.False(t, store.IsEmpty(bob))
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewStore(time.Minute)
	stale := uuid.New()
	fresh := uuid.New()

	store.Add(stale, product(1, "tulip", 100), "")
	store.mu.Lock()
	store.sessions[stale].lastSeen = time.Now().Add(-2 * time.Minute)
	store.mu.Unlock()
	store.Add(fresh, product(2, "sunflower", 50), "")

	removed := store.sweep(time.Now())

	assert.Equal(t, 1, removed)
	store.mu.RLock()
	_, staleAlive := store.sessions[stale]
	_, freshAlive := store.sessions[fresh]
	store.mu.RUnlock()
	assert.False(t, staleAlive)
	assert.True(t, freshAlive)
}
