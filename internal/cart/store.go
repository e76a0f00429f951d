package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/log"
	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

type session struct {
	cart     *Cart
	lastSeen time.Time
}

// Store is the process-wide registry of session carts. Each browser session
// owns exactly one cart, keyed by its session id; carts live only for the
// session and are swept after sitting idle for the TTL. All mutation happens
// under the store lock so a session's cart never races with itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
	}
}

func (s *Store) get(sessionID uuid.UUID) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: New()}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = time.Now()
	return sess
}

func (s *Store) Add(sessionID uuid.UUID, product supabase.Product, variation string) Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.Add(product, variation)
}

func (s *Store) Remove(sessionID uuid.UUID, productID int64, variation string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.Remove(productID, variation)
}

// Clear empties the session's cart. Called exactly once per checkout, after
// the order insert succeeded.
func (s *Store) Clear(sessionID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).cart.Clear()
}

func (s *Store) Lines(sessionID uuid.UUID) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.Lines()
}

func (s *Store) IsEmpty(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.IsEmpty()
}

func (s *Store) TotalItems(sessionID uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.TotalItems()
}

func (s *Store) TotalPrice(sessionID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(sessionID).cart.TotalPrice()
}

func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps idle sessions until the context is done.
func (s *Store) StartJanitor(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore StartJanitor").
		Logger()

	go func() {
		ticker := time.NewTicker(s.ttl / 2)
		defer ticker.Stop()
		for {
			select {
			case <-c.Done():
				logger.Info().Msg("stopping cart session janitor")
				return
			case now := <-ticker.C:
				if removed := s.sweep(now); removed > 0 {
					logger.Info().Msgf("swept %d idle cart sessions", removed)
				}
			}
		}
	}()
}
