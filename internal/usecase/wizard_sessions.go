package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/careers-portal/internal/store"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type liveSession struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Sessions keeps the live wizards keyed by draft ID. A wizard that is not live
// is rebuilt from its KV snapshot, which loses any attached file payloads.
type Sessions struct {
	mu        sync.Mutex
	kv        store.KV
	submitter Submitter
	ttl       time.Duration
	now       func() time.Time
	live      map[string]*liveSession
}

func NewSessions(kv store.KV, submitter Submitter, ttl time.Duration) *Sessions {
	return &Sessions{
		kv:        kv,
		submitter: submitter,
		ttl:       ttl,
		now:       time.Now,
		live:      make(map[string]*liveSession),
	}
}

// Open returns the wizard for draftID. A blank or malformed ID starts a new
// draft under a fresh ID.
func (s *Sessions) Open(draftID string) *Wizard {
	id, err := uuid.Parse(draftID)
	if err != nil {
		id = uuid.New()
	}
	key := id.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live[key]; ok {
		sess.lastSeen = s.now()
		return sess.wizard
	}
	w := NewWizard(key, store.NewDraftStore(s.kv, store.SnapshotKey(key)), s.submitter)
	s.live[key] = &liveSession{wizard: w, lastSeen: s.now()}
	return w
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Evict drops wizards idle for longer than the TTL and reports how many went.
// Wizards with a submission in flight stay. Snapshots are left in the KV.
func (s *Sessions) Evict() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.live {
		if sess.lastSeen.Before(cutoff) && !sess.wizard.IsSubmitting() {
			delete(s.live, id)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Evict(); n > 0 {
				log.Infof("evicted %d idle draft sessions", n)
			}
		}
	}
}
