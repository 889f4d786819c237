package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhutchens/citator/internal/pipeline"
)

const (
	// sessionTTL is how long a processed document stays downloadable.
	sessionTTL = 4 * time.Hour
	// sweepInterval is how often the janitor drops expired sessions.
	sweepInterval = 15 * time.Minute
)

// Session holds one processed document between upload and download.
// Stored fields are treated as immutable snapshots: Update replaces
// them wholesale rather than mutating in place, so concurrent readers
// holding an older snapshot stay consistent.
type Session struct {
	Filename string
	Style    string
	Doc      []byte
	Results  []pipeline.ProcessedCitation
	Created  time.Time
}

type sessionEntry struct {
	session Session
	expires time.Time
}

// Sessions is an in-memory, mutex-guarded session store with
// expiration. A janitor goroutine sweeps expired entries until Close.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	ttl     time.Duration

	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessions returns a running session store with the default TTL.
func NewSessions() *Sessions {
	s := &Sessions{
		entries: make(map[string]*sessionEntry),
		ttl:     sessionTTL,
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create stores a session and returns its ID.
func (s *Sessions) Create(sess Session) string {
	id := uuid.New().String()
	sess.Created = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = &sessionEntry{session: sess, expires: sess.Created.Add(s.ttl)}
	return id
}

// Get returns a snapshot of the session, or ok=false when the ID is
// unknown or expired. Expired entries are dropped on access.
func (s *Sessions) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(e.expires) {
		delete(s.entries, id)
		return Session{}, false
	}
	return e.session, true
}

// Update applies fn to the stored session under the lock. fn must
// replace fields rather than mutate shared slices. Reports whether the
// session existed.
func (s *Sessions) Update(id string, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || time.Now().After(e.expires) {
		delete(s.entries, id)
		return false
	}
	fn(&e.session)
	return true
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor. Stored sessions remain readable.
func (s *Sessions) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Sessions) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *Sessions) sweep() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.After(e.expires) {
			delete(s.entries, id)
		}
	}
}
