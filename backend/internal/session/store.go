// Package session keeps each dashboard user's filter and selection state.
//
// A session owns exactly one dashboard.State; nothing is shared between sessions.
// The store only guards its own map, the state values themselves are copied in
// and out so callers never hold a reference into another request's state.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/dashboard"
)

// ErrSessionNotFound is returned for unknown or deleted session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is a snapshot of one user's state.
type Session struct {
	ID        string          `json:"id"`
	DatasetID string          `json:"dataset_id,omitempty"`
	State     dashboard.State `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create starts a session, optionally bound to a dataset.
func (s *Store) Create(datasetID string) Session {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		DatasetID: datasetID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return clone(sess)
}

// Get returns a copy of the session.
func (s *Store) Get(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return clone(sess), nil
}

// Update applies fn to a copy of the session and stores the result.
// ID and CreatedAt cannot be changed by fn.
func (s *Store) Update(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	next := clone(cur)
	if err := fn(&next); err != nil {
		return Session{}, err
	}
	next.ID = cur.ID
	next.CreatedAt = cur.CreatedAt
	next.UpdatedAt = s.now()
	s.sessions[id] = &next
	return clone(&next), nil
}

// Delete removes the session. Deleting an unknown ID returns ErrSessionNotFound.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func clone(s *Session) Session {
	out := *s
	st := s.State
	st.Selected = append([]string(nil), st.Selected...)
	st.Filter.BrokersTo = append([]string(nil), st.Filter.BrokersTo...)
	st.Filter.BrokersThrough = append([]string(nil), st.Filter.BrokersThrough...)
	st.Filter.BrokerEntityOf = append([]string(nil), st.Filter.BrokerEntityOf...)
	st.Filter.RelationshipOwner = append([]string(nil), st.Filter.RelationshipOwner...)
	out.State = st
	return out
}
