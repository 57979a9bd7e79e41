package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/dashboard"
)

func TestStore_Lifecycle(t *testing.T) {
	s := NewStore()
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return clock }

	sess := s.Create("ds-1")
	_, err := uuid.Parse(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "ds-1", sess.DatasetID)
	assert.Equal(t, clock, sess.CreatedAt)
	assert.Equal(t, 1, s.Len())

	clock = clock.Add(time.Minute)
	updated, err := s.Update(sess.ID, func(cur *Session) error {
		cur.ID = "hijacked"
		cur.State.Selected = []string{"Atlas Freight"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, sess.ID, updated.ID)
	assert.Equal(t, sess.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlas Freight"}, got.State.Selected)

	require.NoError(t, s.Delete(sess.ID))
	assert.Equal(t, 0, s.Len())
	_, err = s.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(sess.ID), ErrSessionNotFound)
}

func TestStore_UpdateErrorKeepsState(t *testing.T) {
	s := NewStore()
	sess := s.Create("")
	boom := errors.New("boom")

	_, err := s.Update(sess.ID, func(cur *Session) error {
		cur.State.Selected = []string{"x"}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.State.Selected)

	_, err = s.Update("missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_SessionsDoNotShareState(t *testing.T) {
	s := NewStore()
	a := s.Create("ds")
	b := s.Create("ds")

	_, err := s.Update(a.ID, func(cur *Session) error {
		cur.State = dashboard.State{Filter: dashboard.FilterOptions{
			Selection: dashboard.Selection{BrokersTo: []string{"Summit Logistics"}},
		}}
		return nil
	})
	require.NoError(t, err)

	got, err := s.Get(a.ID)
	require.NoError(t, err)
	// mutating a returned copy must not leak into the store
	got.State.Filter.BrokersTo[0] = "changed"

	again, err := s.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Summit Logistics"}, again.State.Filter.BrokersTo)

	other, err := s.Get(b.ID)
	require.NoError(t, err)
	assert.Empty(t, other.State.Filter.BrokersTo)
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := s.Create("ds")
			_, err := s.Update(sess.ID, func(cur *Session) error {
				cur.State.TopN = 3
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, s.Len())
}
