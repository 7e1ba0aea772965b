package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jojo-client/internal/domain/audiosession"
)

func newSession(id string, created time.Time, ttl time.Duration) *audiosession.Session {
	return &audiosession.Session{
		ID:        id,
		Object:    "realtime.session",
		KeySource: audiosession.KeySourceServer,
		CreatedAt: created,
		ExpiresAt: created.Add(ttl),
	}
}

func TestMemoryStore_CreateGetDelete(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Create(ctx, newSession("sess_1", now, time.Minute)))
	assert.ErrorIs(t, s.Create(ctx, newSession("sess_1", now, time.Minute)), ErrSessionAlreadyExists)

	got, err := s.Get(ctx, "sess_1")
	require.NoError(t, err)
	assert.Equal(t, "sess_1", got.ID)

	got.Model = "mutated"
	again, _ := s.Get(ctx, "sess_1")
	assert.Empty(t, again.Model, "callers get copies")

	require.NoError(t, s.Delete(ctx, "sess_1"))
	_, err = s.Get(ctx, "sess_1")
	assert.ErrorIs(t, err, audiosession.ErrSessionNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "sess_1"), audiosession.ErrSessionNotFound)
}

func TestMemoryStore_ListOrdered(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.Create(ctx, newSession("sess_b", base.Add(2*time.Second), time.Minute)))
	require.NoError(t, s.Create(ctx, newSession("sess_a", base, time.Minute)))
	require.NoError(t, s.Create(ctx, newSession("sess_c", base.Add(time.Second), time.Minute)))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"sess_a", "sess_c", "sess_b"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Create(ctx, newSession("old", now.Add(-2*time.Minute), time.Minute)))
	require.NoError(t, s.Create(ctx, newSession("edge", now.Add(-time.Minute), time.Minute)))
	require.NoError(t, s.Create(ctx, newSession("fresh", now, time.Minute)))

	removed, err := s.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestJanitor_Sweep(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Create(ctx, newSession("expired", now.Add(-time.Hour), time.Minute)))
	require.NoError(t, s.Create(ctx, newSession("live", now, time.Hour)))

	j := NewJanitor(s, time.Hour, zerolog.Nop())
	assert.Equal(t, 1, j.Sweep(ctx))
	assert.Equal(t, 0, j.Sweep(ctx))
	assert.Equal(t, 1, s.Len())
}

func TestJanitor_RunEvictsAndStops(t *testing.T) {
	s := NewMemoryStore(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Create(ctx, newSession("soon", time.Now(), 20*time.Millisecond)))

	j := NewJanitor(s, 10*time.Millisecond, zerolog.Nop())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
	j.Stop()
}
