package game

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sketchwars/sketchwars-backend/internal"
)

func newHubFixture(t *testing.T, maxPlayers int) (*Hub, *MockUserStore) {
	t.Helper()
	settings := testSettings()
	settings.MaxPlayers = maxPlayers
	words := &MockWordStore{}
	words.On("FetchRandomWords", mock.Anything, mock.Anything).Return([]string{"cat", "dog", "fox"}, nil)
	users := &MockUserStore{}
	users.On("PersistScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mt := &manualTicker{}
	return NewHub(settings, NewScheduler(time.Second, mt.factory), words, users, zerolog.Nop()), users
}

func hubJoin(t *testing.T, s *Session, users *MockUserStore, name string) *fakeConn {
	t.Helper()
	users.On("FindByToken", mock.Anything, "tok-"+name).Return(internal.User{Name: name}, nil)
	conn := newFakeConn()
	s.Dispatch(conn, encodeFrame(t, internal.TypeHandshake, internal.HandshakeRequest{Token: "tok-" + name}))
	return conn
}

func TestHubJoinReusesOpenSession(t *testing.T) {
	h, _ := newHubFixture(t, 12)

	s1 := h.Join()
	s2 := h.Join()

	assert.Same(t, s1, s2)
	assert.Equal(t, 1, h.Len())
}

func TestHubJoinSpillsOverWhenFull(t *testing.T) {
	h, users := newHubFixture(t, 1)
	s1 := h.Join()
	hubJoin(t, s1, users, "alice")

	s2 := h.Join()

	assert.NotSame(t, s1, s2)
	assert.Equal(t, 2, h.Len())
}

func TestHubGetFindsByID(t *testing.T) {
	h, _ := newHubFixture(t, 12)
	s := h.Join()

	got, ok := h.Get(s.ID())
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = h.Get("missing")
	assert.False(t, ok)
}

func TestHubReleaseRetiresEmptySessions(t *testing.T) {
	h, users := newHubFixture(t, 12)
	s := h.Join()
	conn := hubJoin(t, s, users, "alice")

	h.Release(s, conn)

	assert.Equal(t, 0, h.Len())
	assert.False(t, s.CanJoin())
}

func TestHubReleaseKeepsPopulatedSessions(t *testing.T) {
	h, users := newHubFixture(t, 12)
	s := h.Join()
	alice := hubJoin(t, s, users, "alice")
	hubJoin(t, s, users, "bob")

	h.Release(s, alice)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 1, s.PlayerCount())
}

func TestHubCloseClosesEverySession(t *testing.T) {
	h, users := newHubFixture(t, 12)
	s := h.Join()
	conn := hubJoin(t, s, users, "alice")

	h.Close()

	assert.Equal(t, 0, h.Len())
	assert.True(t, conn.Closed())
}
