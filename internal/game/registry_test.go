package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	alice := newFakeConn()

	evicted := r.Register("alice", alice)

	assert.Nil(t, evicted)
	assert.Equal(t, 1, r.Len())
	got, ok := r.Get("alice")
	assert.True(t, ok)
	assert.Same(t, alice, got)
}

func TestRegistryDuplicateNameEvictsOldConn(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn()
	second := newFakeConn()

	r.Register("alice", first)
	evicted := r.Register("alice", second)

	assert.Same(t, first, evicted)
	got, _ := r.Get("alice")
	assert.Same(t, second, got)
	assert.Equal(t, 1, r.Len())

	// The evicted connection no longer resolves to a name.
	assert.Equal(t, "", r.Unregister(first))
	// The replacement is untouched by the stale unregister.
	assert.True(t, r.Has("alice"))
}

func TestRegistryUnregisterReturnsName(t *testing.T) {
	r := NewRegistry()
	conn := newFakeConn()
	r.Register("bob", conn)

	assert.Equal(t, "bob", r.Unregister(conn))
	assert.False(t, r.Has("bob"))
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, "", r.Unregister(conn))
}

func TestRegistryEachVisitsAll(t *testing.T) {
	r := NewRegistry()
	r.Register("alice", newFakeConn())
	r.Register("bob", newFakeConn())

	seen := map[string]bool{}
	r.Each(func(name string, conn Conn) {
		seen[name] = conn != nil
	})

	assert.Equal(t, map[string]bool{"alice": true, "bob": true}, seen)
}
