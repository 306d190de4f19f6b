package sessions

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Get("missing")
	assert.False(t, ok, "empty registry must resolve nothing")

	registry.Put("token-1", "alice")
	registry.Put("token-2", "bob")

	username, ok := registry.Get("token-1")
	assert.True(t, ok)
	assert.Equal(t, "alice", username)
	assert.Equal(t, 2, registry.Len())

	registry.Remove("token-1")
	_, ok = registry.Get("token-1")
	assert.False(t, ok, "removed token must not resolve")
	assert.Equal(t, 1, registry.Len())

	// removing an unknown token is a no-op
	registry.Remove("missing")
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", i)
			registry.Put(token, "user")
			_, _ = registry.Get(token)
			if i%2 == 0 {
				registry.Remove(token)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 25, registry.Len())
}
