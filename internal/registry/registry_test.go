package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := New[int]("endpoint")

	require.NoError(t, r.Register("ollama", 1))
	require.NoError(t, r.Register("lmstudio", 2))

	v, err := r.Lookup("ollama")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = r.Lookup("missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, `endpoint "missing": not registered`, err.Error())

	err = r.Register("ollama", 3)
	require.ErrorIs(t, err, ErrDuplicate)
	v, _ = r.Lookup("ollama")
	assert.Equal(t, 1, v, "duplicate registration keeps the first value")

	assert.Error(t, r.Register("", 4))

	assert.Equal(t, []string{"lmstudio", "ollama"}, r.Names())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_ConcurrentRegister(t *testing.T) {
	r := New[int]("value")

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		winner int
	)
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Register("shared", i) == nil {
				mu.Lock()
				winner++
				mu.Unlock()
			}
			_ = r.Register(fmt.Sprintf("own-%d", i), i)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winner)
	assert.Equal(t, 21, r.Len())
}
