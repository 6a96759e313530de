package future

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuture(t *testing.T) {
	t.Run("complete then get", func(t *testing.T) {
		f := New[string]()
		assert.True(t, f.Complete("value"))

		v, err := f.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	})

	t.Run("error then get", func(t *testing.T) {
		boom := errors.New("boom")
		f := New[int]()
		assert.True(t, f.Error(boom))

		v, err := f.Get(context.Background())
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, v)
	})

	t.Run("only the first settlement wins", func(t *testing.T) {
		f := New[string]()
		assert.True(t, f.Complete("first"))
		assert.False(t, f.Complete("second"))
		assert.False(t, f.Error(errors.New("late")))

		v, err := f.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})

	t.Run("get blocks until settled", func(t *testing.T) {
		f := New[string]()
		go func() {
			time.Sleep(10 * time.Millisecond)
			f.Complete("later")
		}()

		v, err := f.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "later", v)

		select {
		case <-f.Done():
		default:
			t.Fatal("done channel should be closed")
		}
	})

	t.Run("get honours the context", func(t *testing.T) {
		f := New[string]()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := f.Get(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("concurrent settle and get", func(t *testing.T) {
		f := New[int]()
		var wg sync.WaitGroup
		wins := make(chan bool, 10)
		for i := range 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				wins <- f.Complete(i)
			}()
			go func() {
				defer wg.Done()
				_, err := f.Get(context.Background())
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		close(wins)

		count := 0
		for won := range wins {
			if won {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}
