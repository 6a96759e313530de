package stream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator(t *testing.T) {
	t.Run("append returns cumulative text", func(t *testing.T) {
		a := NewAccumulator()
		assert.Equal(t, "A", a.Append("A"))
		assert.Equal(t, "AB", a.Append("B"))
		assert.Equal(t, "AB", a.Text())
		assert.False(t, a.Done())
	})

	t.Run("mark done freezes the text", func(t *testing.T) {
		a := NewAccumulator()
		a.Append("The end")
		assert.Equal(t, "The end", a.MarkDone())
		assert.Equal(t, "The end", a.Append("?"))
		assert.Equal(t, Response{Text: "The end", Done: true}, a.Snapshot())
	})

	t.Run("empty stream", func(t *testing.T) {
		a := NewAccumulator()
		assert.Equal(t, Response{}, a.Snapshot())
		assert.Equal(t, "", a.MarkDone())
	})

	t.Run("concurrent readers", func(t *testing.T) {
		a := NewAccumulator()
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					snap := a.Snapshot()
					assert.LessOrEqual(t, len(snap.Text), 100)
				}
			}()
		}
		for range 100 {
			a.Append("x")
		}
		wg.Wait()
		assert.Len(t, a.MarkDone(), 100)
	})
}
