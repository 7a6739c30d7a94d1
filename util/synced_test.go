package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeCounter(t *testing.T) {
	c := NewSafeCounter()
	assert.Equal(t, 0, c.Value())
	assert.Equal(t, 1, c.Increment())
	assert.Equal(t, 2, c.Increment())
	assert.Equal(t, 2, c.Value())
}

func TestSafeCounterConcurrent(t *testing.T) {
	c := NewSafeCounter()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Value())
}
