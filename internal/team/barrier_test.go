package team

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBarrierReusableAcrossRounds(t *testing.T) {
	const n = 4
	const rounds = 50
	b := NewBarrier(n)

	var wg sync.WaitGroup
	counters := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for r := 0; r < rounds; r++ {
				b.Wait()
				counters[id] = r + 1
			}
		}(i)
	}
	wg.Wait()

	for _, c := range counters {
		assert.Equal(t, rounds, c)
	}
}
