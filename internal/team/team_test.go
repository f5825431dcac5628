package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam(t *testing.T) {
	spec := NewTeamSpec(8)
	spec.BalanceExtents()
	tm := New(spec)

	require.Equal(t, 8, tm.Size())
	for _, id := range tm.IDs() {
		assert.True(t, tm.Contains(id))
	}
	assert.False(t, tm.Contains(8))
}

func TestTeamSplit(t *testing.T) {
	spec := NewTeamSpec(8)
	tm := New(spec)

	sub := tm.Split(8)
	assert.Equal(t, 1, sub.Size())
}

func TestTeamSplitRejectsUnevenFactor(t *testing.T) {
	spec := NewTeamSpec(6)
	tm := New(spec)

	assert.Panics(t, func() { tm.Split(4) })
}

func TestTeamBarrierReleasesAllMembers(t *testing.T) {
	n := 6
	spec := NewTeamSpec(n)
	tm := New(spec)

	done := make(chan int, n)
	for i := 0; i < n; i++ {
		go func(id int) {
			tm.Wait()
			done <- id
		}(i)
	}

	for i := 0; i < n; i++ {
		<-done
	}
}
