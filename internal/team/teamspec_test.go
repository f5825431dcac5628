package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeamSpec(t *testing.T) {
	s := NewTeamSpec(6)
	assert.Equal(t, [3]int{6, 1, 1}, s.Dims())
	assert.Equal(t, 6, s.Size())
}

func TestBalanceExtents(t *testing.T) {
	cases := []struct {
		size     int
		wantSize int
	}{
		{1, 1},
		{8, 8},
		{27, 27},
		{12, 12},
		{7, 7},
	}
	for _, c := range cases {
		s := NewTeamSpec(c.size)
		s.BalanceExtents()
		require.Equal(t, c.wantSize, s.Size())
		for _, d := range s.Dims() {
			assert.Greater(t, d, 0)
		}
	}
}

func TestBalanceExtentsPrefersCube(t *testing.T) {
	s := NewTeamSpec(8)
	s.BalanceExtents()
	assert.Equal(t, [3]int{2, 2, 2}, s.Dims())
}

func TestCoordsRoundTrip(t *testing.T) {
	s := NewTeamSpec(24)
	s.BalanceExtents()
	for pos := 0; pos < s.Size(); pos++ {
		c := s.CoordsOf(pos)
		require.Equal(t, pos, s.PositionOf(c))
	}
}
