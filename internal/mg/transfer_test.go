package mg

import (
	"testing"

	"github.com/mephisto-hpc/multigrid3d/internal/team"
	"github.com/stretchr/testify/assert"
)

func TestTeamTransferAcrossDifferentlyPartitionedTeams(t *testing.T) {
	srcTeam := newSingleUnitTeam()
	src := NewFinest(srcTeam, [3]int{6, 6, 6}, unitCube([3]int{6, 6, 6}))

	ext := src.Current().Extent()
	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[2]; x++ {
				src.Current().SetOwned(z, y, x, float64(z*100+y*10+x))
			}
		}
	}

	dstSpec := team.NewTeamSpec(4)
	dstSpec.BalanceExtents()
	dstTeam := team.New(dstSpec)
	dstTemplate := NewFinest(dstTeam, [3]int{6, 6, 6}, unitCube([3]int{6, 6, 6}))

	for pos := 0; pos < dstTeam.Size(); pos++ {
		dst := dstTemplate.ForUnit(pos)
		TeamTransfer(src, dst)
	}

	for pos := 0; pos < dstTeam.Size(); pos++ {
		dst := dstTemplate.ForUnit(pos)
		origin := dst.CurrentField().GlobalOrigin(dst.Pos())
		dext := dst.Current().Extent()
		for z := 0; z < dext[0]; z++ {
			for y := 0; y < dext[1]; y++ {
				for x := 0; x < dext[2]; x++ {
					g := [3]int{origin[0] + z, origin[1] + y, origin[2] + x}
					want := float64(g[0]*100 + g[1]*10 + g[2])
					assert.Equal(t, want, dst.Current().Owned(z, y, x))
				}
			}
		}
	}
}

// TestTeamTransferCopiesRHSAlongsideCurrent guards against TeamTransfer
// silently leaving a subteam's right-hand side zero-filled: a team
// shrink restricts the real residual into rhs before transferring, so
// the subteam must see that same residual, not the zero value
// WithTeam's fresh storage starts with.
func TestTeamTransferCopiesRHSAlongsideCurrent(t *testing.T) {
	srcTeam := newSingleUnitTeam()
	src := NewFinest(srcTeam, [3]int{6, 6, 6}, unitCube([3]int{6, 6, 6}))

	ext := src.RHS().Array(src.Pos()).Extent()
	for z := 0; z < ext[0]; z++ {
		for y := 0; y < ext[1]; y++ {
			for x := 0; x < ext[2]; x++ {
				src.RHS().Array(src.Pos()).SetOwned(z, y, x, float64(z*100+y*10+x+1))
			}
		}
	}

	dstSpec := team.NewTeamSpec(4)
	dstSpec.BalanceExtents()
	dstTeam := team.New(dstSpec)
	dstTemplate := NewFinest(dstTeam, [3]int{6, 6, 6}, unitCube([3]int{6, 6, 6}))

	for pos := 0; pos < dstTeam.Size(); pos++ {
		dst := dstTemplate.ForUnit(pos)
		TeamTransfer(src, dst)
	}

	for pos := 0; pos < dstTeam.Size(); pos++ {
		dst := dstTemplate.ForUnit(pos)
		origin := dst.RHS().GlobalOrigin(dst.Pos())
		dext := dst.RHS().Array(dst.Pos()).Extent()
		for z := 0; z < dext[0]; z++ {
			for y := 0; y < dext[1]; y++ {
				for x := 0; x < dext[2]; x++ {
					g := [3]int{origin[0] + z, origin[1] + y, origin[2] + x}
					want := float64(g[0]*100 + g[1]*10 + g[2] + 1)
					assert.Equal(t, want, dst.RHS().Array(dst.Pos()).Owned(z, y, x))
				}
			}
		}
	}
}
