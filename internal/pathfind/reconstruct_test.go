package pathfind_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipath/wikipath/internal/pathfind"
)

// treeParents is {0:root, 1:0, 2:0, 3:1, 4:2, 5:3}.
func treeParents() *pathfind.ParentMap {
	return pathfind.ParentMapFromEntries(map[pathfind.NodeID]pathfind.Parent{
		0: pathfind.Root(),
		1: pathfind.Via(0),
		2: pathfind.Via(0),
		3: pathfind.Via(1),
		4: pathfind.Via(2),
		5: pathfind.Via(3),
	})
}

func TestReconstruct_TreeMap(t *testing.T) {
	pm := treeParents()

	tests := []struct {
		dst  pathfind.NodeID
		want []pathfind.NodeID
	}{
		{0, []pathfind.NodeID{0}},
		{1, []pathfind.NodeID{0, 1}},
		{2, []pathfind.NodeID{0, 2}},
		{3, []pathfind.NodeID{0, 1, 3}},
		{4, []pathfind.NodeID{0, 2, 4}},
		{5, []pathfind.NodeID{0, 1, 3, 5}},
	}

	for _, tc := range tests {
		r := pathfind.Reconstruct(tc.dst, pm)
		require.Equal(t, pathfind.Found, r.Outcome, "dst %d", tc.dst)
		assert.Equal(t, tc.want, r.Path, "dst %d", tc.dst)
	}
}

func TestReconstruct_Recurrence(t *testing.T) {
	pm := treeParents()

	for _, d := range pm.IDs() {
		p, _ := pm.Parent(d)
		parent, ok := p.ID()
		if !ok {
			continue
		}

		want := append(pathfind.Reconstruct(parent, pm).Path, d)
		assert.Equal(t, want, pathfind.Reconstruct(d, pm).Path, "dst %d", d)
	}
}

func TestReconstruct_Absent(t *testing.T) {
	r := pathfind.Reconstruct(7, treeParents())
	assert.Equal(t, pathfind.Unreachable, r.Outcome)
	assert.Nil(t, r.Path)

	r = pathfind.Reconstruct(7, nil)
	assert.Equal(t, pathfind.Unreachable, r.Outcome)
}

func TestReconstruct_CycleIsCorrupt(t *testing.T) {
	pm := pathfind.ParentMapFromEntries(map[pathfind.NodeID]pathfind.Parent{
		0: pathfind.Root(),
		1: pathfind.Via(2),
		2: pathfind.Via(1),
	})

	r := pathfind.Reconstruct(1, pm)
	assert.Equal(t, pathfind.Corrupt, r.Outcome)
	assert.Nil(t, r.Path)
	assert.Equal(t, "corrupt", r.Outcome.String())
}

func TestReconstruct_DanglingParentIsCorrupt(t *testing.T) {
	pm := pathfind.ParentMapFromEntries(map[pathfind.NodeID]pathfind.Parent{
		0: pathfind.Root(),
		1: pathfind.Via(42),
	})

	assert.Equal(t, pathfind.Corrupt, pathfind.Reconstruct(1, pm).Outcome)
}
