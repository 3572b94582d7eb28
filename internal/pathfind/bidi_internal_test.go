package pathfind

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lateShortcutGraph is built so the first meeting found is one hop longer
// than the shortest path:
//
//	1→3→8→6→2   (found first, 4 links)
//	1→4→7→2     (shortest, 3 links)
//
// Node 5 and the reverse leaves 9 and 10 only pad the frontiers so that the
// reverse side expands 6 before the forward side expands 3.
func lateShortcutGraph() *MemoryGraph {
	g := NewMemoryGraph()
	for _, e := range [][2]NodeID{
		{1, 3}, {1, 4}, {1, 5},
		{3, 8}, {8, 6}, {6, 2},
		{4, 7}, {7, 2},
		{9, 6}, {10, 6},
	} {
		g.AddEdge(e[0], e[1])
	}

	return g
}

func TestBidirectional_KeepsSearchingAfterFirstMeeting(t *testing.T) {
	ctx := context.Background()
	g := lateShortcutGraph()

	path, err := Bidirectional(ctx, g, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{1, 4, 7, 2}, path)

	single, err := SingleTarget(ctx, g, 1, 2)
	require.NoError(t, err)
	assert.Len(t, path, len(single))
}

func TestBidirectional_FrontierStates(t *testing.T) {
	ctx := context.Background()

	s := newBidiSearch(lateShortcutGraph(), 1, 2)
	assert.Equal(t, Idle, s.fwd.state)
	assert.Equal(t, Idle, s.rev.state)

	require.NoError(t, s.run(ctx))
	assert.Equal(t, Met, s.fwd.state)
	assert.Equal(t, Met, s.rev.state)
	assert.Equal(t, NodeID(7), s.meet.node)
	assert.Equal(t, 3, s.meet.length)

	// 2 has no forward links, so the forward side runs dry.
	g := NewMemoryGraph()
	g.AddEdge(1, 2)
	g.AddNode(3)

	s = newBidiSearch(g, 2, 3)
	require.NoError(t, s.run(ctx))
	assert.Equal(t, Exhausted, s.fwd.state)
	assert.Equal(t, "exhausted", s.fwd.state.String())

	path, err := s.path()
	require.NoError(t, err)
	assert.Nil(t, path)
}

func TestBidirectional_TieBreaksOnSmallestMeetingNode(t *testing.T) {
	// Two equally short routes 1→5→2 and 1→4→2.
	g := NewMemoryGraph()
	for _, e := range [][2]NodeID{{1, 5}, {1, 4}, {5, 2}, {4, 2}} {
		g.AddEdge(e[0], e[1])
	}

	path, err := Bidirectional(context.Background(), g, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{1, 4, 2}, path)
}

func TestBidirectional_DirectLink(t *testing.T) {
	g := NewMemoryGraph()
	g.AddEdge(1, 2)

	path, err := Bidirectional(context.Background(), g, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{1, 2}, path)
}

func TestBidiPath_EndpointReachedWithoutMeeting(t *testing.T) {
	g := NewMemoryGraph()
	g.AddEdge(1, 2)
	g.AddEdge(2, 3)

	t.Run("forward map holds destination", func(t *testing.T) {
		s := newBidiSearch(g, 1, 3)
		require.True(t, s.fwd.parents.Discover(2, 1))
		require.True(t, s.fwd.parents.Discover(3, 2))

		path, err := s.path()
		require.NoError(t, err)
		assert.Equal(t, []NodeID{1, 2, 3}, path)
	})

	t.Run("reverse map holds source", func(t *testing.T) {
		s := newBidiSearch(g, 1, 3)
		require.True(t, s.rev.parents.Discover(2, 3))
		require.True(t, s.rev.parents.Discover(1, 2))

		path, err := s.path()
		require.NoError(t, err)
		assert.Equal(t, []NodeID{1, 2, 3}, path)
	})

	t.Run("neither", func(t *testing.T) {
		s := newBidiSearch(g, 1, 3)

		path, err := s.path()
		require.NoError(t, err)
		assert.Nil(t, path)
	})
}

func TestFrontier_CompactsWithoutLosingOrder(t *testing.T) {
	f := newFrontier(0)
	for i := NodeID(1); i < 5000; i++ {
		f.push(i)
	}

	for want := NodeID(0); want < 5000; want++ {
		require.Equal(t, want, f.peek())
		require.Equal(t, want, f.pop())
	}

	assert.Equal(t, 0, f.len())
}
