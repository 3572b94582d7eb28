package pathfind

import (
	"context"
	"fmt"
	"slices"
)

// FrontierState is the lifecycle of one side of a bidirectional search.
type FrontierState int

// Frontier states. Met and Exhausted are terminal.
const (
	Idle FrontierState = iota
	Expanding
	Met
	Exhausted
)

// String implements fmt.Stringer.
func (s FrontierState) String() string {
	switch s {
	case Expanding:
		return "expanding"
	case Met:
		return "met"
	case Exhausted:
		return "exhausted"
	default:
		return "idle"
	}
}

// side is one direction of a bidirectional search.
type side struct {
	name      string
	neighbors neighborFunc
	parents   *ParentMap
	depth     map[NodeID]int
	queue     *frontier
	state     FrontierState
}

func newSide(name string, root NodeID, neighbors neighborFunc) *side {
	return &side{
		name:      name,
		neighbors: neighbors,
		parents:   NewParentMap(root),
		depth:     map[NodeID]int{root: 0},
		queue:     newFrontier(root),
	}
}

// headDepth is the depth of the next node to expand.
func (s *side) headDepth() int { return s.depth[s.queue.peek()] }

// meeting tracks the best node seen in both parent maps.
type meeting struct {
	node   NodeID
	length int
	found  bool
}

// offer records node as a meeting point with the given path length if it
// beats the current one. Equal lengths keep the smaller id.
func (m *meeting) offer(node NodeID, length int) {
	if !m.found || length < m.length || (length == m.length && node < m.node) {
		m.node, m.length, m.found = node, length, true
	}
}

// bidiSearch holds the state of one Bidirectional call.
type bidiSearch struct {
	src, dst NodeID
	fwd, rev *side
	meet     meeting
}

func newBidiSearch(g Graph, src, dst NodeID) *bidiSearch {
	return &bidiSearch{
		src: src,
		dst: dst,
		fwd: newSide("forward", src, g.ForwardNeighbors),
		rev: newSide("reverse", dst, g.ReverseNeighbors),
	}
}

// Bidirectional returns a shortest path from src to dst, or nil when dst is
// unreachable.
//
// A forward frontier grows from src over forward links and a reverse
// frontier grows from dst over reverse links. Each round expands one node
// of the smaller frontier (forward on ties). A node discovered by one side
// that the other side already holds is a meeting node. After the first
// meeting, rounds continue only while a strictly shorter meeting is still
// possible, so the returned length always equals SingleTarget's. Among
// equally short meetings the smallest node id wins.
func Bidirectional(ctx context.Context, g Graph, src, dst NodeID) ([]NodeID, error) {
	if err := requireNodes(ctx, g, src, dst); err != nil {
		return nil, err
	}

	if src == dst {
		return []NodeID{src}, nil
	}

	s := newBidiSearch(g, src, dst)
	if err := s.run(ctx); err != nil {
		return nil, err
	}

	return s.path()
}

// run alternates expansions until the frontiers meet for good or one of
// them runs dry.
func (s *bidiSearch) run(ctx context.Context) error {
	for s.fwd.queue.len() > 0 && s.rev.queue.len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Any meeting not yet seen is at least headDepth(fwd)+headDepth(rev)+1 long.
		if s.meet.found && s.fwd.headDepth()+s.rev.headDepth()+1 >= s.meet.length {
			break
		}

		cur, other := s.fwd, s.rev
		if s.rev.queue.len() < s.fwd.queue.len() {
			cur, other = s.rev, s.fwd
		}

		if err := s.expand(ctx, cur, other); err != nil {
			return err
		}
	}

	for _, sd := range []*side{s.fwd, s.rev} {
		switch {
		case s.meet.found:
			sd.state = Met
		case sd.queue.len() == 0:
			sd.state = Exhausted
		}
	}

	return nil
}

// expand dequeues one node from cur and discovers its unseen neighbors,
// checking each against the other side's map.
func (s *bidiSearch) expand(ctx context.Context, cur, other *side) error {
	cur.state = Expanding
	id := cur.queue.pop()

	nbrs, err := cur.neighbors(ctx, id)
	if err != nil {
		return fmt.Errorf("expanding %s frontier at node %d: %w", cur.name, id, err)
	}

	for _, n := range nbrs {
		if !cur.parents.Discover(n, id) {
			continue
		}

		cur.depth[n] = cur.depth[id] + 1
		cur.queue.push(n)

		if d, ok := other.depth[n]; ok {
			s.meet.offer(n, cur.depth[n]+d)
		}
	}

	return nil
}

// path assembles the result after run.
func (s *bidiSearch) path() ([]NodeID, error) {
	if !s.meet.found {
		// One frontier ran dry. A side that reaches the opposite endpoint
		// always records a meeting there first, since each endpoint is the
		// root of its own map, so these checks only matter for states built
		// without run.
		if s.fwd.parents.Contains(s.dst) {
			return pathFrom(s.dst, s.fwd.parents)
		}

		if s.rev.parents.Contains(s.src) {
			back, err := pathFrom(s.src, s.rev.parents)
			if err != nil {
				return nil, err
			}

			slices.Reverse(back)

			return back, nil
		}

		return nil, nil
	}

	front, err := pathFrom(s.meet.node, s.fwd.parents)
	if err != nil {
		return nil, err
	}

	back, err := pathFrom(s.meet.node, s.rev.parents)
	if err != nil {
		return nil, err
	}

	// back runs dst..meet; flip it and drop the shared meeting node.
	slices.Reverse(back)

	return append(front, back[1:]...), nil
}
