package pathfind

import "slices"

// Outcome classifies a Reconstruction.
type Outcome int

// Reconstruction outcomes.
const (
	// Unreachable means the target is not in the parent map.
	Unreachable Outcome = iota
	// Found means Path holds the root-to-target path.
	Found
	// Corrupt means the parent chain loops or points at a missing node.
	Corrupt
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Corrupt:
		return "corrupt"
	default:
		return "unreachable"
	}
}

// Reconstruction is the result of reading a path out of a ParentMap.
type Reconstruction struct {
	Path    []NodeID
	Outcome Outcome
}

// Reconstruct walks parent pointers from dst back to the root and returns
// the path in root-to-dst order.
//
// A walk longer than the map, or one that reaches a parent with no entry of
// its own, is reported as Corrupt instead of looping.
func Reconstruct(dst NodeID, pm *ParentMap) Reconstruction {
	if pm == nil || !pm.Contains(dst) {
		return Reconstruction{Outcome: Unreachable}
	}

	path := []NodeID{dst}

	for cur := dst; ; {
		p, ok := pm.Parent(cur)
		if !ok {
			return Reconstruction{Outcome: Corrupt}
		}

		parent, hasParent := p.ID()
		if !hasParent {
			break
		}

		path = append(path, parent)
		if len(path) > pm.Len() {
			return Reconstruction{Outcome: Corrupt}
		}

		cur = parent
	}

	slices.Reverse(path)

	return Reconstruction{Path: path, Outcome: Found}
}

// pathFrom reconstructs dst from a map built by a search in this package,
// where anything but Found is a bug.
func pathFrom(dst NodeID, pm *ParentMap) ([]NodeID, error) {
	r := Reconstruct(dst, pm)
	if r.Outcome != Found {
		return nil, ErrCorruptParentMap
	}

	return r.Path, nil
}
