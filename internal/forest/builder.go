package forest

// assembly is the index-linked form of a forest. Nodes are addressed by
// their position in the input; links are resolved before any *Node exists.
type assembly struct {
	records  []Record
	depth    []int
	parent   []int   // -1 when unattached
	children [][]int // attach order
	byDepth  map[int][]int
	maxDepth int
}

// Build reconstructs the forest from decoded records and returns the
// depth-1 nodes in input order, each carrying its attached subtree.
//
// Depths are processed from deepest to shallowest. Each node is attached to
// the first node in input order whose NativeID equals its ParentKey, at any
// depth. Nodes whose parent cannot be found are left out of every subtree;
// paths without a slash are never placed.
func Build(records []Record) []*Node {
	return assemble(records).roots()
}

func assemble(records []Record) *assembly {
	n := len(records)
	a := &assembly{
		records:  records,
		depth:    make([]int, n),
		parent:   make([]int, n),
		children: make([][]int, n),
		byDepth:  make(map[int][]int),
	}
	if n == 0 {
		return a
	}

	// First occurrence wins for duplicate native IDs.
	byNative := make(map[string]int, n)
	a.maxDepth = pathDepth(records[0].PathID)
	for i, r := range records {
		d := pathDepth(r.PathID)
		a.depth[i] = d
		a.parent[i] = -1
		if d > a.maxDepth {
			a.maxDepth = d
		}
		if d >= 1 {
			a.byDepth[d] = append(a.byDepth[d], i)
		}
		id := nativeID(r.PathID)
		if _, seen := byNative[id]; !seen {
			byNative[id] = i
		}
	}

	for d := a.maxDepth; d >= 1; d-- {
		for _, c := range a.byDepth[d] {
			p, ok := byNative[parentKey(records[c].PathID)]
			if !ok || a.isAncestorOrSelf(c, p) {
				continue
			}
			a.parent[c] = p
			a.children[p] = append(a.children[p], c)
		}
	}
	return a
}

// isAncestorOrSelf reports whether c is p or one of p's ancestors. Attaching
// c under p in that case would close a cycle, so the link is refused.
func (a *assembly) isAncestorOrSelf(c, p int) bool {
	for x := p; x >= 0; x = a.parent[x] {
		if x == c {
			return true
		}
	}
	return false
}

func (a *assembly) roots() []*Node {
	ids := a.byDepth[1]
	roots := make([]*Node, 0, len(ids))
	for _, i := range ids {
		roots = append(roots, a.materialize(i))
	}
	return roots
}

func (a *assembly) materialize(i int) *Node {
	n := &Node{
		PathID:   a.records[i].PathID,
		Label:    a.records[i].Label,
		Children: make([]*Node, 0, len(a.children[i])),
	}
	for _, c := range a.children[i] {
		n.Children = append(n.Children, a.materialize(c))
	}
	return n
}

// placed reports, per input index, whether the node is reachable from a
// depth-1 root and therefore part of the output.
func (a *assembly) placed() []bool {
	out := make([]bool, len(a.records))
	var mark func(int)
	mark = func(i int) {
		if out[i] {
			return
		}
		out[i] = true
		for _, c := range a.children[i] {
			mark(c)
		}
	}
	for _, i := range a.byDepth[1] {
		mark(i)
	}
	return out
}
