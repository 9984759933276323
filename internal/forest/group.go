package forest

import (
	"bytes"
	"encoding/json"
)

// Groups maps root keys to depth-1 nodes. Keys keep first-seen order and
// each key's nodes keep encounter order.
type Groups struct {
	keys  []string
	nodes map[string][]*Node
}

// GroupByRoot partitions depth-1 nodes by RootKey.
// Callers must pass nodes with at least two path segments; anything shorter
// lands under the empty key.
func GroupByRoot(roots []*Node) *Groups {
	g := &Groups{nodes: make(map[string][]*Node)}
	for _, n := range roots {
		g.add(n.RootKey(), n)
	}
	return g
}

func (g *Groups) add(key string, n *Node) {
	if _, ok := g.nodes[key]; !ok {
		g.keys = append(g.keys, key)
		g.nodes[key] = []*Node{}
	}
	g.nodes[key] = append(g.nodes[key], n)
}

// Keys returns the root keys in insertion order.
func (g *Groups) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

// Get returns the nodes grouped under key.
func (g *Groups) Get(key string) ([]*Node, bool) {
	nodes, ok := g.nodes[key]
	return nodes, ok
}

// Len returns the number of root keys.
func (g *Groups) Len() int {
	return len(g.keys)
}

// Roots returns every grouped node, key by key.
func (g *Groups) Roots() []*Node {
	var out []*Node
	for _, k := range g.keys {
		out = append(out, g.nodes[k]...)
	}
	return out
}

// MarshalJSON writes the groups as an object whose keys appear in
// insertion order.
func (g *Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.nodes[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
