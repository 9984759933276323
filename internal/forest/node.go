package forest

import "strings"

const pathSep = "/"

// Node is one questionnaire item placed in the forest.
// Depth, NativeID and ParentKey are derived from PathID on every call.
type Node struct {
	PathID   string  `json:"path_id"`
	Label    string  `json:"label"`
	Children []*Node `json:"children"`
}

// Depth returns the slash count minus one. Paths without a slash are -1.
func (n *Node) Depth() int {
	return pathDepth(n.PathID)
}

// NativeID returns the last path segment.
func (n *Node) NativeID() string {
	return nativeID(n.PathID)
}

// ParentKey returns the second-to-last path segment, or "" when there is none.
func (n *Node) ParentKey() string {
	return parentKey(n.PathID)
}

// RootKey returns the second path segment, which for "/1/10" is "1".
// Paths with fewer than two segments return "".
func (n *Node) RootKey() string {
	return rootKey(n.PathID)
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(node *Node, level int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), level int) {
	fn(n, level)
	for _, c := range n.Children {
		c.walk(fn, level+1)
	}
}

func pathDepth(pathID string) int {
	return strings.Count(pathID, pathSep) - 1
}

func nativeID(pathID string) string {
	if i := strings.LastIndex(pathID, pathSep); i >= 0 {
		return pathID[i+1:]
	}
	return pathID
}

func parentKey(pathID string) string {
	i := strings.LastIndex(pathID, pathSep)
	if i < 0 {
		return ""
	}
	head := pathID[:i]
	if j := strings.LastIndex(head, pathSep); j >= 0 {
		return head[j+1:]
	}
	return head
}

func rootKey(pathID string) string {
	parts := strings.Split(pathID, pathSep)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
