package model

// NodeType is the structural kind of a render node. It is deliberately
// coarser than ResourceType: renderers care whether a node is a container
// of other nodes, a leaf item, an ordered collection, or a standalone card.
type NodeType string

const (
	NodeContainer  NodeType = "container"
	NodeItem       NodeType = "item"
	NodeCollection NodeType = "collection"
	NodeCard       NodeType = "card"
)

// Node is the transient, client-only projection of a resource (or of a
// hand-authored sandbox document) consumed by the view engine. Exactly one
// node is the root of a render pass. The tree is rebuilt fresh on every
// data refresh and never persisted; children are owned by their parent,
// no sharing, no cycles.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Variant  string   `json:"variant"`
	Title    string   `json:"title"`
	Metadata MetaData `json:"metadata,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// Slot returns the named slot value from the node's metadata bag, or "".
// Slots are how specific renderers receive per-node display inputs
// (e.g. "subtitle", "badge", "body") without widening the Node struct.
func (n *Node) Slot(name string) string {
	return n.Metadata.String(name)
}

// Walk visits n and every descendant depth-first, parents before children.
// The visit function returning false prunes that subtree.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 0
	n.Walk(func(*Node) bool {
		total++
		return true
	})
	return total
}

// Find returns the first node in the tree with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}
