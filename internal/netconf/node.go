// Package netconf parses cloud-init style network-config documents and
// binds them to typed interface entries.
//
// The input format is a restricted subset of YAML: nested mappings,
// sequences, and plain scalars, with significance attached to indentation.
// Anchors, multi-line scalars, flow collections, and the rest of the full
// grammar are out of scope. The parser is permissive: lines it cannot make
// sense of are skipped rather than reported.
package netconf

// Kind discriminates the three node shapes a document tree can contain.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	}
	return "unknown"
}

// Node is one node of a parsed document tree. A node is exactly one of a
// scalar, a mapping with insertion-ordered unique keys, or a sequence.
// Nodes are built by Parse and must not be mutated afterwards.
type Node struct {
	kind  Kind
	value string           // scalar payload
	keys  []string         // mapping key order
	child map[string]*Node // mapping children
	items []*Node          // sequence elements

	// pending collects sequence items while a container is still being
	// scanned. Whether a key introduces a mapping or a sequence is only
	// known once its first child line is seen, so containers start out as
	// mappings and the fixup pass rewrites collectors into sequences.
	pending []*Node
}

func newScalar(v string) *Node {
	return &Node{kind: KindScalar, value: v}
}

func newMapping() *Node {
	return &Node{kind: KindMapping, child: make(map[string]*Node)}
}

func newSequence(items []*Node) *Node {
	return &Node{kind: KindSequence, items: items}
}

// Kind returns the node's shape.
func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns the scalar payload, or "" for containers.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.value
}

// Keys returns the mapping keys in insertion order.
func (n *Node) Keys() []string {
	if n == nil {
		return nil
	}
	return n.keys
}

// Child returns the mapping child for key, or nil if absent or if the
// node is not a mapping. Callers treat nil as "no value"; an empty
// mapping (a key line that never received children) is a valid child.
func (n *Node) Child(key string) *Node {
	if n == nil || n.child == nil {
		return nil
	}
	return n.child[key]
}

// Items returns the sequence elements, or nil for non-sequences.
func (n *Node) Items() []*Node {
	if n == nil {
		return nil
	}
	return n.items
}

// ChildValue returns the scalar value stored under key, or "" when the
// key is absent or holds a container.
func (n *Node) ChildValue(key string) string {
	c := n.Child(key)
	if c == nil || c.kind != KindScalar {
		return ""
	}
	return c.value
}

// Lookup walks a chain of mapping keys and returns the node at the end,
// or nil as soon as any step is missing.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, k := range keys {
		cur = cur.Child(k)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node) put(key string, child *Node) {
	if _, ok := n.child[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.child[key] = child
}

// Equal reports structural equality of two trees: same kinds, same scalar
// values, same key order, same sequence order.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindScalar:
		return n.value == other.value
	case KindMapping:
		if len(n.keys) != len(other.keys) {
			return false
		}
		for i, k := range n.keys {
			if other.keys[i] != k {
				return false
			}
			if !n.child[k].Equal(other.child[k]) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(n.items) != len(other.items) {
			return false
		}
		for i, it := range n.items {
			if !it.Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
	return false
}
