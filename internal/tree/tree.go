// Package tree implements the syntax tree the migrator operates on.
//
// Nodes live in an arena owned by a Tree and are addressed by NodeID.
// Ownership flows strictly downward through child lists; the parent link
// is a plain id used for upward navigation and structural replacement.
package tree

import "fmt"

// NodeID addresses a node inside its Tree. The zero value is never a valid
// node, so an unset parent reads as "detached".
type NodeID uint32

// NoNode is the invalid id.
const NoNode NodeID = 0

func (id NodeID) IsValid() bool {
	return id != NoNode
}

// Position is a 1-based line and column in the parsed source.
type Position struct {
	Line   int
	Column int
}

func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is a single syntax tree element.
//
// Which fields are meaningful depends on Kind:
//
//	Import                 Name (qualified, static member included), Static, Wildcard
//	*Annotation            Name; children: value (single) or pairs (key/value)
//	MemberValuePair        Name (key); children: [value]
//	MethodCall             Name; children: [receiver if HasReceiver] args...
//	ClassLiteral           Name (type)
//	StringLiteral          Text (quoted source token)
//	IntegerLiteral         Text (source token)
//	Name                   Name
//	Declaration            DeclKind, Name; children: members in source order
//	Raw                    Tag (grammar kind); children with Gaps
type Node struct {
	Kind        Kind
	Name        string
	Text        string
	Static      bool
	Wildcard    bool
	HasReceiver bool
	DeclKind    string
	Tag         string

	Pos Position
	End Position

	Parent   NodeID
	Children []NodeID

	// Gaps holds the source text around the children, len(Children)+1
	// entries, for nodes whose layout has not been changed since parsing.
	Gaps []string
}

// Tree is an arena of nodes with a single root.
type Tree struct {
	Filename string

	nodes []*Node
	root  NodeID
}

// New returns an empty tree.
func New(filename string) *Tree {
	return &Tree{
		Filename: filename,
		nodes:    []*Node{nil}, // slot 0 is NoNode
	}
}

// Add allocates n in the arena, re-parents its children to it and returns
// its id. The returned node has no parent until it is attached.
func (t *Tree) Add(n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Parent = NoNode
	n.Children = append([]NodeID(nil), n.Children...)
	t.nodes = append(t.nodes, &n)
	for _, c := range n.Children {
		t.nodes[c].Parent = id
	}
	return id
}

// Node returns the node for id. The pointer stays valid for the lifetime of
// the tree.
func (t *Tree) Node(id NodeID) *Node {
	if !t.Contains(id) {
		panic(fmt.Sprintf("tree: invalid node id %d", id))
	}
	return t.nodes[id]
}

// Contains reports whether id was allocated by t.
func (t *Tree) Contains(id NodeID) bool {
	return id.IsValid() && int(id) < len(t.nodes)
}

// Len returns the number of allocated nodes, attached or not.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

func (t *Tree) Root() NodeID {
	return t.root
}

func (t *Tree) SetRoot(id NodeID) {
	t.root = id
	if id.IsValid() {
		t.nodes[id].Parent = NoNode
	}
}

func (t *Tree) Kind(id NodeID) Kind {
	return t.Node(id).Kind
}

func (t *Tree) Parent(id NodeID) NodeID {
	return t.Node(id).Parent
}

// Children returns the child list of id. Callers must not modify it.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.Node(id).Children
}

// Child returns the i-th child of id, or NoNode if out of range.
func (t *Tree) Child(id NodeID, i int) NodeID {
	children := t.Node(id).Children
	if i < 0 || i >= len(children) {
		return NoNode
	}
	return children[i]
}

// Detached reports whether id is no longer reachable from the root.
func (t *Tree) Detached(id NodeID) bool {
	for cur := id; cur.IsValid(); cur = t.nodes[cur].Parent {
		if cur == t.root {
			return false
		}
	}
	return true
}

// IndexOf returns the position of child in the child list of parent, or -1.
func (t *Tree) IndexOf(parent, child NodeID) int {
	for i, c := range t.Node(parent).Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Replace puts repl at the position old occupies in its parent's child
// list. old is detached afterwards; its own child list is left as it was so
// a traversal that already captured it can still descend. It reports
// whether the replacement happened.
func (t *Tree) Replace(old, repl NodeID) bool {
	if old == repl {
		return false
	}
	if old == t.root {
		t.SetRoot(repl)
		return true
	}
	parent := t.Node(old).Parent
	if !parent.IsValid() {
		return false
	}
	i := t.IndexOf(parent, old)
	if i < 0 {
		return false
	}
	t.nodes[parent].Children[i] = repl
	t.nodes[repl].Parent = parent
	t.nodes[old].Parent = NoNode
	return true
}

// SetChildren replaces the child list of id. Former children that are not
// in the new list and still point at id are detached. The node's source
// gaps are dropped because its layout no longer matches the source.
func (t *Tree) SetChildren(id NodeID, children []NodeID) {
	n := t.Node(id)
	keep := make(map[NodeID]bool, len(children))
	for _, c := range children {
		keep[c] = true
	}
	for _, c := range n.Children {
		if !keep[c] && t.nodes[c].Parent == id {
			t.nodes[c].Parent = NoNode
		}
	}
	n.Children = append([]NodeID(nil), children...)
	n.Gaps = nil
	for _, c := range n.Children {
		t.nodes[c].Parent = id
	}
}

// SwapChildren exchanges the children at positions i and j of id. Gaps stay
// where they are.
func (t *Tree) SwapChildren(id NodeID, i, j int) {
	n := t.Node(id)
	n.Children[i], n.Children[j] = n.Children[j], n.Children[i]
}

// InsertChild inserts child into the child list of parent at index. When
// the parent carries source gaps the child is separated from its preceding
// sibling by a newline and keeps the original gap after it.
func (t *Tree) InsertChild(parent NodeID, index int, child NodeID) {
	n := t.Node(parent)
	if index < 0 || index > len(n.Children) {
		index = len(n.Children)
	}
	n.Children = append(n.Children, NoNode)
	copy(n.Children[index+1:], n.Children[index:])
	n.Children[index] = child
	if n.Gaps != nil {
		at := index
		if at == 0 {
			at = 1
		}
		n.Gaps = append(n.Gaps, "")
		copy(n.Gaps[at+1:], n.Gaps[at:])
		n.Gaps[at] = "\n"
	}
	t.nodes[child].Parent = parent
}

// Ancestor returns the nearest ancestor of id with the given kind.
func (t *Tree) Ancestor(id NodeID, kind Kind) NodeID {
	for cur := t.Node(id).Parent; cur.IsValid(); cur = t.nodes[cur].Parent {
		if t.nodes[cur].Kind == kind {
			return cur
		}
	}
	return NoNode
}

// Walk calls fn for id and its descendants in pre-order, following the
// current child lists. Returning false from fn skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(NodeID) bool) {
	if !id.IsValid() || !fn(id) {
		return
	}
	for _, c := range t.Node(id).Children {
		t.Walk(c, fn)
	}
}
