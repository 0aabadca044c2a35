package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrCycle is returned when an edge would make a node its own ancestor.
var ErrCycle = errors.New("scene: edge would create a cycle")

// Node is one element of the scene tree. A node is owned by its parent and owns its children in order.
type Node struct {
	Name      string
	Attr      Attribute
	Transform Transform

	parent   *Node
	children []*Node
}

// NewNode creates a detached node with an identity transform.
func NewNode(name string, attr Attribute) *Node {
	return &Node{Name: name, Attr: attr, Transform: IdentityTransform()}
}

// NewJoint creates a detached skeleton joint.
func NewJoint(name string, role Role) *Node {
	return NewNode(name, &Joint{Role: role})
}

// NewMesh creates a detached mesh node.
func NewMesh(name string, mesh *Mesh) *Node {
	return NewNode(name, mesh)
}

// Kind reports the node's classification.
func (n *Node) Kind() Kind {
	if n.Attr == nil {
		return KindNone
	}
	return n.Attr.Kind()
}

// Joint returns the joint payload when the node is a skeleton joint.
func (n *Node) Joint() (*Joint, bool) {
	j, ok := n.Attr.(*Joint)
	return j, ok && j != nil
}

// Mesh returns the mesh payload when the node is a mesh.
func (n *Node) Mesh() (*Mesh, bool) {
	m, ok := n.Attr.(*Mesh)
	return m, ok && m != nil
}

func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the child list. Mutating the tree while
// ranging over the snapshot is safe.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) *Node { return n.children[i] }

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AddChild appends child, detaching it from its current parent first.
func (n *Node) AddChild(child *Node) error {
	return n.InsertChild(len(n.children), child)
}

// InsertChild places child at index i (clamped to the child range),
// detaching it from its current parent first.
func (n *Node) InsertChild(i int, child *Node) error {
	if child == n || child.IsAncestorOf(n) {
		return ErrCycle
	}
	if child.parent != nil {
		if child.parent == n {
			if j := n.IndexOf(child); j < i {
				i--
			}
		}
		child.parent.RemoveChild(child)
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
	return nil
}

// RemoveChild detaches child from n. It reports false when child is not a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	i := n.IndexOf(child)
	if i < 0 {
		return false
	}
	n.children[i] = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
	return true
}

// Walk visits n and its descendants in pre-order. Returning false from fn skips that node's subtree.
// Each child list is snapshotted before it is visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		c.Walk(fn)
	}
}

// Find returns the first node named name in pre-order, starting with n itself.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindDescendant is Find restricted to strict descendants of n.
func (n *Node) FindDescendant(name string) *Node {
	for _, c := range n.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.children {
		total += c.Count()
	}
	return total
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// LocalMatrix evaluates the node's local transform.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	return n.Transform.Matrix()
}

// WorldMatrix evaluates the composition of every ancestor's local transform with n's own.
// It is recomputed on each call; use a transform cache for whole-tree passes.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul4(n.LocalMatrix())
}
