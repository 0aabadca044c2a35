// Package skeleton restructures and re-poses skeleton hierarchies while keeping
// world poses and skin bindings consistent.
package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/scene"
)

// TransformCache is a snapshot of world transforms for one pass over a tree.
// It goes stale as soon as any local transform changes; capture a new one instead of reusing it.
type TransformCache struct {
	byNode map[*scene.Node]mgl64.Mat4
	byName map[string]*scene.Node
}

// CaptureTransforms evaluates the world transform of every node under root, root included.
// Parents are evaluated before children, so each node costs one matrix multiply.
func CaptureTransforms(root *scene.Node) *TransformCache {
	c := &TransformCache{
		byNode: make(map[*scene.Node]mgl64.Mat4),
		byName: make(map[string]*scene.Node),
	}
	if root == nil {
		return c
	}

	parentWorld := mgl64.Ident4()
	if p := root.Parent(); p != nil {
		parentWorld = p.WorldMatrix()
	}
	c.capture(root, parentWorld)
	return c
}

func (c *TransformCache) capture(n *scene.Node, parentWorld mgl64.Mat4) {
	world := parentWorld.Mul4(n.LocalMatrix())
	c.byNode[n] = world
	if _, seen := c.byName[n.Name]; !seen {
		c.byName[n.Name] = n
	}
	for i := 0; i < n.ChildCount(); i++ {
		c.capture(n.Child(i), world)
	}
}

// Global returns the cached world transform of n.
func (c *TransformCache) Global(n *scene.Node) (mgl64.Mat4, bool) {
	m, ok := c.byNode[n]
	return m, ok
}

// GlobalByName returns the cached world transform of the first node in pre-order named name.
func (c *TransformCache) GlobalByName(name string) (mgl64.Mat4, bool) {
	n, ok := c.byName[name]
	if !ok {
		return mgl64.Mat4{}, false
	}
	return c.byNode[n], true
}

// ParentGlobal returns the cached world transform of n's parent, or identity when n has no parent.
func (c *TransformCache) ParentGlobal(n *scene.Node) mgl64.Mat4 {
	if p := n.Parent(); p != nil {
		if m, ok := c.byNode[p]; ok {
			return m
		}
		return p.WorldMatrix()
	}
	return mgl64.Ident4()
}

func (c *TransformCache) Len() int { return len(c.byNode) }
