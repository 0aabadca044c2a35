package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestAddChildDetachesFromOldParent(t *testing.T) {
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	c := NewJoint("c", RoleLimbNode)

	require.NoError(t, a.AddChild(c))
	require.NoError(t, b.AddChild(c))

	assert.Equal(t, 0, a.ChildCount())
	assert.Equal(t, b, c.Parent())
	assert.Equal(t, []string{"c"}, names(b.Children()))
}

func TestInsertChildOrder(t *testing.T) {
	p := NewNode("p", nil)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, p.AddChild(NewNode(n, nil)))
	}
	require.NoError(t, p.InsertChild(1, NewNode("x", nil)))
	assert.Equal(t, []string{"a", "x", "b", "c"}, names(p.Children()))

	// moving an existing child forward keeps the requested slot
	c := p.Find("c")
	require.NoError(t, p.InsertChild(0, c))
	assert.Equal(t, []string{"c", "a", "x", "b"}, names(p.Children()))

	require.NoError(t, p.InsertChild(99, NewNode("z", nil)))
	assert.Equal(t, "z", p.Child(p.ChildCount()-1).Name)
}

func TestInsertChildRejectsCycle(t *testing.T) {
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	require.NoError(t, a.AddChild(b))

	assert.ErrorIs(t, b.AddChild(a), ErrCycle)
	assert.ErrorIs(t, a.AddChild(a), ErrCycle)
	assert.Nil(t, a.Parent())
}

func TestChildrenIsSnapshot(t *testing.T) {
	p := NewNode("p", nil)
	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, p.AddChild(NewNode(n, nil)))
	}
	for _, c := range p.Children() {
		p.RemoveChild(c)
	}
	assert.Equal(t, 0, p.ChildCount())
}

func TestFindAndCount(t *testing.T) {
	root := NewNode("root", nil)
	hips := NewJoint("Hips", RoleRoot)
	spine := NewJoint("Spine", RoleLimbNode)
	require.NoError(t, root.AddChild(hips))
	require.NoError(t, hips.AddChild(spine))

	assert.Equal(t, spine, root.Find("Spine"))
	assert.Equal(t, root, root.Find("root"))
	assert.Nil(t, root.FindDescendant("root"))
	assert.Equal(t, 3, root.Count())
	assert.Equal(t, 2, spine.Depth())
	assert.True(t, root.IsAncestorOf(spine))
	assert.False(t, spine.IsAncestorOf(root))
}

func TestKindAccessors(t *testing.T) {
	j := NewJoint("j", RoleEffector)
	m := NewMesh("m", &Mesh{})
	n := NewNode("n", nil)

	assert.Equal(t, KindJoint, j.Kind())
	assert.Equal(t, KindMesh, m.Kind())
	assert.Equal(t, KindNone, n.Kind())

	joint, ok := j.Joint()
	require.True(t, ok)
	assert.Equal(t, RoleEffector, joint.Role)
	_, ok = n.Joint()
	assert.False(t, ok)
	_, ok = m.Mesh()
	assert.True(t, ok)
}

func TestWorldMatrixComposesParents(t *testing.T) {
	root := NewNode("root", nil)
	root.Transform.Rotation = mgl64.Vec3{0, 0, 90}
	child := NewJoint("child", RoleLimbNode)
	child.Transform.Translation = mgl64.Vec3{10, 0, 0}
	require.NoError(t, root.AddChild(child))

	w := child.WorldMatrix()
	assert.InDelta(t, 0, w[12], 1e-9)
	assert.InDelta(t, 10, w[13], 1e-9)
	assert.InDelta(t, 0, w[14], 1e-9)
}

func TestWalkSkipsSubtree(t *testing.T) {
	root := NewNode("root", nil)
	a := NewNode("a", nil)
	b := NewNode("b", nil)
	require.NoError(t, root.AddChild(a))
	require.NoError(t, a.AddChild(b))

	var seen []string
	root.Walk(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n != a
	})
	assert.Equal(t, []string{"root", "a"}, seen)
}

func TestSceneAnimations(t *testing.T) {
	s := New("root")
	assert.Equal(t, -1, s.CurrentAnimation())

	s.Animations = []*AnimStack{{Name: "a"}, {Name: "b", Current: true}}
	assert.Equal(t, 1, s.CurrentAnimation())
	assert.Equal(t, "b", s.RemoveAnimation(1).Name)
	assert.Equal(t, 0, s.CurrentAnimation())
	assert.Nil(t, s.RemoveAnimation(5))
}

func TestParseKindAndRole(t *testing.T) {
	k, err := ParseKind("joint")
	require.NoError(t, err)
	assert.Equal(t, KindJoint, k)
	_, err = ParseKind("camera")
	assert.Error(t, err)

	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleLimbNode, r)
	_, err = ParseRole("bone")
	assert.Error(t, err)
}
