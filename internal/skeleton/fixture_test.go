package skeleton

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigtool/internal/scene"
)

const tol = 1e-9

func attach(t *testing.T, parent, child *scene.Node) *scene.Node {
	t.Helper()
	require.NoError(t, parent.AddChild(child))
	return child
}

func joint(name string, role scene.Role, tr, rot mgl64.Vec3) *scene.Node {
	n := scene.NewJoint(name, role)
	n.Transform.Translation = tr
	n.Transform.Rotation = rot
	return n
}

// newRig builds:
//
//	Scene
//	├── Hips (root)
//	│   ├── Spine
//	│   │   └── Head
//	│   │       └── HeadTop_End
//	│   ├── RightFoot
//	│   │   └── RightToe_End
//	│   └── LeftFoot
//	└── Body (mesh skinned to Hips, Spine, Head)
func newRig(t *testing.T) *scene.Scene {
	t.Helper()
	s := scene.New("Scene")

	hips := attach(t, s.Root, joint("Hips", scene.RoleRoot, mgl64.Vec3{3, 90, 2}, mgl64.Vec3{0, 15, 0}))
	spine := attach(t, hips, joint("Spine", scene.RoleLimbNode, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, 0, 10}))
	spine.Transform.PreRotation = mgl64.Vec3{5, 0, 0}
	head := attach(t, spine, joint("Head", scene.RoleLimbNode, mgl64.Vec3{0, 30, 0}, mgl64.Vec3{20, 0, 0}))
	attach(t, head, joint("HeadTop_End", scene.RoleLimbNode, mgl64.Vec3{0, 15, 0}, mgl64.Vec3{}))
	foot := attach(t, hips, joint("RightFoot", scene.RoleLimbNode, mgl64.Vec3{-10, -80, 0}, mgl64.Vec3{0, 30, 0}))
	attach(t, foot, joint("RightToe_End", scene.RoleLimbNode, mgl64.Vec3{0, -5, 10}, mgl64.Vec3{}))
	attach(t, hips, joint("LeftFoot", scene.RoleLimbNode, mgl64.Vec3{10, -80, 0}, mgl64.Vec3{}))

	mesh := &scene.Mesh{
		Vertices: []mgl64.Vec3{{0, 100, 0}, {1, 120, 0}, {0, 130, 1}},
	}
	body := attach(t, s.Root, scene.NewMesh("Body", mesh))
	body.Transform.Translation = mgl64.Vec3{0, 1, 0}

	var clusters []*scene.Cluster
	for i, name := range []string{"Hips", "Spine", "Head"} {
		clusters = append(clusters, &scene.Cluster{
			Link:          name,
			TransformLink: s.FindNode(name).WorldMatrix(),
			Weights:       []scene.Weight{{Index: i, Weight: 1}},
		})
	}
	mesh.Skins = []*scene.Skin{{Clusters: clusters}}

	s.Animations = []*scene.AnimStack{{Name: "Take 001", Current: true}, {Name: "Idle"}}
	return s
}

func childNames(n *scene.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Name)
	}
	return out
}

func descendantNames(n *scene.Node) []string {
	var out []string
	n.Walk(func(d *scene.Node) bool {
		if d != n {
			out = append(out, d.Name)
		}
		return true
	})
	sort.Strings(out)
	return out
}

func ancestorNames(n *scene.Node) []string {
	var out []string
	for p := n.Parent(); p != nil; p = p.Parent() {
		out = append(out, p.Name)
	}
	return out
}

func assertVec(t *testing.T, want, got mgl64.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol, msgAndArgs...)
	}
}

func assertMat(t *testing.T, want, got mgl64.Mat4, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-7), append([]any{"want %v got %v", want, got}, msgAndArgs...)...)
}
