package skeleton

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

type pose struct {
	t mgl64.Vec3
	r mgl64.Quat
}

func worldPoses(s *scene.Scene) map[*scene.Node]pose {
	out := map[*scene.Node]pose{}
	s.Root.Walk(func(n *scene.Node) bool {
		w := n.WorldMatrix()
		out[n] = pose{t: mathutil.Translation(w), r: mathutil.Rotation(w)}
		return true
	})
	return out
}

func TestUniformRescalePreservesPose(t *testing.T) {
	for _, factor := range []float64{2.5, 0.01, 100} {
		s := newRig(t)
		before := worldPoses(s)

		stats, err := UniformRescale(s, factor)
		require.NoError(t, err)
		assert.False(t, stats.Skipped)
		assert.Equal(t, s.NodeCount(), stats.Nodes)

		after := worldPoses(s)
		for n, p := range before {
			q := after[n]
			assert.True(t, p.r.OrientationEqualThreshold(q.r, 1e-9), "factor %v: %s rotation drifted", factor, n.Name)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, p.t[i]*factor, q.t[i], 1e-7*math.Max(1, factor), "factor %v: %s translation", factor, n.Name)
			}
		}
		assertVec(t, mgl64.Vec3{1, 1, 1}, s.Root.Transform.Scaling)
	}
}

func TestUniformRescaleKeepsScaledJointChildren(t *testing.T) {
	s := scene.New("Scene")
	a := attach(t, s.Root, joint("A", scene.RoleRoot, mgl64.Vec3{}, mgl64.Vec3{0, 30, 0}))
	a.Transform.Scaling = mgl64.Vec3{2, 2, 2}
	b := attach(t, a, joint("B", scene.RoleLimbNode, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{}))
	before := worldPoses(s)

	_, err := UniformRescale(s, 3)
	require.NoError(t, err)

	assertVec(t, mgl64.Vec3{0, 60, 0}, mathutil.Translation(b.WorldMatrix()))
	assertVec(t, mgl64.Vec3{2, 2, 2}, a.Transform.Scaling)
	after := worldPoses(s)
	assert.True(t, before[a].r.OrientationEqualThreshold(after[a].r, 1e-9))
	assert.True(t, before[b].r.OrientationEqualThreshold(after[b].r, 1e-9))
}

func TestUniformRescaleUpdatesMeshesAndClusters(t *testing.T) {
	s := newRig(t)
	mesh, _ := s.FindNode("Body").Mesh()
	verts := append([]mgl64.Vec3(nil), mesh.Vertices...)

	stats, err := UniformRescale(s, 3)
	require.NoError(t, err)

	for i, v := range verts {
		assertVec(t, v.Mul(3), mesh.Vertices[i])
	}
	assert.Equal(t, 3, stats.Vertices)
	assert.Equal(t, 3, stats.Clusters)
	for _, cl := range mesh.Skins[0].Clusters {
		assertMat(t, s.FindNode(cl.Link).WorldMatrix(), cl.TransformLink, cl.Link)
	}
}

func TestUniformRescaleUpdatesEverySkin(t *testing.T) {
	s := newRig(t)
	mesh, _ := s.FindNode("Body").Mesh()
	second := &scene.Cluster{Link: "Head", TransformLink: mgl64.Ident4()}
	mesh.Skins = append(mesh.Skins, &scene.Skin{Clusters: []*scene.Cluster{second}})

	_, err := UniformRescale(s, 2)
	require.NoError(t, err)
	assertMat(t, s.FindNode("Head").WorldMatrix(), second.TransformLink)
}

func TestUniformRescaleRemovesCurrentAnimation(t *testing.T) {
	s := newRig(t)
	stats, err := UniformRescale(s, 2)
	require.NoError(t, err)

	assert.Equal(t, "Take 001", stats.RemovedAnimation)
	require.Len(t, s.Animations, 1)
	assert.Equal(t, "Idle", s.Animations[0].Name)
}

func TestUniformRescaleReportsMissingLinks(t *testing.T) {
	s := newRig(t)
	mesh, _ := s.FindNode("Body").Mesh()
	ghost := &scene.Cluster{Link: "Ghost", TransformLink: mgl64.Translate3D(1, 2, 3)}
	mesh.Skins[0].Clusters = append(mesh.Skins[0].Clusters, ghost)

	stats, err := UniformRescale(s, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ghost"}, stats.MissingLinks)
	assertMat(t, mgl64.Translate3D(1, 2, 3), ghost.TransformLink)
}

func TestUniformRescaleSkipsUnitFactor(t *testing.T) {
	for _, factor := range []float64{1, 1 + 1e-16} {
		s := newRig(t)
		before := worldPoses(s)
		mesh, _ := s.FindNode("Body").Mesh()
		verts := append([]mgl64.Vec3(nil), mesh.Vertices...)

		stats, err := UniformRescale(s, factor)
		require.NoError(t, err)
		assert.True(t, stats.Skipped)

		assert.Len(t, s.Animations, 2)
		assert.Equal(t, verts, mesh.Vertices)
		for n, p := range worldPoses(s) {
			assert.Equal(t, before[n].t, p.t, n.Name)
		}
	}
}

func TestUniformRescaleRejectsInvalidFactor(t *testing.T) {
	for _, factor := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		_, err := UniformRescale(newRig(t), factor)
		assert.ErrorIs(t, err, ErrInvalidScale, "factor %v", factor)
	}
}
