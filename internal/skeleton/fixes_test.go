package skeleton

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"rigtool/internal/scene"
)

func TestApplyRigQuirkFixes(t *testing.T) {
	s := newRig(t)
	attach(t, s.Root, scene.NewMesh("default", &scene.Mesh{}))
	attach(t, s.Root, scene.NewMesh("Tops", &scene.Mesh{}))
	hips := s.FindNode("Hips")

	stats := ApplyRigQuirkFixes(s)

	assert.Equal(t, []string{"default -> Eyes", "Tops -> Top"}, stats.Renamed)
	assert.Equal(t, []string{"Body", "Eyes", "Top"}, stats.GroupedMeshes)
	assert.True(t, stats.HipsReparent)

	assert.Equal(t, []string{MeshGroupName, RootProxyName}, childNames(s.Root))
	assert.Equal(t, []string{"Body", "Eyes", "Top"}, childNames(s.FindNode(MeshGroupName)))
	assert.Equal(t, []string{"Hips", RigRootName, RootProxyName, "Scene"}, ancestorNames(s.FindNode("Spine")))

	rj, _ := s.FindNode(RigRootName).Joint()
	assert.Equal(t, scene.RoleRoot, rj.Role)
	hj, _ := hips.Joint()
	assert.Equal(t, scene.RoleLimbNode, hj.Role)
	assert.Equal(t, scene.KindNone, s.FindNode(RootProxyName).Kind())
}

func TestApplyRigQuirkFixesWithoutHips(t *testing.T) {
	s := scene.New("Scene")
	attach(t, s.Root, joint("pelvis", scene.RoleRoot, mgl64.Vec3{}, mgl64.Vec3{}))

	stats := ApplyRigQuirkFixes(s)
	assert.False(t, stats.HipsReparent)
	assert.Empty(t, stats.GroupedMeshes)
	assert.Equal(t, 0, s.FindNode(RigRootName).ChildCount())
}
