package skeleton

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

func footScene(t *testing.T, tr, rot mgl64.Vec3) *scene.Scene {
	t.Helper()
	s := scene.New("Scene")
	attach(t, s.Root, joint("Foot", scene.RoleRoot, tr, rot))
	return s
}

func TestSynthesizeJointUpReference(t *testing.T) {
	s := footScene(t, mgl64.Vec3{0, 10, 0}, mgl64.Vec3{})

	j, ok := SynthesizeJoint(s, "Weight", "Foot", OffsetUp, mgl64.Vec3{0, 100, 0})
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, 100, 0}, j.Transform.Translation)
	assert.Equal(t, "Foot", j.Parent().Name)

	role, _ := j.Joint()
	assert.Equal(t, scene.RoleLimbNode, role.Role)
}

func TestSynthesizeJointDownReference(t *testing.T) {
	s := footScene(t, mgl64.Vec3{0, 50, 0}, mgl64.Vec3{})

	j, ok := SynthesizeJoint(s, "Target", "Foot", OffsetDown, mgl64.Vec3{})
	require.True(t, ok)
	assertVec(t, mgl64.Vec3{0, -50, 0}, j.Transform.Translation)
}

func TestSynthesizeJointRotatedParentPointsWorldVertical(t *testing.T) {
	s := footScene(t, mgl64.Vec3{4, 12, -3}, mgl64.Vec3{30, -70, 110})

	up, ok := SynthesizeJoint(s, "Weight", "Foot", OffsetUp, mgl64.Vec3{})
	require.True(t, ok)
	down, ok := SynthesizeJoint(s, "Target", "Foot", OffsetDown, mgl64.Vec3{})
	require.True(t, ok)

	foot := mathutil.Translation(s.FindNode("Foot").WorldMatrix())
	assertVec(t, foot.Add(mgl64.Vec3{0, 100, 0}), mathutil.Translation(up.WorldMatrix()))
	// the target lands on the ground plane right below the foot
	assertVec(t, mgl64.Vec3{foot[0], 0, foot[2]}, mathutil.Translation(down.WorldMatrix()))
}

func TestSynthesizeJointFixedOffset(t *testing.T) {
	s := footScene(t, mgl64.Vec3{0, 50, 0}, mgl64.Vec3{0, 90, 0})
	j, ok := SynthesizeJoint(s, "Hand", "Foot", OffsetFixed, mgl64.Vec3{0, 20, 0})
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0, 20, 0}, j.Transform.Translation)
}

func TestSynthesizeJointMissingParent(t *testing.T) {
	s := footScene(t, mgl64.Vec3{}, mgl64.Vec3{})
	before := s.NodeCount()

	j, ok := SynthesizeJoint(s, "Weight", "NoSuchFoot", OffsetUp, mgl64.Vec3{})
	assert.False(t, ok)
	assert.Nil(t, j)
	assert.Equal(t, before, s.NodeCount())
	assert.Nil(t, s.FindNode("Weight"))
}

func TestAddIKJoints(t *testing.T) {
	s := newRig(t)
	before := s.NodeCount()

	made := AddIKJoints(s)

	var got []string
	for _, j := range made {
		got = append(got, j.Name)
	}
	// the rig has no hands
	assert.Equal(t, []string{
		"RightFootIKTarget", "RightFootIKWeight",
		"LeftFootIKTarget", "LeftFootIKWeight",
		"HeadIKLook", "Camera",
	}, got)
	assert.Equal(t, before+6, s.NodeCount())
	assert.Equal(t, "Head", s.FindNode("Camera").Parent().Name)
	assert.Equal(t, mgl64.Vec3{0, 8.3, 7.4}, s.FindNode("Camera").Transform.Translation)
	assert.Nil(t, s.FindNode("RightHandIK"))
	assert.Len(t, StandardIKJoints, 8)
}
