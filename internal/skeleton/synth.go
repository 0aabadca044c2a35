package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

// OffsetPolicy selects how a synthesized joint's local translation is derived.
type OffsetPolicy int

const (
	// OffsetFixed keeps the base offset.
	OffsetFixed OffsetPolicy = iota
	// OffsetUp points UpReferenceLength units straight up in world space.
	OffsetUp
	// OffsetDown points straight down in world space, as far as the parent is above the ground.
	OffsetDown
)

// UpReferenceLength is the world-space length of an OffsetUp joint.
const UpReferenceLength = 100.0

var (
	worldUp   = mgl64.Vec3{0, 1, 0}
	worldDown = mgl64.Vec3{0, -1, 0}
)

// SynthesizeJoint creates a limb joint named name under the node named parentName.
// The local translation is baseOffset for OffsetFixed; the other policies rotate a world
// up or down vector into the parent's frame. A missing parent is not an error: nothing is
// created and ok is false.
func SynthesizeJoint(s *scene.Scene, name, parentName string, policy OffsetPolicy, baseOffset mgl64.Vec3) (*scene.Node, bool) {
	if s == nil {
		return nil, false
	}
	parent := s.FindNode(parentName)
	if parent == nil {
		return nil, false
	}

	joint := scene.NewJoint(name, scene.RoleLimbNode)
	joint.Transform.Translation = baseOffset

	switch policy {
	case OffsetUp:
		toLocal := mathutil.Rotation(parent.WorldMatrix()).Inverse()
		joint.Transform.Translation = mathutil.RotateVec(toLocal, worldUp).Mul(UpReferenceLength)
	case OffsetDown:
		world := parent.WorldMatrix()
		toLocal := mathutil.Rotation(world).Inverse()
		height := mathutil.Translation(world)[1]
		joint.Transform.Translation = mathutil.RotateVec(toLocal, worldDown).Mul(height)
	}

	if err := parent.AddChild(joint); err != nil {
		return nil, false
	}
	return joint, true
}

// JointSpec describes one joint of a synthesized set.
type JointSpec struct {
	Name   string
	Parent string
	Policy OffsetPolicy
	Offset mgl64.Vec3
}

// StandardIKJoints is the foot, hand, look-at and camera joint set added by AddIKJoints.
var StandardIKJoints = []JointSpec{
	// foot planting
	{Name: "RightFootIKTarget", Parent: "RightFoot", Policy: OffsetDown},
	{Name: "RightFootIKWeight", Parent: "RightFoot", Policy: OffsetUp, Offset: mgl64.Vec3{0, 100, 0}},
	{Name: "LeftFootIKTarget", Parent: "LeftFoot", Policy: OffsetDown},
	{Name: "LeftFootIKWeight", Parent: "LeftFoot", Policy: OffsetUp, Offset: mgl64.Vec3{0, 100, 0}},

	// weapon bones and hand positioning
	{Name: "RightHandIK", Parent: "RightHand", Offset: mgl64.Vec3{0, 20, 0}},
	{Name: "LeftHandIK", Parent: "LeftHand", Offset: mgl64.Vec3{0, 20, 0}},

	{Name: "HeadIKLook", Parent: "Head", Offset: mgl64.Vec3{0, 0, 6}},
	// approximate placement
	{Name: "Camera", Parent: "Head", Offset: mgl64.Vec3{0, 8.3, 7.4}},
}

// AddIKJoints synthesizes StandardIKJoints and returns the joints that were created.
func AddIKJoints(s *scene.Scene) []*scene.Node {
	return SynthesizeJoints(s, StandardIKJoints)
}

// SynthesizeJoints runs SynthesizeJoint for each spec in order, skipping specs whose parent is missing.
func SynthesizeJoints(s *scene.Scene, specs []JointSpec) []*scene.Node {
	var made []*scene.Node
	for _, spec := range specs {
		if j, ok := SynthesizeJoint(s, spec.Name, spec.Parent, spec.Policy, spec.Offset); ok {
			made = append(made, j)
		}
	}
	return made
}
