package skeleton

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

// AxisSystem is a named up-axis and handedness convention.
type AxisSystem struct {
	Name        string
	Up          mgl64.Vec3
	RightHanded bool
}

// DefaultAxisSystem is assumed for scenes that do not declare one.
var DefaultAxisSystem = AxisSystem{Name: "MayaYUp", Up: mgl64.Vec3{0, 1, 0}, RightHanded: true}

var axisSystems = []AxisSystem{
	DefaultAxisSystem,
	{Name: "MayaZUp", Up: mgl64.Vec3{0, 0, 1}, RightHanded: true},
	{Name: "Max", Up: mgl64.Vec3{0, 0, 1}, RightHanded: true},
	{Name: "MotionBuilder", Up: mgl64.Vec3{0, 1, 0}, RightHanded: true},
	{Name: "OpenGL", Up: mgl64.Vec3{0, 1, 0}, RightHanded: true},
	{Name: "DirectX", Up: mgl64.Vec3{0, 1, 0}, RightHanded: false},
	{Name: "Lightwave", Up: mgl64.Vec3{0, 1, 0}, RightHanded: false},
}

// ParseAxisSystem looks up an axis system by name, case-insensitively.
func ParseAxisSystem(name string) (AxisSystem, error) {
	for _, a := range axisSystems {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return AxisSystem{}, fmt.Errorf("skeleton: unknown axis system %q", name)
}

// ConvertAxis re-expresses the scene in the target axis system by rotating the scene root,
// and rotates every cluster bind transform by the same amount so skinning is unchanged.
// It reports whether any rotation was applied.
func ConvertAxis(s *scene.Scene, target AxisSystem) (bool, error) {
	if s == nil || s.Root == nil {
		return false, nil
	}
	source := DefaultAxisSystem
	if s.Axis != "" {
		var err error
		if source, err = ParseAxisSystem(s.Axis); err != nil {
			return false, err
		}
	}
	if source.RightHanded != target.RightHanded {
		return false, fmt.Errorf("convert %s to %s: %w", source.Name, target.Name, ErrHandedness)
	}

	s.Axis = target.Name
	if source.Up.ApproxEqual(target.Up) {
		return false, nil
	}

	turn := mgl64.QuatBetweenVectors(source.Up, target.Up)
	root := s.Root
	root.Transform.Translation = mathutil.RotateVec(turn, root.Transform.Translation)
	root.Transform.PreRotation = mathutil.QuatToEuler(turn.Mul(mathutil.EulerToQuat(root.Transform.PreRotation)))

	turnMat := turn.Mat4()
	root.Walk(func(n *scene.Node) bool {
		mesh, ok := n.Mesh()
		if !ok {
			return true
		}
		for _, skin := range mesh.Skins {
			if skin == nil {
				continue
			}
			for _, cl := range skin.Clusters {
				cl.TransformLink = turnMat.Mul4(cl.TransformLink)
			}
		}
		return true
	})
	return true, nil
}
