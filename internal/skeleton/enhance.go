package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/scene"
)

// JointEnhancement is one joint-mapping entry, keyed by the joint's original name.
type JointEnhancement struct {
	OldName       string
	NewName       string
	PhysicsProxy  string
	RagdollProxy  string
	PrimitiveType string
	ParentNode    string
}

// EnhancementTable maps original joint names to their enhancement entry. It is read-only during a pass.
type EnhancementTable map[string]JointEnhancement

// NewEnhancementTable indexes entries by OldName. Later duplicates replace earlier ones.
func NewEnhancementTable(entries []JointEnhancement) EnhancementTable {
	t := make(EnhancementTable, len(entries))
	for _, e := range entries {
		t[e.OldName] = e
	}
	return t
}

// Lookup returns the entry for an original joint name.
func (t EnhancementTable) Lookup(name string) (JointEnhancement, bool) {
	e, ok := t[name]
	return e, ok
}

const (
	// HipsName is the pelvis joint whose horizontal offset is zeroed by the rename pass.
	HipsName = "Hips"

	PhysicsSuffix = "__phys"
	RagdollSuffix = "__ragdoll"

	defaultPrimitive = "box"
	proxyHalfExtent  = 5.0
)

// RenameOutcome describes what the rename pass did to one joint.
type RenameOutcome struct {
	OldName        string
	NewName        string
	Renamed        bool
	HipsNormalized bool
	Proxies        []string
}

// RenameAndEnhance visits every skeleton joint once, parents before children. A joint whose
// current name is in table is renamed to the entry's new name and gets any configured proxy
// geometry. A mapped joint whose new name is HipsName has its local X and Z translation zeroed;
// unmapped joints are left alone.
func RenameAndEnhance(s *scene.Scene, table EnhancementTable) []RenameOutcome {
	if s == nil || s.Root == nil {
		return nil
	}
	var out []RenameOutcome
	renameNode(s, s.Root, table, &out)
	return out
}

func renameNode(s *scene.Scene, n *scene.Node, table EnhancementTable, out *[]RenameOutcome) {
	children := n.Children()

	if n.Kind() == scene.KindJoint {
		res := RenameOutcome{OldName: n.Name, NewName: n.Name}

		if entry, ok := table.Lookup(n.Name); ok {
			n.Name = entry.NewName
			res.NewName = n.Name
			res.Renamed = true

			if n.Name == HipsName {
				n.Transform.Translation[0] = 0
				n.Transform.Translation[2] = 0
				res.HipsNormalized = true
			}
			res.Proxies = enhanceJoint(s, n, entry)
		}
		*out = append(*out, res)
	}

	for _, c := range children {
		renameNode(s, c, table, out)
	}
}

// enhanceJoint attaches physics and ragdoll proxies for a renamed joint and returns their names.
// A physics proxy sits under the joint itself. A ragdoll proxy mirrors the joint's local pose and
// sits under entry.ParentNode, or under the scene root when that node does not exist.
func enhanceJoint(s *scene.Scene, joint *scene.Node, entry JointEnhancement) []string {
	var made []string

	if entry.PhysicsProxy != "" {
		proxy := newProxy(joint.Name+PhysicsSuffix, entry.PrimitiveType)
		if joint.AddChild(proxy) == nil {
			made = append(made, proxy.Name)
		}
	}

	if entry.RagdollProxy != "" {
		proxy := newProxy(joint.Name+RagdollSuffix, entry.PrimitiveType)
		proxy.Transform.Translation = joint.Transform.Translation
		proxy.Transform.Rotation = joint.Transform.Rotation
		proxy.Transform.PreRotation = joint.Transform.PreRotation
		proxy.Transform.PostRotation = joint.Transform.PostRotation

		parent := s.Root
		if entry.ParentNode != "" {
			if p := s.FindNode(entry.ParentNode); p != nil {
				parent = p
			}
		}
		if parent != nil && parent.AddChild(proxy) == nil {
			made = append(made, proxy.Name)
		}
	}

	return made
}

func newProxy(name, primitive string) *scene.Node {
	if primitive == "" {
		primitive = defaultPrimitive
	}
	return scene.NewMesh(name, &scene.Mesh{
		Vertices:  boxVertices(proxyHalfExtent),
		Primitive: primitive,
	})
}

func boxVertices(h float64) []mgl64.Vec3 {
	verts := make([]mgl64.Vec3, 0, 8)
	for _, x := range []float64{-h, h} {
		for _, y := range []float64{-h, h} {
			for _, z := range []float64{-h, h} {
				verts = append(verts, mgl64.Vec3{x, y, z})
			}
		}
	}
	return verts
}
