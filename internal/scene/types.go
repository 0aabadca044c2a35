// Package scene holds the mutable scene graph the rig tools operate on.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind classifies what a node carries.
type Kind int

const (
	KindNone Kind = iota
	KindJoint
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindJoint:
		return "joint"
	case KindMesh:
		return "mesh"
	default:
		return "none"
	}
}

// ParseKind maps a serialized kind name back to a Kind. An empty name is KindNone.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "none":
		return KindNone, nil
	case "joint":
		return KindJoint, nil
	case "mesh":
		return KindMesh, nil
	}
	return KindNone, fmt.Errorf("scene: unknown node kind %q", s)
}

// Role is the skeleton role of a joint.
type Role int

const (
	RoleRoot Role = iota
	RoleLimbNode
	RoleEffector
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleEffector:
		return "effector"
	default:
		return "limb"
	}
}

// ParseRole maps a serialized role name back to a Role. An empty name is a limb.
func ParseRole(s string) (Role, error) {
	switch s {
	case "root":
		return RoleRoot, nil
	case "", "limb":
		return RoleLimbNode, nil
	case "effector":
		return RoleEffector, nil
	}
	return RoleLimbNode, fmt.Errorf("scene: unknown joint role %q", s)
}

// Attribute is the payload attached to a node: *Joint, *Mesh, or nil for an unclassified node.
type Attribute interface {
	Kind() Kind
	attribute()
}

// Joint marks a node as part of a skeleton.
type Joint struct {
	Role Role
}

func (*Joint) Kind() Kind { return KindJoint }
func (*Joint) attribute() {}

// Mesh holds bind-space vertex positions and skin bindings.
type Mesh struct {
	Vertices  []mgl64.Vec3
	Skins     []*Skin
	Primitive string // placeholder shape for generated proxy geometry, empty for authored meshes
}

func (*Mesh) Kind() Kind { return KindMesh }
func (*Mesh) attribute() {}

// Skin is one skin deformer of a mesh.
type Skin struct {
	Clusters []*Cluster
}

// Cluster binds a set of mesh vertices to one joint.
// TransformLink is the joint's world transform at bind time.
type Cluster struct {
	Link          string
	TransformLink mgl64.Mat4
	Weights       []Weight
}

// Weight is one (vertex index, weight) pair of a cluster.
type Weight struct {
	Index  int
	Weight float64
}

// Metadata is the descriptive document info of a scene.
type Metadata struct {
	Title     string
	Subject   string
	Author    string
	Keywords  string
	Revision  string
	Comment   string
	Thumbnail string // path to a thumbnail image, relative to the scene file
}

// AnimStack is an animation take. Curves are carried through untouched.
type AnimStack struct {
	Name    string
	Current bool
	Curves  any
}
