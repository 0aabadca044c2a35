package skeleton

import (
	"rigtool/internal/scene"
)

// Names used by ApplyRigQuirkFixes.
const (
	MeshGroupName = "Meshes"
	RootProxyName = "RootProxy"
	RigRootName   = "Root"
)

var quirkRenames = [][2]string{
	{"default", "Eyes"},
	{"Tops", "Top"},
	{"Bottoms", "Bottom"},
}

var quirkMeshes = []string{"Body", "Bottom", "Eyes", "Eyelashes", "Hair", "Top", "Shoes"}

// RigFixStats lists what ApplyRigQuirkFixes changed.
type RigFixStats struct {
	Renamed       []string // "old -> new"
	GroupedMeshes []string
	HipsReparent  bool
}

// ApplyRigQuirkFixes normalizes rigs exported by a known character service: it fixes a few
// mesh names, groups the character meshes under a Meshes node, and moves the skeleton under
// a new Root joint that hangs from an unclassified RootProxy node. Missing nodes are skipped.
func ApplyRigQuirkFixes(s *scene.Scene) RigFixStats {
	var stats RigFixStats
	if s == nil || s.Root == nil {
		return stats
	}
	root := s.Root

	for _, r := range quirkRenames {
		if n := s.FindNode(r[0]); n != nil {
			n.Name = r[1]
			stats.Renamed = append(stats.Renamed, r[0]+" -> "+r[1])
		}
	}

	group := scene.NewNode(MeshGroupName, nil)
	_ = root.AddChild(group)
	for _, name := range quirkMeshes {
		n := root.FindDescendant(name)
		if n == nil || n == group || n.IsAncestorOf(group) {
			continue
		}
		if group.AddChild(n) == nil {
			stats.GroupedMeshes = append(stats.GroupedMeshes, name)
		}
	}

	proxy := scene.NewNode(RootProxyName, nil)
	_ = root.AddChild(proxy)
	rigRoot := scene.NewJoint(RigRootName, scene.RoleRoot)
	_ = proxy.AddChild(rigRoot)

	if hips := root.FindDescendant(HipsName); hips != nil && hips != rigRoot {
		if err := rigRoot.AddChild(hips); err == nil {
			stats.HipsReparent = true
			if j, ok := hips.Joint(); ok && j.Role == scene.RoleRoot {
				j.Role = scene.RoleLimbNode
			}
		}
	}
	return stats
}
