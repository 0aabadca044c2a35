package skeleton

import (
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

// BindPoseStats summarizes one ResetBindPose pass.
type BindPoseStats struct {
	Meshes   int
	Clusters int
	// Unchanged counts clusters whose bind transform was already identity.
	Unchanged int
}

// ResetBindPose resets every skin cluster's bind transform to identity and moves the owning
// mesh's geometric origin to half the negated translation of the old inverse bind transform,
// activating its destination pivot. Node names are left alone.
func ResetBindPose(s *scene.Scene) BindPoseStats {
	var stats BindPoseStats
	if s == nil || s.Root == nil {
		return stats
	}
	resetBindPose(s.Root, &stats)
	return stats
}

func resetBindPose(n *scene.Node, stats *BindPoseStats) {
	if mesh, ok := n.Mesh(); ok && len(mesh.Skins) > 0 {
		stats.Meshes++
		for _, skin := range mesh.Skins {
			if skin == nil {
				continue
			}
			for _, cl := range skin.Clusters {
				if mathutil.IsIdentity(cl.TransformLink) {
					stats.Unchanged++
				}
				inv := cl.TransformLink.Inv()
				cl.TransformLink = mgl64.Ident4()
				n.Transform.PivotActive = true
				n.Transform.GeometricTranslation = mathutil.Translation(inv).Mul(-0.5)
				stats.Clusters++
			}
		}
	}
	for _, c := range n.Children() {
		resetBindPose(c, stats)
	}
}
