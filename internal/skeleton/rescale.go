package skeleton

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
)

// RescaleStats summarizes one UniformRescale pass.
type RescaleStats struct {
	Skipped          bool
	Nodes            int
	Vertices         int
	Clusters         int
	MissingLinks     []string
	RemovedAnimation string
}

// UniformRescale scales the whole scene by factor while keeping every joint's world rotation
// and multiplying every world translation by factor.
//
// The scale is applied once at the root and world poses are captured under it. The root scale
// is then reset and each local translation is rewritten from the captured poses against the
// parent's rewritten world transform. A second capture, taken after the rewrite,
// becomes the new bind pose of every skin cluster, and mesh vertices are scaled to match.
//
// The current animation stack is removed; curves are not rescaled. Factors within machine
// epsilon of 1 are a no-op.
func UniformRescale(s *scene.Scene, factor float64) (RescaleStats, error) {
	var stats RescaleStats
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return stats, fmt.Errorf("rescale by %v: %w", factor, ErrInvalidScale)
	}
	if s == nil || s.Root == nil || mathutil.NearlyOne(factor) {
		stats.Skipped = true
		return stats, nil
	}

	if i := s.CurrentAnimation(); i >= 0 {
		stats.RemovedAnimation = s.RemoveAnimation(i).Name
	}

	root := s.Root
	root.Transform.Scaling = mgl64.Vec3{factor, factor, factor}
	scaled := CaptureTransforms(root)

	root.Transform.Scaling = mgl64.Vec3{1, 1, 1}
	parentWorld := mgl64.Ident4()
	if p := root.Parent(); p != nil {
		parentWorld = p.WorldMatrix()
	}
	stats.Nodes = rebaseTranslations(root, parentWorld, scaled)

	rebased := CaptureTransforms(root)
	rescaleMeshes(root, factor, rebased, &stats)
	return stats, nil
}

// rebaseTranslations rewrites local translations, parents first, so each node lands on its
// cached world translation under its parent's rewritten world transform. Rotations and local
// scales are left as they are, so a scaled joint still scales its children's offsets.
func rebaseTranslations(n *scene.Node, parentWorld mgl64.Mat4, cache *TransformCache) int {
	count := 1
	if world, ok := cache.Global(n); ok {
		t := mathutil.Translation(world)
		n.Transform.Translation = parentWorld.Inv().Mul4x1(t.Vec4(1)).Vec3()
	}
	world := parentWorld.Mul4(n.LocalMatrix())
	for _, c := range n.Children() {
		count += rebaseTranslations(c, world, cache)
	}
	return count
}

// rescaleMeshes scales vertex positions and rebinds every cluster of every skin deformer
// to its joint's current world transform.
func rescaleMeshes(n *scene.Node, factor float64, cache *TransformCache, stats *RescaleStats) {
	if mesh, ok := n.Mesh(); ok {
		for i := range mesh.Vertices {
			mesh.Vertices[i] = mesh.Vertices[i].Mul(factor)
		}
		stats.Vertices += len(mesh.Vertices)

		for _, skin := range mesh.Skins {
			if skin == nil {
				continue
			}
			for _, cl := range skin.Clusters {
				world, ok := cache.GlobalByName(cl.Link)
				if !ok {
					stats.MissingLinks = append(stats.MissingLinks, cl.Link)
					continue
				}
				cl.TransformLink = world
				stats.Clusters++
			}
		}
	}
	for _, c := range n.Children() {
		rescaleMeshes(c, factor, cache, stats)
	}
}
