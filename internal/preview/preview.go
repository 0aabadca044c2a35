// Package preview draws a front orthographic image of a scene's skeleton: bones as lines
// from each joint to its parent joint, joints as dots and mesh vertices as faint points.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
	"rigtool/internal/scene"
	"rigtool/internal/skeleton"
)

// Options controls the preview image.
type Options struct {
	Size        int // output width and height in pixels
	Supersample int // render at Size*Supersample, then downsample
	Margin      int // border in output pixels

	Background color.NRGBA
	Bone       color.NRGBA
	Joint      color.NRGBA
	Vertex     color.NRGBA
}

// DefaultOptions returns a 256px preview on a transparent background.
func DefaultOptions() Options {
	return Options{
		Size:        256,
		Supersample: 3,
		Margin:      16,
		Bone:        color.NRGBA{230, 230, 235, 255},
		Joint:       color.NRGBA{255, 140, 30, 255},
		Vertex:      color.NRGBA{90, 140, 200, 255},
	}
}

type point struct{ x, y, z float64 }

type bone struct{ from, to int }

// Render draws s with opts. An empty scene yields a blank image.
func Render(s *scene.Scene, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions().Size
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample
	fb := newFrameBuffer(renderSize, renderSize, opts.Background)

	if s == nil || s.Root == nil {
		return downsample(fb.image(), opts.Size)
	}

	joints, bones, verts := collect(s)
	if len(joints) == 0 && len(verts) == 0 {
		return downsample(fb.image(), opts.Size)
	}

	// Fit the bounding box of everything drawn into the frame
	lo := mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, list := range [][]mgl64.Vec3{joints, verts} {
		for _, p := range list {
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], p[k])
				hi[k] = math.Max(hi[k], p[k])
			}
		}
	}
	center := lo.Add(hi).Mul(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	margin := opts.Margin * opts.Supersample
	scale := float64(renderSize-2*margin) / span

	project := func(p mgl64.Vec3) point {
		return point{
			x: float64(renderSize)/2 + (p[0]-center[0])*scale,
			y: float64(renderSize)/2 - (p[1]-center[1])*scale,
			z: p[2],
		}
	}

	ss := float64(opts.Supersample)
	for _, v := range verts {
		p := project(v)
		fb.disc(p.x, p.y, 0.5*ss, p.z, opts.Vertex)
	}
	for _, b := range bones {
		fb.line(project(joints[b.from]), project(joints[b.to]), 1.5*ss, opts.Bone)
	}
	for _, j := range joints {
		p := project(j)
		fb.disc(p.x, p.y, 2.5*ss, p.z+1e-6, opts.Joint)
	}

	return downsample(fb.image(), opts.Size)
}

// collect returns joint world positions, parent-child joint pairs and world-space mesh vertices.
func collect(s *scene.Scene) ([]mgl64.Vec3, []bone, []mgl64.Vec3) {
	cache := skeleton.CaptureTransforms(s.Root)
	index := make(map[*scene.Node]int)

	var joints []mgl64.Vec3
	var bones []bone
	var verts []mgl64.Vec3
	s.Root.Walk(func(n *scene.Node) bool {
		world, _ := cache.Global(n)
		switch n.Kind() {
		case scene.KindJoint:
			index[n] = len(joints)
			joints = append(joints, mathutil.Translation(world))
			if parent, ok := index[n.Parent()]; ok {
				bones = append(bones, bone{from: parent, to: index[n]})
			}
		case scene.KindMesh:
			mesh, _ := n.Mesh()
			geo := world.Mul4(mgl64.Translate3D(n.Transform.GeometricTranslation.Elem()))
			for _, v := range mesh.Vertices {
				verts = append(verts, geo.Mul4x1(v.Vec4(1)).Vec3())
			}
		}
		return true
	})
	return joints, bones, verts
}

// Write renders s and saves it to path as WebP, or PNG when path ends in .png.
// Parent directories are created.
func Write(path string, s *scene.Scene, opts Options) error {
	img := Render(s, opts)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("preview: create dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".png") {
		err = png.Encode(f, img)
	} else {
		err = nativewebp.Encode(f, img, nil)
	}
	if err != nil {
		return fmt.Errorf("preview: encode %s: %w", path, err)
	}
	return f.Close()
}
