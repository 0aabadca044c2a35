package preview

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rigtool/internal/scene"
)

func stick() *scene.Scene {
	s := scene.New("Scene")
	hips := scene.NewJoint("Hips", scene.RoleRoot)
	head := scene.NewJoint("Head", scene.RoleLimbNode)
	head.Transform.Translation = mgl64.Vec3{0, 10, 0}
	if err := s.Root.AddChild(hips); err != nil {
		panic(err)
	}
	if err := hips.AddChild(head); err != nil {
		panic(err)
	}
	return s
}

func testOptions() Options {
	o := DefaultOptions()
	o.Size = 64
	o.Supersample = 2
	o.Margin = 4
	return o
}

func TestRenderStick(t *testing.T) {
	img := Render(stick(), testOptions())
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	assert.Greater(t, img.NRGBAAt(32, 32).A, uint8(128), "bone pixel")
	assert.Zero(t, img.NRGBAAt(0, 0).A, "background pixel")
	assert.Zero(t, img.NRGBAAt(10, 32).A, "off the bone")
}

func TestRenderEmpty(t *testing.T) {
	for _, s := range []*scene.Scene{nil, {}, scene.New("Scene")} {
		img := Render(s, testOptions())
		require.Equal(t, 64, img.Bounds().Dx())
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0 {
				t.Fatalf("pixel %d not transparent", i/4)
			}
		}
	}
}

func TestCollect(t *testing.T) {
	s := stick()
	mesh := scene.NewMesh("Body", &scene.Mesh{Vertices: []mgl64.Vec3{{1, 2, 3}}})
	mesh.Transform.Translation = mgl64.Vec3{10, 0, 0}
	require.NoError(t, s.Root.AddChild(mesh))

	joints, bones, verts := collect(s)
	assert.Equal(t, []mgl64.Vec3{{0, 0, 0}, {0, 10, 0}}, joints)
	assert.Equal(t, []bone{{from: 0, to: 1}}, bones)
	require.Len(t, verts, 1)
	assert.InDelta(t, 11, verts[0][0], 1e-9)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	webpPath := filepath.Join(dir, "nested", "hero.rig.json.preview.webp")
	require.NoError(t, Write(webpPath, stick(), testOptions()))
	f, err := os.Open(webpPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := nativewebp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	pngPath := filepath.Join(dir, "hero.png")
	require.NoError(t, Write(pngPath, stick(), testOptions()))
	g, err := os.Open(pngPath)
	require.NoError(t, err)
	defer g.Close()
	cfg, err := png.DecodeConfig(g)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Height)
}

func TestDownsampleKeepsSmallImages(t *testing.T) {
	fb := newFrameBuffer(8, 8, DefaultOptions().Background)
	img := fb.image()
	assert.Same(t, img, downsample(img, 16))
}
