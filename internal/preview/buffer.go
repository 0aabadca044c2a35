package preview

import (
	"image"
	"image/color"
	"math"
)

// frameBuffer holds the render target as flat slices for cache locality.
type frameBuffer struct {
	width  int
	height int
	color  []uint8   // RGBA interleaved, len = W*H*4
	zbuf   []float64 // depth per pixel, larger is nearer, initialized to -inf
}

func newFrameBuffer(w, h int, bg color.NRGBA) *frameBuffer {
	n := w * h
	fb := &frameBuffer{width: w, height: h, color: make([]uint8, n*4), zbuf: make([]float64, n)}
	for i := range fb.zbuf {
		fb.zbuf[i] = math.Inf(-1)
		fb.color[i*4] = bg.R
		fb.color[i*4+1] = bg.G
		fb.color[i*4+2] = bg.B
		fb.color[i*4+3] = bg.A
	}
	return fb
}

// plot writes c at (x, y) when z passes the depth test.
func (fb *frameBuffer) plot(x, y int, z float64, c color.NRGBA) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	i := y*fb.width + x
	if z < fb.zbuf[i] {
		return
	}
	fb.zbuf[i] = z
	o := i * 4
	fb.color[o] = c.R
	fb.color[o+1] = c.G
	fb.color[o+2] = c.B
	fb.color[o+3] = c.A
}

// disc fills a circle of radius r around (cx, cy) at constant depth.
func (fb *frameBuffer) disc(cx, cy, r, z float64, c color.NRGBA) {
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy <= r*r {
				fb.plot(x, y, z, c)
			}
		}
	}
}

// line draws a segment of the given width, interpolating depth along it.
func (fb *frameBuffer) line(a, b point, width float64, c color.NRGBA) {
	dx, dy := b.x-a.x, b.y-a.y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		fb.disc(a.x, a.y, width/2, a.z, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		fb.disc(a.x+dx*t, a.y+dy*t, width/2, a.z+(b.z-a.z)*t, c)
	}
}

func (fb *frameBuffer) image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	copy(img.Pix, fb.color)
	return img
}
