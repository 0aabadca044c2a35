package preview

import (
	"image"

	"golang.org/x/image/draw"
)

// downsample shrinks img to size×size with premultiplied-alpha-aware CatmullRom
// filtering, which avoids dark fringes at transparent edges.
func downsample(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= size && b.Dy() <= size {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := uint32(img.Pix[si+3])
			for k := 0; k < 3; k++ {
				premul.Pix[di+k] = uint8((uint32(img.Pix[si+k])*a + 127) / 255)
			}
			premul.Pix[di+3] = img.Pix[si+3]
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		out.Pix[i+3] = a
		if a == 0 {
			continue
		}
		for k := 0; k < 3; k++ {
			v := (uint32(dst.Pix[i+k])*255 + uint32(a)/2) / uint32(a)
			if v > 255 {
				v = 255
			}
			out.Pix[i+k] = uint8(v)
		}
	}
	return out
}
