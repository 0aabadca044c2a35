package sceneio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"

	"rigtool/internal/scene"
)

// Pixel formats reported for thumbnails.
const (
	FormatRGB  = "RGB"
	FormatRGBA = "RGBA"
)

// Thumbnail describes the image a scene references as its preview.
type Thumbnail struct {
	Path   string
	Format string
	Width  int
	Height int
}

// The tga decoder registers with an empty magic, so sniffing via image.Decode is
// unreliable; decoders are picked by extension instead.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
}

// ReadThumbnail decodes the thumbnail referenced by the scene metadata. A relative
// path is resolved against the directory of the scene file. It returns nil and no
// error when the scene references no thumbnail.
func ReadThumbnail(scenePath string, s *scene.Scene) (*Thumbnail, error) {
	ref := s.Metadata.Thumbnail
	if ref == "" {
		return nil, nil
	}
	path := ref
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(scenePath), ref)
	}
	return LoadThumbnail(path)
}

// LoadThumbnail decodes an image file and reports its size and pixel format.
func LoadThumbnail(path string) (*Thumbnail, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("sceneio: thumbnail %s: unsupported extension %q", path, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sceneio: thumbnail: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("sceneio: decode thumbnail %s: %w", path, err)
	}

	b := img.Bounds()
	th := &Thumbnail{Path: path, Format: FormatRGBA, Width: b.Dx(), Height: b.Dy()}
	if isOpaque(img) {
		th.Format = FormatRGB
	}
	return th, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
