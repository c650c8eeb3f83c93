// Package texconv turns decoded TEX textures into standard images and
// writes them out as WebP, TGA or PNG.
package texconv

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"ff7-field-tools/internal/tex"
)

// Image expands a texture into an NRGBA image using the given palette
// selector.
func Image(t *tex.Texture, palette int) *image.NRGBA {
	w, h := int(t.Width), int(t.Height)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	// ExpandRGBA emits tightly packed row-major RGBA, which is exactly
	// the NRGBA pixel layout for a zero-origin image.
	copy(img.Pix, t.ExpandRGBA(palette))
	return img
}

// Thumbnail scales an image so its longer side equals size, preserving
// aspect ratio. Images already small enough are returned as-is.
func Thumbnail(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if size <= 0 || (w <= size && h <= size) {
		return img
	}

	if w >= h {
		h = h * size / w
		w = size
	} else {
		w = w * size / h
		h = size
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Write encodes img in the named format ("webp", "tga" or "png").
func Write(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "tga":
		return tga.Encode(w, img)
	case "png":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("texconv: unknown output format %q", format)
	}
}
