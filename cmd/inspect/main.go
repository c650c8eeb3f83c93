// Command inspect dumps a summary of field asset files. The format is
// chosen by extension: .tex, .rsd, .hrc or .a.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ff7-field-tools/internal/anm"
	"ff7-field-tools/internal/hrc"
	"ff7-field-tools/internal/rsd"
	"ff7-field-tools/internal/tex"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <file.tex|file.rsd|file.hrc|file.a> ...")
		os.Exit(2)
	}

	exitCode := 0
	for _, arg := range os.Args[1:] {
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Read error %s: %v\n", arg, err)
			exitCode = 1
			continue
		}

		fmt.Printf("\n=== %s (%d bytes) ===\n", arg, len(data))
		switch strings.ToLower(filepath.Ext(arg)) {
		case ".tex":
			err = inspectTex(data)
		case ".rsd":
			inspectRsd(data)
		case ".hrc":
			err = inspectHrc(data)
		case ".a", ".anm":
			err = inspectAnm(data)
		default:
			err = fmt.Errorf("unknown extension")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func inspectTex(data []byte) error {
	t, err := tex.Decode(data)
	if err != nil {
		return err
	}

	layout := "standard"
	if t.AlternativeLayout() {
		layout = "alternative"
	}
	fmt.Printf("  %dx%d, depth %d, %d bytes/pixel, %s header\n",
		t.Width, t.Height, t.BitDepth, t.BytesPerPixel, layout)
	if t.PaletteFlag != 0 {
		fmt.Printf("  paletted: %d palettes, %d entries total (header claims %d per palette)\n",
			t.NumPalettes, t.PaletteSize, t.ColorsPerPalette)
	} else {
		pf := t.PixelFormat
		fmt.Printf("  direct color: bits r/g/b/a = %d/%d/%d/%d\n",
			pf.RedBits, pf.GreenBits, pf.BlueBits, pf.AlphaBits)
	}
	if t.ColorKey != nil {
		fmt.Printf("  color-key array: %d bytes\n", len(t.ColorKey))
	}
	return nil
}

func inspectRsd(data []byte) {
	d := rsd.Parse(data)
	fmt.Printf("  id %q\n", d.ID)
	fmt.Printf("  model %s  material %s  groups %s\n", d.ModelFile(), d.MaterialFile, d.GroupFile)
	fmt.Printf("  textures (%d declared, %d listed):\n", d.DeclaredTextureCount, len(d.Textures))
	for _, name := range d.TextureFiles() {
		fmt.Printf("    %s\n", name)
	}
}

func inspectHrc(data []byte) error {
	s, err := hrc.Parse(data)
	if err != nil {
		return err
	}

	fmt.Printf("  skeleton %q, block %d, %d bones\n", s.Name, s.BlockNumber, s.BoneCount)
	for i, b := range s.Bones {
		fmt.Printf("    [%2d] %-12s parent %-12s (index %2d) length %7.2f resources %v\n",
			i, b.Name, b.Parent, s.ParentIndex(i), b.Length, b.Resources)
	}
	return nil
}

func inspectAnm(data []byte) error {
	a, err := anm.Decode(data)
	if err != nil {
		return err
	}

	fmt.Printf("  version %d, %d frames, %d bones, rotation order %v\n",
		a.Version, a.FrameCount, a.BoneCount, a.RotationOrder)
	if f, ok := a.Frame(0); ok {
		fmt.Printf("  frame 0: root rot %v, root trans %v, %d bone rotations\n",
			f.RootRotation, f.RootTranslation, len(f.Rotations))
	}
	return nil
}
