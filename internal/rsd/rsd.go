// Package rsd parses FF7 RSD resource descriptors: small line-oriented
// text records naming a model's geometry, material, polygon-group and
// texture files.
//
// Parsing is deliberately total: the descriptor backs an archive
// preview surface that must never fail on a stray or garbage entry, so
// malformed input yields a best-effort structure instead of an error.
package rsd

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"
)

// texLineRe matches TEX[<n>]=<value> lines. The bracketed index is not
// used: textures are appended in line order.
var texLineRe = regexp.MustCompile(`^TEX\[\d+\]=(.*)$`)

// Descriptor is one parsed RSD record. DeclaredTextureCount is the
// NTEX value as written, which shipped files do not keep in sync with
// the actual number of TEX lines; len(Textures) is authoritative.
type Descriptor struct {
	ID                   string
	PolygonFile          string
	MaterialFile         string
	GroupFile            string
	DeclaredTextureCount int
	Textures             []string
}

// Parse decodes an RSD buffer. It always succeeds; unrecognized lines
// are ignored and duplicate keys take the last value seen.
func Parse(data []byte) *Descriptor {
	d := &Descriptor{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "@"):
			d.ID = line
		case strings.HasPrefix(line, "PLY="):
			d.PolygonFile = line[len("PLY="):]
		case strings.HasPrefix(line, "MAT="):
			d.MaterialFile = line[len("MAT="):]
		case strings.HasPrefix(line, "GRP="):
			d.GroupFile = line[len("GRP="):]
		case strings.HasPrefix(line, "NTEX="):
			// A bad count is informational noise, not an error.
			n, err := strconv.Atoi(line[len("NTEX="):])
			if err == nil {
				d.DeclaredTextureCount = n
			}
		default:
			if m := texLineRe.FindStringSubmatch(line); m != nil {
				d.Textures = append(d.Textures, m[1])
			}
		}
	}

	return d
}

// ModelFile returns the geometry filename actually used on disk. RSD
// records reference .PLY files but the field module ships the compiled
// .P form.
func (d *Descriptor) ModelFile() string {
	return replaceExt(d.PolygonFile, ".PLY", ".P")
}

// TextureFiles returns the on-disk texture filenames. Descriptors
// reference .TIM images but the PC field archives carry .TEX.
func (d *Descriptor) TextureFiles() []string {
	out := make([]string, len(d.Textures))
	for i, t := range d.Textures {
		out[i] = replaceExt(t, ".TIM", ".TEX")
	}
	return out
}

// replaceExt swaps a case-insensitive trailing extension. Names without
// the expected extension are returned unchanged.
func replaceExt(name, oldExt, newExt string) string {
	if len(name) >= len(oldExt) && strings.EqualFold(name[len(name)-len(oldExt):], oldExt) {
		return name[:len(name)-len(oldExt)] + newExt
	}
	return name
}
