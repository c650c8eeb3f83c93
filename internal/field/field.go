// Package field assembles a complete field model from its linked
// resources: skeleton bones reference RSD descriptors by name, and
// descriptors reference TEX textures. The codec packages never perform
// I/O, so retrieval goes through a caller-supplied Resolver, typically
// backed by the enclosing archive tool.
package field

import (
	"fmt"
	"strings"

	"ff7-field-tools/internal/hrc"
	"ff7-field-tools/internal/rsd"
	"ff7-field-tools/internal/tex"
)

// Resolver turns a resource filename into its raw bytes. Implementations
// own all I/O and caching policy.
type Resolver interface {
	Resolve(name string) ([]byte, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name string) ([]byte, error)

func (f ResolverFunc) Resolve(name string) ([]byte, error) { return f(name) }

// Model is a skeleton with its resolved descriptors and textures, keyed
// the way the source files reference them: descriptors by the bone's
// resource name, textures by on-disk filename.
type Model struct {
	Skeleton    *hrc.Skeleton
	Descriptors map[string]*rsd.Descriptor
	Textures    map[string]*tex.Texture

	// Missing lists referenced names the resolver could not supply.
	// Absent resources are a fact of life in shipped archives and do
	// not fail the load.
	Missing []string
}

// Load parses an HRC buffer and resolves every reachable descriptor and
// texture through r. Only a malformed skeleton fails the load; broken
// or absent linked resources are recorded in Missing and skipped.
func Load(hrcData []byte, r Resolver) (*Model, error) {
	skeleton, err := hrc.Parse(hrcData)
	if err != nil {
		return nil, fmt.Errorf("field: skeleton: %w", err)
	}

	m := &Model{
		Skeleton:    skeleton,
		Descriptors: make(map[string]*rsd.Descriptor),
		Textures:    make(map[string]*tex.Texture),
	}

	for _, bone := range skeleton.Bones {
		for _, res := range bone.Resources {
			key := strings.ToUpper(res)
			if _, seen := m.Descriptors[key]; seen {
				continue
			}
			data, err := r.Resolve(key + ".RSD")
			if err != nil {
				m.Missing = append(m.Missing, key+".RSD")
				continue
			}
			d := rsd.Parse(data)
			m.Descriptors[key] = d
			m.loadTextures(d, r)
		}
	}

	return m, nil
}

func (m *Model) loadTextures(d *rsd.Descriptor, r Resolver) {
	for _, name := range d.TextureFiles() {
		key := strings.ToUpper(name)
		if _, seen := m.Textures[key]; seen {
			continue
		}
		data, err := r.Resolve(key)
		if err != nil {
			m.Missing = append(m.Missing, key)
			continue
		}
		t, err := tex.Decode(data)
		if err != nil {
			m.Missing = append(m.Missing, key)
			continue
		}
		m.Textures[key] = t
	}
}
