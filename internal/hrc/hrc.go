// Package hrc parses FF7 field-module HRC skeleton files: a small
// line-oriented text format carrying a bone hierarchy where each bone
// optionally references RSD resource descriptors by name.
package hrc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	headerMarker    = ":HEADER_BLOCK"
	skeletonMarker  = ":SKELETON"
	boneCountMarker = ":BONES"

	// RootParent is the literal parent name (any case) that marks a
	// bone as hierarchy root.
	RootParent = "root"
)

var (
	// ErrInvalidFormat reports a missing header marker line.
	ErrInvalidFormat = errors.New("hrc: invalid format")
	// ErrMalformedHeader reports a numeric token that does not parse.
	ErrMalformedHeader = errors.New("hrc: malformed value")
	// ErrTruncated reports input that ends before the declared bones.
	ErrTruncated = errors.New("hrc: truncated")
)

// Bone is one node of the hierarchy. ResourceCount is the count token
// as written; it is not cross-checked against len(Resources), because
// hand-edited files disagree and neither value is more trustworthy.
type Bone struct {
	Name          string
	Parent        string
	Length        float64
	ResourceCount int
	Resources     []string
}

// Skeleton is a parsed HRC file.
type Skeleton struct {
	BlockNumber int
	Name        string
	BoneCount   int
	Bones       []Bone
}

// Parse decodes an HRC buffer. The first three meaningful lines must
// carry the :HEADER_BLOCK, :SKELETON and :BONES markers, in that order.
func Parse(data []byte) (*Skeleton, error) {
	lines := meaningfulLines(data)
	p := &parser{lines: lines}

	s := &Skeleton{}
	var err error

	if s.BlockNumber, err = p.markerInt(headerMarker); err != nil {
		return nil, err
	}
	if s.Name, err = p.markerString(skeletonMarker); err != nil {
		return nil, err
	}
	if s.BoneCount, err = p.markerInt(boneCountMarker); err != nil {
		return nil, err
	}
	if s.BoneCount < 0 {
		return nil, fmt.Errorf("%w: negative bone count %d", ErrMalformedHeader, s.BoneCount)
	}

	s.Bones = make([]Bone, 0, s.BoneCount)
	for i := 0; i < s.BoneCount; i++ {
		bone, err := p.bone(i)
		if err != nil {
			return nil, err
		}
		s.Bones = append(s.Bones, bone)
	}

	return s, nil
}

// ParentIndex resolves the parent of bone i by case-insensitive name
// match against its siblings. The root marker and dangling parent
// references both resolve to -1; a dangling reference is a
// model-building concern, not a parse error.
func (s *Skeleton) ParentIndex(i int) int {
	if i < 0 || i >= len(s.Bones) {
		return -1
	}
	parent := s.Bones[i].Parent
	if strings.EqualFold(parent, RootParent) {
		return -1
	}
	for j := range s.Bones {
		if strings.EqualFold(s.Bones[j].Name, parent) {
			return j
		}
	}
	return -1
}

// meaningfulLines drops blank and comment lines everywhere, not just
// between records; the field editor intersperses both freely.
func meaningfulLines(data []byte) []string {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

type parser struct {
	lines []string
	pos   int
}

func (p *parser) next() (string, bool) {
	if p.pos >= len(p.lines) {
		return "", false
	}
	line := p.lines[p.pos]
	p.pos++
	return line, true
}

// markerString expects a line beginning with marker and returns its
// second whitespace-separated token.
func (p *parser) markerString(marker string) (string, error) {
	line, ok := p.next()
	if !ok {
		return "", fmt.Errorf("%w: expected %s line, got end of input", ErrInvalidFormat, marker)
	}
	if !strings.HasPrefix(line, marker) {
		return "", fmt.Errorf("%w: expected %s line, got %q", ErrInvalidFormat, marker, line)
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", nil
	}
	return fields[1], nil
}

func (p *parser) markerInt(marker string) (int, error) {
	tok, err := p.markerString(marker)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q is not a number", ErrMalformedHeader, marker, tok)
	}
	return n, nil
}

// bone reads the four lines describing one bone: name, parent, length
// and the resource list.
func (p *parser) bone(index int) (Bone, error) {
	var b Bone
	var ok bool

	if b.Name, ok = p.next(); !ok {
		return b, fmt.Errorf("%w: input ends at bone %d name", ErrTruncated, index)
	}
	if b.Parent, ok = p.next(); !ok {
		return b, fmt.Errorf("%w: input ends at bone %d parent", ErrTruncated, index)
	}

	lenLine, ok := p.next()
	if !ok {
		return b, fmt.Errorf("%w: input ends at bone %d length", ErrTruncated, index)
	}
	length, err := strconv.ParseFloat(strings.Fields(lenLine)[0], 64)
	if err != nil {
		return b, fmt.Errorf("%w: bone %d length %q is not a number", ErrMalformedHeader, index, lenLine)
	}
	b.Length = length

	resLine, ok := p.next()
	if !ok {
		return b, fmt.Errorf("%w: input ends at bone %d resources", ErrTruncated, index)
	}
	fields := strings.Fields(resLine)
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return b, fmt.Errorf("%w: bone %d resource count %q is not a number", ErrMalformedHeader, index, fields[0])
	}
	b.ResourceCount = count
	// The declared count is recorded but the actual tokens win: files
	// with mismatched counts are common and load fine in the game.
	b.Resources = append(b.Resources, fields[1:]...)

	return b, nil
}
