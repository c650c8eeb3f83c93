// Package anm decodes FF7 field animation streams (.a files): a fixed
// little-endian header followed by per-frame root rotation, root
// translation and bone rotation triples.
package anm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// HeaderSize is the fixed stream header length: version, frame count
// and bone count words, the rotation-order tuple with its padding
// byte, and 20 bytes the game fills at runtime.
const HeaderSize = 36

// ErrTruncated reports a buffer shorter than the header plus the
// frames its own counts declare.
var ErrTruncated = errors.New("anm: truncated")

// Frame is one pose sample. Rotations always holds max(boneCount,1)
// entries: zero-bone animations still carry one rotation triple per
// frame for the root, and skipping it would shear every later frame.
type Frame struct {
	RootRotation    [3]float32
	RootTranslation [3]float32
	Rotations       [][3]float32
}

// Animation is a decoded animation stream. RotationOrder maps axis
// indices (0=X, 1=Y, 2=Z) in application order; angles are degrees.
type Animation struct {
	Version       uint32
	FrameCount    uint32
	BoneCount     uint32
	RotationOrder [3]byte

	// orderPad and runtime are on-disk filler kept so Encode can
	// reproduce the source buffer exactly.
	orderPad byte
	runtime  [20]byte

	Frames []Frame
}

// rotationsPerFrame applies the floor-of-1 rule for zero-bone streams.
func rotationsPerFrame(boneCount uint32) int {
	if boneCount == 0 {
		return 1
	}
	return int(boneCount)
}

// FrameSize returns the byte length of one frame for the given bone
// count.
func FrameSize(boneCount uint32) int {
	return 24 + 12*rotationsPerFrame(boneCount)
}

// Decode parses a complete animation buffer. The buffer length is
// validated against the header's own frame and bone counts before any
// frame is read.
func Decode(data []byte) (*Animation, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}

	a := &Animation{
		Version:    binary.LittleEndian.Uint32(data[0:4]),
		FrameCount: binary.LittleEndian.Uint32(data[4:8]),
		BoneCount:  binary.LittleEndian.Uint32(data[8:12]),
	}
	copy(a.RotationOrder[:], data[12:15])
	a.orderPad = data[15]
	copy(a.runtime[:], data[16:36])

	frameSize := FrameSize(a.BoneCount)
	need := HeaderSize + int(a.FrameCount)*frameSize
	if len(data) < need {
		return nil, fmt.Errorf("%w: %d frames of %d bones need %d bytes, have %d",
			ErrTruncated, a.FrameCount, a.BoneCount, need, len(data))
	}

	perFrame := rotationsPerFrame(a.BoneCount)
	a.Frames = make([]Frame, a.FrameCount)
	off := HeaderSize
	for i := range a.Frames {
		f := &a.Frames[i]
		for k := 0; k < 3; k++ {
			f.RootRotation[k] = readF32(data, &off)
		}
		for k := 0; k < 3; k++ {
			f.RootTranslation[k] = readF32(data, &off)
		}
		f.Rotations = make([][3]float32, perFrame)
		for j := 0; j < perFrame; j++ {
			for k := 0; k < 3; k++ {
				f.Rotations[j][k] = readF32(data, &off)
			}
		}
	}

	return a, nil
}

// Frame returns frame i, or ok=false when i is out of range. Lookup is
// deliberately non-failing: scrubbing past the end of an animation is
// an ordinary viewer event.
func (a *Animation) Frame(i int) (*Frame, bool) {
	if i < 0 || i >= len(a.Frames) {
		return nil, false
	}
	return &a.Frames[i], true
}

// Encode serializes the animation back to its on-disk form. A
// decode/encode cycle reproduces the source buffer byte for byte,
// including the runtime header bytes.
func (a *Animation) Encode() []byte {
	perFrame := rotationsPerFrame(a.BoneCount)
	buf := make([]byte, HeaderSize+len(a.Frames)*FrameSize(a.BoneCount))

	binary.LittleEndian.PutUint32(buf[0:4], a.Version)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(a.Frames)))
	binary.LittleEndian.PutUint32(buf[8:12], a.BoneCount)
	copy(buf[12:15], a.RotationOrder[:])
	buf[15] = a.orderPad
	copy(buf[16:36], a.runtime[:])

	off := HeaderSize
	for i := range a.Frames {
		f := &a.Frames[i]
		for k := 0; k < 3; k++ {
			putF32(buf, &off, f.RootRotation[k])
		}
		for k := 0; k < 3; k++ {
			putF32(buf, &off, f.RootTranslation[k])
		}
		for j := 0; j < perFrame; j++ {
			var rot [3]float32
			if j < len(f.Rotations) {
				rot = f.Rotations[j]
			}
			for k := 0; k < 3; k++ {
				putF32(buf, &off, rot[k])
			}
		}
	}

	return buf
}

func readF32(data []byte, off *int) float32 {
	v := math.Float32frombits(binary.LittleEndian.Uint32(data[*off:]))
	*off += 4
	return v
}

func putF32(buf []byte, off *int, v float32) {
	binary.LittleEndian.PutUint32(buf[*off:], math.Float32bits(v))
	*off += 4
}
