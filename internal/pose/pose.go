// Package pose composes per-bone world matrices from a field skeleton
// and one animation frame. It only produces matrices; rendering and
// geometry binding happen in consumers.
package pose

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"ff7-field-tools/internal/anm"
	"ff7-field-tools/internal/hrc"
)

// BoneMatrices returns one world matrix per skeleton bone for the given
// frame. A bone's joint sits at the tail of its parent: each bone
// applies its frame rotation at the parent's tail, and its own tail is
// offset by the bone length along local Z.
func BoneMatrices(s *hrc.Skeleton, a *anm.Animation, frame int) ([]mgl32.Mat4, error) {
	f, ok := a.Frame(frame)
	if !ok {
		return nil, fmt.Errorf("pose: frame %d out of range (0..%d)", frame, len(a.Frames)-1)
	}

	root := mgl32.Translate3D(f.RootTranslation[0], f.RootTranslation[1], f.RootTranslation[2]).
		Mul4(rotationMatrix(a.RotationOrder, f.RootRotation))

	worlds := make([]mgl32.Mat4, len(s.Bones))
	tails := make([]mgl32.Mat4, len(s.Bones))

	for i, bone := range s.Bones {
		base := root
		if p := s.ParentIndex(i); p >= 0 && p < i {
			base = tails[p]
		}

		var rot [3]float32
		if i < len(f.Rotations) {
			rot = f.Rotations[i]
		}

		worlds[i] = base.Mul4(rotationMatrix(a.RotationOrder, rot))
		tails[i] = worlds[i].Mul4(mgl32.Translate3D(0, 0, float32(bone.Length)))
	}

	return worlds, nil
}

// rotationMatrix applies the stream's axis tuple in order. Angles are
// degrees, axis indices 0=X, 1=Y, 2=Z; unknown indices are skipped the
// way the game ignores them.
func rotationMatrix(order [3]byte, angles [3]float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	for _, axis := range order {
		if int(axis) > 2 {
			continue
		}
		rad := mgl32.DegToRad(angles[axis])
		switch axis {
		case 0:
			m = m.Mul4(mgl32.HomogRotate3DX(rad))
		case 1:
			m = m.Mul4(mgl32.HomogRotate3DY(rad))
		case 2:
			m = m.Mul4(mgl32.HomogRotate3DZ(rad))
		}
	}
	return m
}
