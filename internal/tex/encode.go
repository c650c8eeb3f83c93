package tex

import "encoding/binary"

// writer appends little-endian fields to a preallocated buffer.
type writer struct {
	buf []byte
	off int
}

func (w *writer) u32(v uint32) {
	binary.LittleEndian.PutUint32(w.buf[w.off:], v)
	w.off += 4
}

func (w *writer) bytes(b []byte) {
	copy(w.buf[w.off:], b)
	w.off += len(b)
}

// Encode serializes the texture back to a TEX buffer. The output always
// uses the standard header layout, so a texture decoded from an
// alternative-layout buffer is normalized rather than round-tripped.
// Runtime words and PaletteIndex are zero-filled regardless of what was
// decoded, matching the original producer; everything else is written
// back verbatim, so standard-layout files round-trip byte for byte.
func (t *Texture) Encode() []byte {
	size := HeaderSizeStandard + len(t.Palette) + len(t.Pixels) + len(t.ColorKey)
	w := &writer{buf: make([]byte, size)}

	w.u32(t.Version)
	w.u32(t.Unknown1)
	w.u32(t.ColorKeyFlag)
	w.u32(t.Unknown2)
	w.u32(t.Unknown3)
	w.u32(t.MinBitsPerColor)
	w.u32(t.MaxBitsPerColor)
	w.u32(t.MinAlphaBits)
	w.u32(t.MaxAlphaBits)
	w.u32(t.MinBitsPerPixel)
	w.u32(t.MaxBitsPerPixel)
	w.u32(0) // padding word that distinguishes the standard layout
	w.u32(t.NumPalettes)
	w.u32(t.ColorsPerPalette)
	w.u32(t.BitDepth)
	w.u32(t.Width)
	w.u32(t.Height)
	w.u32(t.Pitch)
	w.u32(t.Unknown5)
	w.u32(t.PaletteFlag)
	w.u32(t.BitsPerIndex)
	w.u32(t.IndexedTo8Bit)
	w.u32(t.PaletteSize)
	w.u32(t.ColorsPerPaletteDup)
	w.u32(0) // runtime data
	w.u32(t.BitsPerPixel)
	w.u32(t.BytesPerPixel)

	pf := &t.PixelFormat
	w.u32(pf.RedBits)
	w.u32(pf.GreenBits)
	w.u32(pf.BlueBits)
	w.u32(pf.AlphaBits)
	w.u32(pf.RedMask)
	w.u32(pf.GreenMask)
	w.u32(pf.BlueMask)
	w.u32(pf.AlphaMask)
	w.u32(pf.RedShift)
	w.u32(pf.GreenShift)
	w.u32(pf.BlueShift)
	w.u32(pf.AlphaShift)
	w.u32(pf.RedUnused)
	w.u32(pf.GreenUnused)
	w.u32(pf.BlueUnused)
	w.u32(pf.AlphaUnused)
	w.u32(pf.RedMax)
	w.u32(pf.GreenMax)
	w.u32(pf.BlueMax)
	w.u32(pf.AlphaMax)

	w.u32(t.ColorKeyArrayFlag)
	w.u32(0) // runtime data
	w.u32(t.ReferenceAlpha)
	w.u32(0) // runtime data
	w.u32(t.Unknown6)
	w.u32(0) // palette index, runtime only
	w.u32(0) // runtime data
	w.u32(0) // runtime data
	w.u32(t.Unknown7)
	w.u32(t.Unknown8)
	w.u32(t.Unknown9)
	w.u32(t.Unknown10)

	w.bytes(t.Palette)
	w.bytes(t.Pixels)
	w.bytes(t.ColorKey)
	return w.buf
}
