package tex

import (
	"encoding/binary"
	"fmt"
)

// reader is a little-endian cursor over the source buffer. Overruns
// set a sticky error recording where the buffer ran out.
type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	if r.off+4 > len(r.data) {
		r.err = fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrTruncated, r.off, len(r.data)-r.off)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, len(r.data)-r.off)
		return nil
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:])
	r.off += n
	return b
}

func (r *reader) remaining() int { return len(r.data) - r.off }

// layout identifies which of the two header lengths a buffer uses.
type layout int

const (
	layoutStandard layout = iota
	layoutAlternative
)

// probeLayout decides the header variant from the word at probeOffset.
// In the standard layout that word is padding and always zero; in the
// alternative layout the palette count sits there, and any paletted
// image has a non-zero count. An alternative-layout image with zero
// palettes is indistinguishable from standard and parses as standard.
func probeLayout(data []byte) (layout, error) {
	if len(data) < probeOffset+4 {
		return layoutStandard, fmt.Errorf("%w: %d bytes, header needs at least %d", ErrTruncated, len(data), HeaderSizeAlternative)
	}
	if binary.LittleEndian.Uint32(data[probeOffset:]) == 0 {
		return layoutStandard, nil
	}
	return layoutAlternative, nil
}

// Decode parses a complete TEX buffer. The input is never mutated or
// retained; palette, pixel and color-key bytes are copied out.
func Decode(data []byte) (*Texture, error) {
	lay, err := probeLayout(data)
	if err != nil {
		return nil, err
	}

	r := &reader{data: data}
	t := &Texture{altLayout: lay == layoutAlternative}

	readPreamble(r, t)
	switch lay {
	case layoutStandard:
		readStandardPaletteCount(r, t)
	case layoutAlternative:
		readAlternativePaletteCount(r, t)
	}
	readBody(r, t)
	if r.err != nil {
		return nil, r.err
	}

	if err := t.validate(); err != nil {
		return nil, err
	}

	if t.PaletteFlag != 0 {
		t.Palette = r.bytes(int(t.PaletteSize) * 4)
	}
	t.Pixels = r.bytes(int(t.Width) * int(t.Height) * int(t.BytesPerPixel))
	if r.err != nil {
		return nil, r.err
	}

	// Some producers omit the color-key array even when the flag is
	// set; a short tail is tolerated, not an error.
	if t.ColorKeyArrayFlag != 0 && r.remaining() >= int(t.NumPalettes) {
		t.ColorKey = r.bytes(int(t.NumPalettes))
	}

	return t, nil
}

// readPreamble reads the fields shared by both layouts up to the
// variant-dependent palette count.
func readPreamble(r *reader, t *Texture) {
	t.Version = r.u32()
	t.Unknown1 = r.u32()
	t.ColorKeyFlag = r.u32()
	t.Unknown2 = r.u32()
	t.Unknown3 = r.u32()
	t.MinBitsPerColor = r.u32()
	t.MaxBitsPerColor = r.u32()
	t.MinAlphaBits = r.u32()
	t.MaxAlphaBits = r.u32()
	t.MinBitsPerPixel = r.u32()
	t.MaxBitsPerPixel = r.u32()
}

// readStandardPaletteCount consumes the zero padding word, then the
// palette count.
func readStandardPaletteCount(r *reader, t *Texture) {
	_ = r.u32() // padding, known zero from the probe
	t.NumPalettes = r.u32()
}

// readAlternativePaletteCount reads the palette count from the slot the
// standard layout uses for padding.
func readAlternativePaletteCount(r *reader, t *Texture) {
	t.NumPalettes = r.u32()
}

// readBody reads everything after the palette count; the two layouts
// agree from here on.
func readBody(r *reader, t *Texture) {
	t.ColorsPerPalette = r.u32()
	t.BitDepth = r.u32()
	t.Width = r.u32()
	t.Height = r.u32()
	t.Pitch = r.u32()
	t.Unknown5 = r.u32()
	t.PaletteFlag = r.u32()
	t.BitsPerIndex = r.u32()
	t.IndexedTo8Bit = r.u32()
	t.PaletteSize = r.u32()
	t.ColorsPerPaletteDup = r.u32()
	_ = r.u32() // runtime data
	t.BitsPerPixel = r.u32()
	t.BytesPerPixel = r.u32()

	pf := &t.PixelFormat
	pf.RedBits, pf.GreenBits, pf.BlueBits, pf.AlphaBits = r.u32(), r.u32(), r.u32(), r.u32()
	pf.RedMask, pf.GreenMask, pf.BlueMask, pf.AlphaMask = r.u32(), r.u32(), r.u32(), r.u32()
	pf.RedShift, pf.GreenShift, pf.BlueShift, pf.AlphaShift = r.u32(), r.u32(), r.u32(), r.u32()
	pf.RedUnused, pf.GreenUnused, pf.BlueUnused, pf.AlphaUnused = r.u32(), r.u32(), r.u32(), r.u32()
	pf.RedMax, pf.GreenMax, pf.BlueMax, pf.AlphaMax = r.u32(), r.u32(), r.u32(), r.u32()

	t.ColorKeyArrayFlag = r.u32()
	_ = r.u32() // runtime data
	t.ReferenceAlpha = r.u32()
	_ = r.u32() // runtime data
	t.Unknown6 = r.u32()
	t.PaletteIndex = r.u32()
	_ = r.u32() // runtime data
	_ = r.u32() // runtime data
	t.Unknown7 = r.u32()
	t.Unknown8 = r.u32()
	t.Unknown9 = r.u32()
	t.Unknown10 = r.u32()
}

func (t *Texture) validate() error {
	if t.Width == 0 || t.Width > MaxDimension || t.Height == 0 || t.Height > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d outside (0,%d]", ErrMalformedHeader, t.Width, t.Height, MaxDimension)
	}
	if t.BitDepth == 0 || t.BitDepth > 32 {
		return fmt.Errorf("%w: bit depth %d outside (0,32]", ErrMalformedHeader, t.BitDepth)
	}
	if t.BytesPerPixel < 1 || t.BytesPerPixel > 4 {
		return fmt.Errorf("%w: %d bytes per pixel outside [1,4]", ErrMalformedHeader, t.BytesPerPixel)
	}
	return nil
}
