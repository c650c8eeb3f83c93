package tex

import "encoding/binary"

// ExpandRGBA projects the stored pixels into row-major 8-bit RGBA, one
// quadruplet per pixel. It never mutates the texture; repeated calls
// with the same palette selector yield equal slices.
//
// For paletted images palette selects the sub-palette (default 0). The
// sub-palette size is derived from PaletteSize/NumPalettes rather than
// the ColorsPerPalette field, which shipped files get wrong. Indices
// that fall outside the palette expand to transparent black.
func (t *Texture) ExpandRGBA(palette int) []byte {
	w, h := int(t.Width), int(t.Height)
	out := make([]byte, w*h*4)

	if t.PaletteFlag != 0 {
		t.expandPaletted(out, palette)
	} else {
		t.expandDirect(out)
	}
	return out
}

func (t *Texture) expandPaletted(out []byte, palette int) {
	colorsPer := int(t.PaletteSize)
	if t.NumPalettes > 0 {
		colorsPer = int(t.PaletteSize) / int(t.NumPalettes)
	}
	if palette < 0 {
		palette = 0
	}
	base := palette * colorsPer * 4

	bpp := int(t.BytesPerPixel)
	n := len(t.Pixels) / bpp
	if limit := int(t.Width) * int(t.Height); n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		idx := 0
		for b := 0; b < bpp; b++ {
			idx |= int(t.Pixels[i*bpp+b]) << (8 * b)
		}
		off := base + idx*4
		if off < 0 || off+4 > len(t.Palette) {
			continue // transparent black
		}
		// Palette entries are stored B,G,R,A.
		out[i*4+0] = t.Palette[off+2]
		out[i*4+1] = t.Palette[off+1]
		out[i*4+2] = t.Palette[off+0]
		out[i*4+3] = t.Palette[off+3]
	}
}

func (t *Texture) expandDirect(out []byte) {
	pf := &t.PixelFormat
	bpp := int(t.BytesPerPixel)
	n := len(t.Pixels) / bpp
	if limit := int(t.Width) * int(t.Height); n > limit {
		n = limit
	}
	for i := 0; i < n; i++ {
		var v uint32
		switch bpp {
		case 2:
			v = uint32(binary.LittleEndian.Uint16(t.Pixels[i*2:]))
		case 4:
			v = binary.LittleEndian.Uint32(t.Pixels[i*4:])
		default:
			for b := 0; b < bpp; b++ {
				v |= uint32(t.Pixels[i*bpp+b]) << (8 * b)
			}
		}

		out[i*4+0] = extractChannel(v, pf.RedMask, pf.RedShift, pf.RedBits)
		out[i*4+1] = extractChannel(v, pf.GreenMask, pf.GreenShift, pf.GreenBits)
		out[i*4+2] = extractChannel(v, pf.BlueMask, pf.BlueShift, pf.BlueBits)
		if pf.AlphaBits == 0 {
			out[i*4+3] = 0xFF
		} else {
			out[i*4+3] = extractChannel(v, pf.AlphaMask, pf.AlphaShift, pf.AlphaBits)
		}
	}
}

// extractChannel isolates one packed channel and rescales it to the
// top of an 8-bit range.
func extractChannel(v, mask, shift, bits uint32) byte {
	if bits >= 8 {
		return byte((v & mask) >> shift)
	}
	return byte(((v & mask) >> shift) << (8 - bits))
}
