// Package tex decodes and re-encodes FF7 TEX texture files.
//
// TEX headers come in two lengths: the standard 0xEC-byte layout and a
// 0xE8-byte layout that omits one padding word. There is no format tag;
// the variant is detected from the value stored where the padding word
// would be (see decode.go). Pixel data is either palette-indexed or
// packed direct color per the embedded pixel format descriptor.
package tex

import "errors"

const (
	// HeaderSizeStandard is the full TEX header length. Encode always
	// emits this layout.
	HeaderSizeStandard = 0xEC
	// HeaderSizeAlternative lacks the padding word before the palette
	// count field.
	HeaderSizeAlternative = 0xE8

	// probeOffset is where the padding word sits in the standard layout
	// and the palette count sits in the alternative layout.
	probeOffset = 0x2C

	// MaxDimension bounds width and height of a decodable image.
	MaxDimension = 4096
)

var (
	// ErrMalformedHeader reports header values outside their legal range.
	ErrMalformedHeader = errors.New("tex: malformed header")
	// ErrTruncated reports a buffer shorter than a mandatory section needs.
	ErrTruncated = errors.New("tex: truncated")
)

// PixelFormat describes how direct-color pixels pack their channels.
// All five groups are present on disk even for palette images.
type PixelFormat struct {
	RedBits, GreenBits, BlueBits, AlphaBits         uint32
	RedMask, GreenMask, BlueMask, AlphaMask         uint32
	RedShift, GreenShift, BlueShift, AlphaShift     uint32
	RedUnused, GreenUnused, BlueUnused, AlphaUnused uint32
	RedMax, GreenMax, BlueMax, AlphaMax             uint32
}

// Texture is a decoded TEX file. Unknown* fields are opaque on-disk
// words preserved for byte-exact re-encoding; runtime fields
// (PaletteIndex and the runtime words) are never meaningful on disk and
// are zero-filled on encode.
type Texture struct {
	Version      uint32
	Unknown1     uint32
	ColorKeyFlag uint32
	Unknown2     uint32
	Unknown3     uint32

	MinBitsPerColor uint32
	MaxBitsPerColor uint32
	MinAlphaBits    uint32
	MaxAlphaBits    uint32
	MinBitsPerPixel uint32
	MaxBitsPerPixel uint32

	// NumPalettes is the sub-palette count. ColorsPerPalette is the
	// header's own claim, kept for encode; pixel expansion derives the
	// real sub-palette size from PaletteSize instead because this field
	// is wrong in shipped files.
	NumPalettes      uint32
	ColorsPerPalette uint32

	BitDepth uint32
	Width    uint32
	Height   uint32
	Pitch    uint32
	Unknown5 uint32

	PaletteFlag   uint32
	BitsPerIndex  uint32
	IndexedTo8Bit uint32
	// PaletteSize is the total palette entry count (4 bytes per entry).
	PaletteSize uint32
	// ColorsPerPaletteDup is the second on-disk copy of the
	// colors-per-palette value. Not unified with ColorsPerPalette; the
	// format never guaranteed them consistent.
	ColorsPerPaletteDup uint32

	BitsPerPixel  uint32
	BytesPerPixel uint32

	PixelFormat PixelFormat

	ColorKeyArrayFlag uint32
	ReferenceAlpha    uint32
	Unknown6          uint32
	PaletteIndex      uint32
	Unknown7          uint32
	Unknown8          uint32
	Unknown9          uint32
	Unknown10         uint32

	// Palette holds PaletteSize entries of 4 bytes in B,G,R,A order;
	// nil when PaletteFlag is clear.
	Palette []byte
	// Pixels is Width*Height*BytesPerPixel bytes, row-major.
	Pixels []byte
	// ColorKey holds NumPalettes bytes when ColorKeyArrayFlag is set;
	// nil when the flag is clear or the producer omitted the array.
	ColorKey []byte

	altLayout bool
}

// AlternativeLayout reports whether the source buffer used the shorter
// header. Encode normalizes such textures to the standard layout, so a
// decode/encode cycle of an alternative-layout file is intentionally
// not byte-identical.
func (t *Texture) AlternativeLayout() bool { return t.altLayout }
