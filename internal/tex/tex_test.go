package tex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

type texParams struct {
	numPalettes       uint32
	colorsPerPalette  uint32
	paletteSize       uint32
	bitDepth          uint32
	width, height     uint32
	bytesPerPixel     uint32
	paletteFlag       uint32
	colorKeyArrayFlag uint32
	pixelFormat       [20]uint32

	palette  []byte
	pixels   []byte
	colorKey []byte

	alternative bool
}

// buildTex assembles a TEX buffer by hand so tests do not depend on
// the encoder they are checking.
func buildTex(p texParams) []byte {
	h := make([]byte, HeaderSizeStandard)
	put := func(off int, v uint32) { binary.LittleEndian.PutUint32(h[off:], v) }

	put(0x00, 1) // version
	put(0x30, p.numPalettes)
	put(0x34, p.colorsPerPalette)
	put(0x38, p.bitDepth)
	put(0x3C, p.width)
	put(0x40, p.height)
	put(0x44, p.width*p.bytesPerPixel)
	put(0x4C, p.paletteFlag)
	put(0x58, p.paletteSize)
	put(0x64, p.bitDepth)
	put(0x68, p.bytesPerPixel)
	for i, v := range p.pixelFormat {
		put(0x6C+i*4, v)
	}
	put(0xBC, p.colorKeyArrayFlag)

	buf := append([]byte{}, h...)
	buf = append(buf, p.palette...)
	buf = append(buf, p.pixels...)
	buf = append(buf, p.colorKey...)

	if p.alternative {
		// Drop the padding word so the palette count slides into its
		// slot, producing the short header variant.
		buf = append(buf[:probeOffset], buf[probeOffset+4:]...)
	}
	return buf
}

func palettedParams() texParams {
	return texParams{
		numPalettes:      1,
		colorsPerPalette: 2,
		paletteSize:      2,
		bitDepth:         8,
		width:            2,
		height:           1,
		bytesPerPixel:    1,
		paletteFlag:      1,
		palette: []byte{
			10, 20, 30, 255, // entry 0: B,G,R,A
			1, 2, 3, 4, // entry 1
		},
		pixels: []byte{0, 1},
	}
}

func TestDecodePaletted(t *testing.T) {
	src := buildTex(palettedParams())
	tx, err := Decode(src)
	if err != nil {
		t.Fatal(err)
	}

	if tx.Width != 2 || tx.Height != 1 {
		t.Errorf("dimensions %dx%d; expected 2x1", tx.Width, tx.Height)
	}
	if tx.NumPalettes != 1 || tx.PaletteSize != 2 {
		t.Errorf("palettes=%d size=%d; expected 1, 2", tx.NumPalettes, tx.PaletteSize)
	}
	if tx.AlternativeLayout() {
		t.Error("standard buffer reported as alternative layout")
	}
	if len(tx.Palette) != 8 || len(tx.Pixels) != 2 {
		t.Errorf("payload sizes palette=%d pixels=%d; expected 8, 2", len(tx.Palette), len(tx.Pixels))
	}
}

func TestStandardRoundTrip(t *testing.T) {
	p := palettedParams()
	p.colorKeyArrayFlag = 1
	p.colorKey = []byte{0xFE}
	src := buildTex(p)

	tx, err := Decode(src)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(tx.Encode(), src) {
		t.Error("standard-layout round trip is not byte-identical")
	}
}

func TestAlternativeLayoutNormalizes(t *testing.T) {
	p := palettedParams()
	std := buildTex(p)
	p.alternative = true
	alt := buildTex(p)

	if len(alt) != len(std)-4 {
		t.Fatalf("alternative buffer is %d bytes; expected %d", len(alt), len(std)-4)
	}

	fromAlt, err := Decode(alt)
	if err != nil {
		t.Fatal(err)
	}
	fromStd, err := Decode(std)
	if err != nil {
		t.Fatal(err)
	}

	if !fromAlt.AlternativeLayout() {
		t.Error("alternative buffer not detected")
	}
	if fromAlt.NumPalettes != fromStd.NumPalettes || fromAlt.Width != fromStd.Width ||
		!bytes.Equal(fromAlt.Palette, fromStd.Palette) || !bytes.Equal(fromAlt.Pixels, fromStd.Pixels) {
		t.Error("alternative decode disagrees with standard decode")
	}
	if !bytes.Equal(fromAlt.Encode(), std) {
		t.Error("alternative input did not normalize to the standard layout")
	}
}

func TestMalformedHeader(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*texParams)
	}{
		{"zero width", func(p *texParams) { p.width = 0 }},
		{"width too large", func(p *texParams) { p.width = 4097 }},
		{"zero height", func(p *texParams) { p.height = 0 }},
		{"height too large", func(p *texParams) { p.height = 5000 }},
		{"zero bit depth", func(p *texParams) { p.bitDepth = 0 }},
		{"bit depth too large", func(p *texParams) { p.bitDepth = 33 }},
		{"zero bytes per pixel", func(p *texParams) { p.bytesPerPixel = 0 }},
		{"bytes per pixel too large", func(p *texParams) { p.bytesPerPixel = 5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := palettedParams()
			tc.mod(&p)
			// Validation runs before any payload is read, so the tiny
			// payload never masks the header failure.
			if _, err := Decode(buildTex(p)); !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("got %v; expected ErrMalformedHeader", err)
			}
		})
	}
}

func TestTruncated(t *testing.T) {
	full := buildTex(palettedParams())

	cases := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"mid header", full[:0x40]},
		{"missing palette", full[:HeaderSizeStandard+2]},
		{"missing pixels", full[:len(full)-1]},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); !errors.Is(err, ErrTruncated) {
				t.Errorf("got %v; expected ErrTruncated", err)
			}
		})
	}
}

func TestColorKeyTruncationTolerated(t *testing.T) {
	p := palettedParams()
	p.colorKeyArrayFlag = 1 // flag set, array absent
	tx, err := Decode(buildTex(p))
	if err != nil {
		t.Fatalf("truncated color-key array must not fail decode: %v", err)
	}
	if tx.ColorKey != nil {
		t.Errorf("ColorKey = %v; expected nil for omitted array", tx.ColorKey)
	}
}

func TestExpandPaletted(t *testing.T) {
	tx, err := Decode(buildTex(palettedParams()))
	if err != nil {
		t.Fatal(err)
	}

	rgba := tx.ExpandRGBA(0)
	want := []byte{
		30, 20, 10, 255, // entry 0 reordered B,G,R,A -> R,G,B,A
		3, 2, 1, 4, // entry 1
	}
	if !bytes.Equal(rgba, want) {
		t.Errorf("ExpandRGBA = %v; expected %v", rgba, want)
	}
}

func TestExpandPalettedIgnoresColorsPerPalette(t *testing.T) {
	// Two sub-palettes of one entry each. The colors-per-palette field
	// lies (as shipped files do); the derived PaletteSize/NumPalettes
	// split must win.
	p := texParams{
		numPalettes:      2,
		colorsPerPalette: 999,
		paletteSize:      2,
		bitDepth:         8,
		width:            1,
		height:           1,
		bytesPerPixel:    1,
		paletteFlag:      1,
		palette: []byte{
			10, 20, 30, 255,
			40, 50, 60, 128,
		},
		pixels: []byte{0},
	}
	tx, err := Decode(buildTex(p))
	if err != nil {
		t.Fatal(err)
	}

	if got := tx.ExpandRGBA(1); !bytes.Equal(got, []byte{60, 50, 40, 128}) {
		t.Errorf("palette 1 pixel = %v; expected [60 50 40 128]", got)
	}
}

func TestExpandDirectColor(t *testing.T) {
	p := texParams{
		bitDepth:      16,
		width:         1,
		height:        1,
		bytesPerPixel: 2,
		pixelFormat: [20]uint32{
			5, 5, 5, 0, // bits r,g,b,a
			0x7C00, 0x03E0, 0x001F, 0, // masks
			10, 5, 0, 0, // shifts
		},
		pixels: []byte{0x00, 0x7C}, // little-endian 0x7C00
	}
	tx, err := Decode(buildTex(p))
	if err != nil {
		t.Fatal(err)
	}

	rgba := tx.ExpandRGBA(0)
	// Red = (0x7C00 >> 10) << (8-5) = 31 << 3 = 248; no alpha bits
	// means fully opaque.
	if want := []byte{248, 0, 0, 255}; !bytes.Equal(rgba, want) {
		t.Errorf("ExpandRGBA = %v; expected %v", rgba, want)
	}
}

func TestExpandDoesNotMutate(t *testing.T) {
	tx, err := Decode(buildTex(palettedParams()))
	if err != nil {
		t.Fatal(err)
	}

	before := tx.Encode()
	tx.ExpandRGBA(0)
	tx.ExpandRGBA(1)
	if !bytes.Equal(tx.Encode(), before) {
		t.Error("pixel expansion mutated stored texture state")
	}
}
