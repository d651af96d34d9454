package formats

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/atlas/engine/core"
)

const fntFixture = `info face="Test Sans" size=32 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=36 base=29 scaleW=256 scaleH=128 pages=1 packed=0 alphaChnl=0 redChnl=4 greenChnl=4 blueChnl=4
page id=0 file="test_sans_0.png"
chars count=2
char id=66 x=24 y=2 width=18 height=24 xoffset=1 yoffset=5 xadvance=20 page=0 chnl=15
char id=65 x=2 y=2 width=20 height=24 xoffset=0 yoffset=5 xadvance=21 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-2
`

func TestBitmapFontFormatImport(t *testing.T) {
	font, err := BitmapFontFormat{}.Import("test_sans.fnt", []byte(fntFixture))
	if err != nil {
		t.Fatal(err)
	}

	if font.Face != "Test Sans" {
		t.Errorf("Face = %q, want %q", font.Face, "Test Sans")
	}
	if font.Size != 32 {
		t.Errorf("Size = %d, want 32", font.Size)
	}
	if font.LineHeight != 36 || font.Baseline != 29 {
		t.Errorf("LineHeight/Baseline = %d/%d, want 36/29", font.LineHeight, font.Baseline)
	}
	if font.AtlasSizeX != 256 || font.AtlasSizeY != 128 {
		t.Errorf("atlas = %dx%d, want 256x128", font.AtlasSizeX, font.AtlasSizeY)
	}

	if len(font.Pages) != 1 || font.Pages[0].File != "test_sans_0.png" {
		t.Fatalf("Pages = %+v, want one page test_sans_0.png", font.Pages)
	}

	if len(font.Glyphs) != 2 {
		t.Fatalf("len(Glyphs) = %d, want 2", len(font.Glyphs))
	}
	// Sorted by codepoint regardless of declaration order.
	a := font.Glyphs[0]
	if a.Codepoint != 'A' || a.Width != 20 || a.XAdvance != 21 {
		t.Errorf("Glyphs[0] = %+v, want glyph A w=20 adv=21", a)
	}
	if font.Glyphs[1].Codepoint != 'B' {
		t.Errorf("Glyphs[1].Codepoint = %q, want B", font.Glyphs[1].Codepoint)
	}

	if len(font.Kernings) != 1 {
		t.Fatalf("len(Kernings) = %d, want 1", len(font.Kernings))
	}
	k := font.Kernings[0]
	if k.Codepoint0 != 'A' || k.Codepoint1 != 'B' || k.Amount != -2 {
		t.Errorf("Kernings[0] = %+v, want A/B amount -2", k)
	}
}

func TestBitmapFontFormatRejectsGarbage(t *testing.T) {
	if _, err := (BitmapFontFormat{}).Import("junk.fnt", []byte("%%%")); err == nil {
		t.Error("Import accepted non-fnt bytes")
	}
}

func TestBitmapFontFormatRejectsBinaryDescriptor(t *testing.T) {
	binary := append([]byte("BMF\x03"), 0x01, 0x00, 0x00, 0x00)
	_, err := BitmapFontFormat{}.Import("binary.fnt", binary)
	if !errors.Is(err, core.ErrUnsupportedOperation) {
		t.Errorf("Import of binary descriptor = %v, want ErrUnsupportedOperation", err)
	}
}
