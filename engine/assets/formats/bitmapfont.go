package formats

import (
	"bytes"
	"fmt"

	"github.com/fzipp/bmfont"
	"github.com/spaghettifunk/atlas/engine/core"
	"golang.org/x/exp/slices"
)

type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type FontKerning struct {
	Codepoint0 rune
	Codepoint1 rune
	Amount     int16
}

type FontPage struct {
	ID   int8
	File string
}

// BitmapFontData is the intermediate result of importing an AngelCode
// .fnt descriptor. The page atlas images are separate image assets.
type BitmapFontData struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     []FontGlyph
	Kernings   []FontKerning
	Pages      []FontPage
}

// BitmapFontFormat parses AngelCode bitmap font descriptors in the text
// .fnt format.
type BitmapFontFormat struct{}

func (BitmapFontFormat) Extension() string {
	return ".fnt"
}

func (BitmapFontFormat) Import(name string, data []byte) (*BitmapFontData, error) {
	// Binary BMF descriptors (magic "BMF\x03") are a different container;
	// only the text format is parsed here. Export the font as text.
	if bytes.HasPrefix(data, []byte("BMF")) {
		return nil, fmt.Errorf("binary .fnt descriptor %q: %w", name, core.ErrUnsupportedOperation)
	}

	desc, err := bmfont.ReadDescriptor(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing bitmap font %q: %w", name, err)
	}

	out := &BitmapFontData{
		Face:       desc.Info.Face,
		Size:       uint32(desc.Info.Size),
		LineHeight: int32(desc.Common.LineHeight),
		Baseline:   int32(desc.Common.Base),
		AtlasSizeX: int32(desc.Common.ScaleW),
		AtlasSizeY: int32(desc.Common.ScaleH),
		Glyphs:     make([]FontGlyph, 0, len(desc.Chars)),
		Kernings:   make([]FontKerning, 0, len(desc.Kerning)),
		Pages:      make([]FontPage, 0, len(desc.Pages)),
	}

	for _, p := range desc.Pages {
		out.Pages = append(out.Pages, FontPage{
			ID:   int8(p.ID),
			File: p.File,
		})
	}

	for _, g := range desc.Chars {
		out.Glyphs = append(out.Glyphs, FontGlyph{
			Codepoint: g.ID,
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		})
	}

	for pair, k := range desc.Kerning {
		out.Kernings = append(out.Kernings, FontKerning{
			Codepoint0: pair.First,
			Codepoint1: pair.Second,
			Amount:     int16(k.Amount),
		})
	}

	// The descriptor maps iterate in random order; keep output stable.
	slices.SortFunc(out.Pages, func(a, b FontPage) int { return int(a.ID) - int(b.ID) })
	slices.SortFunc(out.Glyphs, func(a, b FontGlyph) int { return int(a.Codepoint) - int(b.Codepoint) })
	slices.SortFunc(out.Kernings, func(a, b FontKerning) int {
		if a.Codepoint0 != b.Codepoint0 {
			return int(a.Codepoint0) - int(b.Codepoint0)
		}
		return int(a.Codepoint1) - int(b.Codepoint1)
	})

	return out, nil
}
