package core

import (
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const atlasSize = 512

type TextVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

type TextItem struct {
	Text     string
	Position [2]float32 // pixels from the top-left corner
	Scale    float32
	Color    [4]float32
}

type GlyphInfo struct {
	UVMin [2]float32
	UVMax [2]float32
	Size  [2]float32
	Off   [2]float32
	Adv   float32
}

// TextRenderer holds a single-channel glyph atlas for printable ASCII.
type TextRenderer struct {
	AtlasImage *image.Alpha
	Glyphs     map[rune]GlyphInfo
	Face       font.Face
}

// NewDefaultTextRenderer builds an atlas from the embedded Go Regular font.
func NewDefaultTextRenderer(fontSize float64) (*TextRenderer, error) {
	return NewTextRenderer(goregular.TTF, fontSize)
}

func NewTextRenderer(fontData []byte, fontSize float64) (*TextRenderer, error) {
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}

	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]GlyphInfo)

	x, y := 2, 2
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()

		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)

		glyphs[r] = GlyphInfo{
			UVMin: [2]float32{float32(x) / atlasSize, float32(y) / atlasSize},
			UVMax: [2]float32{float32(x+w) / atlasSize, float32(y+h) / atlasSize},
			Size:  [2]float32{float32(w), float32(h)},
			Off:   [2]float32{float32(bounds.Min.X), float32(bounds.Min.Y)},
			Adv:   float32(adv) / 64.0, // 26.6 fixed point
		}

		x += w + 4
		rowHeight = max(rowHeight, h)
	}

	return &TextRenderer{
		AtlasImage: atlas,
		Glyphs:     glyphs,
		Face:       face,
	}, nil
}

// BuildVertices lays out items as NDC triangles (six vertices per glyph).
func (tr *TextRenderer) BuildVertices(items []TextItem, screenW, screenH int) []TextVertex {
	if screenW <= 0 || screenH <= 0 {
		return nil
	}
	vertices := make([]TextVertex, 0, len(items)*6*16)

	sw := float32(screenW)
	sh := float32(screenH)
	metrics := tr.Face.Metrics()
	ascent := float32(metrics.Ascent.Ceil())
	lineHeight := float32(metrics.Height.Ceil())

	toNDC := func(px, py float32) [2]float32 {
		return [2]float32{px/sw*2.0 - 1.0, 1.0 - py/sh*2.0}
	}

	for _, item := range items {
		penX := item.Position[0]
		penY := item.Position[1] + ascent*item.Scale

		for _, r := range item.Text {
			if r == '\n' {
				penX = item.Position[0]
				penY += lineHeight * item.Scale
				continue
			}
			g, ok := tr.Glyphs[r]
			if !ok {
				continue
			}

			p0 := toNDC(penX+g.Off[0]*item.Scale, penY+g.Off[1]*item.Scale)
			p1 := toNDC(penX+(g.Off[0]+g.Size[0])*item.Scale, penY+(g.Off[1]+g.Size[1])*item.Scale)

			topLeft := TextVertex{Pos: p0, UV: g.UVMin, Color: item.Color}
			topRight := TextVertex{Pos: [2]float32{p1[0], p0[1]}, UV: [2]float32{g.UVMax[0], g.UVMin[1]}, Color: item.Color}
			bottomLeft := TextVertex{Pos: [2]float32{p0[0], p1[1]}, UV: [2]float32{g.UVMin[0], g.UVMax[1]}, Color: item.Color}
			bottomRight := TextVertex{Pos: p1, UV: g.UVMax, Color: item.Color}
			vertices = append(vertices, topLeft, topRight, bottomLeft, topRight, bottomRight, bottomLeft)

			penX += g.Adv * item.Scale
		}
	}
	return vertices
}
