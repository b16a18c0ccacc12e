package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextRenderer_Atlas(t *testing.T) {
	tr, err := NewDefaultTextRenderer(32)
	require.NoError(t, err)

	assert.Equal(t, atlasSize, tr.AtlasImage.Bounds().Dx())
	for _, r := range "FPS:0123456789" {
		g, ok := tr.Glyphs[r]
		require.True(t, ok, "missing glyph %q", r)
		assert.Greater(t, g.Adv, float32(0))
		assert.LessOrEqual(t, g.UVMax[0], float32(1))
		assert.LessOrEqual(t, g.UVMax[1], float32(1))
	}
}

func TestTextRenderer_BadFont(t *testing.T) {
	_, err := NewTextRenderer([]byte("not a font"), 12)
	assert.Error(t, err)
}

func TestTextRenderer_BuildVertices(t *testing.T) {
	tr, err := NewDefaultTextRenderer(16)
	require.NoError(t, err)

	items := []TextItem{{Text: "AB", Position: [2]float32{10, 10}, Scale: 1, Color: [4]float32{1, 1, 0, 1}}}
	verts := tr.BuildVertices(items, 800, 600)
	require.Len(t, verts, 12)

	for _, v := range verts {
		assert.GreaterOrEqual(t, v.Pos[0], float32(-1))
		assert.LessOrEqual(t, v.Pos[0], float32(1))
		assert.GreaterOrEqual(t, v.Pos[1], float32(-1))
		assert.LessOrEqual(t, v.Pos[1], float32(1))
		assert.Equal(t, [4]float32{1, 1, 0, 1}, v.Color)
	}

	// glyphs outside the atlas are skipped
	verts = tr.BuildVertices([]TextItem{{Text: "Aé", Scale: 1}}, 800, 600)
	assert.Len(t, verts, 6)

	assert.Nil(t, tr.BuildVertices(items, 0, 600))
}
