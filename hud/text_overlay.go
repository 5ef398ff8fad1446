// Package hud implements a debug text overlay: a glyph atlas rasterized
// from a TrueType/OpenType font, blitted directly onto a texture.Buffer.
// It is adapted from the teacher's GPU text renderer, replacing vertex
// quad generation with direct pixel coverage blending since there is no
// GPU pipeline in a CPU raytracer's output path.
package hud

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gekko3d/raytracer/texture"
)

// glyphInfo records where a rasterized glyph lives in the atlas and how
// to advance the pen after drawing it.
type glyphInfo struct {
	atlasMin image.Point
	size     image.Point
	bearing  image.Point
	advance  float32
}

// TextOverlay rasterizes ASCII text onto a texture.Buffer using a glyph
// atlas built once at construction time.
type TextOverlay struct {
	atlas  *image.Alpha
	glyphs map[rune]glyphInfo
	face   font.Face
}

// NewTextOverlay parses the font at fontPath and builds a glyph atlas for
// the printable ASCII range, exactly the way the teacher's
// NewTextRenderer does, at the given point size.
func NewTextOverlay(fontPath string, fontSize float64) (*TextOverlay, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("hud: read font file: %w", err)
	}

	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("hud: create face: %w", err)
	}

	const atlasSize = 512
	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]glyphInfo)

	x, y := 2, 2
	rowHeight := 0

	for r := rune(32); r < 127; r++ {
		bounds, mask, _, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		w := mask.Bounds().Dx()
		h := mask.Bounds().Dy()

		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		draw.Draw(atlas, image.Rect(x, y, x+w, y+h), mask, mask.Bounds().Min, draw.Src)

		glyphs[r] = glyphInfo{
			atlasMin: image.Point{X: x, Y: y},
			size:     image.Point{X: w, Y: h},
			bearing:  image.Point{X: bounds.Min.X, Y: bounds.Min.Y},
			advance:  float32(adv) / 64.0,
		}

		x += w + 4
		if h > rowHeight {
			rowHeight = h
		}
	}

	return &TextOverlay{atlas: atlas, glyphs: glyphs, face: face}, nil
}

// LineHeight reports the font's line height, in pixels.
func (o *TextOverlay) LineHeight() int {
	if o == nil {
		return 0
	}
	return o.face.Metrics().Height.Ceil()
}

// DrawText blits text onto dst with the top-left corner of its first line
// at (x, y) (the baseline sits one font ascent below y), alpha-blending
// each glyph's atlas coverage against color.
// Unsupported runes (outside the printable ASCII range baked into the
// atlas) and glyphs that fall outside dst's bounds are silently skipped.
func (o *TextOverlay) DrawText(dst *texture.Buffer, text string, x, y int, color [4]uint8) {
	if o == nil || dst == nil {
		return
	}

	ascent := o.face.Metrics().Ascent.Ceil()
	lineHeight := o.face.Metrics().Height.Ceil()

	penX := x
	penY := y + ascent

	for _, r := range text {
		if r == '\n' {
			penX = x
			penY += lineHeight
			continue
		}

		g, ok := o.glyphs[r]
		if !ok {
			continue
		}

		o.blitGlyph(dst, g, penX, penY, color)
		penX += int(g.advance)
	}
}

func (o *TextOverlay) blitGlyph(dst *texture.Buffer, g glyphInfo, penX, penY int, color [4]uint8) {
	originX := penX + g.bearing.X
	originY := penY + g.bearing.Y

	for row := 0; row < g.size.Y; row++ {
		for col := 0; col < g.size.X; col++ {
			dstX := originX + col
			dstY := originY + row
			if dstX < 0 || dstY < 0 || dstX >= dst.Width || dstY >= dst.Height {
				continue
			}

			coverage := o.atlas.AlphaAt(g.atlasMin.X+col, g.atlasMin.Y+row).A
			if coverage == 0 {
				continue
			}

			blendPixel(dst, dstX, dstY, color, coverage)
		}
	}
}

// blendPixel alpha-composites color over the pixel at (x, y) in dst,
// weighted by coverage (the glyph's rasterized alpha at that texel).
func blendPixel(dst *texture.Buffer, x, y int, color [4]uint8, coverage uint8) {
	r, g, b, a := dst.At(x, y)
	srcA := uint32(coverage) * uint32(color[3]) / 255

	blend := func(bg, fg uint8) uint8 {
		return uint8((uint32(fg)*srcA + uint32(bg)*(255-srcA)) / 255)
	}

	out := [4]uint8{blend(r, color[0]), blend(g, color[1]), blend(b, color[2]), blend(a, 255)}
	dst.Set(x, y, out)
}
