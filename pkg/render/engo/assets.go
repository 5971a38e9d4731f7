// pkg/render/engo/assets.go
package engo

import (
	"image"
	"image/color"

	"github.com/EngoEngine/engo/common"
)

// SpriteKind names a pixel-art sprite.
type SpriteKind int

const (
	SpriteBall SpriteKind = iota
	SpriteSmallEnemy
	SpriteMediumEnemy
	SpriteShip
)

// Patterns are drawn in white and tinted by the render component's color.
var spritePatterns = map[SpriteKind][]string{
	SpriteBall: {
		"..####..",
		".######.",
		"########",
		"########",
		"########",
		"########",
		".######.",
		"..####..",
	},
	SpriteSmallEnemy: {
		"..#......#..",
		"...#....#...",
		"..########..",
		".##.####.##.",
		"############",
		"#.########.#",
		"#.#......#.#",
		"...##..##...",
	},
	SpriteMediumEnemy: {
		"....####....",
		".##########.",
		"############",
		"###..##..###",
		"############",
		"..###..###..",
		".##..##..##.",
		"##........##",
	},
	SpriteShip: {
		".....######.....",
		"...##########...",
		".##.##.##.##.##.",
		"################",
		"..###..##..###..",
	},
}

// AssetManager builds the pixel-art sprites. Textures need a GL context, so
// images are built eagerly and uploaded by LoadAssets.
type AssetManager struct {
	images   map[SpriteKind]*image.NRGBA
	textures map[SpriteKind]common.Drawable
}

// NewAssetManager creates the sprite images.
func NewAssetManager() *AssetManager {
	am := &AssetManager{
		images:   make(map[SpriteKind]*image.NRGBA, len(spritePatterns)),
		textures: make(map[SpriteKind]common.Drawable, len(spritePatterns)),
	}
	for kind, pattern := range spritePatterns {
		am.images[kind] = patternImage(pattern)
	}
	return am
}

// patternImage draws a pattern where '#' is an opaque white pixel.
func patternImage(pattern []string) *image.NRGBA {
	w := 0
	for _, row := range pattern {
		w = max(w, len(row))
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, len(pattern)))
	for y, row := range pattern {
		for x, px := range row {
			if px == '#' {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return img
}

// LoadAssets uploads every sprite image as a texture. It must run inside the
// engo window.
func (am *AssetManager) LoadAssets() error {
	for kind, img := range am.images {
		am.textures[kind] = common.NewTextureSingle(common.NewImageObject(img))
	}
	return nil
}

// Image returns the sprite's source image.
func (am *AssetManager) Image(kind SpriteKind) *image.NRGBA {
	return am.images[kind]
}

// Sprite returns the uploaded texture, or nil before LoadAssets.
func (am *AssetManager) Sprite(kind SpriteKind) common.Drawable {
	return am.textures[kind]
}
