// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/entity"
	"github.com/opd-ai/go-shieldwall/pkg/physics"
)

// SpriteSink receives sprite entities. common.RenderSystem satisfies it.
type SpriteSink interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
	Remove(basic ecs.BasicEntity)
}

var (
	colorBall     = color.RGBA{255, 255, 255, 255}
	colorShield   = color.RGBA{0, 220, 255, 255}
	colorSmall    = color.RGBA{80, 230, 80, 255}
	colorMedium   = color.RGBA{230, 80, 230, 255}
	colorFlash    = color.RGBA{255, 255, 255, 255}
	colorBlock    = color.RGBA{255, 160, 40, 255}
	colorSolid    = color.RGBA{140, 140, 150, 255}
	colorBullet   = color.RGBA{255, 60, 60, 255}
	colorShip     = color.RGBA{90, 120, 255, 255}
	colorDanger   = color.RGBA{140, 20, 20, 255}
	colorParticle = color.NRGBA{255, 230, 160, 255}
)

// sprite is one drawn entity.
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer mirrors each snapshot into render entities keyed by simulation
// ID. Entities that disappear from the snapshot are removed from the sink.
type EngoRenderer struct {
	sink   SpriteSink
	camera *Camera
	assets *AssetManager

	sprites   map[entity.ID]*sprite
	particles []*sprite
	danger    *sprite
	seen      map[entity.ID]bool
}

// NewEngoRenderer creates a renderer feeding sink.
func NewEngoRenderer(sink SpriteSink, camera *Camera, assets *AssetManager) *EngoRenderer {
	return &EngoRenderer{
		sink:    sink,
		camera:  camera,
		assets:  assets,
		sprites: make(map[entity.ID]*sprite),
		seen:    make(map[entity.ID]bool),
	}
}

// Sync updates the render entities to match state.
func (r *EngoRenderer) Sync(state *engine.GameState) {
	if state == nil {
		return
	}
	clear(r.seen)

	r.syncDanger(state)

	for _, b := range state.Blocks {
		c := colorBlock
		if b.Kind == entity.Indestructible {
			c = colorSolid
		}
		r.place(b.ID, b.Bounds, nil, c)
	}
	for _, e := range state.Enemies {
		kind, c := SpriteSmallEnemy, colorSmall
		if e.Kind == entity.Medium {
			kind, c = SpriteMediumEnemy, colorMedium
		}
		if e.Flash > 0 {
			c = colorFlash
		}
		r.place(e.ID, e.Bounds, r.assets.Sprite(kind), c)
	}
	for _, b := range state.Bullets {
		r.place(b.ID, b.Bounds, nil, colorBullet)
	}
	r.place(state.Shield.ID, state.Shield.Bounds, nil, colorShield)
	if state.Ship.MaxHP > 0 {
		r.place(state.Ship.ID, state.Ship.Bounds, r.assets.Sprite(SpriteShip), colorShip)
	}
	for _, b := range state.Balls {
		box := physics.AABB{
			X: b.Position.X - b.Radius,
			Y: b.Position.Y - b.Radius,
			W: 2 * b.Radius,
			H: 2 * b.Radius,
		}
		r.place(b.ID, box, r.assets.Sprite(SpriteBall), colorBall)
	}

	for id, s := range r.sprites {
		if !r.seen[id] {
			r.sink.Remove(s.BasicEntity)
			delete(r.sprites, id)
		}
	}

	r.syncParticles(state)
}

// place creates or updates the sprite for id. A nil drawable draws a rectangle.
func (r *EngoRenderer) place(id entity.ID, box physics.AABB, d common.Drawable, c color.Color) {
	r.seen[id] = true
	s, ok := r.sprites[id]
	if !ok {
		s = r.newSprite(d)
		r.sprites[id] = s
	}
	r.update(s, box, d, c)
}

func (r *EngoRenderer) newSprite(d common.Drawable) *sprite {
	if d == nil {
		d = common.Rectangle{}
	}
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{
		Drawable: d,
		Scale:    engo.Point{X: 1, Y: 1},
	}
	r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	return s
}

// update positions a sprite. Textures are scaled to the box; rectangles take
// their size from the space component.
func (r *EngoRenderer) update(s *sprite, box physics.AABB, d common.Drawable, c color.Color) {
	pos, w, h := r.camera.BoxToScreen(box)
	s.SpaceComponent.Position = pos
	s.SpaceComponent.Width = w
	s.SpaceComponent.Height = h
	s.RenderComponent.Color = c
	s.RenderComponent.Hidden = false
	if d != nil {
		s.RenderComponent.Drawable = d
		if d.Width() > 0 && d.Height() > 0 {
			s.RenderComponent.Scale = engo.Point{X: w / d.Width(), Y: h / d.Height()}
		}
	}
}

func (r *EngoRenderer) syncDanger(state *engine.GameState) {
	if r.danger == nil {
		r.danger = r.newSprite(nil)
	}
	r.update(r.danger, physics.AABB{Y: state.DangerLine, W: state.Width, H: 1}, nil, colorDanger)
}

// syncParticles reuses a pool of rectangles, hiding the unused tail.
func (r *EngoRenderer) syncParticles(state *engine.GameState) {
	for i, p := range state.Particles {
		if i == len(r.particles) {
			r.particles = append(r.particles, r.newSprite(nil))
		}
		c := colorParticle
		c.A = uint8(255 * p.Alpha())
		r.update(r.particles[i], physics.AABB{X: p.Position.X - 1, Y: p.Position.Y - 1, W: 2, H: 2}, nil, c)
	}
	for i := len(state.Particles); i < len(r.particles); i++ {
		r.particles[i].RenderComponent.Hidden = true
	}
}

// Tracked returns how many simulation entities have sprites.
func (r *EngoRenderer) Tracked() int {
	return len(r.sprites)
}

// Clear removes every sprite from the sink.
func (r *EngoRenderer) Clear() {
	for id, s := range r.sprites {
		r.sink.Remove(s.BasicEntity)
		delete(r.sprites, id)
	}
	for _, s := range r.particles {
		r.sink.Remove(s.BasicEntity)
	}
	r.particles = nil
	if r.danger != nil {
		r.sink.Remove(r.danger.BasicEntity)
		r.danger = nil
	}
}
