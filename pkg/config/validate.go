// pkg/config/validate.go
package config

import "fmt"

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}

// Validate checks that the configuration can drive a playable simulation.
func (c *GameConfig) Validate() error {
	p := c.Playfield
	if p.Width <= 0 || p.Height <= 0 {
		return invalid("playfield must have positive size, got %vx%v", p.Width, p.Height)
	}

	s := c.Shield
	if s.Width <= 0 || s.Height <= 0 || s.Width >= p.Width {
		return invalid("shield width %v must be positive and narrower than the playfield", s.Width)
	}
	if s.BottomOffset <= 0 || s.BottomOffset >= p.Height {
		return invalid("shield bottom offset %v outside playfield", s.BottomOffset)
	}
	if s.Curvature < 0 || s.Curvature > 1 {
		return invalid("shield curvature %v outside [0, 1]", s.Curvature)
	}
	if s.MaxBounceAngle <= 0 || s.MaxBounceAngle >= 1.5707963267948966 {
		return invalid("max bounce angle %v must be in (0, pi/2)", s.MaxBounceAngle)
	}

	b := c.Ball
	if b.Radius <= 0 || b.Speed <= 0 {
		return invalid("ball radius and speed must be positive")
	}
	if b.MinDY <= 0 || b.MinDY >= b.Speed {
		return invalid("ball minDY %v must be in (0, speed)", b.MinDY)
	}

	e := c.Enemy
	if e.Width <= 0 || e.Height <= 0 {
		return invalid("enemy size must be positive")
	}
	if e.SmallHP < 1 || e.MediumHP < 1 {
		return invalid("enemy hit points must be at least 1")
	}
	if e.MediumScore <= e.SmallScore {
		return invalid("medium score %d must exceed small score %d", e.MediumScore, e.SmallScore)
	}
	if e.FireCooldownMin < 1 || e.FireJitter < 0 {
		return invalid("fire cooldown minimum must be at least 1 and jitter non-negative")
	}
	if e.FireChanceMax < 0 || e.FireChanceMax > 1 {
		return invalid("fire chance max %v outside [0, 1]", e.FireChanceMax)
	}
	if e.BulletSpeed <= 0 || e.BulletWidth <= 0 || e.BulletHeight <= 0 {
		return invalid("bullet size and speed must be positive")
	}

	f := c.Formation
	if f.Cadence < 1 {
		return invalid("formation cadence %d must be at least 1", f.Cadence)
	}
	if f.Speed <= 0 || f.SpeedMax < f.Speed {
		return invalid("formation speed %v must be positive and at most %v", f.Speed, f.SpeedMax)
	}
	if f.Margin < 0 || f.DropStep <= 0 {
		return invalid("formation margin must be non-negative and drop positive")
	}

	w := c.Waves
	if w.BaseRows < 1 || w.MaxRows < w.BaseRows || w.BaseCols < 1 || w.MaxCols < w.BaseCols {
		return invalid("wave grid %dx%d (max %dx%d) is not valid", w.BaseRows, w.BaseCols, w.MaxRows, w.MaxCols)
	}
	if float64(w.MaxCols-1)*f.SpacingX+e.Width > p.Width-2*f.Margin {
		return invalid("widest enemy grid does not fit inside the formation margins")
	}
	if w.MediumFraction < 0 || w.MediumFractionMax > 1 {
		return invalid("medium fraction outside [0, 1]")
	}
	if w.PenaltySpawnMin < 0 || w.PenaltySpawnJitter < 0 || w.PenaltyBatch < 0 {
		return invalid("penalty spawn counts must be non-negative")
	}
	if w.PenaltyMaxY < w.PenaltyMinY {
		return invalid("penalty spawn band %v..%v is inverted", w.PenaltyMinY, w.PenaltyMaxY)
	}

	bl := c.Block
	if bl.Columns < 0 || bl.Rows < 0 {
		return invalid("block grid must be non-negative")
	}
	if bl.Columns > 0 && float64(bl.Columns)*bl.Width+float64(bl.Columns-1)*bl.Gap > p.Width {
		return invalid("block row is wider than the playfield")
	}
	if bl.Gap < 0 || (bl.Gap > 0 && bl.Gap <= 2*c.Ball.Radius) {
		return invalid("block gap %v must be zero or wider than the ball (%v)", bl.Gap, 2*c.Ball.Radius)
	}
	if bl.IndestructibleRatio < 0 || bl.IndestructibleRatio > 1 {
		return invalid("indestructible ratio %v outside [0, 1]", bl.IndestructibleRatio)
	}

	sh := c.Ship
	if sh.BaseHP < 1 || sh.HPPerWave < 0 {
		return invalid("ship hit points must be at least 1")
	}
	if sh.SpeedMin < 0 || sh.SpeedMax < sh.SpeedMin || sh.TurnMin < 1 || sh.TurnMax < sh.TurnMin {
		return invalid("ship wandering ranges are not valid")
	}
	if c.ShipTop() <= c.ShieldTop() {
		return invalid("ship must sit below the shield")
	}

	sc := c.Scoring
	if sc.MultMax < 1 || sc.MultGain < 0 || sc.DecayRate < 0 || sc.DecayDelay < 0 {
		return invalid("multiplier settings out of range")
	}
	if sc.KillsPerBonus < 1 || sc.BonusBallChance < 0 || sc.BonusBallChance > 1 {
		return invalid("bonus ball settings out of range")
	}

	l := c.Limits
	if l.MaxBalls < 1 || l.MaxEnemies < 1 || l.MaxBullets < 0 || l.MaxParticles < 0 {
		return invalid("entity limits must allow at least one ball and one enemy")
	}
	if l.CleanupInterval < 1 {
		return invalid("cleanup interval %d must be at least 1", l.CleanupInterval)
	}

	if c.Audio.Enabled && (c.Audio.SampleRate <= 0 || c.Audio.BufferMillis <= 0) {
		return invalid("audio sample rate and buffer must be positive")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return invalid("audio volume %v outside [0, 1]", c.Audio.Volume)
	}

	switch c.Render.Renderer {
	case RendererTerminal, RendererEngo, RendererHeadless:
	default:
		return invalid("unknown renderer %q", c.Render.Renderer)
	}
	if c.Render.TickRate < 1 {
		return invalid("tick rate %d must be at least 1", c.Render.TickRate)
	}

	return nil
}
