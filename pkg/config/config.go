// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig contains every tunable of the simulation and its front-ends
type GameConfig struct {
	Seed      uint64          `json:"seed" yaml:"seed"`
	Playfield PlayfieldConfig `json:"playfield" yaml:"playfield"`
	Shield    ShieldConfig    `json:"shield" yaml:"shield"`
	Ball      BallConfig      `json:"ball" yaml:"ball"`
	Enemy     EnemyConfig     `json:"enemy" yaml:"enemy"`
	Formation FormationConfig `json:"formation" yaml:"formation"`
	Block     BlockConfig     `json:"block" yaml:"block"`
	Ship      ShipConfig      `json:"ship" yaml:"ship"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Waves     WaveConfig      `json:"waves" yaml:"waves"`
	Limits    LimitsConfig    `json:"limits" yaml:"limits"`
	Audio     AudioConfig     `json:"audio" yaml:"audio"`
	Render    RenderConfig    `json:"render" yaml:"render"`
}

// PlayfieldConfig sizes the field. The danger line sits DangerOffset above the
// shield's top edge.
type PlayfieldConfig struct {
	Width        float64 `json:"width" yaml:"width"`
	Height       float64 `json:"height" yaml:"height"`
	DangerOffset float64 `json:"dangerOffset" yaml:"dangerOffset"`
}

// ShieldConfig describes the paddle
type ShieldConfig struct {
	Width          float64 `json:"width" yaml:"width"`
	Height         float64 `json:"height" yaml:"height"`
	BottomOffset   float64 `json:"bottomOffset" yaml:"bottomOffset"`
	Curvature      float64 `json:"curvature" yaml:"curvature"`
	MaxBounceAngle float64 `json:"maxBounceAngle" yaml:"maxBounceAngle"`
}

// BallConfig describes balls
type BallConfig struct {
	Radius       float64 `json:"radius" yaml:"radius"`
	Speed        float64 `json:"speed" yaml:"speed"`
	MinDY        float64 `json:"minDY" yaml:"minDY"`
	LaunchJitter float64 `json:"launchJitter" yaml:"launchJitter"`
}

// EnemyConfig describes enemies and their guns
type EnemyConfig struct {
	Width               float64 `json:"width" yaml:"width"`
	Height              float64 `json:"height" yaml:"height"`
	SmallHP             int     `json:"smallHP" yaml:"smallHP"`
	SmallScore          int     `json:"smallScore" yaml:"smallScore"`
	MediumHP            int     `json:"mediumHP" yaml:"mediumHP"`
	MediumScore         int     `json:"mediumScore" yaml:"mediumScore"`
	HitFlashTicks       int     `json:"hitFlashTicks" yaml:"hitFlashTicks"`
	FireCooldownBase    int     `json:"fireCooldownBase" yaml:"fireCooldownBase"`
	FireCooldownPerWave int     `json:"fireCooldownPerWave" yaml:"fireCooldownPerWave"`
	FireCooldownMin     int     `json:"fireCooldownMin" yaml:"fireCooldownMin"`
	FireJitter          int     `json:"fireJitter" yaml:"fireJitter"`
	FireChanceBase      float64 `json:"fireChanceBase" yaml:"fireChanceBase"`
	FireChancePerWave   float64 `json:"fireChancePerWave" yaml:"fireChancePerWave"`
	FireChanceMax       float64 `json:"fireChanceMax" yaml:"fireChanceMax"`
	BulletWidth         float64 `json:"bulletWidth" yaml:"bulletWidth"`
	BulletHeight        float64 `json:"bulletHeight" yaml:"bulletHeight"`
	BulletSpeed         float64 `json:"bulletSpeed" yaml:"bulletSpeed"`
	BulletSpeedPerWave  float64 `json:"bulletSpeedPerWave" yaml:"bulletSpeedPerWave"`
}

// FormationConfig controls lockstep enemy movement and grid layout
type FormationConfig struct {
	Speed        float64 `json:"speed" yaml:"speed"`
	SpeedPerWave float64 `json:"speedPerWave" yaml:"speedPerWave"`
	SpeedMax     float64 `json:"speedMax" yaml:"speedMax"`
	Cadence      int     `json:"cadence" yaml:"cadence"`
	Margin       float64 `json:"margin" yaml:"margin"`
	DropStep     float64 `json:"dropStep" yaml:"dropStep"`
	SpacingX     float64 `json:"spacingX" yaml:"spacingX"`
	SpacingY     float64 `json:"spacingY" yaml:"spacingY"`
	TopOffset    float64 `json:"topOffset" yaml:"topOffset"`
}

// BlockConfig lays out the block field
type BlockConfig struct {
	Columns             int     `json:"columns" yaml:"columns"`
	Rows                int     `json:"rows" yaml:"rows"`
	Width               float64 `json:"width" yaml:"width"`
	Height              float64 `json:"height" yaml:"height"`
	Gap                 float64 `json:"gap" yaml:"gap"`
	Top                 float64 `json:"top" yaml:"top"`
	IndestructibleRatio float64 `json:"indestructibleRatio" yaml:"indestructibleRatio"`
	Score               int     `json:"score" yaml:"score"`
}

// ShipConfig describes the defended ship
type ShipConfig struct {
	Width            float64 `json:"width" yaml:"width"`
	Height           float64 `json:"height" yaml:"height"`
	BottomOffset     float64 `json:"bottomOffset" yaml:"bottomOffset"`
	BaseHP           int     `json:"baseHP" yaml:"baseHP"`
	HPPerWave        int     `json:"hpPerWave" yaml:"hpPerWave"`
	SpeedMin         float64 `json:"speedMin" yaml:"speedMin"`
	SpeedMax         float64 `json:"speedMax" yaml:"speedMax"`
	TurnMin          int     `json:"turnMin" yaml:"turnMin"`
	TurnMax          int     `json:"turnMax" yaml:"turnMax"`
	ScreenFlashTicks int     `json:"screenFlashTicks" yaml:"screenFlashTicks"`
}

// ScoringConfig tunes the multiplier and bonuses
type ScoringConfig struct {
	MultMax         float64 `json:"multMax" yaml:"multMax"`
	MultGain        float64 `json:"multGain" yaml:"multGain"`
	DecayDelay      int     `json:"decayDelay" yaml:"decayDelay"`
	DecayRate       float64 `json:"decayRate" yaml:"decayRate"`
	FlashTicks      int     `json:"flashTicks" yaml:"flashTicks"`
	WaveBonus       int     `json:"waveBonus" yaml:"waveBonus"`
	KillsPerBonus   int     `json:"killsPerBonus" yaml:"killsPerBonus"`
	BonusBallChance float64 `json:"bonusBallChance" yaml:"bonusBallChance"`
}

// WaveConfig scales the enemy grid and ball-loss penalties
type WaveConfig struct {
	BaseRows           int     `json:"baseRows" yaml:"baseRows"`
	MaxRows            int     `json:"maxRows" yaml:"maxRows"`
	BaseCols           int     `json:"baseCols" yaml:"baseCols"`
	MaxCols            int     `json:"maxCols" yaml:"maxCols"`
	MediumFraction     float64 `json:"mediumFraction" yaml:"mediumFraction"`
	MediumFractionMax  float64 `json:"mediumFractionMax" yaml:"mediumFractionMax"`
	PenaltySpawnMin    int     `json:"penaltySpawnMin" yaml:"penaltySpawnMin"`
	PenaltySpawnJitter int     `json:"penaltySpawnJitter" yaml:"penaltySpawnJitter"`
	PenaltyBatch       int     `json:"penaltyBatch" yaml:"penaltyBatch"`
	PenaltyMinY        float64 `json:"penaltyMinY" yaml:"penaltyMinY"`
	PenaltyMaxY        float64 `json:"penaltyMaxY" yaml:"penaltyMaxY"`
}

// LimitsConfig caps live entity counts
type LimitsConfig struct {
	MaxBalls        int `json:"maxBalls" yaml:"maxBalls"`
	MaxEnemies      int `json:"maxEnemies" yaml:"maxEnemies"`
	MaxBullets      int `json:"maxBullets" yaml:"maxBullets"`
	MaxParticles    int `json:"maxParticles" yaml:"maxParticles"`
	ParticleLife    int `json:"particleLife" yaml:"particleLife"`
	CleanupInterval int `json:"cleanupInterval" yaml:"cleanupInterval"`
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled            bool          `json:"enabled" yaml:"enabled"`
	SampleRate         int           `json:"sampleRate" yaml:"sampleRate"`
	BufferMillis       int           `json:"bufferMillis" yaml:"bufferMillis"`
	Volume             float64       `json:"volume" yaml:"volume"`
	BreakerMaxFailures uint32        `json:"breakerMaxFailures" yaml:"breakerMaxFailures"`
	BreakerTimeout     time.Duration `json:"breakerTimeout" yaml:"breakerTimeout"`
}

// RenderConfig selects and tunes the front-end
type RenderConfig struct {
	Renderer string  `json:"renderer" yaml:"renderer"`
	TickRate int     `json:"tickRate" yaml:"tickRate"`
	Mouse    bool    `json:"mouse" yaml:"mouse"`
	Scale    float64 `json:"scale" yaml:"scale"`
}

// Renderer names accepted by RenderConfig.Renderer
const (
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
	RendererHeadless = "headless"
)

// LoadConfig loads a configuration from a JSON or YAML file. Fields missing from
// the file keep their DefaultConfig values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, as YAML when the extension asks for it
func SaveConfig(config *GameConfig, path string) error {
	if config == nil {
		return fmt.Errorf("failed to marshal config: %w", ErrInvalidConfig)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Playfield: PlayfieldConfig{
			Width:        600,
			Height:       800,
			DangerOffset: 40,
		},
		Shield: ShieldConfig{
			Width:          120,
			Height:         14,
			BottomOffset:   60,
			Curvature:      0.15,
			MaxBounceAngle: math.Pi / 3,
		},
		Ball: BallConfig{
			Radius:       7,
			Speed:        4.5,
			MinDY:        1.5,
			LaunchJitter: math.Pi / 12,
		},
		Enemy: EnemyConfig{
			Width:               32,
			Height:              24,
			SmallHP:             1,
			SmallScore:          50,
			MediumHP:            2,
			MediumScore:         150,
			HitFlashTicks:       6,
			FireCooldownBase:    180,
			FireCooldownPerWave: 15,
			FireCooldownMin:     40,
			FireJitter:          60,
			FireChanceBase:      0.15,
			FireChancePerWave:   0.05,
			FireChanceMax:       0.6,
			BulletWidth:         4,
			BulletHeight:        10,
			BulletSpeed:         2.5,
			BulletSpeedPerWave:  0.3,
		},
		Formation: FormationConfig{
			Speed:        0.6,
			SpeedPerWave: 0.15,
			SpeedMax:     2.5,
			Cadence:      2,
			Margin:       10,
			DropStep:     16,
			SpacingX:     44,
			SpacingY:     36,
			TopOffset:    60,
		},
		Block: BlockConfig{
			Columns:             10,
			Rows:                1,
			Width:               40,
			Height:              16,
			Gap:                 16,
			Top:                 480,
			IndestructibleRatio: 0.25,
			Score:               10,
		},
		Ship: ShipConfig{
			Width:            60,
			Height:           20,
			BottomOffset:     30,
			BaseHP:           5,
			HPPerWave:        2,
			SpeedMin:         0.5,
			SpeedMax:         1.5,
			TurnMin:          60,
			TurnMax:          180,
			ScreenFlashTicks: 10,
		},
		Scoring: ScoringConfig{
			MultMax:         5,
			MultGain:        0.08,
			DecayDelay:      90,
			DecayRate:       0.005,
			FlashTicks:      20,
			WaveBonus:       100,
			KillsPerBonus:   5,
			BonusBallChance: 0.5,
		},
		Waves: WaveConfig{
			BaseRows:           3,
			MaxRows:            6,
			BaseCols:           6,
			MaxCols:            10,
			MediumFraction:     0.2,
			MediumFractionMax:  0.6,
			PenaltySpawnMin:    2,
			PenaltySpawnJitter: 2,
			PenaltyBatch:       5,
			PenaltyMinY:        40,
			PenaltyMaxY:        100,
		},
		Limits: LimitsConfig{
			MaxBalls:        12,
			MaxEnemies:      60,
			MaxBullets:      80,
			MaxParticles:    400,
			ParticleLife:    30,
			CleanupInterval: 60,
		},
		Audio: AudioConfig{
			Enabled:            true,
			SampleRate:         44100,
			BufferMillis:       100,
			Volume:             0.6,
			BreakerMaxFailures: 5,
			BreakerTimeout:     10 * time.Second,
		},
		Render: RenderConfig{
			Renderer: RendererTerminal,
			TickRate: 60,
			Mouse:    true,
			Scale:    1,
		},
	}
}

// ShieldTop returns the y of the shield's flat top edge.
func (c *GameConfig) ShieldTop() float64 {
	return c.Playfield.Height - c.Shield.BottomOffset
}

// DangerLine returns the y that no living enemy may reach.
func (c *GameConfig) DangerLine() float64 {
	return c.ShieldTop() - c.Playfield.DangerOffset
}

// ShipTop returns the y of the ship's top edge, which is also the top of the band
// bullets must cross to damage it.
func (c *GameConfig) ShipTop() float64 {
	return c.Playfield.Height - c.Ship.BottomOffset
}
