// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by ApplyEnvironmentOverrides
const (
	EnvSeed         = "SHIELDWALL_SEED"
	EnvRenderer     = "SHIELDWALL_RENDERER"
	EnvTickRate     = "SHIELDWALL_TICK_RATE"
	EnvFieldWidth   = "SHIELDWALL_FIELD_WIDTH"
	EnvFieldHeight  = "SHIELDWALL_FIELD_HEIGHT"
	EnvMaxBalls     = "SHIELDWALL_MAX_BALLS"
	EnvMaxEnemies   = "SHIELDWALL_MAX_ENEMIES"
	EnvAudioEnabled = "SHIELDWALL_AUDIO_ENABLED"
	EnvAudioVolume  = "SHIELDWALL_AUDIO_VOLUME"
	EnvAudioBreaker = "SHIELDWALL_AUDIO_BREAKER_TIMEOUT"
)

// ApplyEnvironmentOverrides applies SHIELDWALL_* variables on top of config and
// validates the result.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("apply environment overrides: %w", ErrInvalidConfig)
	}

	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		config.Seed = seed
	}

	config.Render.Renderer = getEnvOrDefault(EnvRenderer, config.Render.Renderer)
	config.Render.TickRate = getEnvAsIntOrDefault(EnvTickRate, config.Render.TickRate)
	config.Playfield.Width = getEnvAsFloatOrDefault(EnvFieldWidth, config.Playfield.Width)
	config.Playfield.Height = getEnvAsFloatOrDefault(EnvFieldHeight, config.Playfield.Height)
	config.Limits.MaxBalls = getEnvAsIntOrDefault(EnvMaxBalls, config.Limits.MaxBalls)
	config.Limits.MaxEnemies = getEnvAsIntOrDefault(EnvMaxEnemies, config.Limits.MaxEnemies)
	config.Audio.Enabled = getEnvAsBoolOrDefault(EnvAudioEnabled, config.Audio.Enabled)
	config.Audio.Volume = getEnvAsFloatOrDefault(EnvAudioVolume, config.Audio.Volume)
	config.Audio.BreakerTimeout = getEnvAsDurationOrDefault(EnvAudioBreaker, config.Audio.BreakerTimeout)

	if err := config.Validate(); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
