// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-shieldwall/pkg/engine"
	"github.com/opd-ai/go-shieldwall/pkg/logging"
)

// Renderer draws one frame from a snapshot. Implementations never touch the live
// simulation state.
type Renderer interface {
	Render(state *engine.GameState)
	Close()
}

// NullRenderer logs a one-line frame summary at debug level. Headless runs use it.
type NullRenderer struct {
	logger *logging.Logger
	ctx    context.Context
	frames uint64
}

// NewNullRenderer creates a NullRenderer. A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Render implements Renderer.
func (d *NullRenderer) Render(state *engine.GameState) {
	if state == nil {
		d.logger.Debug(d.ctx, "Render called with nil state")
		return
	}
	d.frames++
	d.logger.Debug(d.ctx, "frame",
		"status", state.Status.String(),
		"tick", state.Tick,
		"wave", state.Wave,
		"score", state.Score,
		"balls", len(state.Balls),
		"enemies", len(state.Enemies),
		"bullets", len(state.Bullets),
	)
}

// Frames returns how many snapshots were rendered.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// Close implements Renderer.
func (d *NullRenderer) Close() {
	d.logger.Debug(d.ctx, "renderer closed", "frames", d.frames)
}
