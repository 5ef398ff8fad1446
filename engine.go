// Package raytracer wires the acceleration core's collaborators
// (geom, bvh, tlas, model, scene, physics) into a single orchestration
// point, and carries the ambient logging/error stack shared across them.
package raytracer

import (
	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/physics"
	"github.com/gekko3d/raytracer/scene"
)

// EngineConfig is a plain struct-literal configuration, matching the
// teacher's small-config convention rather than flag parsing -- the
// core defines no CLI flags of its own.
type EngineConfig struct {
	// LogPrefix is prepended to every log line. Empty disables the prefix.
	LogPrefix string
	// Debug enables Logger.Debugf output.
	Debug bool
	// EnablePhysics installs a physics.World that Step advances before
	// each scene rebuild. Leave false for a purely static scene.
	EnablePhysics bool
}

// Engine owns one scene and drives its per-frame lifecycle: physics
// integration, acceleration structure rebuild, and ray queries.
type Engine struct {
	Scene  *scene.Scene
	Camera *scene.Camera

	logger Logger
}

// NewEngine builds an Engine with an empty scene, ready to accept
// SceneObjects before the first Step.
func NewEngine(cfg EngineConfig) *Engine {
	s := scene.New()
	if cfg.EnablePhysics {
		s.PhysicsWorld = physics.NewWorld()
	}

	logger := Logger(NewNopLogger())
	if cfg.LogPrefix != "" || cfg.Debug {
		logger = NewDefaultLogger(cfg.LogPrefix, cfg.Debug)
	}

	return &Engine{
		Scene:  s,
		Camera: scene.NewCamera(60, 1.0),
		logger: logger,
	}
}

// Logger returns the engine's logger. Never nil.
func (e *Engine) Logger() Logger {
	if e == nil || e.logger == nil {
		return NewNopLogger()
	}
	return e.logger
}

// Step advances physics (if enabled) by dt and rebuilds the top-level
// acceleration structure so the new frame's ray queries see it.
func (e *Engine) Step(dt float32) {
	e.Scene.Run(dt)
	e.logger.Debugf("stepped scene: dt=%f objects=%d", dt, len(e.Scene.Objects))
}

// Intersect casts rayWorld against the current scene.
func (e *Engine) Intersect(rayWorld *geom.Ray) (geom.Intersection, uint32, bool) {
	return e.Scene.Intersect(rayWorld)
}
