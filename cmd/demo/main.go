// Command demo loads a mesh, places it in a scene, and renders one frame
// by casting a ray through every pixel, writing the result as an ASCII
// PPM. No flags: arguments are positional, since the core defines none
// of its own.
//
// Usage:
//
//	demo <mesh.obj|mesh.tri> <output.ppm> [width] [height] [fontPath]
//
// fontPath, if given, stamps a frame-time/hit-count readout in the
// corner of the image using a glyph atlas built from that font.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	raytracer "github.com/gekko3d/raytracer"
	"github.com/gekko3d/raytracer/geom"
	"github.com/gekko3d/raytracer/hud"
	"github.com/gekko3d/raytracer/meshio"
	"github.com/gekko3d/raytracer/model"
	"github.com/gekko3d/raytracer/scene"
	"github.com/gekko3d/raytracer/texture"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: demo <mesh.obj|mesh.tri> <output.ppm> [width] [height] [fontPath]")
		os.Exit(2)
	}

	meshPath := os.Args[1]
	outPath := os.Args[2]
	width, height := 320, 240
	if len(os.Args) > 3 {
		width = atoiOrDefault(os.Args[3], width)
	}
	if len(os.Args) > 4 {
		height = atoiOrDefault(os.Args[4], height)
	}
	var fontPath string
	if len(os.Args) > 5 {
		fontPath = os.Args[5]
	}

	engine := raytracer.NewEngine(raytracer.EngineConfig{LogPrefix: "demo", Debug: true})
	logger := engine.Logger()

	mesh, err := loadMesh(meshPath)
	if err != nil {
		logger.Errorf("failed to load mesh %q: %v", meshPath, err)
		os.Exit(1)
	}
	logger.Infof("loaded %d triangles from %q", mesh.Len(), meshPath)

	subject := model.New(mesh, nil)
	obj := scene.NewSceneObject(model.NewInstance(subject))
	if err := engine.Scene.AddObject(obj); err != nil {
		logger.Errorf("failed to add object to scene: %v", err)
		os.Exit(1)
	}

	bounds := obj.WorldBounds()
	center := bounds.Min.Add(bounds.Max).Mul(0.5)
	radius := bounds.Max.Sub(bounds.Min).Len()
	eye := center.Add(mgl32.Vec3{0, radius * 0.5, radius*1.5 + 1})

	engine.Camera.Aspect = float32(width) / float32(height)
	aimCamera(engine.Camera, eye, center)

	engine.Step(0)

	frame := &texture.Buffer{Width: width, Height: height, Format: texture.RGB8, Pixels: make([]byte, width*height*3)}

	// farthest plausible hit distance, for normalizing depth into [0,1]
	maxDepth := eye.Sub(center).Len() + radius*2

	start := time.Now()
	hits := 0
	for py := 0; py < height; py++ {
		for px := 0; px < width; px++ {
			ray := engine.Camera.RayForPixel(px, py, width, height)
			color := [4]uint8{16, 16, 24, 255}
			if intersection, _, ok := engine.Intersect(&ray); ok {
				hits++
				color = shade(intersection, maxDepth)
			}
			frame.Set(px, py, color)
		}
	}
	elapsed := time.Since(start)
	logger.Infof("rendered %dx%d, %d/%d pixels hit, in %s", width, height, hits, width*height, elapsed)

	if fontPath != "" {
		stampOverlay(frame, fontPath, hits, elapsed, logger)
	}

	if err := writePPM(outPath, frame); err != nil {
		logger.Errorf("failed to write %q: %v", outPath, err)
		os.Exit(1)
	}
}

// loadMesh dispatches on the file extension: ".obj" for Wavefront OBJ,
// anything else for the ASCII "tri" format.
func loadMesh(path string) (*geom.Mesh, error) {
	if strings.EqualFold(filepath.Ext(path), ".obj") {
		return meshio.LoadOBJ(path)
	}
	return meshio.LoadTri(path)
}

// aimCamera orients cam so it looks from eye toward target, using the
// same yaw/pitch basis RayForPixel consumes.
func aimCamera(cam *scene.Camera, eye, target mgl32.Vec3) {
	dir := target.Sub(eye).Normalize()
	cam.Position = eye
	cam.Yaw = mgl32.RadToDeg(atan2f(dir.X(), -dir.Z()))
	horizontal := mgl32.Vec2{dir.X(), dir.Z()}.Len()
	cam.Pitch = mgl32.RadToDeg(atan2f(dir.Y(), horizontal))
}

func atan2f(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// shade produces a flat gray that darkens with hit distance, a cheap
// stand-in for full shading -- this demo exists to exercise the
// acceleration core's ray queries, not to implement a shader.
func shade(isect geom.Intersection, maxDepth float32) [4]uint8 {
	depth := isect.Interaction.T / maxDepth
	if depth > 1 {
		depth = 1
	}
	if depth < 0 {
		depth = 0
	}
	v := uint8(230 - depth*180)
	return [4]uint8{v, v, v, 255}
}

// stampOverlay draws a one-line frame-time/hit-count readout in the
// top-left corner. Font load failures are logged and skipped rather
// than aborting the render -- the overlay is a debug aid, not a core
// requirement of the frame.
func stampOverlay(frame *texture.Buffer, fontPath string, hits int, elapsed time.Duration, logger raytracer.Logger) {
	overlay, err := hud.NewTextOverlay(fontPath, 14)
	if err != nil {
		logger.Warnf("hud overlay disabled: %v", err)
		return
	}
	text := fmt.Sprintf("hits=%d  %.2fms", hits, float64(elapsed.Microseconds())/1000.0)
	overlay.DrawText(frame, text, 4, 4, [4]uint8{255, 255, 0, 255})
}

func writePPM(path string, frame *texture.Buffer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return err
	}
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b, _ := frame.At(x, y)
			if _, err := fmt.Fprintf(f, "%d %d %d\n", r, g, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func atoiOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
