package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/raytracer/geom"
)

// Camera is the external collaborator that turns a pixel coordinate
// into a world-space ray; the acceleration core never depends on it,
// it only ever consumes the rays a Camera produces. Orientation follows
// the teacher's flying-camera convention (yaw/pitch, +Y up); the
// viewport itself follows the left/right/top/bottom/near frustum corner
// construction from the original's camera model, simplified to the one
// projection cmd/demo needs (a symmetric perspective frustum).
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	FovYDegrees float32
	Aspect      float32
	Near        float32
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera(fovYDegrees, aspect float32) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0, 0},
		FovYDegrees: fovYDegrees,
		Aspect:      aspect,
		Near:        0.1,
	}
}

func (c *Camera) basis() (forward, right, up mgl32.Vec3) {
	yawRad := mgl32.DegToRad(c.Yaw)
	pitchRad := mgl32.DegToRad(c.Pitch)
	forward = mgl32.Vec3{
		float32(math.Sin(float64(yawRad)) * math.Cos(float64(pitchRad))),
		float32(math.Sin(float64(pitchRad))),
		float32(-math.Cos(float64(yawRad)) * math.Cos(float64(pitchRad))),
	}.Normalize()
	up = mgl32.Vec3{0, 1, 0}
	right = forward.Cross(up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// RayForPixel builds the world-space ray passing through pixel (px, py)
// of a width x height image, using a standard symmetric perspective
// frustum at distance Near from the eye. (0,0) is the top-left pixel.
func (c *Camera) RayForPixel(px, py, width, height int) geom.Ray {
	forward, right, up := c.basis()

	halfHeight := c.Near * float32(math.Tan(float64(mgl32.DegToRad(c.FovYDegrees))/2))
	halfWidth := halfHeight * c.Aspect

	u := (float32(px)+0.5)/float32(width)*2 - 1
	v := 1 - (float32(py)+0.5)/float32(height)*2

	pointOnPlane := c.Position.
		Add(forward.Mul(c.Near)).
		Add(right.Mul(u * halfWidth)).
		Add(up.Mul(v * halfHeight))

	direction := pointOnPlane.Sub(c.Position)
	return geom.NewRay(c.Position, direction)
}
