package renderer

import (
	"math"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// CameraConfig describes a look-at camera pose for one frame
type CameraConfig struct {
	Position   core.Vec3 // camera position in world space
	LookAt     core.Vec3 // look-at target
	RollDeg    float64   // roll around the view axis, degrees
	FOVDegrees float64   // vertical field of view (default 60)
}

// Camera generates primary rays from screen coordinates. The basis is
// orthonormal: forward toward the target, right from forward x roll vector,
// up completing the frame.
type Camera struct {
	origin  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3

	tanHalfFOV float64
	width      float64
	height     float64
	aspect     float64
}

// NewCamera builds the camera basis for an image of the given size
func NewCamera(config CameraConfig, width, height int) *Camera {
	forward := config.LookAt.Subtract(config.Position).Normalize()
	if forward.LengthSquared() == 0 {
		forward = core.NewVec3(0, 0, -1)
	}

	rollVec := core.NewVec3(0, 1, 0)
	if config.RollDeg != 0 {
		// Rodrigues' rotation of world up around the view axis
		theta := config.RollDeg * math.Pi / 180
		c, s := math.Cos(theta), math.Sin(theta)
		rollVec = rollVec.Multiply(c).
			Add(forward.Cross(rollVec).Multiply(s)).
			Add(forward.Multiply(forward.Dot(rollVec) * (1 - c)))
	}

	right := forward.Cross(rollVec)
	if right.LengthSquared() < 1e-12 {
		// Looking straight along the roll vector; pick an arbitrary right
		right = core.NewVec3(1, 0, 0)
	}
	right = right.Normalize()
	up := right.Cross(forward)

	fov := config.FOVDegrees
	if fov <= 0 {
		fov = 60
	}

	return &Camera{
		origin:     config.Position,
		forward:    forward,
		right:      right,
		up:         up,
		tanHalfFOV: math.Tan(fov * math.Pi / 360),
		width:      float64(width),
		height:     float64(height),
		aspect:     float64(width) / float64(height),
	}
}

// Origin returns the camera position
func (c *Camera) Origin() core.Vec3 {
	return c.origin
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.forward
}

// screenCoords maps fractional pixel coordinates to the aspect-corrected
// [-1,1]^2 screen plane, +y up
func (c *Camera) screenCoords(px, py float64) (float64, float64) {
	sx := (2*(px+0.5)/c.width - 1) * c.aspect
	sy := 1 - 2*(py+0.5)/c.height
	return sx, sy
}

// RayThrough returns the primary ray through fractional pixel coordinates.
// Pure function of the inputs; no jitter, no hidden state.
func (c *Camera) RayThrough(px, py float64) core.Ray {
	sx, sy := c.screenCoords(px, py)
	dir := c.right.Multiply(-sx * c.tanHalfFOV).
		Add(c.up.Multiply(sy * c.tanHalfFOV)).
		Add(c.forward)
	return core.NewRay(c.origin, dir.Normalize())
}

// ScreenRadius returns the aspect-corrected distance of a pixel from the
// screen center, used by the vignette
func (c *Camera) ScreenRadius(px, py float64) float64 {
	sx, sy := c.screenCoords(px, py)
	return math.Sqrt(sx*sx + sy*sy)
}
