package background

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/gravlens/go-blackhole-raytracer/pkg/core"
)

// Texture is an equirectangular environment image held as linear-ish RGB
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewTexture creates a texture from raw pixel data
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample looks up the texture at given UV coordinates using
// nearest-neighbor filtering with wrap-around
func (t *Texture) Sample(u, v float64) core.Vec3 {
	// Wrap UV coordinates to [0, 1]
	u = u - float64(int(u))
	v = v - float64(int(v))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return t.Pixels[y*t.Width+x]
}

// LoadTexture loads a PNG or JPEG environment map. Images wider than maxDim
// are downscaled with Catmull-Rom resampling before conversion, keeping the
// per-ray lookup working set bounded. maxDim <= 0 disables scaling.
func LoadTexture(filename string, maxDim int) (*Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxDim > 0 && width > maxDim {
		scaledH := height * maxDim / width
		if scaledH < 1 {
			scaledH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, maxDim, scaledH))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
		img = dst
		bounds = dst.Bounds()
		width = bounds.Dx()
		height = bounds.Dy()
	}

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return NewTexture(width, height, pixels), nil
}
