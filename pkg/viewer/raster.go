package viewer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/philipparndt/gomassing/pkg/geometry"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette used by Rasterize
var (
	BackgroundColor = color.RGBA{204, 204, 204, 255}
	WallColor       = color.RGBA{236, 230, 218, 255}
	EdgeColor       = color.RGBA{90, 90, 90, 255}
	HighlightColor  = color.RGBA{255, 140, 0, 255}
	LabelColor      = color.RGBA{20, 20, 20, 255}
)

// light direction for flat shading, roughly matching the scene's point light
var lightDir = geometry.NewVector3(8, 20, -10).Normalize()

// Rasterize draws a frame into a width x height image. The frame's viewport is scaled to fit.
func Rasterize(frame Frame, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{BackgroundColor}, image.Point{}, draw.Src)
	if width == 0 || height == 0 || frame.Camera.Width == 0 || frame.Camera.Height == 0 {
		return img
	}

	r := &raster{
		img:    img,
		zbuf:   make([]float64, width*height),
		camera: frame.Camera,
		sx:     float64(width) / frame.Camera.Width,
		sy:     float64(height) / frame.Camera.Height,
	}
	for i := range r.zbuf {
		r.zbuf[i] = math.Inf(1)
	}

	for _, face := range frame.Faces {
		r.fillFace(face)
	}
	for _, edge := range frame.Edges {
		r.line(edge[0], edge[1], EdgeColor)
	}
	if frame.OutlineVisible {
		for i := 0; i+1 < len(frame.Outline); i++ {
			r.line(frame.Outline[i], frame.Outline[i+1], HighlightColor)
		}
	}
	for _, label := range frame.Labels {
		r.text(label)
	}
	return img
}

type raster struct {
	img    *image.RGBA
	zbuf   []float64
	camera Camera
	sx, sy float64
}

// project returns pixel coordinates and camera distance of a world point
func (r *raster) project(p geometry.Vector3) (float64, float64, float64, bool) {
	x, y, ok := r.camera.Project(p)
	return x * r.sx, y * r.sy, p.Distance(r.camera.Position), ok
}

func (r *raster) fillFace(face FaceShape) {
	if len(face.Points) < 3 {
		return
	}
	shade := 0.55 + 0.45*math.Max(0, face.Normal.Dot(lightDir))
	col := color.RGBA{
		R: uint8(float64(WallColor.R) * shade),
		G: uint8(float64(WallColor.G) * shade),
		B: uint8(float64(WallColor.B) * shade),
		A: 255,
	}

	type screenPoint struct{ x, y, z float64 }
	points := make([]screenPoint, 0, len(face.Points))
	for _, p := range face.Points {
		x, y, z, ok := r.project(p)
		if !ok {
			return
		}
		points = append(points, screenPoint{x, y, z})
	}
	for i := 1; i+1 < len(points); i++ {
		a, b, c := points[0], points[i], points[i+1]
		fillTriangleWithDepth(r.img, r.zbuf, a.x, a.y, a.z, b.x, b.y, b.z, c.x, c.y, c.z, col)
	}
}

func (r *raster) line(a, b geometry.Vector3, col color.RGBA) {
	x1, y1, _, ok1 := r.project(a)
	x2, y2, _, ok2 := r.project(b)
	if !ok1 || !ok2 {
		return
	}
	// projections close to the camera plane blow up; skip them rather than walk millions of pixels
	limit := 8 * float64(r.img.Bounds().Dx()+r.img.Bounds().Dy())
	if math.Abs(x1) > limit || math.Abs(y1) > limit || math.Abs(x2) > limit || math.Abs(y2) > limit {
		return
	}
	drawLine(r.img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
}

func (r *raster) text(label Label) {
	d := font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		// anchors mark the label's top-left corner, the drawer wants the baseline
		Dot: fixed.P(int(label.X*r.sx), int(label.Y*r.sy)+basicfont.Face7x13.Ascent),
	}
	d.DrawString(label.Text)
}

// fillTriangleWithDepth scan-converts a triangle, keeping the nearest depth per pixel
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, x1, y1, z1, x2, y2, z2, x3, y3, z3 float64, col color.RGBA) {
	v := [3][3]float64{{x1, y1, z1}, {x2, y2, z2}, {x3, y3, z3}}

	// sort by Y, top to bottom
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}
	if v[1][1] > v[2][1] {
		v[1], v[2] = v[2], v[1]
	}
	if v[0][1] > v[1][1] {
		v[0], v[1] = v[1], v[0]
	}

	bounds := img.Bounds()
	width := bounds.Max.X
	edges := [3][2]int{{0, 1}, {1, 2}, {0, 2}}

	for y := int(math.Max(0, math.Ceil(v[0][1]))); y <= int(math.Min(float64(bounds.Max.Y-1), v[2][1])); y++ {
		fy := float64(y)

		var xs, zs [2]float64
		found := 0
		for _, e := range edges {
			a, b := v[e[0]], v[e[1]]
			if a[1] == b[1] || fy < a[1] || fy > b[1] || found == 2 {
				continue
			}
			t := (fy - a[1]) / (b[1] - a[1])
			xs[found] = a[0] + t*(b[0]-a[0])
			zs[found] = a[2] + t*(b[2]-a[2])
			found++
		}
		if found < 2 {
			continue
		}
		if xs[0] > xs[1] {
			xs[0], xs[1] = xs[1], xs[0]
			zs[0], zs[1] = zs[1], zs[0]
		}

		for x := int(math.Max(0, math.Ceil(xs[0]))); x <= int(math.Min(float64(width-1), xs[1])); x++ {
			t := 0.0
			if xs[1] != xs[0] {
				t = (float64(x) - xs[0]) / (xs[1] - xs[0])
			}
			z := zs[0] + t*(zs[1]-zs[0])

			idx := y*width + x
			if z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line using Bresenham's algorithm, clipped to the image
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx, dy := abs(x2-x1), abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		if image.Pt(x1, y1).In(bounds) {
			img.SetRGBA(x1, y1, col)
		}
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
