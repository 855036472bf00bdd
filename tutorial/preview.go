package tutorial

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/learn"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

// captionSize is the preview caption font size in points.
const captionSize = 14

// Preview renders the chapter's geometry in software with gg, without a
// GPU, and captions it with the chapter title. Keys are delivered to the
// scene first, as in Capture.
//
// The result approximates the GPU frame: per-vertex colors are averaged
// per triangle instead of interpolated.
func Preview(ch Chapter, cfg Config, keys ...gpucontext.Key) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := ch.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("chapter %s: %w", ch.ID, err)
	}
	defer scene.Destroy()
	for _, k := range keys {
		scene.HandleKey(k)
	}

	dc := gg.NewContext(cfg.Width, cfg.Height)
	defer func() { _ = dc.Close() }()

	bg := cfg.clearColor(scene)
	dc.ClearWithColor(gg.RGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})

	p := &painter{dc: dc, w: float64(cfg.Width), h: float64(cfg.Height)}
	if pv, ok := scene.(previewer); ok {
		if err := pv.preview(p); err != nil {
			return nil, fmt.Errorf("chapter %s: preview: %w", ch.ID, err)
		}
	}
	if err := p.caption(ch.DisplayTitle()); err != nil {
		return nil, err
	}
	_ = dc.FlushGPU()
	return toRGBA(dc.Image()), nil
}

// previewer is implemented by scenes that draw geometry.
type previewer interface {
	preview(p *painter) error
}

// painter maps clip-space geometry onto a gg context.
type painter struct {
	dc   *gg.Context
	w, h float64
}

// toPixel converts clip-space x, y to pixel coordinates (y down).
func (p *painter) toPixel(x, y float32) (float64, float64) {
	return (float64(x) + 1) / 2 * p.w, (1 - float64(y)) / 2 * p.h
}

func (p *painter) polygon(points [][3]float32) {
	for i, pt := range points {
		x, y := p.toPixel(pt[0], pt[1])
		if i == 0 {
			p.dc.MoveTo(x, y)
		} else {
			p.dc.LineTo(x, y)
		}
	}
	p.dc.ClosePath()
}

// fillMesh fills each indexed triangle with the mean of its vertex colors.
func (p *painter) fillMesh(verts []learn.Vertex, indices []uint16) error {
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]
		p.polygon([][3]float32{a.Position, b.Position, c.Position})
		p.dc.SetRGB(
			float64(a.Color[0]+b.Color[0]+c.Color[0])/3,
			float64(a.Color[1]+b.Color[1]+c.Color[1])/3,
			float64(a.Color[2]+b.Color[2]+c.Color[2])/3,
		)
		if err := p.dc.Fill(); err != nil {
			return err
		}
	}
	return nil
}

// caption draws s in the lower left corner with Go Regular.
func (p *painter) caption(s string) error {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("load caption font: %w", err)
	}
	p.dc.SetFont(src.Face(captionSize))
	p.dc.SetRGB(1, 1, 1)
	p.dc.DrawString(s, 8, p.h-8)
	return nil
}

func (s *triangleScene) preview(p *painter) error {
	var verts []learn.Vertex
	for _, pos := range learn.TrianglePositions {
		verts = append(verts, learn.Vertex{Position: [3]float32{pos[0], pos[1], 0}})
	}
	if !s.on || !s.enabled {
		c := learn.TriangleColor
		col := [3]float32{float32(c.R), float32(c.G), float32(c.B)}
		for i := range verts {
			verts[i].Color = col
		}
		return p.fillMesh(verts, []uint16{0, 1, 2})
	}

	// Same color function as the position-colored shader, split into
	// three triangles around the centroid.
	var center learn.Vertex
	for i := range verts {
		x, y := verts[i].Position[0], verts[i].Position[1]
		verts[i].Color = [3]float32{x + 0.5, y + 0.5, 1 - (y + 0.5)}
		for k := 0; k < 3; k++ {
			center.Position[k] += verts[i].Position[k] / 3
			center.Color[k] += verts[i].Color[k] / 3
		}
	}
	verts = append(verts, center)
	return p.fillMesh(verts, []uint16{3, 0, 1, 3, 1, 2, 3, 2, 0})
}

func (s *bufferScene) preview(p *painter) error {
	if s.on && s.enabled {
		return p.fillMesh(learn.StarVertices, learn.StarIndices)
	}
	return p.fillMesh(learn.PentagonVertices, learn.PentagonIndices)
}

// preview stretches the texture over the clip-space square [-0.5, 0.5],
// which is where the pentagon's texture coordinates place it, masked by the
// pentagon filled on a second context.
func (s *textureScene) preview(p *painter) error {
	if len(s.images) == 0 {
		return nil
	}
	img := s.images[0]
	if s.on && len(s.images) > 1 {
		img = s.images[1]
	}

	points := make([][3]float32, len(learn.TexturedPentagonVertices))
	for i, v := range learn.TexturedPentagonVertices {
		points[i] = v.Position
	}
	w, h := int(p.w), int(p.h)
	mask := gg.NewContext(w, h)
	defer func() { _ = mask.Close() }()
	(&painter{dc: mask, w: p.w, h: p.h}).polygon(points)
	mask.SetRGB(1, 1, 1)
	if err := mask.Fill(); err != nil {
		return err
	}
	_ = mask.FlushGPU()

	x0, y0 := p.toPixel(-0.5, 0.5)
	x1, y1 := p.toPixel(0.5, -0.5)
	layer := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(layer, image.Rect(int(x0), int(y0), int(x1), int(y1)),
		img, img.Bounds(), draw.Src, &draw.Options{DstMask: mask.Image()})
	p.dc.DrawImage(gg.ImageBufFromImage(layer), 0, 0)
	return nil
}

// toRGBA converts img to *image.RGBA, copying unless it already is one.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
