package rasterizer

import (
	"image"
	"image/color"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Preview colors.
var (
	PreviewBackground = color.RGBA{255, 255, 255, 255}
	PreviewShape      = color.RGBA{192, 192, 192, 255}
	PreviewSkeleton   = color.RGBA{220, 30, 30, 255}
)

// Preview renders the mask enlarged by scale with the skeleton drawn on top. The skeleton is given in the coordinates that m maps onto the mask.
func Preview(mask *image.Alpha, skel *captcha.Path, m captcha.Matrix, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	size := mask.Bounds().Size()
	img := image.NewRGBA(image.Rect(0, 0, size.X*scale, size.Y*scale))
	draw.Draw(img, img.Bounds(), image.NewUniform(PreviewBackground), image.Point{}, draw.Src)

	// pixels keep hard edges when enlarged
	shape := image.NewRGBA(mask.Bounds())
	draw.DrawMask(shape, shape.Bounds(), image.NewUniform(PreviewShape), image.Point{}, mask, mask.Bounds().Min, draw.Src)
	draw.NearestNeighbor.Scale(img, img.Bounds(), shape, shape.Bounds(), draw.Over, nil)

	if skel != nil && !skel.Empty() {
		s := float64(scale)
		StrokeLines(img, skel.Copy().Transform(captcha.Identity.Scale(s, s).Mul(m)), s/2.0, PreviewSkeleton)
	}
	return img
}

// StrokeLines draws every line and the closing edges of the path with the given width. Lines of zero length become squares. Curves are drawn as their chords.
func StrokeLines(dst draw.Image, p *captcha.Path, width float64, c color.Color) {
	b := dst.Bounds()
	ras := vector.NewRasterizer(b.Dx(), b.Dy())
	hw := width / 2.0
	for pen, ins := range p.Segments() {
		var a, z captcha.Point
		switch {
		case ins.Cmd == captcha.CloseCmd:
			a, z = pen.Pos, pen.Start
		case ins.Cmd.Draws():
			a, z = pen.Pos, ins.End()
		default:
			continue
		}

		d := z.Sub(a)
		if d.IsZero() {
			d = captcha.Point{X: 1.0, Y: 0.0}
		} else {
			d = d.Div(d.Length())
		}
		n := captcha.Point{X: -d.Y, Y: d.X}.Mul(hw)
		a, z = a.Sub(d.Mul(hw)), z.Add(d.Mul(hw))
		corners := []captcha.Point{a.Add(n), z.Add(n), z.Sub(n), a.Sub(n)}
		ras.MoveTo(float32(corners[0].X-float64(b.Min.X)), float32(corners[0].Y-float64(b.Min.Y)))
		for _, q := range corners[1:] {
			ras.LineTo(float32(q.X-float64(b.Min.X)), float32(q.Y-float64(b.Min.Y)))
		}
		ras.ClosePath()
	}
	ras.Draw(dst, b, image.NewUniform(c), image.Point{})
}
