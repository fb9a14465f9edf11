// Package rasterizer paints paths into alpha masks and renders previews of skeletons.
package rasterizer

import (
	"image"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
	"golang.org/x/image/vector"
)

// flattenTolerance is the maximum chord length in pixels of the lines that replace rational curves.
const flattenTolerance = 0.25

// Rasterize fills the path transformed by m onto a new alpha mask of w by h pixels. Every contour is closed implicitly.
func Rasterize(p *captcha.Path, w, h int, m captcha.Matrix) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || p.Empty() {
		return img
	}
	ras := vector.NewRasterizer(w, h)
	ToRasterizer(p.Copy().Disassemble().Transform(m), ras)
	ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return img
}

// ToRasterizer feeds the path in pixel coordinates to a vector rasterizer. Open contours are closed and rational curves are flattened into lines.
func ToRasterizer(p *captcha.Path, ras *vector.Rasterizer) {
	open := false
	for pen, ins := range p.Segments() {
		if ins.Cmd != captcha.MoveToCmd && ins.Cmd != captcha.CloseCmd && !open {
			ras.MoveTo(float32(pen.Pos.X), float32(pen.Pos.Y))
			open = true
		}
		switch ins.Cmd {
		case captcha.MoveToCmd:
			if open {
				ras.ClosePath()
			}
			ras.MoveTo(float32(ins.P[0].X), float32(ins.P[0].Y))
			open = true
		case captcha.LineToCmd:
			ras.LineTo(float32(ins.P[0].X), float32(ins.P[0].Y))
		case captcha.QuadToCmd:
			ras.QuadTo(float32(ins.P[0].X), float32(ins.P[0].Y), float32(ins.P[1].X), float32(ins.P[1].Y))
		case captcha.CubeToCmd:
			ras.CubeTo(float32(ins.P[0].X), float32(ins.P[0].Y), float32(ins.P[1].X), float32(ins.P[1].Y), float32(ins.P[2].X), float32(ins.P[2].Y))
		case captcha.RationalToCmd:
			cs, err := captcha.GranulateRational(ins.RationalCurve(pen.Pos), flattenTolerance)
			if err != nil {
				ras.LineTo(float32(ins.P[1].X), float32(ins.P[1].Y))
				continue
			}
			for _, c := range cs {
				end := c.End()
				ras.LineTo(float32(end.X), float32(end.Y))
			}
		case captcha.CloseCmd:
			if open {
				ras.ClosePath()
				open = false
			}
		}
	}
	if open {
		ras.ClosePath()
	}
}
