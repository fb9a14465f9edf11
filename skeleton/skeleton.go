// Package skeleton reduces filled shapes to their one pixel wide skeleton and traces it back into a path of lines.
package skeleton

import (
	"fmt"
	"math"

	"github.com/KasperskyLab/CaptchaMixer-sub000"
	"github.com/KasperskyLab/CaptchaMixer-sub000/rasterizer"
)

// Options are the skeletonization parameters.
type Options struct {
	Quality       float64 // raster pixels per path unit
	Threshold     uint8   // minimum coverage for a pixel to be set
	Margin        int     // empty pixels around the rasterized shape
	MaxIterations int     // thinning sweep limit, non-positive derives it from the raster size
}

// DefaultOptions are the default skeletonization parameters.
var DefaultOptions = Options{
	Quality:   1.0,
	Threshold: 128,
	Margin:    1,
}

func (o Options) validate() error {
	if !(0.0 < o.Quality) || math.IsInf(o.Quality, 0) {
		return fmt.Errorf("%w: quality must be positive and finite", captcha.ErrInvalidArgument)
	} else if o.Margin < 0 {
		return fmt.Errorf("%w: margin must be non-negative", captcha.ErrInvalidArgument)
	}
	return nil
}

// Raster returns the transformation from path coordinates to raster pixels and the raster size for a shape with the given bounds.
func (o Options) Raster(bounds captcha.Rect) (captcha.Matrix, int, int) {
	margin := float64(o.Margin)
	w := int(math.Ceil(bounds.W*o.Quality)) + 2*o.Margin
	h := int(math.Ceil(bounds.H*o.Quality)) + 2*o.Margin
	m := captcha.Identity.Translate(margin, margin).Scale(o.Quality, o.Quality).Translate(-bounds.X, -bounds.Y)
	return m, w, h
}

// Skeletonize rasterizes the filled path, thins it and traces the skeleton back into a path of lines in the coordinates of the input. Lone pixels become lines of zero length. An empty path returns an empty path.
func Skeletonize(p *captcha.Path, opts Options) (*captcha.Path, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	} else if p.Empty() {
		return &captcha.Path{}, nil
	}

	bounds := p.Bounds()
	m, w, h := opts.Raster(bounds)
	mask := rasterizer.Rasterize(p, w, h, m)
	captcha.Logger().Debug("skeleton rasterized", "width", w, "height", h, "quality", opts.Quality)

	skel, err := SkeletonizeMap(NewMap(mask, opts.Threshold), opts.MaxIterations)
	if err != nil {
		return nil, err
	}
	return skel.Transform(m.Inv()), nil
}

// SkeletonizeMap thins the map in-place and traces its skeleton into a path in pixel coordinates.
func SkeletonizeMap(m *Map, maxIterations int) (*captcha.Path, error) {
	return m.Trace(maxIterations)
}
