package affine

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Voxel origin conventions accepted by AxisBounds.
const (
	// OriginCentre places voxel (i, j, k) so that it spans
	// [i-0.5, i+0.5) along each axis - voxel coordinates address voxel
	// centres. The grid then runs from (-0.5, -0.5, -0.5) to shape - 0.5.
	OriginCentre = "centre"

	// OriginCorner places voxel (i, j, k) so that it spans [i, i+1) along
	// each axis - voxel coordinates address the low corner. The grid then
	// runs from (0, 0, 0) to shape.
	OriginCorner = "corner"
)

// Boundary modes accepted by AxisBounds. The offset keeps points sampled at
// the bound strictly inside the image despite floating point rounding.
const (
	BoundaryLow  = "low"  // raise the low bound by the offset
	BoundaryHigh = "high" // lower the high bound by the offset
	BoundaryBoth = "both" // adjust both bounds
	BoundaryNone = ""     // leave both bounds untouched; "none" also accepted
)

// BoundsOptions controls AxisBounds.
type BoundsOptions struct {
	// Axes selects the world axes for which bounds are computed. Nil means
	// all three.
	Axes []int

	// Origin is the voxel origin convention, OriginCentre or OriginCorner.
	// The US spelling "center" is accepted as an alias.
	Origin string

	// Boundary is one of BoundaryLow, BoundaryHigh, BoundaryBoth or
	// BoundaryNone.
	Boundary string

	// Offset is the boundary adjustment amount, in voxels.
	Offset float64
}

// DefaultBoundsOptions returns the conventional settings: all axes, centre
// origin, high-boundary adjustment of 1e-4 voxels.
func DefaultBoundsOptions() BoundsOptions {
	return BoundsOptions{
		Origin:   OriginCentre,
		Boundary: BoundaryHigh,
		Offset:   1e-4,
	}
}

// AxisBounds returns the (low, high) bounds of the given voxel grid in the
// world coordinate system defined by xform, one pair per requested axis. A
// nil opts is equivalent to DefaultBoundsOptions.
func AxisBounds(shape [3]int, xform *mat.Dense, opts *BoundsOptions) (lo, hi []float64, err error) {
	var o BoundsOptions
	if opts == nil {
		o = DefaultBoundsOptions()
	} else {
		o = *opts
	}

	origin := strings.ToLower(o.Origin)
	if origin == "center" { // lousy US spelling
		origin = OriginCentre
	}
	if origin != OriginCentre && origin != OriginCorner {
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, o.Origin)
	}

	boundary := strings.ToLower(o.Boundary)
	if boundary == "none" {
		boundary = BoundaryNone
	}
	switch boundary {
	case BoundaryLow, BoundaryHigh, BoundaryBoth, BoundaryNone:
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidBoundary, o.Boundary)
	}

	axes := o.Axes
	if axes == nil {
		axes = []int{0, 1, 2}
	}
	for _, ax := range axes {
		if ax < 0 || ax > 2 {
			return nil, nil, fmt.Errorf("%w: axis %d out of range", ErrAxisMismatch, ax)
		}
	}

	var low, high Vec3
	for i := 0; i < 3; i++ {
		high[i] = float64(shape[i])
	}

	if origin == OriginCentre {
		for i := 0; i < 3; i++ {
			low[i] -= 0.5
			high[i] -= 0.5
		}
	}

	if boundary == BoundaryLow || boundary == BoundaryBoth {
		for i := 0; i < 3; i++ {
			low[i] += o.Offset
		}
	}
	if boundary == BoundaryHigh || boundary == BoundaryBoth {
		for i := 0; i < 3; i++ {
			high[i] -= o.Offset
		}
	}

	// The eight corners of the grid.
	corners := make([]Vec3, 0, 8)
	for _, x := range []float64{low[0], high[0]} {
		for _, y := range []float64{low[1], high[1]} {
			for _, z := range []float64{low[2], high[2]} {
				corners = append(corners, Vec3{x, y, z})
			}
		}
	}

	tx, err := Transform(corners, xform)
	if err != nil {
		return nil, nil, err
	}

	lo = make([]float64, len(axes))
	hi = make([]float64, len(axes))
	for i, ax := range axes {
		lo[i] = math.Inf(1)
		hi[i] = math.Inf(-1)
		for _, p := range tx {
			lo[i] = math.Min(lo[i], p[ax])
			hi[i] = math.Max(hi[i], p[ax])
		}
	}
	return lo, hi, nil
}

// AxisRange is the single-axis form of AxisBounds, returning the bounds of
// one world axis as scalars. Any Axes setting in opts is ignored.
func AxisRange(shape [3]int, xform *mat.Dense, axis int, opts *BoundsOptions) (lo, hi float64, err error) {
	var o BoundsOptions
	if opts == nil {
		o = DefaultBoundsOptions()
	} else {
		o = *opts
	}
	o.Axes = []int{axis}

	los, his, err := AxisBounds(shape, xform, &o)
	if err != nil {
		return 0, 0, err
	}
	return los[0], his[0], nil
}
