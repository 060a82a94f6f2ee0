package affine

import "errors"

var (
	// ErrSingular is returned by Invert, and by any function that inverts a
	// matrix internally, when the matrix is singular or so ill-conditioned
	// that its inverse is meaningless.
	ErrSingular = errors.New("affine: singular matrix")

	// ErrMatrixShape is returned when a transform matrix does not have the
	// dimensions required by the operation (4x4 for point transforms, 3x3 or
	// 4x4 for vector transforms).
	ErrMatrixShape = errors.New("affine: unexpected matrix shape")

	// ErrInvalidOrigin is returned by AxisBounds for an unrecognised voxel
	// origin convention.
	ErrInvalidOrigin = errors.New("affine: invalid origin value")

	// ErrInvalidBoundary is returned by AxisBounds for an unrecognised
	// boundary mode.
	ErrInvalidBoundary = errors.New("affine: invalid boundary value")

	// ErrAxisMismatch is returned by TransformAxes when the axes list does
	// not match the number of coordinates per point, or names an axis
	// outside 0-2.
	ErrAxisMismatch = errors.New("affine: axes do not match points shape")

	// ErrPointsShape is returned by TransformAxes when the point rows are
	// ragged.
	ErrPointsShape = errors.New("affine: points must form a rectangular array")
)
