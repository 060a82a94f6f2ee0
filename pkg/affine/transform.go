package affine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// linearPart extracts the top-left 3x3 block and the translation column of
// xform. A 3x3 matrix is accepted only when allow3x3 is set, in which case
// the translation is zero.
func linearPart(xform *mat.Dense, allow3x3 bool) (lin [3][3]float64, trans Vec3, err error) {
	r, c := xform.Dims()

	switch {
	case r == 4 && c == 4:
		trans = Vec3{xform.At(0, 3), xform.At(1, 3), xform.At(2, 3)}
	case r == 3 && c == 3 && allow3x3:
	case r == 3 && c == 3:
		return lin, trans, fmt.Errorf(
			"%w: point transform requires a 4x4 affine, got 3x3", ErrMatrixShape)
	default:
		return lin, trans, fmt.Errorf(
			"%w: expected 4x4 (or 3x3) matrix, got %dx%d", ErrMatrixShape, r, c)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			lin[i][j] = xform.At(i, j)
		}
	}
	return lin, trans, nil
}

func apply(lin [3][3]float64, trans Vec3, p Vec3) Vec3 {
	return Vec3{
		lin[0][0]*p[0] + lin[0][1]*p[1] + lin[0][2]*p[2] + trans[0],
		lin[1][0]*p[0] + lin[1][1]*p[1] + lin[1][2]*p[2] + trans[1],
		lin[2][0]*p[0] + lin[2][1]*p[1] + lin[2][2]*p[2] + trans[2],
	}
}

// Transform applies the given 4x4 affine to every point in points. The
// input is not modified.
func Transform(points []Vec3, xform *mat.Dense) ([]Vec3, error) {
	lin, trans, err := linearPart(xform, false)
	if err != nil {
		return nil, err
	}

	out := make([]Vec3, len(points))
	for i, p := range points {
		out[i] = apply(lin, trans, p)
	}
	return out, nil
}

// TransformPoint applies the given 4x4 affine to a single point.
func TransformPoint(p Vec3, xform *mat.Dense) (Vec3, error) {
	lin, trans, err := linearPart(xform, false)
	if err != nil {
		return Vec3{}, err
	}
	return apply(lin, trans, p), nil
}

// TransformVectors applies the linear part of xform to every vector in vecs,
// without applying any translation. The transform may be given either as a
// full 4x4 affine or as its 3x3 linear block - both forms produce the same
// result.
func TransformVectors(vecs []Vec3, xform *mat.Dense) ([]Vec3, error) {
	lin, _, err := linearPart(xform, true)
	if err != nil {
		return nil, err
	}

	out := make([]Vec3, len(vecs))
	for i, v := range vecs {
		out[i] = apply(lin, Vec3{}, v)
	}
	return out, nil
}

// TransformVector applies the linear part of xform to a single vector.
func TransformVector(v Vec3, xform *mat.Dense) (Vec3, error) {
	lin, _, err := linearPart(xform, true)
	if err != nil {
		return Vec3{}, err
	}
	return apply(lin, Vec3{}, v), nil
}

// TransformNormals transforms vectors which represent surface normals. The
// vectors are mapped through the inverse-transpose of the linear part of
// xform, which keeps them perpendicular to a surface transformed by xform
// even under non-uniform scales or shears. The transform may be 4x4 or 3x3.
func TransformNormals(normals []Vec3, xform *mat.Dense) ([]Vec3, error) {
	nx, err := normalXform(xform)
	if err != nil {
		return nil, err
	}
	return TransformVectors(normals, nx)
}

// TransformNormal transforms a single surface normal vector.
func TransformNormal(n Vec3, xform *mat.Dense) (Vec3, error) {
	nx, err := normalXform(xform)
	if err != nil {
		return Vec3{}, err
	}
	return TransformVector(n, nx)
}

func normalXform(xform *mat.Dense) (*mat.Dense, error) {
	lin, _, err := linearPart(xform, true)
	if err != nil {
		return nil, err
	}

	block := mat.NewDense(3, 3, []float64{
		lin[0][0], lin[0][1], lin[0][2],
		lin[1][0], lin[1][1], lin[1][2],
		lin[2][0], lin[2][1], lin[2][2],
	})

	inv, err := Invert(block)
	if err != nil {
		return nil, err
	}

	var nx mat.Dense
	nx.CloneFrom(inv.T())
	return &nx, nil
}

// TransformAxes transforms points which carry only a subset of the three
// coordinates. Each row of points holds one coordinate per entry in axes,
// where axes names the world axis (0-2) that each column corresponds to.
// Missing coordinates are taken as 0, and only the named axes appear in the
// result.
//
// This reduced representation is only meaningful when xform is axis-aligned
// (consists solely of scales and translations); with rotation or shear
// present the dropped axes would couple into the result.
func TransformAxes(points [][]float64, xform *mat.Dense, axes []int) ([][]float64, error) {
	if len(axes) == 0 || len(axes) > 3 {
		return nil, fmt.Errorf("%w: got %d axes", ErrAxisMismatch, len(axes))
	}
	for _, ax := range axes {
		if ax < 0 || ax > 2 {
			return nil, fmt.Errorf("%w: axis %d out of range", ErrAxisMismatch, ax)
		}
	}

	filled := make([]Vec3, len(points))
	for i, row := range points {
		if len(row) != len(points[0]) {
			return nil, fmt.Errorf("%w: row %d has %d values, row 0 has %d",
				ErrPointsShape, i, len(row), len(points[0]))
		}
		if len(row) != len(axes) {
			return nil, fmt.Errorf("%w: %d axes for %d coordinates",
				ErrAxisMismatch, len(axes), len(row))
		}
		for j, ax := range axes {
			filled[i][ax] = row[j]
		}
	}

	transformed, err := Transform(filled, xform)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(points))
	for i, p := range transformed {
		row := make([]float64, len(axes))
		for j, ax := range axes {
			row[j] = p[ax]
		}
		out[i] = row
	}
	return out, nil
}
