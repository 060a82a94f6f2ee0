package affine

import (
	"gonum.org/v1/gonum/mat"
)

// ScaleOffset creates an affine which encodes the given scales along, and
// offsets from, the coordinate system axes. Both arguments may hold up to
// three values; missing scales default to 1 and missing offsets to 0, so
// ScaleOffset([]float64{5}, nil) scales the first axis only. Values beyond
// the third are ignored.
func ScaleOffset(scales, offsets []float64) *mat.Dense {
	s := [3]float64{1, 1, 1}
	o := [3]float64{0, 0, 0}

	for i := 0; i < len(scales) && i < 3; i++ {
		s[i] = scales[i]
	}
	for i := 0; i < len(offsets) && i < 3; i++ {
		o[i] = offsets[i]
	}

	xform := Identity(4)
	for i := 0; i < 3; i++ {
		xform.Set(i, i, s[i])
		xform.Set(i, 3, o[i])
	}
	return xform
}

// Compose builds an affine out of the given scales, offsets and rotations,
// the latter specified as angles in radians about the X, Y and Z axes. The
// resulting transform scales a point first, then rotates it about origin
// (or about (0, 0, 0) if origin is nil), then translates it by offsets. The
// origin must be specified in the scaled coordinate system.
func Compose(scales, offsets, rotations Vec3, origin *Vec3) *mat.Dense {
	rotmat := AxisAnglesToRotMat(rotations[0], rotations[1], rotations[2])
	return ComposeFromRotMat(scales, offsets, rotmat, origin)
}

// ComposeFromRotMat is identical to Compose, but takes the rotation as a
// pre-built 3x3 rotation matrix.
func ComposeFromRotMat(scales, offsets Vec3, rotations *mat.Dense, origin *Vec3) *mat.Dense {
	preRotate := Identity(4)
	postRotate := Identity(4)

	if origin != nil {
		for i := 0; i < 3; i++ {
			preRotate.Set(i, 3, -origin[i])
			postRotate.Set(i, 3, origin[i])
		}
	}

	scale := Identity(4)
	offset := Identity(4)
	rotate := Identity(4)

	for i := 0; i < 3; i++ {
		scale.Set(i, i, scales[i])
		offset.Set(i, 3, offsets[i])
		for j := 0; j < 3; j++ {
			rotate.Set(i, j, rotations.At(i, j))
		}
	}

	return Concat(offset, postRotate, rotate, preRotate, scale)
}

// Decompose breaks the given 4x4 affine into separate scales, offsets and
// rotations, the latter returned as angles in radians about the X, Y and Z
// axes. It follows the algorithm described in:
//
//	Spencer W. Thomas, Decomposing a matrix into simple transformations,
//	pp 320-323 in Graphics Gems II, James Arvo (editor), Academic Press,
//	1991, ISBN: 0120644819.
//
// The transform must have no perspective component. Any shear present in
// the affine is silently discarded, so for sheared inputs the decomposition
// is lossy. If the linear part carries a reflection, it is folded into the
// first scale factor rather than the rotation.
func Decompose(xform *mat.Dense) (scales, offsets, rotations Vec3) {
	scales, offsets, rotmat := DecomposeRotMat(xform)
	return scales, offsets, RotMatToAxisAngles(rotmat)
}

// DecomposeRotMat is identical to Decompose, but returns the rotation as a
// 3x3 rotation matrix instead of axis angles.
func DecomposeRotMat(xform *mat.Dense) (scales, offsets Vec3, rotations *mat.Dense) {
	if r, c := xform.Dims(); r != 4 || c != 4 {
		panic("affine: Decompose requires a 4x4 matrix")
	}

	// The translation is simply the last column.
	offsets = Vec3{xform.At(0, 3), xform.At(1, 3), xform.At(2, 3)}

	// The columns of the linear part are treated as three basis vectors,
	// which are orthonormalised in turn. The lengths removed along the way
	// are the scale factors; the cross-projections are the shear terms,
	// which are discarded.
	m1 := Vec3{xform.At(0, 0), xform.At(1, 0), xform.At(2, 0)}
	m2 := Vec3{xform.At(0, 1), xform.At(1, 1), xform.At(2, 1)}
	m3 := Vec3{xform.At(0, 2), xform.At(1, 2), xform.At(2, 2)}

	sx := VecLength(m1)
	m1 = scale(m1, 1/sx)

	sxy := dot(m1, m2)
	m2 = sub(m2, scale(m1, sxy))

	sy := VecLength(m2)
	m2 = scale(m2, 1/sy)

	sxz := dot(m1, m3)
	syz := dot(m2, m3)
	m3 = sub(m3, scale(m1, sxz))
	m3 = sub(m3, scale(m2, syz))

	sz := VecLength(m3)
	m3 = scale(m3, 1/sz)

	// The basis is now orthonormal, but may still contain a reflection. If
	// so, negate the first basis vector and encode the flip in sx.
	rotmat := mat.NewDense(3, 3, []float64{
		m1[0], m2[0], m3[0],
		m1[1], m2[1], m3[1],
		m1[2], m2[2], m3[2],
	})

	if mat.Det(rotmat) < 0 {
		sx = -sx
		for i := 0; i < 3; i++ {
			rotmat.Set(i, 0, -rotmat.At(i, 0))
		}
	}

	return Vec3{sx, sy, sz}, offsets, rotmat
}
