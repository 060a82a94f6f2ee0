package affine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// RMSDeviation returns the RMS deviation between the two transforms over a
// sphere of radius 1 centred at the origin. See RMSDeviationAbout.
func RMSDeviation(t1, t2 *mat.Dense) (float64, error) {
	return RMSDeviationAbout(t1, t2, 1, Vec3{})
}

// RMSDeviationAbout returns the root-mean-square displacement, between the
// transforms t1 and t2, of points within a sphere of the given radius
// centred at centre. It quantifies how different two registrations are: the
// deviation between the identity and a rotation grows monotonically as the
// angle approaches pi, and shrinks again beyond it. Both transforms may be
// given as 4x4 affines or 3x3 rotation matrices.
//
// The measure is described in:
//
//	M. Jenkinson, Measuring transformation error by RMS deviation,
//	FMRIB technical report TR99MJ1, 1999.
func RMSDeviationAbout(t1, t2 *mat.Dense, radius float64, centre Vec3) (float64, error) {
	a1, err := asAffine(t1)
	if err != nil {
		return 0, err
	}
	a2, err := asAffine(t2)
	if err != nil {
		return 0, err
	}

	inv1, err := Invert(a1)
	if err != nil {
		return 0, err
	}

	// E = T2 * T1^-1 - I is the deviation from "the two transforms agree".
	e := Concat(a2, inv1)
	e.Sub(e, Identity(4))

	lin, trans, err := linearPart(e, false)
	if err != nil {
		return 0, err
	}

	// erms^2 = |t + A xc|^2 + R^2/5 tr(A^T A)
	v := apply(lin, trans, centre)

	var traceATA float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			traceATA += lin[i][j] * lin[i][j]
		}
	}

	erms := dot(v, v) + 0.2*radius*radius*traceATA
	return math.Sqrt(erms), nil
}

// asAffine promotes a 3x3 rotation matrix to a 4x4 affine; a 4x4 input is
// copied unchanged.
func asAffine(m *mat.Dense) (*mat.Dense, error) {
	r, c := m.Dims()

	switch {
	case r == 4 && c == 4:
		return mat.DenseCopyOf(m), nil
	case r == 3 && c == 3:
		out := Identity(4)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				out.Set(i, j, m.At(i, j))
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: expected 4x4 or 3x3 matrix, got %dx%d",
			ErrMatrixShape, r, c)
	}
}
