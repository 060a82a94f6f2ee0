package affine

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Angle extraction below degenerates when the first column of the rotation
// matrix projects onto the XY plane with length ~0 (y rotation of +/-90
// degrees, i.e. gimbal lock).
const gimbalTol = 1e-8

// RotMatToAxisAngles decomposes the given 3x3 rotation matrix into an angle
// in radians about each axis. In the gimbal-lock case (y rotation of +/-90
// degrees) only two degrees of freedom remain, and the z angle is reported
// as 0.
func RotMatToAxisAngles(rotmat *mat.Dense) Vec3 {
	var xrot, yrot, zrot float64

	yrotMag := math.Sqrt(rotmat.At(0, 0)*rotmat.At(0, 0) +
		rotmat.At(1, 0)*rotmat.At(1, 0))

	if yrotMag < gimbalTol {
		xrot = math.Atan2(-rotmat.At(1, 2), rotmat.At(1, 1))
		yrot = math.Atan2(-rotmat.At(2, 0), yrotMag)
		zrot = 0
	} else {
		xrot = math.Atan2(rotmat.At(2, 1), rotmat.At(2, 2))
		yrot = math.Atan2(-rotmat.At(2, 0), yrotMag)
		zrot = math.Atan2(rotmat.At(1, 0), rotmat.At(0, 0))
	}

	return Vec3{xrot, yrot, zrot}
}

// AxisAnglesToRotMat constructs a 3x3 rotation matrix from the given angles,
// which must be specified in radians. The rotations are applied about the X
// axis first, then Y, then Z.
func AxisAnglesToRotMat(xrot, yrot, zrot float64) *mat.Dense {
	xmat := Identity(3)
	ymat := Identity(3)
	zmat := Identity(3)

	xmat.Set(1, 1, math.Cos(xrot))
	xmat.Set(1, 2, -math.Sin(xrot))
	xmat.Set(2, 1, math.Sin(xrot))
	xmat.Set(2, 2, math.Cos(xrot))

	ymat.Set(0, 0, math.Cos(yrot))
	ymat.Set(0, 2, math.Sin(yrot))
	ymat.Set(2, 0, -math.Sin(yrot))
	ymat.Set(2, 2, math.Cos(yrot))

	zmat.Set(0, 0, math.Cos(zrot))
	zmat.Set(0, 1, -math.Sin(zrot))
	zmat.Set(1, 0, math.Sin(zrot))
	zmat.Set(1, 1, math.Cos(zrot))

	return Concat(zmat, ymat, xmat)
}

// RotMatToAffine embeds the given 3x3 rotation matrix into a 4x4 affine
// which rotates about origin, or about (0, 0, 0) if origin is nil.
func RotMatToAffine(rotmat *mat.Dense, origin *Vec3) *mat.Dense {
	return ComposeFromRotMat(Vec3{1, 1, 1}, Vec3{}, rotmat, origin)
}
