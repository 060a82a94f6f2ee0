package affine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRMSDeviationTranslation checks that a pure translation produces a
// deviation equal to its magnitude, independent of radius and centre.
func TestRMSDeviationTranslation(t *testing.T) {
	t1 := Identity(4)
	t2 := ScaleOffset([]float64{1, 1, 1}, []float64{2, 0, 0})

	dev, err := RMSDeviation(t1, t2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, dev, 1e-12)

	dev, err = RMSDeviationAbout(t1, t2, 2, Vec3{})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, dev, 1e-12)

	dev, err = RMSDeviationAbout(t1, t2, 2, Vec3{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, dev, 1e-12)
}

// TestRMSDeviationIdentical checks that identical transforms are at zero
// distance.
func TestRMSDeviationIdentical(t *testing.T) {
	x := Compose(Vec3{2, 3, 4}, Vec3{5, -6, 7}, Vec3{0.3, -0.4, 0.5}, nil)

	dev, err := RMSDeviation(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, dev, 1e-9)
}

// TestRMSDeviationRotationMonotonic checks that the deviation between the
// identity and a rotation grows as the angle approaches pi, and shrinks
// again between pi and 2*pi. The inputs are 3x3 rotation matrices.
func TestRMSDeviationRotationMonotonic(t *testing.T) {
	t1 := Identity(3)
	lastDev := 0.0

	for i := 1; i <= 10; i++ {
		rot := math.Pi * float64(i) / 10
		t2 := AxisAnglesToRotMat(rot, 0, 0)

		dev, err := RMSDeviation(t1, t2)
		require.NoError(t, err)
		assert.Greater(t, dev, lastDev, "angle %f", rot)
		lastDev = dev
	}

	for i := 11; i < 20; i++ {
		rot := math.Pi * float64(i) / 10
		t2 := AxisAnglesToRotMat(rot, 0, 0)

		dev, err := RMSDeviation(t1, t2)
		require.NoError(t, err)
		assert.Less(t, dev, lastDev, "angle %f", rot)
		lastDev = dev
	}
}

// TestRMSDeviationShapes checks that 3x3 and 4x4 forms of the same rotation
// agree, and that other shapes are rejected.
func TestRMSDeviationShapes(t *testing.T) {
	rotmat := AxisAnglesToRotMat(0.5, 0, 0)

	dev33, err := RMSDeviation(Identity(3), rotmat)
	require.NoError(t, err)
	dev44, err := RMSDeviation(Identity(4), RotMatToAffine(rotmat, nil))
	require.NoError(t, err)
	assert.InDelta(t, dev33, dev44, 1e-12)

	_, err = RMSDeviation(Identity(2), Identity(2))
	assert.ErrorIs(t, err, ErrMatrixShape)
}
