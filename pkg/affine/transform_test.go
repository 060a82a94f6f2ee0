package affine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// linearBlock extracts the top-left 3x3 block of a 4x4 affine.
func linearBlock(xform *mat.Dense) *mat.Dense {
	block := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			block.Set(i, j, xform.At(i, j))
		}
	}
	return block
}

// TestTransformPoint checks point transforms against hand-computed values.
func TestTransformPoint(t *testing.T) {
	xform := ScaleOffset([]float64{2, 3, 4}, []float64{1, 2, 3})

	p, err := TransformPoint(Vec3{1, 1, 1}, xform)
	require.NoError(t, err)
	assert.Equal(t, Vec3{3, 5, 7}, p)

	p, err = TransformPoint(Vec3{-1, 0, 0.5}, xform)
	require.NoError(t, err)
	assert.Equal(t, Vec3{-1, 2, 5}, p)
}

// TestTransformBatch checks that the batch form matches per-point results.
func TestTransformBatch(t *testing.T) {
	xform := Compose(Vec3{2, 3, 4}, Vec3{5, -6, 7}, Vec3{0.3, -0.4, 0.5}, nil)
	points := []Vec3{{0, 0, 0}, {1, 2, 3}, {-4, 5, -6}, {0.5, -0.5, 100}}

	got, err := Transform(points, xform)
	require.NoError(t, err)
	require.Len(t, got, len(points))

	for i, p := range points {
		single, err := TransformPoint(p, xform)
		require.NoError(t, err)
		assert.Equal(t, single, got[i])
	}
}

// TestTransformMatrixShape checks that point transforms reject anything but
// a 4x4 matrix.
func TestTransformMatrixShape(t *testing.T) {
	_, err := Transform([]Vec3{{1, 2, 3}}, Identity(3))
	assert.ErrorIs(t, err, ErrMatrixShape)

	_, err = TransformPoint(Vec3{1, 2, 3}, Identity(2))
	assert.ErrorIs(t, err, ErrMatrixShape)

	_, err = TransformPoint(Vec3{1, 2, 3}, mat.NewDense(3, 4, nil))
	assert.ErrorIs(t, err, ErrMatrixShape)
}

// TestTransformVectors checks that vector transforms skip the translation,
// and accept the transform as either a 4x4 affine or its 3x3 linear block.
func TestTransformVectors(t *testing.T) {
	xform := Compose(Vec3{1, 2, 3}, Vec3{5, 10, 15}, Vec3{math.Pi / 2, math.Pi / 2, 0}, nil)
	block := linearBlock(xform)

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		v := Vec3{rng.Float64(), rng.Float64(), rng.Float64()}

		asVec, err := TransformVector(v, xform)
		require.NoError(t, err)
		asVec33, err := TransformVector(v, block)
		require.NoError(t, err)
		asPoint, err := TransformPoint(v, xform)
		require.NoError(t, err)

		for j := 0; j < 3; j++ {
			assert.InDelta(t, asVec[j], asVec33[j], 1e-12)
			assert.InDelta(t, asVec[j]+xform.At(j, 3), asPoint[j], 1e-9)
		}
	}

	vs := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	batch4, err := TransformVectors(vs, xform)
	require.NoError(t, err)
	batch3, err := TransformVectors(vs, block)
	require.NoError(t, err)
	assert.Equal(t, batch4, batch3)
}

// TestTransformNormals checks normal-vector transforms against an explicit
// inverse-transpose computation.
func TestTransformNormals(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 50; i++ {
		scales := Vec3{1 + 9*rng.Float64(), 1 + 9*rng.Float64(), 1 + 9*rng.Float64()}
		offsets := Vec3{-100 + 200*rng.Float64(), -100 + 200*rng.Float64(), -100 + 200*rng.Float64()}
		rots := Vec3{
			-math.Pi + 2*math.Pi*rng.Float64(),
			-math.Pi/2 + math.Pi*rng.Float64(),
			-math.Pi + 2*math.Pi*rng.Float64(),
		}
		origin := Vec3{-100 + 200*rng.Float64(), -100 + 200*rng.Float64(), -100 + 200*rng.Float64()}

		xform := Compose(scales, offsets, rots, &origin)
		n := Vec3{-100 + 200*rng.Float64(), -100 + 200*rng.Float64(), -100 + 200*rng.Float64()}

		invBlock, err := Invert(linearBlock(xform))
		require.NoError(t, err)
		var invT mat.Dense
		invT.CloneFrom(invBlock.T())
		want, err := TransformVector(n, &invT)
		require.NoError(t, err)

		got, err := TransformNormal(n, xform)
		require.NoError(t, err)

		// The 3x3 call shape must behave identically.
		got33, err := TransformNormal(n, linearBlock(xform))
		require.NoError(t, err)

		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[j], got[j], 1e-9)
			assert.InDelta(t, want[j], got33[j], 1e-9)
		}
	}
}

// TestTransformAxes checks reduced-axis transforms against full transforms
// of the same points under an axis-aligned affine.
func TestTransformAxes(t *testing.T) {
	xform := ScaleOffset([]float64{2, 3, 4}, []float64{1, 2, 3})

	points := []Vec3{{0, 0, 0}, {1, 2, 3}, {-4, 5, -6}, {0.5, -0.5, 9}}
	full, err := Transform(points, xform)
	require.NoError(t, err)

	axesCases := [][]int{{0}, {1}, {2}, {0, 1}, {1, 2}, {2, 0}, {0, 1, 2}, {2, 1, 0}}

	for _, axes := range axesCases {
		sub := make([][]float64, len(points))
		for i, p := range points {
			row := make([]float64, len(axes))
			for j, ax := range axes {
				row[j] = p[ax]
			}
			sub[i] = row
		}

		got, err := TransformAxes(sub, xform, axes)
		require.NoError(t, err)
		require.Len(t, got, len(points))

		for i := range points {
			for j, ax := range axes {
				assert.InDelta(t, full[i][ax], got[i][j], 1e-9,
					"axes %v, point %d", axes, i)
			}
		}
	}
}

// TestTransformAxesErrors checks the shape-mismatch error contract.
func TestTransformAxesErrors(t *testing.T) {
	xform := Identity(4)

	// Axes list longer than the coordinate rows.
	_, err := TransformAxes([][]float64{{1}, {2}}, xform, []int{0, 1})
	assert.ErrorIs(t, err, ErrAxisMismatch)

	// Ragged rows.
	_, err = TransformAxes([][]float64{{1, 2}, {3}}, xform, []int{0, 1})
	assert.ErrorIs(t, err, ErrPointsShape)

	// Axis out of range.
	_, err = TransformAxes([][]float64{{1}}, xform, []int{3})
	assert.ErrorIs(t, err, ErrAxisMismatch)

	// No axes at all.
	_, err = TransformAxes([][]float64{{1}}, xform, nil)
	assert.ErrorIs(t, err, ErrAxisMismatch)
}
