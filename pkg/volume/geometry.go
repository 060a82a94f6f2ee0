// Package volume describes the coordinate geometry of a volumetric image:
// its voxel grid shape, voxel dimensions, and the transforms between its
// voxel, world and scaled-voxel coordinate systems. A Geometry carries no
// image data and performs no file I/O - it holds the handful of header
// fields that coordinate mapping needs.
package volume

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"voxform/pkg/affine"
)

var (
	// ErrBadShape is returned for a voxel grid shape with non-positive
	// extents.
	ErrBadShape = errors.New("volume: shape extents must be positive")

	// ErrBadXform is returned for a voxel-to-world matrix which is not 4x4.
	ErrBadXform = errors.New("volume: voxel-to-world matrix must be 4x4")
)

// Geometry is the coordinate geometry of one image. Values are immutable by
// convention - methods never modify the receiver.
type Geometry struct {
	// Shape is the voxel grid extent along each axis.
	Shape [3]int

	// PixDims is the physical size of one voxel along each axis.
	PixDims [3]float64

	// VoxToWorld maps voxel coordinates into the world coordinate system
	// (the image sform).
	VoxToWorld *mat.Dense
}

// New creates a Geometry for the given voxel grid and voxel-to-world
// matrix. The voxel dimensions are derived from the column lengths of the
// linear part of the matrix, matching what a NIFTI header built from an
// affine would report.
func New(shape [3]int, voxToWorld *mat.Dense) (*Geometry, error) {
	var pixdims [3]float64
	if r, c := voxToWorld.Dims(); r != 4 || c != 4 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadXform, r, c)
	}
	for j := 0; j < 3; j++ {
		col := affine.Vec3{voxToWorld.At(0, j), voxToWorld.At(1, j), voxToWorld.At(2, j)}
		pixdims[j] = affine.VecLength(col)
	}
	return NewWithPixDims(shape, pixdims, voxToWorld)
}

// NewWithPixDims creates a Geometry with explicitly specified voxel
// dimensions.
func NewWithPixDims(shape [3]int, pixdims [3]float64, voxToWorld *mat.Dense) (*Geometry, error) {
	for _, extent := range shape {
		if extent <= 0 {
			return nil, fmt.Errorf("%w: got %v", ErrBadShape, shape)
		}
	}
	if r, c := voxToWorld.Dims(); r != 4 || c != 4 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadXform, r, c)
	}

	return &Geometry{
		Shape:      shape,
		PixDims:    pixdims,
		VoxToWorld: mat.DenseCopyOf(voxToWorld),
	}, nil
}

// WorldToVox returns the matrix mapping world coordinates back into voxel
// coordinates. It fails if the voxel-to-world matrix is singular.
func (g *Geometry) WorldToVox() (*mat.Dense, error) {
	return affine.Invert(g.VoxToWorld)
}

// IsNeurological reports whether the image is stored in neurological
// orientation, indicated by a positive voxel-to-world determinant.
func (g *Geometry) IsNeurological() bool {
	return mat.Det(g.VoxToWorld) > 0
}

// VoxToScaledVox returns the matrix mapping voxel coordinates into the
// scaled-voxel coordinate system used by the FLIRT registration tool:
// voxels scaled by the voxel dimensions, with the first axis flipped when
// the image is in neurological orientation.
func (g *Geometry) VoxToScaledVox() *mat.Dense {
	xform := affine.ScaleOffset(g.PixDims[:], nil)

	if g.IsNeurological() {
		extent := float64(g.Shape[0]-1) * g.PixDims[0]
		flip := affine.ScaleOffset(
			[]float64{-1, 1, 1},
			[]float64{extent, 0, 0})
		xform = affine.Concat(flip, xform)
	}

	return xform
}

// WorldBounds returns the bounds of the voxel grid in the world coordinate
// system, per affine.AxisBounds.
func (g *Geometry) WorldBounds(opts *affine.BoundsOptions) (lo, hi []float64, err error) {
	return affine.AxisBounds(g.Shape, g.VoxToWorld, opts)
}
