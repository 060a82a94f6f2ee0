// Package flirt converts between the coordinate convention of the FLIRT
// registration tool and the standard voxel/world conventions. FLIRT
// transformation matrices map from the source image scaled-voxel coordinate
// system into the reference image scaled-voxel coordinate system, rather
// than between world coordinate systems, so using one requires the voxel
// geometry of both images involved.
//
// The package also reads and writes the four-line whitespace text format in
// which FLIRT stores its matrices.
package flirt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"voxform/pkg/affine"
	"voxform/pkg/volume"
)

// ErrBadMatrixFile is returned by ReadMatrix for input which does not hold
// exactly 16 numbers.
var ErrBadMatrixFile = errors.New("flirt: matrix file must hold a 4x4 numeric matrix")

// MatrixToSform converts the given FLIRT matrix into a transform from the
// source image voxel coordinate system to the reference image world
// coordinate system, by chaining:
//
//	source voxels -> source scaled voxels
//	source scaled voxels -> reference scaled voxels (the FLIRT matrix)
//	reference scaled voxels -> reference voxels
//	reference voxels -> reference world (the reference sform)
func MatrixToSform(flirtMat *mat.Dense, src, ref *volume.Geometry) (*mat.Dense, error) {
	refInvScaled, err := affine.Invert(ref.VoxToScaledVox())
	if err != nil {
		return nil, fmt.Errorf("flirt: reference scaled-voxel matrix: %w", err)
	}

	return affine.Concat(
		ref.VoxToWorld,
		refInvScaled,
		flirtMat,
		src.VoxToScaledVox()), nil
}

// SformToMatrix calculates a FLIRT matrix from the source image scaled-voxel
// coordinate system to the reference image scaled-voxel coordinate system,
// under the assumption that both images share the world coordinate system
// defined by their sforms. The result can be saved with WriteMatrix and used
// by FLIRT to resample the source image onto the reference grid.
//
// If srcXform is non-nil it is used in place of the source image sform -
// useful for trying out a candidate registration before committing it to
// the image header.
func SformToMatrix(src, ref *volume.Geometry, srcXform *mat.Dense) (*mat.Dense, error) {
	srcInvScaled, err := affine.Invert(src.VoxToScaledVox())
	if err != nil {
		return nil, fmt.Errorf("flirt: source scaled-voxel matrix: %w", err)
	}
	refWorldToVox, err := ref.WorldToVox()
	if err != nil {
		return nil, fmt.Errorf("flirt: reference sform: %w", err)
	}

	srcVoxToWorld := src.VoxToWorld
	if srcXform != nil {
		srcVoxToWorld = srcXform
	}

	return affine.Concat(
		ref.VoxToScaledVox(),
		refWorldToVox,
		srcVoxToWorld,
		srcInvScaled), nil
}

// ReadMatrix reads a 4x4 matrix in the FLIRT text format: sixteen
// whitespace-separated numbers. Line breaks are not significant and lines
// starting with '#' are skipped.
func ReadMatrix(r io.Reader) (*mat.Dense, error) {
	values := make([]float64, 0, 16)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad value %q", ErrBadMatrixFile, field)
			}
			if len(values) == 16 {
				return nil, fmt.Errorf("%w: more than 16 values", ErrBadMatrixFile)
			}
			values = append(values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("flirt: reading matrix: %w", err)
	}
	if len(values) != 16 {
		return nil, fmt.Errorf("%w: got %d values", ErrBadMatrixFile, len(values))
	}

	return mat.NewDense(4, 4, values), nil
}

// WriteMatrix writes a 4x4 matrix in the FLIRT text format, one row per
// line.
func WriteMatrix(w io.Writer, m *mat.Dense) error {
	if r, c := m.Dims(); r != 4 || c != 4 {
		return fmt.Errorf("flirt: cannot write %dx%d matrix", r, c)
	}

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sep := "  "
			if j == 3 {
				sep = "\n"
			}
			if _, err := fmt.Fprintf(w, "%.8f%s", m.At(i, j), sep); err != nil {
				return fmt.Errorf("flirt: writing matrix: %w", err)
			}
		}
	}
	return nil
}
