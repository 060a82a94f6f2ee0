// Package affine provides functions for working with 3D affine
// transformation matrices, as used to map between the voxel, world and
// scaled-voxel coordinate systems of volumetric images.
//
// Affine transforms are represented as 4x4 gonum mat.Dense matrices whose
// top-left 3x3 block encodes the linear part (rotation, scale, shear), whose
// last column encodes the translation, and whose bottom row is [0 0 0 1].
// Rotation matrices are 3x3. All functions are pure: no input matrix is
// modified in place, and every call is safe for concurrent use.
//
// The main entry points are:
//
//   - Invert, Concat, Identity: matrix primitives
//   - VecLength, Normalise (and their batch forms): vector primitives
//   - ScaleOffset, Compose, Decompose: affine construction and its inverse
//   - AxisAnglesToRotMat, RotMatToAxisAngles: rotation conversions
//   - Transform, TransformVectors, TransformNormals: point/vector mapping
//   - AxisBounds: world-space bounds of a voxel grid
//   - RMSDeviation: scalar distance between two registrations
package affine
