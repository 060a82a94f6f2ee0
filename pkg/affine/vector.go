package affine

import "math"

// Vec3 is a 3D point or direction.
type Vec3 [3]float64

// VecLength returns the Euclidean length of v.
func VecLength(v Vec3) float64 {
	return math.Sqrt(dot(v, v))
}

// VecLengths returns the Euclidean length of each vector in vs.
func VecLengths(vs []Vec3) []float64 {
	lengths := make([]float64, len(vs))
	for i, v := range vs {
		lengths[i] = VecLength(v)
	}
	return lengths
}

// Normalise scales v to unit length. The result is undefined for a
// zero-length vector - callers must guard against it.
func Normalise(v Vec3) Vec3 {
	return scale(v, 1/VecLength(v))
}

// NormaliseAll scales every vector in vs to unit length.
func NormaliseAll(vs []Vec3) []Vec3 {
	normed := make([]Vec3, len(vs))
	for i, v := range vs {
		normed[i] = Normalise(v)
	}
	return normed
}

func dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func scale(v Vec3, s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}
