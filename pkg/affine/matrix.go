package affine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Identity returns the n x n identity matrix.
func Identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Invert returns the inverse of the given square matrix. It returns an error
// wrapping ErrSingular if the matrix is not invertible, or is close enough to
// singular that the inverse cannot be trusted.
func Invert(m *mat.Dense) (*mat.Dense, error) {
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return &inv, nil
}

// Concat combines the given matrices, returning the product
// xforms[0] * xforms[1] * ... * xforms[n-1]. Applying the result to a point
// is equivalent to applying the last matrix first, and the first matrix
// last. At least one matrix must be given; the operands are not modified.
func Concat(xforms ...*mat.Dense) *mat.Dense {
	if len(xforms) == 0 {
		panic("affine: Concat requires at least one matrix")
	}

	result := mat.DenseCopyOf(xforms[0])

	for _, x := range xforms[1:] {
		var prod mat.Dense
		prod.Mul(result, x)
		result = &prod
	}

	return result
}
