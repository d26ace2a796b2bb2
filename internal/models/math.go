package models

import (
	"math"

	"github.com/gonum/matrix/mat64"
)

// mulVec3 multiplies a 3x3 matrix with a 3-vector. No dimension check.
func mulVec3(m *mat64.Dense, v []float64) []float64 {
	var out mat64.Vector
	out.MulVec(m, mat64.NewVector(3, v))
	return []float64{out.At(0, 0), out.At(1, 0), out.At(2, 0)}
}

func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm3(a []float64) float64 {
	return math.Sqrt(dot3(a, a))
}
