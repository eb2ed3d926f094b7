package similarity

import "gonum.org/v1/gonum/floats"

// CosineSimilarity returns dot(a, b) / (|a| * |b|), or 0 when either vector
// has zero magnitude. a and b must have the same length.
func CosineSimilarity(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// CosineMatrix returns the symmetric matrix of pairwise similarities between
// the rows of m.
func CosineMatrix(m *CountMatrix) [][]float64 {
	n := len(m.Rows)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s := CosineSimilarity(m.Rows[i], m.Rows[j])
			out[i][j] = s
			out[j][i] = s
		}
	}
	return out
}
