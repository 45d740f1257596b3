package retrieval

import "math"

// CosineSimilarity returns dot(a,b) / (|a|*|b|) over the common prefix of
// a and b. It returns 0 when either vector has zero norm.
func CosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
