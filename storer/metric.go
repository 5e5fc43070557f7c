package storer

import (
	"fmt"
	"math"
)

type Metric string

const (
	DotProduct Metric = "dot_product"
	Cosine     Metric = "cosine"
	Euclidean  Metric = "euclidean"
)

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case DotProduct, Cosine, Euclidean:
		return m, nil
	default:
		return "", fmt.Errorf("unknown similarity metric %q", s)
	}
}

// Distance is lower-is-nearer under m. Vectors must have equal length.
func (m Metric) Distance(a, b []float32) float64 {
	switch m {
	case DotProduct:
		return -Dot(a, b)
	case Euclidean:
		var sum float64
		for i := range a {
			d := float64(a[i]) - float64(b[i])
			sum += d * d
		}
		return math.Sqrt(sum)
	default:
		// identical zero vectors are an exact match, not an orthogonal pair
		if isZero(a) && isZero(b) {
			return 0
		}
		return 1 - CosineSimilarity(a, b)
	}
}

func isZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

func Dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
