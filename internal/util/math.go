// Package util holds small numeric helpers shared by the renderers.
package util

import "golang.org/x/exp/constraints"

type number interface {
	constraints.Integer | constraints.Float
}

// Clamp limits v to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	return max(low, min(v, high))
}

// Percent returns part as a whole percentage of total, clamped to [0, 100].
// A non-positive total yields 0.
func Percent[T number](part, total T) int {
	if total <= 0 {
		return 0
	}
	return Clamp(int(float64(part)/float64(total)*100), 0, 100)
}
