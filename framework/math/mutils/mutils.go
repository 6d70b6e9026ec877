package mutils

import (
	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Ordered](v, minV, maxV T) T {
	return min(maxV, max(minV, v))
}

func Lerp[T, V constraints.Float](min1, max1 T, t V) T {
	return min1 + T(V(max1-min1)*t)
}
