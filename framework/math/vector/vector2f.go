package vector

import (
	"github.com/mekyu/rate-go/framework/math/math32"
)

// Vector2f is a 2D vector with single precision, enough for playfield coordinates.
type Vector2f struct {
	X, Y float32
}

func NewVec2f(x, y float32) Vector2f {
	return Vector2f{x, y}
}

func (v Vector2f) Add(v1 Vector2f) Vector2f {
	return Vector2f{v.X + v1.X, v.Y + v1.Y}
}

func (v Vector2f) Sub(v1 Vector2f) Vector2f {
	return Vector2f{v.X - v1.X, v.Y - v1.Y}
}

func (v Vector2f) Scl(mag float32) Vector2f {
	return Vector2f{v.X * mag, v.Y * mag}
}

func (v Vector2f) Dot(v1 Vector2f) float32 {
	return v.X*v1.X + v.Y*v1.Y
}

func (v Vector2f) Len() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vector2f) Dst(v1 Vector2f) float32 {
	return v.Sub(v1).Len()
}

func (v Vector2f) Nor() Vector2f {
	length := v.Len()

	if length == 0 {
		return v
	}

	return Vector2f{v.X / length, v.Y / length}
}

func (v Vector2f) Lerp(v1 Vector2f, t float32) Vector2f {
	return v1.Sub(v).Scl(t).Add(v)
}
