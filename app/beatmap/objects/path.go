package objects

import (
	"github.com/mekyu/rate-go/framework/math/vector"
)

// Path is an arc-length parametrized polyline. All curve kinds are resampled
// onto the control-point polyline and truncated or extended to the authored
// pixel length, which keeps the geometry deterministic across runs.
type Path struct {
	points     []vector.Vector2f
	cumulative []float64
	length     float64
}

func NewPath(controlPoints []vector.Vector2f, expectedLength float64) *Path {
	path := &Path{}

	if len(controlPoints) == 0 {
		path.points = []vector.Vector2f{{}}
		path.cumulative = []float64{0}
		return path
	}

	path.points = append(path.points, controlPoints[0])
	path.cumulative = append(path.cumulative, 0)

	total := 0.0

	for i := 1; i < len(controlPoints); i++ {
		segment := float64(controlPoints[i].Dst(controlPoints[i-1]))
		if segment == 0 {
			continue
		}

		remaining := expectedLength - total

		if expectedLength > 0 && segment > remaining {
			// Truncate the last segment to the authored length.
			t := float32(remaining / segment)
			end := controlPoints[i-1].Lerp(controlPoints[i], t)

			total += remaining
			path.points = append(path.points, end)
			path.cumulative = append(path.cumulative, total)

			break
		}

		total += segment
		path.points = append(path.points, controlPoints[i])
		path.cumulative = append(path.cumulative, total)
	}

	if expectedLength > total && len(path.points) > 1 {
		// Extend past the last control point, as the authored length demands.
		last := path.points[len(path.points)-1]
		prev := path.points[len(path.points)-2]

		direction := last.Sub(prev).Nor()
		end := last.Add(direction.Scl(float32(expectedLength - total)))

		total = expectedLength
		path.points = append(path.points, end)
		path.cumulative = append(path.cumulative, total)
	}

	path.length = total

	return path
}

func (path *Path) GetLength() float64 {
	return path.length
}

// PositionAt returns the point at progress t in [0,1] along the path,
// in the same coordinate space as the control points.
func (path *Path) PositionAt(t float64) vector.Vector2f {
	if len(path.points) == 1 || path.length == 0 {
		return path.points[0]
	}

	if t <= 0 {
		return path.points[0]
	} else if t >= 1 {
		return path.points[len(path.points)-1]
	}

	target := t * path.length

	for i := 1; i < len(path.cumulative); i++ {
		if path.cumulative[i] < target {
			continue
		}

		segment := path.cumulative[i] - path.cumulative[i-1]
		f := float32((target - path.cumulative[i-1]) / segment)

		return path.points[i-1].Lerp(path.points[i], f)
	}

	return path.points[len(path.points)-1]
}
