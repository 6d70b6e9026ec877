package beatmap

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mekyu/rate-go/app/beatmap/objects"
	"github.com/mekyu/rate-go/framework/math/mutils"
	"github.com/mekyu/rate-go/framework/math/vector"
)

// Object type bits of the text format.
const (
	objectTypeCircle = 1 << iota
	objectTypeSlider
	objectTypeNewCombo
	objectTypeSpinner
)

// DecodeError wraps any malformed-input failure from Decode. The calculation
// core never sees raw bytes, so this is the only place decode failures exist.
type DecodeError struct {
	Line   int
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("beatmap decode failed at line %d: %s", e.Line, e.Reason)
}

// Decode parses the textual chart format into a Beatmap. It only reads the
// sections the calculators need: metadata, difficulty settings, timing points
// and hit objects. Objects are required to be in ascending start-time order up
// to a small tolerance; anything worse is a decode failure, not a calculation
// concern.
func Decode(r io.Reader) (*Beatmap, error) {
	bm := &Beatmap{
		HP:               5,
		CS:               5,
		OD:               5,
		AR:               5,
		SliderMultiplier: 1.4,
		TickRate:         1,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	section := ""
	lineNo := 0

	var pending []rawObject

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		var err error

		switch section {
		case "General", "Metadata", "Difficulty":
			err = bm.parseKeyValue(line)
		case "TimingPoints":
			err = bm.parseTimingPoint(line)
		case "HitObjects":
			var obj rawObject
			if obj, err = parseHitObject(line); err == nil {
				obj.line = lineNo
				pending = append(pending, obj)
			}
		}

		if err != nil {
			return nil, &DecodeError{Line: lineNo, Reason: err.Error()}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &DecodeError{Line: lineNo, Reason: err.Error()}
	}

	lastTime := math.Inf(-1)

	for _, raw := range pending {
		if raw.time < lastTime-3 {
			return nil, &DecodeError{Line: raw.line, Reason: "hit objects out of order"}
		}

		lastTime = math.Max(lastTime, raw.time)

		bm.HitObjects = append(bm.HitObjects, bm.buildObject(raw))
	}

	return bm, nil
}

func (b *Beatmap) parseKeyValue(line string) error {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return fmt.Errorf("expected key:value, got %q", line)
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "Mode":
		mode, err := strconv.Atoi(value)
		if err != nil || mode < 0 || mode > 3 {
			return fmt.Errorf("invalid mode %q", value)
		}

		b.Mode = Mode(mode)
	case "Title":
		b.Name = value
	case "Version":
		b.Version = value
	case "HPDrainRate":
		return parseFloat(value, &b.HP)
	case "CircleSize":
		return parseFloat(value, &b.CS)
	case "OverallDifficulty":
		return parseFloat(value, &b.OD)
	case "ApproachRate":
		return parseFloat(value, &b.AR)
	case "SliderMultiplier":
		if err := parseFloat(value, &b.SliderMultiplier); err != nil {
			return err
		}

		b.SliderMultiplier = mutils.Clamp(b.SliderMultiplier, 0.4, 3.6)
	case "SliderTickRate":
		if err := parseFloat(value, &b.TickRate); err != nil {
			return err
		}

		b.TickRate = mutils.Clamp(b.TickRate, 0.5, 8)
	}

	return nil
}

func (b *Beatmap) parseTimingPoint(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return fmt.Errorf("malformed timing point %q", line)
	}

	var time, beatLength float64
	if err := parseFloat(fields[0], &time); err != nil {
		return err
	}

	if err := parseFloat(fields[1], &beatLength); err != nil {
		return err
	}

	if beatLength == 0 {
		return fmt.Errorf("zero beat length in %q", line)
	}

	point := timingPoint{time: time, sliderMult: 1}

	if beatLength < 0 {
		// Inherited point: beatLength is a negative SV percentage.
		point.sliderMult = 100.0 / -beatLength
	} else {
		point.beatLength = beatLength
	}

	b.timings = append(b.timings, point)

	return nil
}

type rawObject struct {
	line     int
	x, y     float32
	time     float64
	kind     int
	hitSound int

	curve   string
	repeats int
	length  float64
	endTime float64
}

func parseHitObject(line string) (rawObject, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return rawObject{}, fmt.Errorf("malformed hit object %q", line)
	}

	var obj rawObject

	var x, y float64
	if err := parseFloat(fields[0], &x); err != nil {
		return obj, err
	}

	if err := parseFloat(fields[1], &y); err != nil {
		return obj, err
	}

	obj.x, obj.y = float32(x), float32(y)

	if err := parseFloat(fields[2], &obj.time); err != nil {
		return obj, err
	}

	kind, err := strconv.Atoi(fields[3])
	if err != nil {
		return obj, fmt.Errorf("invalid object type %q", fields[3])
	}

	obj.kind = kind

	if len(fields) > 4 {
		sound, err := strconv.Atoi(fields[4])
		if err == nil {
			obj.hitSound = sound
		}
	}

	switch {
	case kind&objectTypeSlider > 0:
		if len(fields) < 8 {
			return obj, fmt.Errorf("malformed slider %q", line)
		}

		obj.curve = fields[5]

		if err := parseInt(fields[6], &obj.repeats); err != nil {
			return obj, err
		}

		if obj.repeats < 1 {
			return obj, fmt.Errorf("slider with %d repeats", obj.repeats)
		}

		if err := parseFloat(fields[7], &obj.length); err != nil {
			return obj, err
		}

		if obj.length < 0 {
			return obj, fmt.Errorf("invalid slider length in %q", line)
		}
	case kind&objectTypeSpinner > 0:
		if len(fields) < 6 {
			return obj, fmt.Errorf("malformed spinner %q", line)
		}

		if err := parseFloat(fields[5], &obj.endTime); err != nil {
			return obj, err
		}
	}

	return obj, nil
}

func (b *Beatmap) buildObject(raw rawObject) objects.IHitObject {
	base := objects.HitObject{
		StartTime: raw.time,
		EndTime:   raw.time,
		StartPos:  vector.NewVec2f(raw.x, raw.y),
		HitSound:  raw.hitSound,
		NewCombo:  raw.kind&objectTypeNewCombo > 0,
	}

	switch {
	case raw.kind&objectTypeSlider > 0:
		slider := &objects.Slider{
			HitObject:   base,
			PixelLength: raw.length,
			RepeatCount: raw.repeats,
		}

		slider.ControlPoints = parseCurvePoints(raw.curve, slider.StartPos)

		beatLength, sliderMult := b.timingAt(raw.time)

		velocity := b.SliderMultiplier * 100 * sliderMult / beatLength
		spanDuration := raw.length / velocity

		slider.EndTime = raw.time + spanDuration*float64(raw.repeats)

		tickDistance := b.SliderMultiplier * 100 / b.TickRate
		if tickDistance > 0 {
			slider.TickCount = max(0, int(math.Ceil(raw.length/tickDistance))-1)
		}

		return slider
	case raw.kind&objectTypeSpinner > 0:
		spinner := &objects.Spinner{HitObject: base}
		spinner.EndTime = math.Max(raw.time, raw.endTime)

		return spinner
	default:
		return &objects.Circle{HitObject: base}
	}
}

func parseCurvePoints(curve string, start vector.Vector2f) []vector.Vector2f {
	points := []vector.Vector2f{start}

	for _, token := range strings.Split(curve, "|") {
		sx, sy, found := strings.Cut(token, ":")
		if !found {
			continue // curve type letter
		}

		x, errX := strconv.ParseFloat(sx, 32)
		y, errY := strconv.ParseFloat(sy, 32)

		if errX != nil || errY != nil {
			continue
		}

		points = append(points, vector.NewVec2f(float32(x), float32(y)))
	}

	return points
}

func parseFloat(s string, target *float64) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", s)
	}

	*target = v

	return nil
}

func parseInt(s string, target *int) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}

	*target = v

	return nil
}
