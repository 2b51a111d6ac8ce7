package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value returns the active slot selected by the major kind, or nil when
// the type key is unset or unknown. Object types return *Object (possibly nil).
func (p *Parameter) Value() any {
	return p.data.Value()
}

// Value returns the slot selected by the major kind of TypeKey.
func (d ParameterData) Value() any {
	info, ok := LookupType(d.TypeKey)
	if !ok {
		return nil
	}
	switch info.Major {
	case KindBool:
		return d.Bool
	case KindInt:
		return d.Int
	case KindString:
		return d.String
	case KindDouble:
		return d.Double
	case KindFloat:
		return d.Float
	case KindVector2:
		return d.Vector2
	case KindVector3:
		return d.Vector3
	case KindVector4:
		return d.Vector4
	case KindQuaternion:
		return d.Quaternion
	case KindColor:
		return d.Color
	case KindRect:
		return d.Rect
	case KindObject:
		return d.Object
	}
	return nil
}

// SetValue writes v into the active slot. v must have exactly the Go type of
// the declared major kind; no conversion is attempted. Object values must
// match the minor kind unless the type is the generic object type.
func (p *Parameter) SetValue(v any) error {
	major := p.MajorType()
	mismatch := func() error {
		return &ValueTypeError{TypeKey: p.data.TypeKey, Want: major, Got: fmt.Sprintf("%T", v)}
	}

	switch major {
	case KindBool:
		x, ok := v.(bool)
		if !ok {
			return mismatch()
		}
		p.data.Bool = x
	case KindInt:
		x, ok := v.(int)
		if !ok {
			return mismatch()
		}
		p.data.Int = x
	case KindString:
		x, ok := v.(string)
		if !ok {
			return mismatch()
		}
		p.data.String = x
	case KindDouble:
		x, ok := v.(float64)
		if !ok {
			return mismatch()
		}
		p.data.Double = x
	case KindFloat:
		x, ok := v.(float32)
		if !ok {
			return mismatch()
		}
		p.data.Float = x
	case KindVector2:
		x, ok := v.(Vector2)
		if !ok {
			return mismatch()
		}
		p.data.Vector2 = x
	case KindVector3:
		x, ok := v.(Vector3)
		if !ok {
			return mismatch()
		}
		p.data.Vector3 = x
	case KindVector4:
		x, ok := v.(Vector4)
		if !ok {
			return mismatch()
		}
		p.data.Vector4 = x
	case KindQuaternion:
		x, ok := v.(Quaternion)
		if !ok {
			return mismatch()
		}
		p.data.Quaternion = x
	case KindColor:
		x, ok := v.(Color)
		if !ok {
			return mismatch()
		}
		p.data.Color = x
	case KindRect:
		x, ok := v.(Rect)
		if !ok {
			return mismatch()
		}
		p.data.Rect = x
	case KindObject:
		obj, ok := v.(*Object)
		if !ok {
			return mismatch()
		}
		if obj != nil && !AcceptsObject(p.data.TypeKey, obj.Kind) {
			return &ValueTypeError{TypeKey: p.data.TypeKey, Want: p.MinorType(), Got: "object of kind " + string(obj.Kind)}
		}
		p.data.Object = obj
	default:
		return mismatch()
	}
	return nil
}

// Format renders the active value as text, in the syntax ParseValue accepts.
func (p *Parameter) Format() string {
	return FormatValue(p.Value())
}

// FormatValue renders a slot value as text.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return formatFloats(x)
	case Vector2:
		return formatFloats(x.X, x.Y)
	case Vector3:
		return formatFloats(x.X, x.Y, x.Z)
	case Vector4:
		return formatFloats(x.X, x.Y, x.Z, x.W)
	case Quaternion:
		return formatFloats(x.X, x.Y, x.Z, x.W)
	case Color:
		return formatFloats(x.R, x.G, x.B, x.A)
	case Rect:
		return formatFloats(x.X, x.Y, x.Width, x.Height)
	case *Object:
		if x == nil {
			return ""
		}
		return x.ID
	}
	return fmt.Sprint(v)
}

func formatFloats(fs ...float32) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

// ParseValue parses text into the Go value for kind. Vector-like kinds take
// comma-separated components ("1,2,3"). Object kinds cannot be parsed; the
// host resolves them by id.
func ParseValue(kind Kind, text string) (any, error) {
	switch kind {
	case KindBool:
		return strconv.ParseBool(strings.TrimSpace(text))
	case KindInt:
		return strconv.Atoi(strings.TrimSpace(text))
	case KindString:
		return text, nil
	case KindDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q", ErrNonFinite, text)
		}
		return f, nil
	case KindFloat:
		fs, err := parseFloats(text, 1)
		if err != nil {
			return nil, err
		}
		return fs[0], nil
	case KindVector2:
		fs, err := parseFloats(text, 2)
		if err != nil {
			return nil, err
		}
		return Vector2{fs[0], fs[1]}, nil
	case KindVector3:
		fs, err := parseFloats(text, 3)
		if err != nil {
			return nil, err
		}
		return Vector3{fs[0], fs[1], fs[2]}, nil
	case KindVector4:
		fs, err := parseFloats(text, 4)
		if err != nil {
			return nil, err
		}
		return Vector4{fs[0], fs[1], fs[2], fs[3]}, nil
	case KindQuaternion:
		fs, err := parseFloats(text, 4)
		if err != nil {
			return nil, err
		}
		return Quaternion{fs[0], fs[1], fs[2], fs[3]}, nil
	case KindColor:
		fs, err := parseFloats(text, 4)
		if err != nil {
			return nil, err
		}
		return Color{fs[0], fs[1], fs[2], fs[3]}, nil
	case KindRect:
		fs, err := parseFloats(text, 4)
		if err != nil {
			return nil, err
		}
		return Rect{fs[0], fs[1], fs[2], fs[3]}, nil
	case KindObject, KindSceneObject, KindTexture:
		return nil, fmt.Errorf("object values are set by reference, not parsed")
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidTypeKey, kind)
}

func parseFloats(text string, n int) ([]float32, error) {
	parts := strings.Split(text, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated components, got %d", n, len(parts))
	}
	fs := make([]float32, n)
	for i, s := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return nil, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q", ErrNonFinite, s)
		}
		fs[i] = float32(f)
	}
	return fs, nil
}
