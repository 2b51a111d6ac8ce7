package model

import "fmt"

// ParameterData is the plain value form of a Parameter: identity, type and
// every value slot. Only the slot matching the major kind of TypeKey is
// meaningful.
type ParameterData struct {
	ID      string `json:"id" yaml:"id"`
	TypeKey string `json:"type,omitempty" yaml:"type,omitempty"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`

	Bool       bool       `json:"bool,omitempty" yaml:"bool,omitempty"`
	Int        int        `json:"int,omitempty" yaml:"int,omitempty"`
	String     string     `json:"string,omitempty" yaml:"string,omitempty"`
	Double     float64    `json:"double,omitempty" yaml:"double,omitempty"`
	Float      float32    `json:"float,omitempty" yaml:"float,omitempty"`
	Vector2    Vector2    `json:"vector2,omitzero" yaml:"vector2,omitempty"`
	Vector3    Vector3    `json:"vector3,omitzero" yaml:"vector3,omitempty"`
	Vector4    Vector4    `json:"vector4,omitzero" yaml:"vector4,omitempty"`
	Quaternion Quaternion `json:"quaternion,omitzero" yaml:"quaternion,omitempty"`
	Color      Color      `json:"color,omitzero" yaml:"color,omitempty"`
	Rect       Rect       `json:"rect,omitzero" yaml:"rect,omitempty"`
	Object     *Object    `json:"object,omitempty" yaml:"object,omitempty"`
}

// ParamKey is the value identity of a parameter: id plus type key.
// It is comparable and can be used as a map key.
type ParamKey struct {
	ID      string
	TypeKey string
}

// Parameter is one named, typed value owned by a List.
// Parameters are created by List.AddParameter or Clone.
type Parameter struct {
	data      ParameterData
	owner     ListID
	auxiliary bool
}

func (p *Parameter) setup(owner ListID) {
	p.owner = owner
	p.auxiliary = true
}

// Owner returns the id of the list this parameter belongs to.
func (p *Parameter) Owner() ListID { return p.owner }

// IsAuxiliary reports whether the parameter is support data that tools
// should not list on their own.
func (p *Parameter) IsAuxiliary() bool { return p.auxiliary }

func (p *Parameter) ID() string { return p.data.ID }

func (p *Parameter) SetID(id string) { p.data.ID = id }

func (p *Parameter) Comment() string { return p.data.Comment }

func (p *Parameter) SetComment(text string) { p.data.Comment = text }

func (p *Parameter) TypeKey() string { return p.data.TypeKey }

// SetTypeKey changes the declared type. The object slot is cleared unless
// the new type is an object type that accepts the referenced object's kind.
// Unknown keys are stored as given and resolve to no major or minor kind.
func (p *Parameter) SetTypeKey(key string) {
	p.data.TypeKey = key
	p.cleanReferences()
}

func (p *Parameter) cleanReferences() {
	if obj := p.data.Object; obj != nil && !AcceptsObject(p.data.TypeKey, obj.Kind) {
		p.data.Object = nil
	}
}

// MajorType returns the storage kind of the declared type, or "" if the
// type key is unset or unknown.
func (p *Parameter) MajorType() Kind {
	info, ok := LookupType(p.data.TypeKey)
	if !ok {
		return ""
	}
	return info.Major
}

// MinorType returns the object narrowing of the declared type, falling back
// to the major kind.
func (p *Parameter) MinorType() Kind {
	info, ok := LookupType(p.data.TypeKey)
	if !ok {
		return ""
	}
	if info.Minor != "" {
		return info.Minor
	}
	return info.Major
}

// Slot accessors. They read and write storage directly regardless of the
// declared type; callers consult MajorType first.

func (p *Parameter) BoolValue() bool { return p.data.Bool }
func (p *Parameter) SetBoolValue(v bool) { p.data.Bool = v }
func (p *Parameter) IntValue() int { return p.data.Int }
func (p *Parameter) SetIntValue(v int) { p.data.Int = v }
func (p *Parameter) StringValue() string { return p.data.String }
func (p *Parameter) SetStringValue(v string) { p.data.String = v }
func (p *Parameter) DoubleValue() float64 { return p.data.Double }
func (p *Parameter) SetDoubleValue(v float64) { p.data.Double = v }
func (p *Parameter) FloatValue() float32 { return p.data.Float }
func (p *Parameter) SetFloatValue(v float32) { p.data.Float = v }
func (p *Parameter) Vector2Value() Vector2 { return p.data.Vector2 }
func (p *Parameter) SetVector2Value(v Vector2) { p.data.Vector2 = v }
func (p *Parameter) Vector3Value() Vector3 { return p.data.Vector3 }
func (p *Parameter) SetVector3Value(v Vector3) { p.data.Vector3 = v }
func (p *Parameter) Vector4Value() Vector4 { return p.data.Vector4 }
func (p *Parameter) SetVector4Value(v Vector4) { p.data.Vector4 = v }
func (p *Parameter) QuaternionValue() Quaternion { return p.data.Quaternion }
func (p *Parameter) SetQuaternionValue(v Quaternion) { p.data.Quaternion = v }
func (p *Parameter) ColorValue() Color { return p.data.Color }
func (p *Parameter) SetColorValue(v Color) { p.data.Color = v }
func (p *Parameter) RectValue() Rect { return p.data.Rect }
func (p *Parameter) SetRectValue(v Rect) { p.data.Rect = v }

// ObjectValue returns the referenced host object, or nil.
func (p *Parameter) ObjectValue() *Object { return p.data.Object }

// SetObjectValue stores a host object reference. It is dropped when the
// declared type is not an object type. A narrowed type refuses objects of
// another kind with *ValueTypeError and keeps its current reference.
func (p *Parameter) SetObjectValue(obj *Object) error {
	if p.MajorType() != KindObject {
		p.data.Object = nil
		return nil
	}
	return p.SetValue(obj)
}

// Clone returns a copy of p owned by newOwner. Value slots are copied
// verbatim; the object slot keeps pointing at the same host object.
func (p *Parameter) Clone(newOwner *List) (*Parameter, error) {
	if newOwner == nil {
		return nil, fmt.Errorf("clone %s: %w", p.Title(), ErrNilList)
	}
	c := &Parameter{data: p.data}
	c.setup(newOwner.id)
	return c, nil
}

// Data returns a copy of the parameter's identity and value slots.
func (p *Parameter) Data() ParameterData { return p.data }

// Key returns the (id, type key) identity used for deduplication.
func (p *Parameter) Key() ParamKey {
	return ParamKey{ID: p.data.ID, TypeKey: p.data.TypeKey}
}

// Equal reports whether p and other have the same id and type key.
func (p *Parameter) Equal(other *Parameter) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Key() == other.Key()
}

// Title returns "<id> (<type key>)" for diagnostics.
func (p *Parameter) Title() string {
	return p.data.ID + " (" + p.data.TypeKey + ")"
}
