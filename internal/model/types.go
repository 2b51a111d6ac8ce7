// Package model defines the typed parameter and parameter list types.
package model

// Kind is a storage category for parameter values.
type Kind string

const (
	KindBool       Kind = "bool"
	KindInt        Kind = "int"
	KindString     Kind = "string"
	KindDouble     Kind = "double"
	KindFloat      Kind = "float"
	KindVector2    Kind = "vector2"
	KindVector3    Kind = "vector3"
	KindVector4    Kind = "vector4"
	KindQuaternion Kind = "quaternion"
	KindColor      Kind = "color"
	KindRect       Kind = "rect"

	// KindObject is an opaque reference to a host-managed object.
	KindObject Kind = "object"

	// Narrowings of KindObject.
	KindSceneObject Kind = "scene-object"
	KindTexture     Kind = "texture"
)

// TypeInfo describes one entry of the type table.
type TypeInfo struct {
	Title string `json:"title" yaml:"title"`
	Major Kind   `json:"major" yaml:"major"`
	Minor Kind   `json:"minor,omitempty" yaml:"minor,omitempty"`
}

type typeEntry struct {
	key  string
	info TypeInfo
}

// To add a value type, add an entry here and, unless it is an object
// narrowing, a slot on Parameter plus its cases in value.go.
var typeEntries = []typeEntry{
	{"bool", TypeInfo{Title: "Boolean", Major: KindBool}},
	{"int", TypeInfo{Title: "Int", Major: KindInt}},
	{"string", TypeInfo{Title: "String", Major: KindString}},
	{"double", TypeInfo{Title: "Double", Major: KindDouble}},
	{"float", TypeInfo{Title: "Float", Major: KindFloat}},
	{"vector2", TypeInfo{Title: "Vector2", Major: KindVector2}},
	{"vector3", TypeInfo{Title: "Vector3", Major: KindVector3}},
	{"vector4", TypeInfo{Title: "Vector4", Major: KindVector4}},
	{"quaternion", TypeInfo{Title: "Quaternion", Major: KindQuaternion}},
	{"color", TypeInfo{Title: "Color", Major: KindColor}},
	{"rect", TypeInfo{Title: "Rect", Major: KindRect}},
	{"object", TypeInfo{Title: "Object", Major: KindObject}},
	{"scene-object", TypeInfo{Title: "SceneObject", Major: KindObject, Minor: KindSceneObject}},
	{"texture", TypeInfo{Title: "Texture", Major: KindObject, Minor: KindTexture}},
}

var typeTable = func() map[string]TypeInfo {
	m := make(map[string]TypeInfo, len(typeEntries))
	for _, e := range typeEntries {
		if _, dup := m[e.key]; dup {
			panic("model: duplicate type key " + e.key)
		}
		m[e.key] = e.info
	}
	return m
}()

// LookupType returns the table entry for key.
func LookupType(key string) (TypeInfo, bool) {
	info, ok := typeTable[key]
	return info, ok
}

// ValidTypeKey reports whether key is present in the type table.
func ValidTypeKey(key string) bool {
	_, ok := typeTable[key]
	return ok
}

// TypeKeys returns all type keys in table order.
func TypeKeys() []string {
	keys := make([]string, len(typeEntries))
	for i, e := range typeEntries {
		keys[i] = e.key
	}
	return keys
}

// IsObjectKind reports whether k is the object kind or one of its narrowings.
func IsObjectKind(k Kind) bool {
	return k == KindObject || k == KindSceneObject || k == KindTexture
}

// AcceptsObject reports whether a parameter of type key may reference an
// object of kind k. The generic object type accepts every kind; a narrowed
// type accepts only its own.
func AcceptsObject(key string, k Kind) bool {
	info, ok := typeTable[key]
	if !ok || info.Major != KindObject {
		return false
	}
	return info.Minor == "" || info.Minor == k
}
