package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParam(t *testing.T, id string) *Parameter {
	t.Helper()
	p := NewList().AddParameter()
	p.SetID(id)
	return p
}

func TestTypeTable(t *testing.T) {
	keys := TypeKeys()
	require.Len(t, keys, len(typeEntries))
	assert.Equal(t, "bool", keys[0])

	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true

		info, ok := LookupType(k)
		require.True(t, ok)
		if info.Minor != "" {
			assert.Equal(t, KindObject, info.Major, "minor kind only on object types (%s)", k)
		}
	}

	assert.True(t, ValidTypeKey("texture"))
	assert.False(t, ValidTypeKey("System.Int32"))
	assert.False(t, ValidTypeKey(""))
}

func TestAuxiliaryFlag(t *testing.T) {
	p := newParam(t, "hoge")
	assert.True(t, p.IsAuxiliary())
}

func TestMajorMinorType(t *testing.T) {
	p := newParam(t, "hoge")
	assert.Equal(t, Kind(""), p.MajorType())
	assert.Equal(t, Kind(""), p.MinorType())

	p.SetTypeKey("string")
	assert.Equal(t, KindString, p.MajorType())
	assert.Equal(t, KindString, p.MinorType())

	p.SetTypeKey("object")
	assert.Equal(t, KindObject, p.MajorType())
	assert.Equal(t, KindObject, p.MinorType())

	p.SetTypeKey("texture")
	assert.Equal(t, KindObject, p.MajorType())
	assert.Equal(t, KindTexture, p.MinorType())

	p.SetTypeKey("no-such-type")
	assert.Equal(t, "no-such-type", p.TypeKey())
	assert.Equal(t, Kind(""), p.MajorType())
	assert.Equal(t, Kind(""), p.MinorType())
}

func TestSlotValues(t *testing.T) {
	p := newParam(t, "hoge")

	p.SetBoolValue(true)
	assert.True(t, p.BoolValue())
	p.SetBoolValue(false)
	assert.False(t, p.BoolValue())
	p.SetIntValue(5555)
	assert.Equal(t, 5555, p.IntValue())
	p.SetDoubleValue(123.45)
	assert.Equal(t, 123.45, p.DoubleValue())
	p.SetFloatValue(987.65)
	assert.Equal(t, float32(987.65), p.FloatValue())
	p.SetStringValue("HogeMoge")
	assert.Equal(t, "HogeMoge", p.StringValue())
	p.SetVector2Value(Vector2{1.1, 2.2})
	assert.Equal(t, Vector2{1.1, 2.2}, p.Vector2Value())
	p.SetVector3Value(Vector3{1.1, 2.2, 3.3})
	assert.Equal(t, Vector3{1.1, 2.2, 3.3}, p.Vector3Value())
	p.SetVector4Value(Vector4{1.1, 2.2, 3.3, 4.4})
	assert.Equal(t, Vector4{1.1, 2.2, 3.3, 4.4}, p.Vector4Value())
	p.SetQuaternionValue(Quaternion{1.1, 2.2, 3.3, 4.4})
	assert.Equal(t, Quaternion{1.1, 2.2, 3.3, 4.4}, p.QuaternionValue())
	p.SetColorValue(Color{0.1, 0.2, 0.3, 0.4})
	assert.Equal(t, Color{0.1, 0.2, 0.3, 0.4}, p.ColorValue())
	p.SetRectValue(Rect{10, 20, 30, 40})
	assert.Equal(t, Rect{10, 20, 30, 40}, p.RectValue())
}

func TestObjectClearedOnTypeChange(t *testing.T) {
	obj := &Object{ID: "go-1", Kind: KindSceneObject}
	p := newParam(t, "hoge")
	p.SetTypeKey("object")
	require.NoError(t, p.SetObjectValue(obj))
	assert.Same(t, obj, p.ObjectValue())

	p.SetTypeKey("string")
	assert.Nil(t, p.ObjectValue())
}

func TestObjectSlotFollowsEveryTypeChange(t *testing.T) {
	obj := &Object{ID: "tex-1", Kind: KindTexture}
	p := newParam(t, "hoge")

	for _, key := range []string{"texture", "int", "object", "scene-object", "", "bogus", "rect", "texture"} {
		p.SetTypeKey(key)
		err := p.SetObjectValue(obj)
		if AcceptsObject(key, obj.Kind) {
			require.NoError(t, err, "type %q", key)
			assert.Same(t, obj, p.ObjectValue(), "type %q", key)
		} else {
			assert.Nil(t, p.ObjectValue(), "type %q", key)
		}

		p.SetTypeKey(key)
		if p.MajorType() != KindObject {
			assert.Nil(t, p.ObjectValue(), "type %q", key)
		}
	}
}

func TestSetObjectValueRejectsWrongKind(t *testing.T) {
	tex := &Object{ID: "tex-1", Kind: KindTexture}
	p := newParam(t, "ground")
	p.SetTypeKey("texture")
	require.NoError(t, p.SetObjectValue(tex))

	err := p.SetObjectValue(&Object{ID: "go-1", Kind: KindSceneObject})
	var vte *ValueTypeError
	require.ErrorAs(t, err, &vte)
	assert.Equal(t, KindTexture, vte.Want)
	assert.Same(t, tex, p.ObjectValue())

	require.NoError(t, p.SetObjectValue(nil))
	assert.Nil(t, p.ObjectValue())
}

func TestNarrowingTypeDropsOtherKinds(t *testing.T) {
	tex := &Object{ID: "tex-1", Kind: KindTexture}
	p := newParam(t, "hoge")
	p.SetTypeKey("object")
	require.NoError(t, p.SetObjectValue(tex))

	p.SetTypeKey("scene-object")
	assert.Nil(t, p.ObjectValue())
}

func TestObjectKeptAcrossObjectTypes(t *testing.T) {
	obj := &Object{ID: "tex-1", Kind: KindTexture}
	p := newParam(t, "hoge")
	p.SetTypeKey("object")
	require.NoError(t, p.SetObjectValue(obj))

	p.SetTypeKey("texture")
	assert.Same(t, obj, p.ObjectValue())
}

func TestClone(t *testing.T) {
	obj := &Object{ID: "go-1", Kind: KindSceneObject}
	src := NewList()
	p := src.AddParameter()
	p.SetID("x")
	p.SetTypeKey("scene-object")
	p.SetComment("spawn point")
	p.SetIntValue(5555)
	p.SetVector3Value(Vector3{1, 2, 3})
	p.SetColorValue(Color{1, 0, 0, 1})
	require.NoError(t, p.SetObjectValue(obj))

	dst := NewList()
	c, err := p.Clone(dst)
	require.NoError(t, err)

	assert.NotSame(t, p, c)
	assert.Equal(t, dst.ID(), c.Owner())
	assert.Equal(t, src.ID(), p.Owner())
	assert.True(t, c.IsAuxiliary())
	assert.Equal(t, p.Data(), c.Data())
	assert.Same(t, obj, c.ObjectValue())
	assert.True(t, p.Equal(c))
	assert.Equal(t, p.Key(), c.Key())
}

func TestCloneIsIndependent(t *testing.T) {
	l := NewList()
	p := l.AddParameter()
	p.SetID("x")
	p.SetTypeKey("int")
	p.SetIntValue(5555)

	l2 := NewList()
	c, err := p.Clone(l2)
	require.NoError(t, err)
	c.SetIntValue(9)

	assert.Equal(t, 5555, p.IntValue())
	assert.Equal(t, 9, c.IntValue())
}

func TestCloneNilOwner(t *testing.T) {
	p := newParam(t, "x")
	c, err := p.Clone(nil)
	assert.ErrorIs(t, err, ErrNilList)
	assert.Nil(t, c)
}

func TestEqualAndKey(t *testing.T) {
	a := newParam(t, "speed")
	a.SetTypeKey("float")
	b := newParam(t, "speed")
	b.SetTypeKey("float")
	b.SetFloatValue(3)

	assert.True(t, a.Equal(b))
	assert.NotSame(t, a, b)

	set := map[ParamKey]*Parameter{a.Key(): a}
	_, dup := set[b.Key()]
	assert.True(t, dup)

	b.SetTypeKey("double")
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}

func TestTitle(t *testing.T) {
	p := newParam(t, "speed")
	p.SetTypeKey("float")
	assert.Equal(t, "speed (float)", p.Title())
}

func TestSetValue(t *testing.T) {
	p := newParam(t, "v")

	var typeErr *ValueTypeError
	require.ErrorAs(t, p.SetValue(1), &typeErr, "unset type has no slot")

	p.SetTypeKey("int")
	require.NoError(t, p.SetValue(42))
	assert.Equal(t, 42, p.Value())
	require.ErrorAs(t, p.SetValue(int64(42)), &typeErr)
	require.ErrorAs(t, p.SetValue(42.0), &typeErr)
	assert.Equal(t, KindInt, typeErr.Want)

	p.SetTypeKey("float")
	require.ErrorAs(t, p.SetValue(1.5), &typeErr, "float64 is not a float")
	require.NoError(t, p.SetValue(float32(1.5)))
	assert.Equal(t, float32(1.5), p.Value())

	p.SetTypeKey("rect")
	require.NoError(t, p.SetValue(Rect{1, 2, 3, 4}))
	assert.Equal(t, Rect{1, 2, 3, 4}, p.RectValue())
}

func TestSetValueObjectMinorKind(t *testing.T) {
	tex := &Object{ID: "tex-1", Kind: KindTexture}
	node := &Object{ID: "go-1", Kind: KindSceneObject}
	p := newParam(t, "img")

	p.SetTypeKey("texture")
	require.NoError(t, p.SetValue(tex))
	assert.Same(t, tex, p.Value())

	var typeErr *ValueTypeError
	require.ErrorAs(t, p.SetValue(node), &typeErr)
	assert.Equal(t, KindTexture, typeErr.Want)
	assert.Same(t, tex, p.ObjectValue())

	require.NoError(t, p.SetValue((*Object)(nil)))
	assert.Nil(t, p.ObjectValue())

	p.SetTypeKey("object")
	require.NoError(t, p.SetValue(node))
	require.NoError(t, p.SetValue(tex))
}

func TestParseAndFormatValue(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want any
	}{
		{KindBool, "true", true},
		{KindInt, " 12 ", 12},
		{KindString, " keep spaces ", " keep spaces "},
		{KindDouble, "123.45", 123.45},
		{KindFloat, "0.5", float32(0.5)},
		{KindVector2, "1, 2", Vector2{1, 2}},
		{KindVector3, "1,2,3", Vector3{1, 2, 3}},
		{KindVector4, "1,2,3,4", Vector4{1, 2, 3, 4}},
		{KindQuaternion, "0,0,0,1", Quaternion{0, 0, 0, 1}},
		{KindColor, "0.5,0.25,1,1", Color{0.5, 0.25, 1, 1}},
		{KindRect, "10,20,30,40", Rect{10, 20, 30, 40}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := ParseValue(tt.kind, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ParseValue(tt.kind, FormatValue(got))
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	_, err := ParseValue(KindVector3, "1,2")
	assert.Error(t, err)
	_, err = ParseValue(KindInt, "1.5")
	assert.Error(t, err)
	_, err = ParseValue(KindTexture, "tex-1")
	assert.Error(t, err)
	_, err = ParseValue("bogus", "1")
	assert.ErrorIs(t, err, ErrInvalidTypeKey)

	for _, tt := range []struct {
		kind Kind
		text string
	}{
		{KindDouble, "NaN"},
		{KindDouble, "-Inf"},
		{KindFloat, "+Inf"},
		{KindVector2, "1,NaN"},
	} {
		_, err = ParseValue(tt.kind, tt.text)
		assert.ErrorIs(t, err, ErrNonFinite, "%s %q", tt.kind, tt.text)
	}
}

func TestFormat(t *testing.T) {
	p := newParam(t, "pos")
	assert.Equal(t, "", p.Format())

	p.SetTypeKey("vector2")
	p.SetVector2Value(Vector2{1.5, -2})
	assert.Equal(t, "1.5,-2", p.Format())

	p.SetTypeKey("scene-object")
	require.NoError(t, p.SetObjectValue(&Object{ID: "go-1", Kind: KindSceneObject}))
	assert.Equal(t, "go-1", p.Format())
}
