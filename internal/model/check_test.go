package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckCleanList(t *testing.T) {
	l := NewList()
	p := l.AddParameter()
	p.SetID("a")
	p.SetTypeKey("int")

	assert.Empty(t, Check(l))
}

func TestCheckReportsProblems(t *testing.T) {
	l := NewList()
	add := func(id, typeKey string) {
		p := l.AddParameter()
		p.SetID(id)
		p.SetTypeKey(typeKey)
	}
	add("a", "int")
	add("a", "int")
	add("a", "string")
	add("", "bool")
	add("b", "")
	add("c", "vector9")

	issues := Check(l)
	assert.Equal(t, []Issue{
		{1, "a (int)", "duplicates parameter 0"},
		{2, "a (string)", "id hidden by parameter 0"},
		{3, " (bool)", "empty id"},
		{4, "b ()", "no type"},
		{5, "c (vector9)", `invalid type key: "vector9"`},
	}, issues)
}

func TestCheckReportsForeignOwner(t *testing.T) {
	l := newListWith("a")
	l.params[0].SetTypeKey("int")
	dup := l.shallowCopy()

	issues := Check(dup)
	if assert.Len(t, issues, 1) {
		assert.Contains(t, issues[0].Problem, "owned by another list")
	}
	assert.Empty(t, Check(l))
}
