package model

import (
	"fmt"
	"slices"
)

// List is an ordered container of parameters. Insertion order is display
// order. Duplicate ids are allowed; FindParameter returns the first match.
//
// A List is not safe for concurrent use.
type List struct {
	id       ListID
	params   []*Parameter
	comment  string
	recorder Recorder
}

// NewList returns an empty list with a fresh id.
func NewList() *List {
	return &List{id: NewListID()}
}

func (l *List) ID() ListID { return l.id }

func (l *List) Comment() string { return l.comment }

// SetComment replaces the list comment.
func (l *List) SetComment(text string) {
	l.record("set list comment")
	l.comment = text
}

// Len returns the number of parameters.
func (l *List) Len() int { return len(l.params) }

// Parameters returns the parameters in order. The returned slice is a copy;
// the parameters are not.
func (l *List) Parameters() []*Parameter {
	return slices.Clone(l.params)
}

// Index returns the position of p (by identity), or -1.
func (l *List) Index(p *Parameter) int {
	return slices.Index(l.params, p)
}

// AddParameter appends a new parameter with no id and no type.
func (l *List) AddParameter() *Parameter {
	l.record("add parameter")
	p := &Parameter{}
	p.setup(l.id)
	l.params = append(l.params, p)
	return p
}

// DeleteParameter removes p from the list. If p is not in the list the call
// is logged and the list is left unchanged.
func (l *List) DeleteParameter(p *Parameter) error {
	if p == nil {
		return ErrNilParameter
	}
	index := l.Index(p)
	if index < 0 {
		log().Warn("delete parameter: not in list", "list", l.id, "param", p.Title())
		return fmt.Errorf("delete %s: %w", p.Title(), ErrParameterNotFound)
	}
	l.record("delete parameter")
	l.params = slices.Delete(l.params, index, index+1)
	return nil
}

// FindParameter returns the first parameter with the given id, or nil.
func (l *List) FindParameter(id string) *Parameter {
	for _, p := range l.params {
		if p.data.ID == id {
			return p
		}
	}
	return nil
}

// MoveUp moves p one position towards the front.
func (l *List) MoveUp(p *Parameter) error {
	return l.move(p, -1)
}

// MoveDown moves p one position towards the back.
func (l *List) MoveDown(p *Parameter) error {
	return l.move(p, 1)
}

// move removes p and reinserts it at index+delta. A move past either end
// is logged and leaves the list unchanged.
func (l *List) move(p *Parameter, delta int) error {
	if p == nil {
		return ErrNilParameter
	}
	index := l.Index(p)
	if index < 0 {
		log().Warn("move parameter: not in list", "list", l.id, "param", p.Title())
		return fmt.Errorf("move %s: %w", p.Title(), ErrParameterNotFound)
	}
	to := index + delta
	if to < 0 || to >= len(l.params) {
		log().Info("move parameter: already at boundary", "list", l.id, "param", p.Title(), "index", index)
		return fmt.Errorf("move %s: %w", p.Title(), ErrAtBoundary)
	}
	l.record("move parameter")
	l.params = slices.Delete(l.params, index, index+1)
	l.params = slices.Insert(l.params, to, p)
	return nil
}

// ValidateAndRepairOwnership replaces every parameter whose owner is not
// this list with a clone owned by it, at the same index. It returns the
// number of parameters replaced. Running it again without an intervening
// copy replaces nothing.
func (l *List) ValidateAndRepairOwnership() int {
	var stale []int
	for i, p := range l.params {
		if p.owner != l.id {
			stale = append(stale, i)
		}
	}
	for _, i := range stale {
		p := l.params[i]
		log().Info("renewing parameter copied from another list", "list", l.id, "param", p.Title(), "from", p.owner)
		l.params[i], _ = p.Clone(l)
	}
	return len(stale)
}

// Duplicate returns a copy of the list under a new id. The copy's
// parameters are clones owned by the copy. The recorder is not carried over.
func (l *List) Duplicate() *List {
	dup := l.shallowCopy()
	dup.ValidateAndRepairOwnership()
	return dup
}

// shallowCopy copies the list fields under a new id. The parameters are
// shared with l and still name l as their owner.
func (l *List) shallowCopy() *List {
	return &List{
		id:      NewListID(),
		params:  slices.Clone(l.params),
		comment: l.comment,
	}
}
