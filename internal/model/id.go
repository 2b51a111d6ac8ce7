package model

import "github.com/oklog/ulid/v2"

// ListID identifies a List. Parameters refer to their owner by ListID.
type ListID string

// NewListID returns a fresh, time-ordered list id.
func NewListID() ListID {
	return ListID(ulid.Make().String())
}
