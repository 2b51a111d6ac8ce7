// Package store persists parameter lists, host objects and undo history in SQLite.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/paramlist/internal/model"
)

var (
	// ErrListNotFound is returned when no list has the given name.
	ErrListNotFound = errors.New("list not found")

	// ErrListExists is returned when creating a list under a taken name.
	ErrListExists = errors.New("list already exists")

	// ErrInvalidName is returned for empty list names.
	ErrInvalidName = errors.New("invalid list name")

	// ErrObjectNotFound is returned when no host object has the given id.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNothingToUndo is returned when a list has no history left.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// ListRecord is a stored list together with its host metadata.
type ListRecord struct {
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	List      *model.List
}

// ListSummary is a row of ListLists.
type ListSummary struct {
	ID         model.ListID `json:"id"`
	Name       string       `json:"name"`
	Comment    string       `json:"comment,omitempty"`
	Parameters int          `json:"parameters"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// CreateListParams holds parameters for creating a list.
type CreateListParams struct {
	Name    string
	Comment string
}

// DuplicateParams holds parameters for duplicating a list.
type DuplicateParams struct {
	From string
	To   string
}

// ObjectParams holds parameters for registering a host object.
type ObjectParams struct {
	Kind model.Kind
	Name string
}

// HistoryEntry is one recorded pre-mutation state of a list.
type HistoryEntry struct {
	ID        string         `json:"id"`
	ListID    model.ListID   `json:"list_id"`
	Action    string         `json:"action"`
	CreatedAt time.Time      `json:"created_at"`
	Before    model.Snapshot `json:"before"`
}

// EditFunc mutates a loaded list inside Store.Edit.
type EditFunc func(l *model.List) error

// Store defines the list storage interface.
type Store interface {
	// CreateList stores a new empty list.
	CreateList(ctx context.Context, p CreateListParams) (*ListRecord, error)

	// GetList loads a list by name. Object references are resolved to one
	// *model.Object per id.
	GetList(ctx context.Context, name string) (*ListRecord, error)

	// ListLists returns summaries of all lists, by name.
	ListLists(ctx context.Context) ([]ListSummary, error)

	// DeleteList removes a list, its parameters and its history.
	DeleteList(ctx context.Context, name string) error

	// DuplicateList copies a list under a new name. The copy gets a new id
	// and freshly owned parameters.
	DuplicateList(ctx context.Context, p DuplicateParams) (*ListRecord, error)

	// Edit loads a list, applies fn and saves the result with the recorded
	// undo history, all in one transaction.
	Edit(ctx context.Context, name, action string, fn EditFunc) (*ListRecord, error)

	// Undo restores the most recent history entry of a list.
	Undo(ctx context.Context, name string) (*HistoryEntry, error)

	// RegisterObject adds a host object that parameters can reference.
	RegisterObject(ctx context.Context, p ObjectParams) (*model.Object, error)

	// GetObject returns a host object by id.
	GetObject(ctx context.Context, id string) (*model.Object, error)

	// Close closes the store.
	Close() error
}
