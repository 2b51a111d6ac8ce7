package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/paramlist/internal/model"
)

// Export is the portable form of stored lists and the objects they reference.
type Export struct {
	Objects []model.Object `json:"objects,omitempty" yaml:"objects,omitempty"`
	Lists   []ExportedList `json:"lists" yaml:"lists"`
}

// ExportedList is one list in an Export.
type ExportedList struct {
	Name       string                `json:"name" yaml:"name"`
	Comment    string                `json:"comment,omitempty" yaml:"comment,omitempty"`
	Parameters []model.ParameterData `json:"parameters" yaml:"parameters"`
}

// ExportAll returns all lists, or only the named one, with every object
// they reference.
func (s *SQLiteStore) ExportAll(ctx context.Context, name string) (*Export, error) {
	var names []string
	if name != "" {
		names = []string{name}
	} else {
		summaries, err := s.ListLists(ctx)
		if err != nil {
			return nil, err
		}
		for _, ls := range summaries {
			names = append(names, ls.Name)
		}
	}

	out := &Export{Lists: []ExportedList{}}
	seen := map[string]bool{}
	for _, n := range names {
		rec, err := s.GetList(ctx, n)
		if err != nil {
			return nil, err
		}
		snap := rec.List.Snapshot()
		for _, d := range snap.Parameters {
			if d.Object != nil && !seen[d.Object.ID] {
				seen[d.Object.ID] = true
				out.Objects = append(out.Objects, *d.Object)
			}
		}
		out.Lists = append(out.Lists, ExportedList{
			Name:       rec.Name,
			Comment:    snap.Comment,
			Parameters: snap.Parameters,
		})
	}
	return out, nil
}

// Import stores objects and lists from an export. Objects keep their ids;
// lists get new ids. Lists whose name is taken are skipped. It returns the
// number of lists imported.
func (s *SQLiteStore) Import(ctx context.Context, in *Export) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, obj := range in.Objects {
		if !model.IsObjectKind(obj.Kind) {
			return 0, fmt.Errorf("object %s: invalid kind %q", obj.ID, obj.Kind)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO objects (id, kind, name, created_at) VALUES (?, ?, ?, ?)`,
			obj.ID, string(obj.Kind), obj.Name, now)
		if err != nil {
			return 0, fmt.Errorf("insert object: %w", err)
		}
	}

	imported := 0
	for _, el := range in.Lists {
		snap := model.Snapshot{Comment: el.Comment, Parameters: el.Parameters}
		if err := s.resolveObjects(ctx, tx, &snap); err != nil {
			return imported, err
		}
		rec := &ListRecord{Name: el.Name, List: model.RestoreList(snap)}
		if rec.Name == "" {
			return imported, ErrInvalidName
		}
		err := s.insertList(ctx, tx, rec)
		if errors.Is(err, ErrListExists) {
			s.log.Warn("import: skipping existing list", "list", el.Name)
			continue
		}
		if err != nil {
			return imported, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}
