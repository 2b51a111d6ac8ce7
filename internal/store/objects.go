package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rcliao/paramlist/internal/model"
)

// RegisterObject adds a host object. Kind must be an object kind.
func (s *SQLiteStore) RegisterObject(ctx context.Context, p ObjectParams) (*model.Object, error) {
	if !model.IsObjectKind(p.Kind) {
		return nil, fmt.Errorf("invalid object kind %q (valid: object, scene-object, texture)", p.Kind)
	}
	obj := &model.Object{ID: s.newID(), Kind: p.Kind, Name: p.Name}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO objects (id, kind, name, created_at) VALUES (?, ?, ?, ?)`,
		obj.ID, string(obj.Kind), obj.Name, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert object: %w", err)
	}
	return obj, nil
}

func (s *SQLiteStore) GetObject(ctx context.Context, id string) (*model.Object, error) {
	return s.getObject(ctx, s.db, id)
}

func (s *SQLiteStore) getObject(ctx context.Context, q querier, id string) (*model.Object, error) {
	var obj model.Object
	var kind string
	err := q.QueryRowContext(ctx, `SELECT id, kind, name FROM objects WHERE id = ?`, id).
		Scan(&obj.ID, &kind, &obj.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	obj.Kind = model.Kind(kind)
	return &obj, nil
}

// ListObjects returns registered host objects, optionally of one kind.
func (s *SQLiteStore) ListObjects(ctx context.Context, kind model.Kind) ([]model.Object, error) {
	query := `SELECT id, kind, name FROM objects`
	var args []interface{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var objects []model.Object
	for rows.Next() {
		var obj model.Object
		var k string
		if err := rows.Scan(&obj.ID, &k, &obj.Name); err != nil {
			return nil, err
		}
		obj.Kind = model.Kind(k)
		objects = append(objects, obj)
	}
	return objects, rows.Err()
}
