package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/rcliao/paramlist/internal/model"
)

type pendingEntry struct {
	action string
	before model.Snapshot
}

func (s *SQLiteStore) Edit(ctx context.Context, name, action string, fn EditFunc) (*ListRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rec, err := s.loadList(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	before := rec.List.Snapshot()
	var pending []pendingEntry
	rec.List.SetRecorder(model.RecorderFunc(func(a string, b model.Snapshot) {
		pending = append(pending, pendingEntry{action: a, before: b})
	}))
	err = fn(rec.List)
	rec.List.SetRecorder(nil)
	if err != nil {
		return nil, err
	}

	if reflect.DeepEqual(before, rec.List.Snapshot()) {
		return rec, nil
	}
	// Field edits on parameters do not pass through the list recorder.
	if len(pending) == 0 {
		pending = append(pending, pendingEntry{action: action, before: before})
	}

	if err := s.saveList(ctx, tx, rec); err != nil {
		return nil, err
	}
	for _, e := range pending {
		if err := s.insertHistory(ctx, tx, e); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) insertHistory(ctx context.Context, q querier, e pendingEntry) error {
	b, err := json.Marshal(e.before)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = q.ExecContext(ctx,
		`INSERT INTO history (id, list_id, action, snapshot, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.newID(), string(e.before.ListID), e.action, string(b), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// History returns the recorded entries of a list, newest first.
func (s *SQLiteStore) History(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.list_id, h.action, h.snapshot, h.created_at
		FROM history h JOIN lists l ON l.id = h.list_id
		WHERE l.name = ? ORDER BY h.rowid DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Undo(ctx context.Context, name string) (*HistoryEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rec, err := s.loadList(ctx, tx, name)
	if err != nil {
		return nil, err
	}

	e, err := scanHistory(tx.QueryRowContext(ctx, `
		SELECT id, list_id, action, snapshot, created_at FROM history
		WHERE list_id = ? ORDER BY rowid DESC LIMIT 1`, string(rec.List.ID())))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNothingToUndo, name)
	}
	if err != nil {
		return nil, err
	}

	if err := s.resolveObjects(ctx, tx, &e.Before); err != nil {
		return nil, err
	}
	rec.List = model.RestoreList(e.Before)
	if err := s.saveList(ctx, tx, rec); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, e.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &e, nil
}

// resolveObjects points object references in snap at the registered host
// objects. References to objects that no longer exist, or whose registered
// kind the parameter type does not accept, are dropped.
func (s *SQLiteStore) resolveObjects(ctx context.Context, q querier, snap *model.Snapshot) error {
	cache := map[string]*model.Object{}
	for i := range snap.Parameters {
		d := &snap.Parameters[i]
		if d.Object == nil {
			continue
		}
		id := d.Object.ID
		obj, ok := cache[id]
		if !ok {
			var err error
			obj, err = s.getObject(ctx, q, id)
			if errors.Is(err, ErrObjectNotFound) {
				s.log.Warn("dropping reference to missing object", "param", d.ID, "object", id)
				obj = nil
			} else if err != nil {
				return err
			}
			cache[id] = obj
		}
		if obj != nil && !model.AcceptsObject(d.TypeKey, obj.Kind) {
			s.log.Warn("dropping reference to object of the wrong kind",
				"param", d.ID, "type", d.TypeKey, "object", id, "kind", obj.Kind)
			d.Object = nil
			continue
		}
		d.Object = obj
	}
	return nil
}

func scanHistory(row scanner) (HistoryEntry, error) {
	var e HistoryEntry
	var listID, snapshot, createdAt string
	if err := row.Scan(&e.ID, &listID, &e.Action, &snapshot, &createdAt); err != nil {
		return e, err
	}
	e.ListID = model.ListID(listID)
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if err := json.Unmarshal([]byte(snapshot), &e.Before); err != nil {
		return e, fmt.Errorf("decode snapshot: %w", err)
	}
	return e, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}
