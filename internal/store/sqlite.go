package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/paramlist/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy io.Reader
	log     *slog.Logger
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
		log:     slog.Default(),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// SetLogger replaces the store's logger.
func (s *SQLiteStore) SetLogger(l *slog.Logger) {
	if l != nil {
		s.log = l
	}
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lists (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		comment    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS objects (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects(kind);

	CREATE TABLE IF NOT EXISTS parameters (
		list_id   TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		param_id  TEXT NOT NULL,
		type_key  TEXT NOT NULL DEFAULT '',
		comment   TEXT NOT NULL DEFAULT '',
		data      TEXT NOT NULL,
		object_id TEXT REFERENCES objects(id),
		PRIMARY KEY (list_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_parameters_param_id ON parameters(param_id);

	CREATE TABLE IF NOT EXISTS history (
		id         TEXT PRIMARY KEY,
		list_id    TEXT NOT NULL REFERENCES lists(id) ON DELETE CASCADE,
		action     TEXT NOT NULL,
		snapshot   TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_list ON history(list_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *SQLiteStore) CreateList(ctx context.Context, p CreateListParams) (*ListRecord, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	l := model.NewList()
	l.SetComment(p.Comment)
	rec := &ListRecord{Name: name, List: l}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.insertList(ctx, tx, rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SQLiteStore) insertList(ctx context.Context, q querier, rec *ListRecord) error {
	var exists int
	q.QueryRowContext(ctx, `SELECT COUNT(*) FROM lists WHERE name = ?`, rec.Name).Scan(&exists)
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrListExists, rec.Name)
	}

	now := time.Now().UTC()
	rec.CreatedAt, rec.UpdatedAt = now, now
	_, err := q.ExecContext(ctx,
		`INSERT INTO lists (id, name, comment, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		string(rec.List.ID()), rec.Name, rec.List.Comment(),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert list: %w", err)
	}
	return s.writeParameters(ctx, q, rec.List)
}

func (s *SQLiteStore) GetList(ctx context.Context, name string) (*ListRecord, error) {
	return s.loadList(ctx, s.db, name)
}

func (s *SQLiteStore) loadList(ctx context.Context, q querier, name string) (*ListRecord, error) {
	var id, comment, createdAt, updatedAt string
	err := q.QueryRowContext(ctx,
		`SELECT id, comment, created_at, updated_at FROM lists WHERE name = ?`, name).
		Scan(&id, &comment, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrListNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT p.data, o.id, o.kind, o.name
		 FROM parameters p LEFT JOIN objects o ON o.id = p.object_id
		 WHERE p.list_id = ? ORDER BY p.seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap := model.Snapshot{ListID: model.ListID(id), Comment: comment}
	objects := map[string]*model.Object{}
	for rows.Next() {
		var data string
		var objID, objKind, objName sql.NullString
		if err := rows.Scan(&data, &objID, &objKind, &objName); err != nil {
			return nil, err
		}
		var d model.ParameterData
		if err := json.Unmarshal([]byte(data), &d); err != nil {
			return nil, fmt.Errorf("decode parameter: %w", err)
		}
		if objID.Valid {
			obj, ok := objects[objID.String]
			if !ok {
				obj = &model.Object{ID: objID.String, Kind: model.Kind(objKind.String), Name: objName.String}
				objects[objID.String] = obj
			}
			d.Object = obj
		}
		snap.Parameters = append(snap.Parameters, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rec := &ListRecord{Name: name, List: model.RestoreList(snap)}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

// saveList rewrites the stored parameters and comment of rec.
func (s *SQLiteStore) saveList(ctx context.Context, q querier, rec *ListRecord) error {
	now := time.Now().UTC()
	_, err := q.ExecContext(ctx,
		`UPDATE lists SET comment = ?, updated_at = ? WHERE id = ?`,
		rec.List.Comment(), now.Format(time.RFC3339), string(rec.List.ID()))
	if err != nil {
		return fmt.Errorf("update list: %w", err)
	}
	rec.UpdatedAt = now

	if _, err := q.ExecContext(ctx, `DELETE FROM parameters WHERE list_id = ?`, string(rec.List.ID())); err != nil {
		return fmt.Errorf("clear parameters: %w", err)
	}
	return s.writeParameters(ctx, q, rec.List)
}

func (s *SQLiteStore) writeParameters(ctx context.Context, q querier, l *model.List) error {
	for i, p := range l.Parameters() {
		d := p.Data()
		var objectID *string
		if d.Object != nil {
			id := d.Object.ID
			objectID = &id
			d.Object = nil
		}
		b, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("encode parameter %s: %w", p.Title(), err)
		}
		_, err = q.ExecContext(ctx,
			`INSERT INTO parameters (list_id, seq, param_id, type_key, comment, data, object_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			string(l.ID()), i, d.ID, d.TypeKey, d.Comment, string(b), objectID)
		if err != nil {
			return fmt.Errorf("insert parameter %s: %w", p.Title(), err)
		}
	}
	return nil
}

func (s *SQLiteStore) ListLists(ctx context.Context) ([]ListSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.name, l.comment, l.updated_at, COUNT(p.seq)
		FROM lists l LEFT JOIN parameters p ON p.list_id = l.id
		GROUP BY l.id ORDER BY l.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListSummary
	for rows.Next() {
		var ls ListSummary
		var id, updatedAt string
		if err := rows.Scan(&id, &ls.Name, &ls.Comment, &updatedAt, &ls.Parameters); err != nil {
			return nil, err
		}
		ls.ID = model.ListID(id)
		ls.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		out = append(out, ls)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteList(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE name = ?`, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrListNotFound, name)
	}
	return nil
}

func (s *SQLiteStore) DuplicateList(ctx context.Context, p DuplicateParams) (*ListRecord, error) {
	to := strings.TrimSpace(p.To)
	if to == "" {
		return nil, ErrInvalidName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	src, err := s.loadList(ctx, tx, p.From)
	if err != nil {
		return nil, err
	}

	dup := &ListRecord{Name: to, List: src.List.Duplicate()}
	if err := s.insertList(ctx, tx, dup); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return dup, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
