package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/paramlist/internal/model"
)

// SearchParams holds parameters for searching parameters across lists.
type SearchParams struct {
	List    string
	Query   string
	TypeKey string
	Limit   int
}

// SearchResult is a matching parameter and its position in its list.
type SearchResult struct {
	List      string              `json:"list"`
	Index     int                 `json:"index"`
	Parameter model.ParameterData `json:"parameter"`
}

// Search finds parameters whose id or comment contains the query substring.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	query := "%" + likeEscaper.Replace(p.Query) + "%"
	where := []string{`(p.param_id LIKE ? ESCAPE '\' OR p.comment LIKE ? ESCAPE '\')`}
	args := []interface{}{query, query}

	if p.List != "" {
		where = append(where, "l.name = ?")
		args = append(args, p.List)
	}
	if p.TypeKey != "" {
		where = append(where, "p.type_key = ?")
		args = append(args, p.TypeKey)
	}

	sql := fmt.Sprintf(`
		SELECT l.name, p.seq, p.data, o.id, o.kind, o.name
		FROM parameters p
		JOIN lists l ON l.id = p.list_id
		LEFT JOIN objects o ON o.id = p.object_id
		WHERE %s
		ORDER BY l.name, p.seq
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var data string
		var objID, objKind, objName *string
		if err := rows.Scan(&r.List, &r.Index, &data, &objID, &objKind, &objName); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &r.Parameter); err != nil {
			return nil, fmt.Errorf("decode parameter: %w", err)
		}
		if objID != nil {
			r.Parameter.Object = &model.Object{ID: *objID, Kind: model.Kind(deref(objKind)), Name: deref(objName)}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
