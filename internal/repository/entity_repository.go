package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/eduverse/portal-api/internal/query"
	"github.com/eduverse/portal-api/internal/schema"
)

// EntityRepository executes the four storage operations for one entity kind,
// deriving every query from the entity's schema. The type parameter is the
// row model the results scan into.
type EntityRepository[T any] struct {
	db     *sqlx.DB
	entity schema.Entity
}

// NewEntityRepository constructs a repository for the entity.
func NewEntityRepository[T any](db *sqlx.DB, entity schema.Entity) *EntityRepository[T] {
	return &EntityRepository[T]{db: db, entity: entity}
}

// GetByID fetches a single record. sql.ErrNoRows passes through for the
// caller to classify.
func (r *EntityRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.selectColumns(), r.entity.Table)
	var row T
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns records matching the filter descriptor, in the entity's
// fixed sort order.
func (r *EntityRepository[T]) List(ctx context.Context, f query.Filter) ([]T, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if f.Search != "" {
		clauses := make([]string, 0, len(r.entity.SearchFields))
		arg := len(args) + 1
		for _, name := range r.entity.SearchFields {
			field, ok := r.entity.Field(name)
			if !ok {
				continue
			}
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE $%d", field.Column, arg))
		}
		if len(clauses) > 0 {
			conditions = append(conditions, "("+strings.Join(clauses, " OR ")+")")
			args = append(args, "%"+escapeLike(strings.ToLower(f.Search))+"%")
		}
	}

	for _, m := range f.Equals {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", m.Field.Column, len(args)+1))
		args = append(args, m.Value)
	}

	q := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		r.selectColumns(), r.entity.Table, strings.Join(conditions, " AND "),
		r.orderBy(), f.Limit, f.Offset)

	var rows []T
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity.Name, err)
	}
	return rows, nil
}

// Insert writes a sanitized create record and returns the store-assigned
// identifier. The record never carries a caller-supplied id.
func (r *EntityRepository[T]) Insert(ctx context.Context, record map[string]interface{}) (int64, error) {
	cols := make([]string, 0, len(r.entity.Fields))
	placeholders := make([]string, 0, len(r.entity.Fields))
	args := make([]interface{}, 0, len(r.entity.Fields))

	for _, field := range r.entity.Fields {
		value, ok := record[field.Name]
		if !ok {
			continue
		}
		cols = append(cols, field.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, value)
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		r.entity.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id int64
	if err := r.db.GetContext(ctx, &id, q, args...); err != nil {
		return 0, fmt.Errorf("insert %s: %w", r.entity.Name, err)
	}
	return id, nil
}

// Update writes a sanitized partial patch. An empty patch is a no-op.
func (r *EntityRepository[T]) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	sets := make([]string, 0, len(patch))
	args := make([]interface{}, 0, len(patch)+1)

	for _, field := range r.entity.Fields {
		value, ok := patch[field.Name]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", field.Column, len(args)+1))
		args = append(args, value)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		r.entity.Table, strings.Join(sets, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update %s: %w", r.entity.Name, err)
	}
	return nil
}

// Delete removes a record by identifier.
func (r *EntityRepository[T]) Delete(ctx context.Context, id int64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.entity.Table)
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete %s: %w", r.entity.Name, err)
	}
	return nil
}

// escapeLike keeps LIKE metacharacters in the search term literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *EntityRepository[T]) selectColumns() string {
	return strings.Join(r.entity.Columns(), ", ")
}

func (r *EntityRepository[T]) orderBy() string {
	keys := make([]string, 0, len(r.entity.Sort))
	for _, s := range r.entity.Sort {
		direction := "ASC"
		if s.Desc {
			direction = "DESC"
		}
		keys = append(keys, s.Column+" "+direction)
	}
	return strings.Join(keys, ", ")
}
