package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"lingua-cms/internal/domain/entity"
	"lingua-cms/internal/repository"
)

// Table describes how one aggregate kind maps onto its table.
// Columns lists the kind-specific columns besides id, link_id and the timestamps;
// Fields and Values return scan targets and arguments in the same order.
type Table[A entity.Aggregate] struct {
	Name    string
	Columns []string
	New     func() A
	Base    func(A) *entity.Localized
	// Link is nil for kinds without a link. Otherwise the row carries link_id
	// and reads join the links table.
	Link   func(A) *entity.LinkRef
	Fields func(A) []any
	Values func(A) []any
}

// AggregateRepo implements repository.AggregateRepository for a Table.
type AggregateRepo[A entity.Aggregate] struct {
	s         *Store
	t         Table[A]
	selectSQL string
}

// Aggregates returns the repository for the kind t describes.
func Aggregates[A entity.Aggregate](s *Store, t Table[A]) *AggregateRepo[A] {
	var b strings.Builder
	b.WriteString("SELECT x.id, x.created_at, x.updated_at")
	for _, c := range t.Columns {
		b.WriteString(", x.")
		b.WriteString(c)
	}
	if t.Link != nil {
		b.WriteString(", l.id, l.name, l.url, l.scope, l.created_at, l.updated_at")
	}
	b.WriteString(" FROM ")
	b.WriteString(t.Name)
	b.WriteString(" x")
	if t.Link != nil {
		b.WriteString(" JOIN links l ON l.id = x.link_id")
	}
	return &AggregateRepo[A]{s: s, t: t, selectSQL: b.String()}
}

var _ repository.AggregateRepository[*entity.Post] = (*AggregateRepo[*entity.Post])(nil)

func (r *AggregateRepo[A]) scan(row interface{ Scan(...any) error }) (A, error) {
	agg := r.t.New()
	base := r.t.Base(agg)
	dest := []any{&base.ID, &base.CreatedAt, &base.UpdatedAt}
	dest = append(dest, r.t.Fields(agg)...)

	var link entity.Link
	if r.t.Link != nil {
		dest = append(dest, &link.ID, &link.Name, &link.URL, &link.Scope, &link.CreatedAt, &link.UpdatedAt)
	}
	if err := row.Scan(dest...); err != nil {
		var zero A
		return zero, err
	}
	if r.t.Link != nil {
		r.t.Link(agg).SetLink(&link)
	}
	return agg, nil
}

func (r *AggregateRepo[A]) Get(ctx context.Context, id uuid.UUID) (A, bool, error) {
	agg, err := r.scan(r.s.queryRow(ctx, r.selectSQL+" WHERE x.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return agg, false, nil
	}
	if err != nil {
		return agg, false, fmt.Errorf("Get: %w", err)
	}
	return agg, true, nil
}

func (r *AggregateRepo[A]) List(ctx context.Context) ([]A, error) {
	rows, err := r.s.query(ctx, r.selectSQL+" ORDER BY x.created_at, x.id")
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]A, 0, 16)
	for rows.Next() {
		agg, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		out = append(out, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return out, nil
}

// writeColumns lists the columns Create and Update write besides id and created_at.
func (r *AggregateRepo[A]) writeColumns() []string {
	cols := make([]string, 0, len(r.t.Columns)+2)
	if r.t.Link != nil {
		cols = append(cols, "link_id")
	}
	cols = append(cols, r.t.Columns...)
	return append(cols, "updated_at")
}

func (r *AggregateRepo[A]) writeValues(agg A) []any {
	vals := make([]any, 0, len(r.t.Columns)+2)
	if r.t.Link != nil {
		vals = append(vals, r.t.Link(agg).LinkID())
	}
	vals = append(vals, r.t.Values(agg)...)
	return append(vals, r.t.Base(agg).UpdatedAt.UTC())
}

func (r *AggregateRepo[A]) Create(ctx context.Context, agg A) error {
	base := r.t.Base(agg)
	cols := append([]string{"id", "created_at"}, r.writeColumns()...)
	args := append([]any{base.ID, base.CreatedAt.UTC()}, r.writeValues(agg)...)

	query := "INSERT INTO " + r.t.Name + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders(len(cols)) + ")"
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *AggregateRepo[A]) Update(ctx context.Context, agg A) error {
	cols := r.writeColumns()
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	args := append(r.writeValues(agg), r.t.Base(agg).ID)

	query := "UPDATE " + r.t.Name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	return nil
}

func (r *AggregateRepo[A]) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.s.exec(ctx, "DELETE FROM "+r.t.Name+" WHERE id = ?", id); err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
