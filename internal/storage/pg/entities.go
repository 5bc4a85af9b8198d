package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/yogeshrakate/skill-matrix-backend/internal/domain"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
)

// Admin entity CRUD. Queries are assembled from the static entity registry:
// table and column identifiers come from descriptors (quoted defensively with
// pq.QuoteIdentifier), values always travel as placeholders.

func (s *Storage) CreateEntity(ctx context.Context, desc domain.EntityDescriptor, rec domain.EntityRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	columns := make([]string, 0, len(desc.Columns)+1)
	placeholders := make([]string, 0, len(desc.Columns)+1)
	args := make([]interface{}, 0, len(desc.Columns)+1)

	columns = append(columns, "id")
	placeholders = append(placeholders, "$1")
	args = append(args, rec.Id)

	for i, col := range desc.Columns {
		columns = append(columns, pq.QuoteIdentifier(col))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, rec.Values[col])
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		pq.QuoteIdentifier(desc.Table), strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert %s: %w", desc.Tag, err)
		}
		return nil
	})
}

func (s *Storage) EntityById(ctx context.Context, desc domain.EntityDescriptor, id string) (domain.EntityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1",
		selectColumns(desc), pq.QuoteIdentifier(desc.Table))

	rec, err := scanEntity(s.db.QueryRowContext(ctx, query, id), desc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EntityRecord{}, entityNotFound(desc)
		}
		return domain.EntityRecord{}, fmt.Errorf("failed to query %s: %w", desc.Tag, err)
	}
	return rec, nil
}

func (s *Storage) ListEntities(ctx context.Context, desc domain.EntityDescriptor, offset, limit int) ([]domain.EntityRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY created_at, id OFFSET $1 LIMIT $2",
		selectColumns(desc), pq.QuoteIdentifier(desc.Table))

	rows, err := s.db.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", desc.Tag, err)
	}
	defer rows.Close()

	var records []domain.EntityRecord
	for rows.Next() {
		rec, err := scanEntity(rows, desc)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", desc.Tag, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Storage) UpdateEntity(ctx context.Context, desc domain.EntityDescriptor, rec domain.EntityRecord) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	assignments := make([]string, 0, len(desc.Columns))
	args := make([]interface{}, 0, len(desc.Columns)+1)
	for i, col := range desc.Columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), i+1))
		args = append(args, rec.Values[col])
	}
	args = append(args, rec.Id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		pq.QuoteIdentifier(desc.Table), strings.Join(assignments, ", "), len(desc.Columns)+1)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", desc.Tag, err)
		}
		return requireRowAffected(result, notFoundMessage(desc))
	})
}

func (s *Storage) DeleteEntity(ctx context.Context, desc domain.EntityDescriptor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", pq.QuoteIdentifier(desc.Table))

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", desc.Tag, err)
		}
		return requireRowAffected(result, notFoundMessage(desc))
	})
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func selectColumns(desc domain.EntityDescriptor) string {
	cols := make([]string, 0, len(desc.Columns)+1)
	cols = append(cols, "id")
	for _, col := range desc.Columns {
		cols = append(cols, pq.QuoteIdentifier(col))
	}
	return strings.Join(cols, ", ")
}

func scanEntity(row rowScanner, desc domain.EntityDescriptor) (domain.EntityRecord, error) {
	values := make([]string, len(desc.Columns))
	dest := make([]interface{}, 0, len(desc.Columns)+1)

	var id string
	dest = append(dest, &id)
	for i := range values {
		dest = append(dest, &values[i])
	}

	if err := row.Scan(dest...); err != nil {
		return domain.EntityRecord{}, err
	}

	rec := domain.EntityRecord{Id: id, Values: make(map[string]string, len(desc.Columns))}
	for i, col := range desc.Columns {
		rec.Values[col] = values[i]
	}
	return rec, nil
}

func notFoundMessage(desc domain.EntityDescriptor) string {
	return fmt.Sprintf("%s not found", desc.Tag)
}

func entityNotFound(desc domain.EntityDescriptor) error {
	return &internal_errors.ErrorWithStatusCode{Message: notFoundMessage(desc), StatusCode: http.StatusNotFound}
}
