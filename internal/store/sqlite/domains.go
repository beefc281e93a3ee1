package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// domainColumns is the ordered list of columns selected in domain queries.
// Must match the scan order in scanDomain.
const domainColumns = `id, user_id, name, description, is_public, created_at, updated_at`

// domainFilterColumns maps list filter keys to their columns.
var domainFilterColumns = map[string][]string{
	"is_public": {"is_public"},
	"search":    {"name", "description"},
}

// domainSortColumns whitelists sortable fields for domain listings.
var domainSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
}

// scanDomain scans a sql.Row (or sql.Rows via its Scan method) into a domain.Domain.
func scanDomain(scanner interface{ Scan(dest ...any) error }) (*domain.Domain, error) {
	var d domain.Domain

	var (
		isPublic  int
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.Description,
		&isPublic,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.IsPublic = isPublic != 0

	d.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	d.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// CreateDomain inserts a new domain.
func (s *Store) CreateDomain(ctx context.Context, d *domain.Domain) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domains (id, user_id, name, description, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.UserID,
		d.Name,
		d.Description,
		boolToInt(d.IsPublic),
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetDomain retrieves a domain by ID.
// Returns store.ErrNotFound if the domain does not exist.
func (s *Store) GetDomain(ctx context.Context, id string) (*domain.Domain, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE id = ?`, id)

	d, err := scanDomain(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDomain performs a full row update on an existing domain.
// Returns store.ErrNotFound if the domain does not exist.
func (s *Store) UpdateDomain(ctx context.Context, d *domain.Domain) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE domains SET
			name = ?,
			description = ?,
			is_public = ?,
			updated_at = ?
		WHERE id = ?`,
		d.Name,
		d.Description,
		boolToInt(d.IsPublic),
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteDomain removes a domain. Notes in the domain are removed by the
// ON DELETE CASCADE foreign key.
// Returns store.ErrNotFound if the domain does not exist.
func (s *Store) DeleteDomain(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM domains WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListDomains returns one page of the user's domains.
func (s *Store) ListDomains(ctx context.Context, userID string, params store.PageParams, filters store.Filter) (*store.Page[*domain.Domain], error) {
	params.Normalize()

	where := []string{"user_id = ?"}
	args := []any{userID}

	clauses, filterArgs := store.BuildFilter(filters, domainFilterColumns)
	where = append(where, clauses...)
	args = append(args, filterArgs...)

	whereSQL := " WHERE " + strings.Join(where, " AND ")

	total, err := s.countQuery(ctx, `SELECT COUNT(*) FROM domains`+whereSQL, args...)
	if err != nil {
		return nil, err
	}

	orderBy := store.ParseSort(params.Sort, domainSortColumns, "created_at", "id")
	query := `SELECT ` + domainColumns + ` FROM domains` + whereSQL +
		` ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`
	args = append(args, params.Limit, params.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var domains []*domain.Domain
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(domains, total, params), nil
}
