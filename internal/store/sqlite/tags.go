package sqlite

import (
	"context"
	"database/sql"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// tagColumns must match the scan order in scanTag.
const tagColumns = `id, user_id, name, created_at, updated_at`

// tagSortColumns whitelists sortable fields for tag listings.
var tagSortColumns = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"name":       "name",
}

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag

	var createdAt, updatedAt string

	err := scanner.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// CreateTag inserts a new tag.
// Returns store.ErrAlreadyExists if the user already owns a tag with the
// same name; the UNIQUE(user_id, name) constraint is the authority.
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID,
		tag.UserID,
		tag.Name,
		formatTime(tag.CreatedAt),
		formatTime(tag.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a tag by ID.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) GetTag(ctx context.Context, id string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, id)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTag renames an existing tag.
// Returns store.ErrNotFound if the tag does not exist and
// store.ErrAlreadyExists if the new name collides with another of the
// user's tags.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		tag.Name,
		formatTime(tag.UpdatedAt),
		tag.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
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

// DeleteTag removes a tag. Note associations are removed by the
// ON DELETE CASCADE foreign key; notes themselves are untouched.
// Returns store.ErrNotFound if the tag does not exist.
func (s *Store) DeleteTag(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
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

// ListTags returns one page of the user's tags.
func (s *Store) ListTags(ctx context.Context, userID string, params store.PageParams) (*store.Page[*domain.Tag], error) {
	params.Normalize()

	total, err := s.countQuery(ctx, `SELECT COUNT(*) FROM tags WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}

	orderBy := store.ParseSort(params.Sort, tagSortColumns, "created_at", "id")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE user_id = ? ORDER BY `+orderBy+` LIMIT ? OFFSET ?`,
		userID, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*domain.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(tags, total, params), nil
}
