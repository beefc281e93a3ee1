package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// noteColumns is the ordered list of columns selected in note queries.
// Author username is denormalized in via a join; must match scanNote.
const noteColumns = `n.id, n.user_id, n.domain_id, n.title, n.content, n.access_type,
	n.created_at, n.updated_at, u.username`

const noteFrom = ` FROM notes n JOIN users u ON u.id = n.user_id`

// noteFilterColumns maps list filter keys to their columns. tag_id is
// handled separately through the note_tags join table.
var noteFilterColumns = map[string][]string{
	"domain_id":   {"n.domain_id"},
	"author_id":   {"n.user_id"},
	"access_type": {"n.access_type"},
	"search":      {"n.title", "n.content"},
	"from_date":   {"n.created_at"},
	"to_date":     {"n.created_at"},
}

// noteSortColumns whitelists sortable fields for note listings.
var noteSortColumns = map[string]string{
	"created_at": "n.created_at",
	"updated_at": "n.updated_at",
	"title":      "n.title",
}

// scanNote scans a sql.Row (or sql.Rows via its Scan method) into a domain.Note.
func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note

	var (
		accessType string
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&n.ID,
		&n.UserID,
		&n.DomainID,
		&n.Title,
		&n.Content,
		&accessType,
		&createdAt,
		&updatedAt,
		&n.AuthorUsername,
	)
	if err != nil {
		return nil, err
	}

	n.AccessType = domain.AccessType(accessType)

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// CreateNote inserts a note and its tag associations in one transaction.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, user_id, domain_id, title, content, access_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.UserID,
		note.DomainID,
		note.Title,
		note.Content,
		string(note.AccessType),
		formatTime(note.CreatedAt),
		formatTime(note.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}

	if err := insertNoteTags(ctx, tx, note.ID, note.TagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// insertNoteTags writes the note's tag associations.
func insertNoteTags(ctx context.Context, tx *sql.Tx, noteID string, tagIDs []string) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)`,
			noteID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// GetNote retrieves a note by ID with its tag IDs and author username.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+noteFrom+` WHERE n.id = ?`, id)

	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	tags, err := s.loadNoteTagIDs(ctx, []string{n.ID})
	if err != nil {
		return nil, err
	}
	n.TagIDs = tags[n.ID]

	return n, nil
}

// UpdateNote performs a full row update and replaces the tag associations.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) UpdateNote(ctx context.Context, note *domain.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE notes SET
			domain_id = ?,
			title = ?,
			content = ?,
			access_type = ?,
			updated_at = ?
		WHERE id = ?`,
		note.DomainID,
		note.Title,
		note.Content,
		string(note.AccessType),
		formatTime(note.UpdatedAt),
		note.ID,
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

	// Replace tag associations wholesale.
	if _, err := tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, note.ID); err != nil {
		return err
	}
	if err := insertNoteTags(ctx, tx, note.ID, note.TagIDs); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteNote removes a note. Tag associations are removed by the
// ON DELETE CASCADE foreign key; tags and domain are left intact.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
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

// ListNotes returns one page of notes visible under the query's scope.
//
// Visibility predicates per scope:
//   - own: every note authored by the viewer
//   - public: access_type = 'public' across all authors
//   - subscribers: access_type = 'subscribers' from authors the viewer follows
func (s *Store) ListNotes(ctx context.Context, q store.NoteQuery) (*store.Page[*domain.Note], error) {
	q.Params.Normalize()

	var where []string
	var args []any

	switch q.Scope {
	case store.ScopeOwn:
		where = append(where, "n.user_id = ?")
		args = append(args, q.ViewerID)
	case store.ScopePublic:
		where = append(where, "n.access_type = ?")
		args = append(args, string(domain.AccessPublic))
	case store.ScopeSubscribers:
		where = append(where,
			"n.access_type = ?",
			"EXISTS (SELECT 1 FROM subscriptions sub WHERE sub.subscriber_id = ? AND sub.author_id = n.user_id)")
		args = append(args, string(domain.AccessSubscribers), q.ViewerID)
	default:
		return nil, fmt.Errorf("unknown note scope %q", q.Scope)
	}

	// tag_id filters through the join table; the rest are plain columns.
	filters := q.Filters
	for _, key := range []string{"from_date", "to_date"} {
		if t, ok := filters[key].(time.Time); ok {
			filters = cloneWithout(filters, key)
			filters[key] = formatTime(t)
		}
	}
	if tagID, ok := filters["tag_id"]; ok && tagID != nil {
		where = append(where, "EXISTS (SELECT 1 FROM note_tags nt WHERE nt.note_id = n.id AND nt.tag_id = ?)")
		args = append(args, tagID)
		filters = cloneWithout(filters, "tag_id")
	}

	clauses, filterArgs := store.BuildFilter(filters, noteFilterColumns)
	where = append(where, clauses...)
	args = append(args, filterArgs...)

	whereSQL := " WHERE " + strings.Join(where, " AND ")

	total, err := s.countQuery(ctx, `SELECT COUNT(*)`+noteFrom+whereSQL, args...)
	if err != nil {
		return nil, err
	}

	orderBy := store.ParseSort(q.Params.Sort, noteSortColumns, "n.created_at", "n.id")
	query := `SELECT ` + noteColumns + noteFrom + whereSQL +
		` ORDER BY ` + orderBy + ` LIMIT ? OFFSET ?`
	args = append(args, q.Params.Limit, q.Params.Offset())

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.Note
	var noteIDs []string
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
		noteIDs = append(noteIDs, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach tag IDs in one batch query.
	tags, err := s.loadNoteTagIDs(ctx, noteIDs)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.TagIDs = tags[n.ID]
	}

	return store.NewPage(notes, total, q.Params), nil
}

// loadNoteTagIDs returns the tag IDs for each of the given notes.
// Every requested note gets an entry, empty when it has no tags.
func (s *Store) loadNoteTagIDs(ctx context.Context, noteIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(noteIDs))
	if len(noteIDs) == 0 {
		return result, nil
	}
	for _, id := range noteIDs {
		result[id] = []string{}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(noteIDs)), ", ")
	args := make([]any, len(noteIDs))
	for i, id := range noteIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT nt.note_id, nt.tag_id FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id IN (`+placeholders+`)
		ORDER BY t.name ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var noteID, tagID string
		if err := rows.Scan(&noteID, &tagID); err != nil {
			return nil, err
		}
		result[noteID] = append(result[noteID], tagID)
	}
	return result, rows.Err()
}

// cloneWithout copies a filter map minus one key.
func cloneWithout(filters store.Filter, key string) store.Filter {
	out := make(store.Filter, len(filters))
	for k, v := range filters {
		if k != key {
			out[k] = v
		}
	}
	return out
}
