package sqlite

import (
	"context"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// CreateSubscription inserts a follower edge.
// Returns store.ErrAlreadyExists if the edge already exists.
func (s *Store) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (subscriber_id, author_id, created_at)
		VALUES (?, ?, ?)`,
		sub.SubscriberID,
		sub.AuthorID,
		formatTime(sub.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// DeleteSubscription removes a follower edge.
// Returns store.ErrNotFound if the edge does not exist.
func (s *Store) DeleteSubscription(ctx context.Context, subscriberID, authorID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = ? AND author_id = ?`,
		subscriberID, authorID)
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

// SubscriptionExists reports whether the subscriber follows the author.
func (s *Store) SubscriptionExists(ctx context.Context, subscriberID, authorID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE subscriber_id = ? AND author_id = ?)`,
		subscriberID, authorID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists != 0, nil
}

// ListSubscribedAuthors returns one page of the users the subscriber
// follows, ordered by follow time then user ID.
func (s *Store) ListSubscribedAuthors(ctx context.Context, subscriberID string, params store.PageParams) (*store.Page[*domain.User], error) {
	return s.listSubscriptionUsers(ctx, subscriberID, "subscriber_id", "author_id", params)
}

// ListSubscribers returns one page of the users following the author,
// ordered by follow time then user ID.
func (s *Store) ListSubscribers(ctx context.Context, authorID string, params store.PageParams) (*store.Page[*domain.User], error) {
	return s.listSubscriptionUsers(ctx, authorID, "author_id", "subscriber_id", params)
}

// listSubscriptionUsers pages over one side of the subscription edge,
// joining through to the user on the other side.
func (s *Store) listSubscriptionUsers(ctx context.Context, id, matchCol, joinCol string, params store.PageParams) (*store.Page[*domain.User], error) {
	params.Normalize()

	total, err := s.countQuery(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE `+matchCol+` = ?`, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.roles, u.created_at, u.updated_at
		FROM subscriptions s
		JOIN users u ON u.id = s.`+joinCol+`
		WHERE s.`+matchCol+` = ?
		ORDER BY s.created_at ASC, u.id ASC
		LIMIT ? OFFSET ?`,
		id, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return store.NewPage(users, total, params), nil
}
