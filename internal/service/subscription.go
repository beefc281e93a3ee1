package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// SubscriptionService manages the directed subscriber-author graph that
// gates the subscriber feed.
type SubscriptionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSubscriptionService creates a new subscription service.
func NewSubscriptionService(store store.Store, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{store: store, logger: logger}
}

// Subscribe creates a directed edge from the subscriber to the author.
// Self-subscription and duplicate edges are conflicts; the edge carries no
// reciprocity.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, authorID string) (*domain.Subscription, error) {
	if subscriberID == authorID {
		return nil, domainerrors.Conflict("cannot subscribe to yourself")
	}

	if _, err := s.store.GetUser(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("author not found")
		}
		return nil, fmt.Errorf("get author: %w", err)
	}

	sub := &domain.Subscription{
		SubscriberID: subscriberID,
		AuthorID:     authorID,
		CreatedAt:    time.Now(),
	}

	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("already subscribed")
		}
		return nil, fmt.Errorf("create subscription: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Subscription created", "subscriber_id", subscriberID, "author_id", authorID)
	}
	return sub, nil
}

// Unsubscribe removes the edge from the subscriber to the author.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID string) error {
	err := s.store.DeleteSubscription(ctx, subscriberID, authorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("subscription not found")
		}
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}

// IsSubscribed reports whether the subscriber currently follows the author.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID, authorID string) (bool, error) {
	exists, err := s.store.SubscriptionExists(ctx, subscriberID, authorID)
	if err != nil {
		return false, fmt.Errorf("check subscription: %w", err)
	}
	return exists, nil
}

// ListAuthors returns one page of the authors the user subscribes to,
// oldest subscription first.
func (s *SubscriptionService) ListAuthors(ctx context.Context, subscriberID string, params store.PageParams) (*store.Page[*domain.User], error) {
	page, err := s.store.ListSubscribedAuthors(ctx, subscriberID, params)
	if err != nil {
		return nil, fmt.Errorf("list subscribed authors: %w", err)
	}
	return page, nil
}

// ListSubscribers returns one page of the users subscribed to the author,
// oldest subscription first.
func (s *SubscriptionService) ListSubscribers(ctx context.Context, authorID string, params store.PageParams) (*store.Page[*domain.User], error) {
	page, err := s.store.ListSubscribers(ctx, authorID, params)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return page, nil
}
