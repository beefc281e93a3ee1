package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

func (s *Server) registerSubscriptionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "subscribe",
		Method:        http.MethodPost,
		Path:          "/api/v1/subscriptions",
		Summary:       "Subscribe to author",
		Description:   "Creates a subscription from the current user to an author",
		Tags:          []string{"Subscriptions"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleSubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID: "unsubscribe",
		Method:      http.MethodDelete,
		Path:        "/api/v1/subscriptions/{authorId}",
		Summary:     "Unsubscribe from author",
		Description: "Removes the current user's subscription to an author",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnsubscribe)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscribedAuthors",
		Method:      http.MethodGet,
		Path:        "/api/v1/subscriptions/authors",
		Summary:     "List subscribed authors",
		Description: "Returns the authors the current user subscribes to",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscribedAuthors)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSubscribers",
		Method:      http.MethodGet,
		Path:        "/api/v1/subscriptions/subscribers",
		Summary:     "List subscribers",
		Description: "Returns the users subscribed to the current user",
		Tags:        []string{"Subscriptions"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSubscribers)
}

// === DTOs ===

// SubscribeRequest is the request body for creating a subscription.
type SubscribeRequest struct {
	AuthorID string `json:"author_id" validate:"required" doc:"Author user ID to subscribe to"`
}

// SubscribeInput wraps the subscribe request for Huma.
type SubscribeInput struct {
	Body SubscribeRequest
}

// SubscriptionResponse contains subscription data in API responses.
type SubscriptionResponse struct {
	AuthorID  string    `json:"author_id" doc:"Author user ID"`
	CreatedAt time.Time `json:"created_at" doc:"Subscription time"`
}

// SubscriptionOutput wraps the subscription response for Huma.
type SubscriptionOutput struct {
	Body SubscriptionResponse
}

// UnsubscribeInput contains the author ID path parameter.
type UnsubscribeInput struct {
	AuthorID string `path:"authorId" doc:"Author user ID"`
}

// SubscriptionUserResponse is the user projection in subscription listings.
type SubscriptionUserResponse struct {
	ID       string `json:"id" doc:"User ID"`
	Username string `json:"username" doc:"Username"`
}

// ListSubscriptionUsersInput contains parameters for subscription listings.
type ListSubscriptionUsersInput struct {
	PageInput
}

// ListSubscriptionUsersOutput wraps a user list for Huma.
type ListSubscriptionUsersOutput struct {
	Body PageResponse[SubscriptionUserResponse]
}

// === Handlers ===

func (s *Server) handleSubscribe(ctx context.Context, input *SubscribeInput) (*SubscriptionOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sub, err := s.services.Subscription.Subscribe(ctx, userID, input.Body.AuthorID)
	if err != nil {
		return nil, err
	}
	return &SubscriptionOutput{Body: SubscriptionResponse{
		AuthorID:  sub.AuthorID,
		CreatedAt: sub.CreatedAt,
	}}, nil
}

func (s *Server) handleUnsubscribe(ctx context.Context, input *UnsubscribeInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Subscription.Unsubscribe(ctx, userID, input.AuthorID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Unsubscribed"}}, nil
}

func (s *Server) handleListSubscribedAuthors(ctx context.Context, input *ListSubscriptionUsersInput) (*ListSubscriptionUsersOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Subscription.ListAuthors(ctx, userID, input.params())
	if err != nil {
		return nil, err
	}
	return &ListSubscriptionUsersOutput{Body: mapPage(page, mapSubscriptionUser)}, nil
}

func (s *Server) handleListSubscribers(ctx context.Context, input *ListSubscriptionUsersInput) (*ListSubscriptionUsersOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Subscription.ListSubscribers(ctx, userID, input.params())
	if err != nil {
		return nil, err
	}
	return &ListSubscriptionUsersOutput{Body: mapPage(page, mapSubscriptionUser)}, nil
}

// === Helpers ===

func mapSubscriptionUser(u *domain.User) SubscriptionUserResponse {
	return SubscriptionUserResponse{ID: u.ID, Username: u.Username}
}
