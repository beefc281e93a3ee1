package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	domainerrors "github.com/inkwellapp/inkwell-server/internal/errors"
	"github.com/inkwellapp/inkwell-server/internal/id"
	"github.com/inkwellapp/inkwell-server/internal/store"
)

// DomainService manages a user's subject-area domains.
type DomainService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDomainService creates a new domain catalog service.
func NewDomainService(store store.Store, logger *slog.Logger) *DomainService {
	return &DomainService{store: store, logger: logger}
}

// CreateDomainRequest contains new-domain data.
type CreateDomainRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"is_public"`
}

// UpdateDomainRequest contains updated domain data.
type UpdateDomainRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	IsPublic    bool   `json:"is_public"`
}

// ListDomainsQuery carries the list parameters for a domain listing.
type ListDomainsQuery struct {
	Params   store.PageParams
	IsPublic *bool
	Search   string
}

// Create makes a new domain owned by the user.
func (s *DomainService) Create(ctx context.Context, userID string, req CreateDomainRequest) (*domain.Domain, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	domainID, err := id.Generate("dom")
	if err != nil {
		return nil, fmt.Errorf("generate domain ID: %w", err)
	}

	d := &domain.Domain{
		ID:          domainID,
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	d.InitTimestamps()

	if err := s.store.CreateDomain(ctx, d); err != nil {
		return nil, fmt.Errorf("create domain: %w", err)
	}
	return d, nil
}

// Get fetches one of the user's domains. Domains owned by other users are
// reported as not found, indistinguishable from absent ones.
func (s *DomainService) Get(ctx context.Context, userID, domainID string) (*domain.Domain, error) {
	d, err := s.store.GetDomain(ctx, domainID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("domain not found")
		}
		return nil, fmt.Errorf("get domain: %w", err)
	}
	if d.UserID != userID {
		return nil, domainerrors.NotFound("domain not found")
	}
	return d, nil
}

// Update replaces the mutable fields of one of the user's domains.
func (s *DomainService) Update(ctx context.Context, userID, domainID string, req UpdateDomainRequest) (*domain.Domain, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	d, err := s.Get(ctx, userID, domainID)
	if err != nil {
		return nil, err
	}

	d.Name = req.Name
	d.Description = req.Description
	d.IsPublic = req.IsPublic
	d.Touch()

	if err := s.store.UpdateDomain(ctx, d); err != nil {
		return nil, fmt.Errorf("update domain: %w", err)
	}
	return d, nil
}

// Delete removes one of the user's domains along with every note in it.
func (s *DomainService) Delete(ctx context.Context, userID, domainID string) error {
	if _, err := s.Get(ctx, userID, domainID); err != nil {
		return err
	}
	if err := s.store.DeleteDomain(ctx, domainID); err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("Domain deleted", "domain_id", domainID, "user_id", userID)
	}
	return nil
}

// List returns one page of the user's domains.
func (s *DomainService) List(ctx context.Context, userID string, q ListDomainsQuery) (*store.Page[*domain.Domain], error) {
	filters := store.Filter{}
	if q.IsPublic != nil {
		filters["is_public"] = *q.IsPublic
	}
	if q.Search != "" {
		filters["search"] = q.Search
	}

	page, err := s.store.ListDomains(ctx, userID, q.Params, filters)
	if err != nil {
		return nil, fmt.Errorf("list domains: %w", err)
	}
	return page, nil
}
