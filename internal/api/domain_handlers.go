package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/inkwellapp/inkwell-server/internal/domain"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

func (s *Server) registerDomainRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDomains",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains",
		Summary:     "List domains",
		Description: "Returns the current user's domains",
		Tags:        []string{"Domains"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListDomains)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createDomain",
		Method:        http.MethodPost,
		Path:          "/api/v1/domains",
		Summary:       "Create domain",
		Description:   "Creates a new domain",
		Tags:          []string{"Domains"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateDomain)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDomain",
		Method:      http.MethodGet,
		Path:        "/api/v1/domains/{id}",
		Summary:     "Get domain",
		Description: "Returns a domain by ID",
		Tags:        []string{"Domains"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetDomain)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateDomain",
		Method:      http.MethodPut,
		Path:        "/api/v1/domains/{id}",
		Summary:     "Update domain",
		Description: "Replaces a domain's mutable fields",
		Tags:        []string{"Domains"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateDomain)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteDomain",
		Method:      http.MethodDelete,
		Path:        "/api/v1/domains/{id}",
		Summary:     "Delete domain",
		Description: "Deletes a domain and every note in it",
		Tags:        []string{"Domains"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteDomain)
}

// === DTOs ===

// DomainRequest is the request body for creating or updating a domain.
type DomainRequest struct {
	Name        string `json:"name" validate:"required,max=100" doc:"Domain name"`
	Description string `json:"description,omitempty" validate:"max=1000" doc:"Domain description"`
	IsPublic    bool   `json:"is_public" doc:"Whether the domain is publicly listed"`
}

// DomainResponse contains domain data in API responses.
type DomainResponse struct {
	ID          string    `json:"id" doc:"Domain ID"`
	Name        string    `json:"name" doc:"Domain name"`
	Description string    `json:"description,omitempty" doc:"Domain description"`
	IsPublic    bool      `json:"is_public" doc:"Whether the domain is publicly listed"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updated_at" doc:"Last update time"`
}

// DomainOutput wraps the domain response for Huma.
type DomainOutput struct {
	Body DomainResponse
}

// CreateDomainInput wraps the create domain request for Huma.
type CreateDomainInput struct {
	Body DomainRequest
}

// DomainIDInput contains the domain ID path parameter.
type DomainIDInput struct {
	ID string `path:"id" doc:"Domain ID"`
}

// UpdateDomainInput wraps the update domain request for Huma.
type UpdateDomainInput struct {
	ID   string `path:"id" doc:"Domain ID"`
	Body DomainRequest
}

// ListDomainsInput contains parameters for listing domains.
type ListDomainsInput struct {
	PageInput
	IsPublic *bool  `query:"is_public" doc:"Filter by public visibility"`
	Search   string `query:"search" doc:"Substring match on name and description"`
}

// ListDomainsOutput wraps the domain list for Huma.
type ListDomainsOutput struct {
	Body PageResponse[DomainResponse]
}

// === Handlers ===

func (s *Server) handleListDomains(ctx context.Context, input *ListDomainsInput) (*ListDomainsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	page, err := s.services.Domain.List(ctx, userID, service.ListDomainsQuery{
		Params:   input.params(),
		IsPublic: input.IsPublic,
		Search:   input.Search,
	})
	if err != nil {
		return nil, err
	}
	return &ListDomainsOutput{Body: mapPage(page, mapDomainResponse)}, nil
}

func (s *Server) handleCreateDomain(ctx context.Context, input *CreateDomainInput) (*DomainOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.services.Domain.Create(ctx, userID, service.CreateDomainRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		IsPublic:    input.Body.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	return &DomainOutput{Body: mapDomainResponse(d)}, nil
}

func (s *Server) handleGetDomain(ctx context.Context, input *DomainIDInput) (*DomainOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.services.Domain.Get(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}
	return &DomainOutput{Body: mapDomainResponse(d)}, nil
}

func (s *Server) handleUpdateDomain(ctx context.Context, input *UpdateDomainInput) (*DomainOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.services.Domain.Update(ctx, userID, input.ID, service.UpdateDomainRequest{
		Name:        input.Body.Name,
		Description: input.Body.Description,
		IsPublic:    input.Body.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	return &DomainOutput{Body: mapDomainResponse(d)}, nil
}

func (s *Server) handleDeleteDomain(ctx context.Context, input *DomainIDInput) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Domain.Delete(ctx, userID, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Domain deleted"}}, nil
}

// === Helpers ===

func mapDomainResponse(d *domain.Domain) DomainResponse {
	return DomainResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsPublic:    d.IsPublic,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
