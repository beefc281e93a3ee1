package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDomain(t *testing.T) {
	ts := setupTestServer(t)
	auth := ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/domains", bearer(auth.AccessToken), map[string]any{
		"name":        "Golang",
		"description": "Notes on Go",
		"is_public":   true,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body DomainResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.ID)
	assert.Equal(t, "Golang", body.Name)
	assert.True(t, body.IsPublic)
}

func TestCreateDomain_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/domains", map[string]any{"name": "Golang"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestGetDomain_CrossUser(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")
	domainID := ts.createDomain(t, ada.AccessToken, "Golang")

	resp := ts.api.Get("/api/v1/domains/"+domainID, bearer(ada.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/domains/"+domainID, bearer(grace.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateDomain(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	domainID := ts.createDomain(t, ada.AccessToken, "Golang")

	resp := ts.api.Put("/api/v1/domains/"+domainID, bearer(ada.AccessToken), map[string]any{
		"name":      "Go",
		"is_public": true,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body DomainResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Go", body.Name)
	assert.True(t, body.IsPublic)
}

func TestDeleteDomain(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	domainID := ts.createDomain(t, ada.AccessToken, "Golang")

	resp := ts.api.Delete("/api/v1/domains/"+domainID, bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/domains/"+domainID, bearer(ada.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListDomains(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")
	ts.createDomain(t, ada.AccessToken, "Golang")
	ts.createDomain(t, ada.AccessToken, "Cooking")
	ts.createDomain(t, grace.AccessToken, "Gardening")

	resp := ts.api.Get("/api/v1/domains", bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var body PageResponse[DomainResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)

	// Search filter narrows the listing.
	resp = ts.api.Get("/api/v1/domains?search=cook", bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, "Cooking", body.Items[0].Name)
}
