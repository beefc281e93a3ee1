package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTag creates a tag through the API and returns its ID.
func (ts *testServer) createTag(t *testing.T, token, name string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/tags", bearer(token), map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.ID
}

func TestCreateTag(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")

	tagID := ts.createTag(t, ada.AccessToken, "golang")
	assert.NotEmpty(t, tagID)

	// Duplicate names conflict within a user's vocabulary.
	resp := ts.api.Post("/api/v1/tags", bearer(ada.AccessToken), map[string]any{"name": "golang"})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "tag name already in use")
}

func TestTagOwnership(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")
	tagID := ts.createTag(t, ada.AccessToken, "golang")

	resp := ts.api.Get("/api/v1/tags/"+tagID, bearer(grace.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Delete("/api/v1/tags/"+tagID, bearer(grace.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateTag(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	tagID := ts.createTag(t, ada.AccessToken, "golang")

	resp := ts.api.Put("/api/v1/tags/"+tagID, bearer(ada.AccessToken), map[string]any{"name": "go"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body TagResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "go", body.Name)
}

func TestDeleteTag_NotesKeepOtherTags(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	domainID := ts.createDomain(t, ada.AccessToken, "Golang")
	keep := ts.createTag(t, ada.AccessToken, "keep")
	drop := ts.createTag(t, ada.AccessToken, "drop")

	note := ts.createNote(t, ada.AccessToken, map[string]any{
		"domain_id": domainID,
		"title":     "Tagged",
		"content":   "x",
		"tag_ids":   []string{keep, drop},
	})

	resp := ts.api.Delete("/api/v1/tags/"+drop, bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/notes/"+note.ID, bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var body NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, []string{keep}, body.TagIDs)
}

func TestListTags(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")
	ts.createTag(t, ada.AccessToken, "golang")
	ts.createTag(t, ada.AccessToken, "cooking")
	ts.createTag(t, grace.AccessToken, "gardening")

	resp := ts.api.Get("/api/v1/tags", bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)

	var body PageResponse[TagResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
}
