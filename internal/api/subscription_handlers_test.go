package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")

	resp := ts.api.Post("/api/v1/subscriptions", bearer(ada.AccessToken), map[string]any{
		"author_id": grace.User.ID,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body SubscriptionResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, grace.User.ID, body.AuthorID)

	// Duplicate subscriptions conflict.
	resp = ts.api.Post("/api/v1/subscriptions", bearer(ada.AccessToken), map[string]any{
		"author_id": grace.User.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestSubscribe_Self(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/subscriptions", bearer(ada.AccessToken), map[string]any{
		"author_id": ada.User.ID,
	})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "cannot subscribe to yourself")
}

func TestSubscribe_UnknownAuthor(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")

	resp := ts.api.Post("/api/v1/subscriptions", bearer(ada.AccessToken), map[string]any{
		"author_id": "user-missing",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUnsubscribe(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")

	resp := ts.api.Post("/api/v1/subscriptions", bearer(ada.AccessToken), map[string]any{
		"author_id": grace.User.ID,
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = ts.api.Delete("/api/v1/subscriptions/"+grace.User.ID, bearer(ada.AccessToken))
	assert.Equal(t, http.StatusOK, resp.Code)

	// No edge left to remove.
	resp = ts.api.Delete("/api/v1/subscriptions/"+grace.User.ID, bearer(ada.AccessToken))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestSubscriptionListings(t *testing.T) {
	ts := setupTestServer(t)
	ada := ts.registerUser(t, "ada")
	grace := ts.registerUser(t, "grace")
	finn := ts.registerUser(t, "finn")

	// ada follows grace; finn follows grace too.
	for _, follower := range []AuthResponse{ada, finn} {
		resp := ts.api.Post("/api/v1/subscriptions", bearer(follower.AccessToken), map[string]any{
			"author_id": grace.User.ID,
		})
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Get("/api/v1/subscriptions/authors", bearer(ada.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	var authors PageResponse[SubscriptionUserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &authors))
	require.Len(t, authors.Items, 1)
	assert.Equal(t, "grace", authors.Items[0].Username)

	resp = ts.api.Get("/api/v1/subscriptions/subscribers", bearer(grace.AccessToken))
	require.Equal(t, http.StatusOK, resp.Code)
	var subs PageResponse[SubscriptionUserResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &subs))
	assert.Equal(t, 2, subs.Total)
}
