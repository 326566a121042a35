package github

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/juparave/prreview/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	return NewClient(config.GitHubConfig{
		Token:      "test-token",
		Repository: "octo/widgets",
		BaseURL:    serverURL,
	}, log.New(io.Discard, "", 0))
}

func TestFetchPRDiff_ConcatenatesPatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/widgets/pulls/12/files", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		if r.URL.Query().Get("page") != "1" {
			w.Write([]byte("[]"))
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"filename": "a.go", "patch": "@@ -1 +1 @@\n-old\n+new"},
			{"filename": "logo.png", "patch": ""},
			{"filename": "b.go", "patch": "@@ -2 +2 @@\n+added"},
		})
	}))
	defer server.Close()

	diff, err := testClient(server.URL).FetchPRDiff(context.Background(), "12")
	require.NoError(t, err)

	assert.Contains(t, diff, "--- File: a.go ---\n@@ -1 +1 @@")
	assert.Contains(t, diff, "--- File: b.go ---")
	assert.NotContains(t, diff, "logo.png", "patchless files are skipped")
}

func TestFetchPRDiff_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(server.URL).FetchPRDiff(context.Background(), "12")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestPostComment(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/widgets/issues/12/comments", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := testClient(server.URL).PostComment(context.Background(), "12", "## Review\nAll good.")
	require.NoError(t, err)
	assert.Equal(t, "## Review\nAll good.", gotBody["body"])
}

func TestPostComment_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Forbidden"}`, http.StatusForbidden)
	}))
	defer server.Close()

	err := testClient(server.URL).PostComment(context.Background(), "12", "text")
	require.Error(t, err)

	var publish *PublishError
	assert.ErrorAs(t, err, &publish)
	assert.Contains(t, err.Error(), "403")
}
