package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/idealens/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{})

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000", client.BaseURL())
	assert.Equal(t, 60*time.Second, client.client.Timeout)
	assert.NoError(t, client.Close())
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"localhost:8000", "not a url", "http://"} {
		_, err := NewClient(Config{BaseURL: raw})
		assert.ErrorIs(t, err, ErrInvalidBaseURL, raw)
	}
}

func TestClient_SearchRepos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "recipe app & more", r.URL.Query().Get("q"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "6", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "acme/cookbook", "description": "Recipes", "url": "https://github.com/acme/cookbook", "stars": 10},
			{"full_name": "acme/pantry", "description": null, "html_url": "https://github.com/acme/pantry"}
		]`))
	})

	repos, err := client.SearchRepos(context.Background(), domain.SearchRequest{
		Query: "recipe app & more", Page: 2, PageSize: 6,
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{
		{Name: "acme/cookbook", Description: "Recipes", URL: "https://github.com/acme/cookbook"},
		{Name: "acme/pantry", URL: "https://github.com/acme/pantry"},
	}, repos)
}

func TestClient_SearchRepos_EmptyList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	repos, err := client.SearchRepos(context.Background(), domain.SearchRequest{Query: "x", Page: 1, PageSize: 6})

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestClient_SearchRepos_Malformed(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantMalformed bool
	}{
		{"object", `{"error": "rate limited"}`, true},
		{"null", `null`, true},
		{"string", `"nope"`, true},
		{"list of numbers", `[1, 2, 3]`, true},
		{"html", `<html>oops</html>`, false},
		{"truncated", `[{"name": "a"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.SearchRepos(context.Background(), domain.SearchRequest{Query: "x", Page: 1, PageSize: 6})

			require.Error(t, err)
			assert.Equal(t, tt.wantMalformed, errors.Is(err, domain.ErrMalformedResponse))
		})
	}
}

func TestClient_SearchRepos_StatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})

	_, err := client.SearchRepos(context.Background(), domain.SearchRequest{Query: "x", Page: 1, PageSize: 6})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "/search", statusErr.Endpoint)
	assert.Equal(t, "upstream exploded", statusErr.Body)
	assert.True(t, IsServerError(err))
	assert.False(t, IsNotFound(err))
	assert.False(t, errors.Is(err, domain.ErrMalformedResponse))
}

func TestClient_Summarize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/summarize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{
			"name":        "acme/cookbook",
			"description": "Recipes",
			"url":         "https://github.com/acme/cookbook",
		}, body)

		_, _ = w.Write([]byte(`{"summary": "A cookbook manager."}`))
	})

	summary, err := client.Summarize(context.Background(), domain.Repository{
		Name: "acme/cookbook", Description: "Recipes", URL: "https://github.com/acme/cookbook",
	})

	require.NoError(t, err)
	assert.Equal(t, "A cookbook manager.", summary)
}

func TestClient_Summarize_UnusableBodies(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"missing field", `{"detail": "no key"}`, "", false},
		{"null field", `{"summary": null}`, "", false},
		{"number field", `{"summary": 42}`, "", false},
		{"array body", `["a"]`, "", false},
		{"not json", `Internal error`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			summary, err := client.Summarize(context.Background(), domain.Repository{Name: "a"})

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, summary)
		})
	}
}

func TestClient_Reply(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)

		var body chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "What stack for a recipe app?", body.Message)

		_, _ = w.Write([]byte(`{"reply": "Try Go and SQLite."}`))
	})

	reply, err := client.Reply(context.Background(), "What stack for a recipe app?")

	require.NoError(t, err)
	assert.Equal(t, "Try Go and SQLite.", reply)
}

func TestClient_Reply_MissingField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	reply, err := client.Reply(context.Background(), "hi")

	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestClient_Reply_TransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = client.Reply(context.Background(), "hi")

	assert.Error(t, err)
}

func TestClient_Ping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"message": "Hello from the IdeaLens backend!"}`))
	})

	assert.NoError(t, client.Ping(context.Background()))
}

func TestClient_Ping_NotFound(t *testing.T) {
	client := newTestClient(t, http.NotFound)

	err := client.Ping(context.Background())

	assert.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_RespectsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchRepos(ctx, domain.SearchRequest{Query: "x", Page: 1, PageSize: 6})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatusError_Message(t *testing.T) {
	assert.Equal(t, "backend: /chat returned status 500",
		(&StatusError{StatusCode: 500, Endpoint: "/chat"}).Error())
	assert.Equal(t, "backend: /chat returned status 500: boom",
		(&StatusError{StatusCode: 500, Endpoint: "/chat", Body: "boom"}).Error())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "h...", truncate("héllo", 2), "does not split é")
	assert.Equal(t, "...", truncate("日本", 2))

	long := truncate(strings.Repeat("é", maxErrorBody), maxErrorBody-1)
	assert.True(t, utf8.ValidString(long))
	assert.LessOrEqual(t, len(long), maxErrorBody-1+len("..."))
}
