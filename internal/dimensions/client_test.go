// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dimensions

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const publicationsBody = `{
  "_stats": {"total_count": 1234},
  "_warnings": ["Field 'authors' is deprecated"],
  "publications": [
    {"id": "pub.1", "title": "A", "journal": {"title": "Nature"}, "year": 2020},
    {"id": "pub.2", "title": "B"}
  ]
}`

// fakeService serves the auth and DSL endpoints. dsl handles query calls.
func fakeService(t *testing.T, dsl http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth.json", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body["key"] != "good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors": {"query": {"header": "Unauthorized", "details": ["bad key"]}}}`))
			return
		}
		w.Write([]byte(`{"token": "tok-123"}`))
	})
	mux.HandleFunc("/api/dsl/v2", dsl)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestLoginAndQuery(t *testing.T) {
	var gotAuth, gotBody, gotUA string
	ts := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Write([]byte(publicationsBody))
	})

	c, err := Login(context.Background(), ts.Client(), ts.URL+"/", "good-key", WithUserAgent("dq-test"))
	require.NoError(t, err)
	assert.Equal(t, ts.URL, c.Endpoint())

	dsl := `search publications for "x" return publications`
	resp, err := c.Query(context.Background(), dsl)
	require.NoError(t, err)

	assert.Equal(t, "JWT tok-123", gotAuth)
	assert.Equal(t, dsl, gotBody)
	assert.Equal(t, "dq-test", gotUA)

	assert.Equal(t, "publications", resp.Kind)
	assert.Equal(t, 1234, resp.Stats.TotalCount)
	assert.Equal(t, []string{"Field 'authors' is deprecated"}, resp.Warnings)
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "pub.1", resp.Records[0]["id"])

	tbl := resp.Table()
	assert.Equal(t, []any{"Nature", nil}, tbl.Column("journal.title"))
}

func TestLoginRejected(t *testing.T) {
	ts := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("query endpoint should not be reached")
	})

	_, err := Login(context.Background(), ts.Client(), ts.URL, "bad-key")
	require.Error(t, err)

	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "login", se.Op)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, []string{"Unauthorized", "bad key"}, se.Messages)
}

func TestLoginMissingToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	_, err := Login(context.Background(), ts.Client(), ts.URL, "k")
	var se *ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "no token")
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    bool
		wantStatus int
		wantMsgs   []string
	}{
		{
			name:       "malformed query",
			status:     http.StatusBadRequest,
			body:       `{"errors": {"query": {"header": "Semantic errors found:", "details": ["Field 'foo' is not valid"]}}}`,
			wantErr:    true,
			wantStatus: http.StatusBadRequest,
			wantMsgs:   []string{"Semantic errors found:", "Field 'foo' is not valid"},
		},
		{
			name:       "plain text server failure",
			status:     http.StatusInternalServerError,
			body:       "upstream exploded",
			wantErr:    true,
			wantStatus: http.StatusInternalServerError,
			wantMsgs:   []string{"upstream exploded"},
		},
		{
			name:     "partial success",
			status:   http.StatusOK,
			body:     `{"_stats": {"total_count": 1}, "errors": {"query": {"header": "Partial results"}}, "publications": [{"id": "p"}]}`,
			wantMsgs: []string{"Partial results"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			c, err := Login(context.Background(), ts.Client(), ts.URL, "good-key")
			require.NoError(t, err)

			resp, err := c.Query(context.Background(), "search publications return publications")
			if tt.wantErr {
				var se *ServiceError
				require.True(t, errors.As(err, &se), "got %v", err)
				assert.Equal(t, "query", se.Op)
				assert.Equal(t, tt.wantStatus, se.StatusCode)
				assert.Equal(t, tt.wantMsgs, se.Messages)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsgs, resp.Errors)
			assert.Len(t, resp.Records, 1)
		})
	}
}

func TestQueryInvalidJSON(t *testing.T) {
	ts := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	c, err := Login(context.Background(), ts.Client(), ts.URL, "good-key")
	require.NoError(t, err)

	_, err = c.Query(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing query response")
}

func TestQueryCanceledContext(t *testing.T) {
	ts := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(publicationsBody))
	})
	c, err := Login(context.Background(), ts.Client(), ts.URL, "good-key")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Query(ctx, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
