package tracker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentSprintIssues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/agiles/124-333/sprints/current/issues", r.URL.Path)
		assert.Equal(t, "idReadable,summary", r.URL.Query().Get("fields"))
		_, _ = w.Write([]byte(`[{"idReadable":"OPS-1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "@example.com")
	data, err := c.CurrentSprintIssues(context.Background(), "124-333", "idReadable,summary")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"idReadable":"OPS-1"}]`, string(data))
}

func TestIssuesQueryEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "25", q.Get("$top"))
		assert.Equal(t, "project: OPS #Unresolved", q.Get("query"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "@example.com")
	_, err := c.Issues(context.Background(), "idReadable", "25", "project: OPS #Unresolved")
	require.NoError(t, err)
}

func TestRequestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"no access"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "@example.com")
	_, err := c.Issue(context.Background(), "OPS-1", "idReadable")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Contains(t, se.Body, "no access")
}

func TestCustomFieldValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/projects/0-1/customFields", r.URL.Path)
		assert.Contains(t, r.URL.Query().Get("query"), "Subsystem")
		_, _ = w.Write([]byte(`[{"bundle":{"values":[{"name":"Billing"},{"name":"Auth"}]}}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "@example.com")
	values, err := c.CustomFieldValues(context.Background(), "0-1", "Subsystem")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"Billing"},{"name":"Auth"}]`, string(values))
}

func TestCustomFieldValuesNoBundle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-1", "@example.com")
	values, err := c.CustomFieldValues(context.Background(), "0-1", "Subsystem")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(values))
}
