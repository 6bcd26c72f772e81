package cards

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "key-1")
}

func TestInspect(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/card/42", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("ignore_view"))
		assert.Equal(t, "key-1", r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`{
			"name": "Daily Signups",
			"dataset_query": {"native": {"query": "SELECT count(*) FROM signups"}},
			"result_metadata": [
				{"name": "count", "base_type": "type/Integer"},
				{"name": "", "base_type": ""}
			]
		}`))
	})

	in, err := c.Inspect(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", in.CardID)
	assert.Equal(t, "Daily Signups", in.CardTitle)
	assert.Equal(t, "SELECT count(*) FROM signups", in.SQLQuery)
	require.Len(t, in.Columns, 2)
	assert.Equal(t, Column{Index: 1, Name: "count", Type: "type/Integer"}, in.Columns[0])
	assert.Equal(t, Column{Index: 2, Name: "column_1", Type: "Unknown"}, in.Columns[1])
}

func TestInspectNoNativeQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"GUI Card","dataset_query":{}}`))
	})

	in, err := c.Inspect(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "No native SQL query found in dataset_query", in.SQLQuery)
	assert.Empty(t, in.Columns)
}

func TestInspectEmptyNativeQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"","dataset_query":{"native":{}}}`))
	})

	in, err := c.Inspect(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Unknown", in.CardTitle)
	assert.Equal(t, "No 'query' field found in native dataset_query", in.SQLQuery)
}

func TestInspectUpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	})

	_, err := c.Inspect(context.Background(), "7")
	assert.ErrorContains(t, err, "401")
}
