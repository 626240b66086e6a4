package catalog

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/catalog/models"
	"catalog/internal/catalog/service"
	"catalog/internal/catalog/store"
	graphqltransport "catalog/internal/transport/graphql"
	httptransport "catalog/internal/transport/http"
	"catalog/pkg/testutil"
)

// newServer assembles the full router over an in-memory store, the same
// wiring main performs minus the external backends.
func newServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.New(store.NewInMemory(), service.WithLogger(logger))
	items := httptransport.NewItemHandler(svc, logger)
	graphqlHandler, err := graphqltransport.NewHandler(svc, logger)
	require.NoError(t, err)
	return httptransport.NewRouter(items, graphqlHandler, logger)
}

func TestItemLifecycle_HappyPath(t *testing.T) {
	router := newServer(t)

	body := testutil.MustMarshal(t, models.Item{
		Name:     "Station Eleven",
		Code:     "978-0804172448",
		Category: models.CategoryFiction,
		Price:    14.99,
		Tags:     []models.Tag{models.TagNew},
	})

	// Create.
	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/items", body))
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Equal(t, `"0"`, rr.Header().Get("ETag"))

	var created map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	id := created["id"]
	require.NotEmpty(t, id)
	assert.Equal(t, "/items/"+id, rr.Header().Get("Location"))

	// Read it back.
	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/items/"+id))
	require.Equal(t, http.StatusOK, rr.Code)
	var got models.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Station Eleven", got.Name)
	assert.Equal(t, int64(0), got.Version)

	// Update with the current version.
	update := testutil.NewRequestWithBody(t, http.MethodPut, "/items/"+id, testutil.MustMarshal(t, models.Item{
		Name:     "Sea of Tranquility",
		Code:     "978-0804172448",
		Category: models.CategoryFiction,
		Price:    16.99,
	}))
	update.Header.Set("If-Match", rr.Header().Get("ETag"))
	rr = testutil.DoRequest(router, update)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, `"1"`, rr.Header().Get("ETag"))

	// A retry with the spent version must fail the precondition.
	retry := testutil.NewRequestWithBody(t, http.MethodPut, "/items/"+id, body)
	retry.Header.Set("If-Match", `"0"`)
	rr = testutil.DoRequest(router, retry)
	assert.Equal(t, http.StatusPreconditionFailed, rr.Code)

	// Delete, then confirm the read misses.
	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/items/"+id))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/items/"+id))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestItemLifecycle_UpdateWithoutVersionToken(t *testing.T) {
	router := newServer(t)

	body := testutil.MustMarshal(t, models.Item{
		Name:     "The Glass Hotel",
		Code:     "978-1838647940",
		Category: models.CategoryFiction,
	})
	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/items", body))
	require.Equal(t, http.StatusCreated, rr.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	update := testutil.NewRequestWithBody(t, http.MethodPut, "/items/"+created["id"], body)
	rr = testutil.DoRequest(router, update)

	assert.Equal(t, http.StatusPreconditionRequired, rr.Code)
}

func TestRestAndGraphQLShareOneCatalog(t *testing.T) {
	router := newServer(t)

	// Create over REST.
	body := testutil.MustMarshal(t, models.Item{
		Name:     "Last Night in Montreal",
		Code:     "978-3897225831",
		Category: models.CategoryFiction,
	})
	rr := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/items", body))
	require.Equal(t, http.StatusCreated, rr.Code)

	// Query over GraphQL.
	query := testutil.MustMarshal(t, map[string]any{
		"query": `query { items(name: "montreal") { name code version } }`,
	})
	rr = testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/graphql", query))
	require.Equal(t, http.StatusOK, rr.Code)

	var res struct {
		Data struct {
			Items []struct {
				Name    string `json:"name"`
				Code    string `json:"code"`
				Version int    `json:"version"`
			} `json:"items"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Empty(t, res.Errors)
	require.Len(t, res.Data.Items, 1)
	assert.Equal(t, "Last Night in Montreal", res.Data.Items[0].Name)
	assert.Equal(t, "978-3897225831", res.Data.Items[0].Code)
	assert.Equal(t, 0, res.Data.Items[0].Version)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	router := newServer(t)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/items"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
