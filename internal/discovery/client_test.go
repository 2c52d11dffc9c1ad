package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(serverURL string) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(serverURL, "test-project", "global", "test-key", logger)
}

func TestClient_Search(t *testing.T) {
	var receivedBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Contains(t, r.URL.Path, "/projects/test-project/locations/global/")
		assert.Contains(t, r.URL.Path, "/engines/website-engine/")
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &receivedBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": "doc-1", "document": map[string]any{"id": "doc-1", "name": "documents/doc-1"}},
			},
			"totalSize": 1,
			"summary":   map[string]any{"summaryText": "one match"},
		})
	}))
	defer server.Close()

	client := testClient(server.URL)

	model := "stable"
	preamble := "Answer briefly."
	result, err := client.Search(context.Background(), SearchParams{
		EngineID:        "website-engine",
		Query:           "release notes",
		SummaryModel:    &model,
		SummaryPreamble: &preamble,
	})
	require.NoError(t, err)

	assert.Equal(t, "release notes", receivedBody["query"])
	spec := receivedBody["contentSearchSpec"].(map[string]any)
	summarySpec := spec["summarySpec"].(map[string]any)
	assert.Equal(t, "stable", summarySpec["modelSpec"].(map[string]any)["version"])
	assert.Equal(t, "Answer briefly.", summarySpec["modelPromptSpec"].(map[string]any)["preamble"])

	require.Len(t, result.Results, 1)
	assert.Equal(t, "doc-1", result.Results[0].ID)
	assert.Equal(t, "one match", result.Summary)
	assert.Contains(t, result.RequestURL, "/engines/website-engine/")
	assert.Contains(t, result.RawRequest, `"query":"release notes"`)
	assert.Contains(t, result.RawResponse, "one match")
}

func TestClient_Search_OmitsUnsetSummaryFields(t *testing.T) {
	var receivedBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &receivedBody)
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Search(context.Background(), SearchParams{EngineID: "e", Query: "q"})
	require.NoError(t, err)

	summarySpec := receivedBody["contentSearchSpec"].(map[string]any)["summarySpec"].(map[string]any)
	_, hasModel := summarySpec["modelSpec"]
	_, hasPreamble := summarySpec["modelPromptSpec"]
	assert.False(t, hasModel, "unset summary model must not be serialized")
	assert.False(t, hasPreamble, "unset preamble must not be serialized")
}

func TestClient_Search_QuotaExceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Quota exceeded for quota metric 'Search requests'","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Search(context.Background(), SearchParams{EngineID: "e", Query: "q"})
	require.Error(t, err)

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "Quota exceeded for quota metric 'Search requests'", quotaErr.Message)
}

func TestClient_Search_StructuredHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Search(context.Background(), SearchParams{EngineID: "e", Query: "q"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 403, httpErr.StatusCode)
	assert.Equal(t, "PERMISSION_DENIED", httpErr.Status)
	assert.Equal(t, "The caller does not have permission", httpErr.Description)
}

func TestClient_Search_UnstructuredErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Search(context.Background(), SearchParams{EngineID: "e", Query: "q"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "upstream unavailable", httpErr.Description)
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := testClient(server.URL)

	_, err := client.Search(context.Background(), SearchParams{EngineID: "e", Query: "q"})
	require.Error(t, err)

	var httpErr *HTTPError
	var quotaErr *QuotaError
	assert.False(t, errors.As(err, &httpErr) || errors.As(err, &quotaErr), "transport faults stay untyped")
}

func TestClient_ListDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Contains(t, r.URL.Path, "/dataStores/website-ds/branches/default_branch/documents")

		w.Write([]byte(`{"documents":[{"id":"doc-1","name":"documents/doc-1"},{"id":"doc-2","name":"documents/doc-2"}]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)

	documents, err := client.ListDocuments(context.Background(), "website-ds")
	require.NoError(t, err)
	require.Len(t, documents, 2)
	assert.Equal(t, "doc-1", documents[0].ID)
}

func TestParseAPIError_QuotaByStatusField(t *testing.T) {
	// RESOURCE_EXHAUSTED classifies as quota even without HTTP 429
	err := parseAPIError(403, []byte(`{"error":{"code":403,"message":"out of quota","status":"RESOURCE_EXHAUSTED"}}`))

	var quotaErr *QuotaError
	require.ErrorAs(t, err, &quotaErr)
	assert.Equal(t, "out of quota", quotaErr.Message)
}
