package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultPageSize = 10

// Searcher is the capability consumed by the dispatch layer. Implemented by
// Client; faked in tests.
type Searcher interface {
	Search(ctx context.Context, params SearchParams) (*SearchCallResult, error)
}

// Client talks to the hosted enterprise search API over its REST surface.
// Project and location are fixed at construction; only the engine varies per
// call. Each call is a single attempt — retry policy belongs to the caller's
// deployment, not here.
type Client struct {
	endpoint   string
	projectID  string
	location   string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(endpoint, projectID, location, apiKey string, logger *logrus.Logger) *Client {
	return &Client{
		endpoint:  endpoint,
		projectID: projectID,
		location:  location,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) servingConfigURL(engineID string) string {
	return fmt.Sprintf(
		"%s/v1/projects/%s/locations/%s/collections/default_collection/engines/%s/servingConfigs/default_search:search",
		c.endpoint, c.projectID, c.location, engineID,
	)
}

func (c *Client) documentsURL(datastoreID string) string {
	return fmt.Sprintf(
		"%s/v1/projects/%s/locations/%s/collections/default_collection/dataStores/%s/branches/default_branch/documents",
		c.endpoint, c.projectID, c.location, datastoreID,
	)
}

// Search issues one search call against the given engine's serving config.
// The returned SearchCallResult keeps the exact request and response bodies
// so the UI can show them as diagnostics.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchCallResult, error) {
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	payload := searchRequest{
		Query:    params.Query,
		PageSize: pageSize,
		ContentSearchSpec: &contentSearchSpec{
			SnippetSpec: &snippetSpec{ReturnSnippet: true},
			SummarySpec: &summarySpec{
				SummaryResultCount: 5,
			},
		},
	}
	// nil means "let the API decide"; an empty string is passed through as-is.
	if params.SummaryModel != nil {
		payload.ContentSearchSpec.SummarySpec.ModelSpec = &modelSpec{Version: *params.SummaryModel}
	}
	if params.SummaryPreamble != nil {
		payload.ContentSearchSpec.SummarySpec.ModelPromptSpec = &modelPromptSpec{Preamble: *params.SummaryPreamble}
	}

	url := c.servingConfigURL(params.EngineID)

	rawRequest, responseBody, err := c.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var response searchResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	summary := ""
	if response.Summary != nil {
		summary = response.Summary.SummaryText
	}

	c.logger.WithFields(logrus.Fields{
		"engine_id":  params.EngineID,
		"results":    len(response.Results),
		"total_size": response.TotalSize,
	}).Debug("Search call completed")

	return &SearchCallResult{
		Results:     response.Results,
		Summary:     summary,
		RequestURL:  url,
		RawRequest:  rawRequest,
		RawResponse: string(responseBody),
	}, nil
}

// ListDocuments returns the documents indexed in a datastore's default branch.
func (c *Client) ListDocuments(ctx context.Context, datastoreID string) ([]Document, error) {
	url := c.documentsURL(datastoreID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, responseBody)
	}

	var response listDocumentsResponse
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal documents response: %w", err)
	}

	return response.Documents, nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) (string, []byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"url":          url,
		"payload_size": len(jsonData),
	}).Debug("Making search API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"status_code":   resp.StatusCode,
		"url":           url,
		"response_size": len(responseBody),
	}).Debug("Search API response received")

	// Only log response bodies for errors or small replies to avoid spam
	if len(responseBody) < 500 || resp.StatusCode >= 400 {
		c.logger.WithFields(logrus.Fields{
			"status_code":   resp.StatusCode,
			"url":           url,
			"response_body": string(responseBody),
		}).Debug("Response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, parseAPIError(resp.StatusCode, responseBody)
	}

	return string(jsonData), responseBody, nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Content-Type", "application/json")
}
