package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Checker probes the upstream search API. The web app itself has no other
// stateful dependencies.
type Checker struct {
	searchEndpoint string
	httpClient     *http.Client
	logger         *logrus.Logger
	startedAt      time.Time
}

func NewChecker(searchEndpoint string, logger *logrus.Logger) *Checker {
	return &Checker{
		searchEndpoint: searchEndpoint,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		logger:         logger,
		startedAt:      time.Now(),
	}
}

// ServiceHealth is the status of one dependency.
type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

// OverallHealth aggregates every dependency check.
type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

// CheckSearchAPI verifies the search API endpoint is reachable. Any HTTP
// answer counts as reachable; auth failures still prove the host is up.
func (h *Checker) CheckSearchAPI(ctx context.Context) ServiceHealth {
	start := time.Now()

	status := "healthy"
	errorMsg := ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.searchEndpoint+"/v1", nil)
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
	} else {
		resp, err := h.httpClient.Do(req)
		if err != nil {
			status = "unhealthy"
			errorMsg = err.Error()
		} else {
			resp.Body.Close()
			if resp.StatusCode >= 500 {
				status = "unhealthy"
				errorMsg = fmt.Sprintf("HTTP %d", resp.StatusCode)
			}
		}
	}

	if status != "healthy" {
		h.logger.WithField("error", errorMsg).Error("Search API health check failed")
	}

	return ServiceHealth{
		Name:         "search_api",
		Status:       status,
		ResponseTime: int(time.Since(start).Milliseconds()),
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll performs all dependency checks.
func (h *Checker) CheckAll(ctx context.Context) OverallHealth {
	services := []ServiceHealth{
		h.CheckSearchAPI(ctx),
	}

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "degraded"
		}
	}

	return OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   time.Since(h.startedAt).Round(time.Second).String(),
	}
}
