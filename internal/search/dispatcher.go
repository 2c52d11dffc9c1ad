package search

import (
	"context"
	"errors"

	"github.com/nvasko/enterprise-search-webapp/internal/discovery"
	"github.com/sirupsen/logrus"
)

// User-facing messages for the fixed failure cases.
const (
	MsgNoQuery      = "No query provided"
	MsgNoEngine     = "No search engine selected"
	MsgUnknownError = "An Unknown Error Occurred"
)

// Request is one raw form submission. Query and EngineSelector are required;
// the summary fields are passed through untouched, with nil meaning the field
// was absent from the form.
type Request struct {
	Query           string
	EngineSelector  string
	SummaryModel    *string
	SummaryPreamble *string
}

// Outcome is the single normalized result handed to the rendering layer.
// Exactly one of the two shapes is populated: ErrorMessage on failure, the
// remaining fields on success. The rendering layer never sees a raw error.
type Outcome struct {
	ErrorMessage string

	Query       string
	Results     []discovery.Result
	Summary     string
	RequestURL  string
	RawRequest  string
	RawResponse string
}

func (o Outcome) Failed() bool {
	return o.ErrorMessage != ""
}

// Dispatcher validates form submissions, resolves the engine selector and
// performs the single outbound search call. It holds no mutable state.
type Dispatcher struct {
	searcher  discovery.Searcher
	directory *Directory
	logger    *logrus.Logger
}

func NewDispatcher(searcher discovery.Searcher, directory *Directory, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		searcher:  searcher,
		directory: directory,
		logger:    logger,
	}
}

// Dispatch turns a form submission into exactly one Outcome. Validation
// failures never reach the search capability; query presence is checked
// before the engine selector. Every fault from resolution onward is flattened
// through NormalizeError, so no error escapes this boundary.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Outcome {
	if req.Query == "" {
		return Outcome{ErrorMessage: MsgNoQuery}
	}
	if req.EngineSelector == "" {
		return Outcome{ErrorMessage: MsgNoEngine}
	}

	engine, err := d.directory.Resolve(req.EngineSelector)
	if err != nil {
		d.logger.WithError(err).WithField("selector", req.EngineSelector).Warn("Engine resolution failed")
		return Outcome{ErrorMessage: NormalizeError(err)}
	}

	d.logger.WithFields(logrus.Fields{
		"engine_id": engine.EngineID,
		"query":     req.Query,
	}).Info("Dispatching search request")

	result, err := d.searcher.Search(ctx, discovery.SearchParams{
		EngineID:        engine.EngineID,
		Query:           req.Query,
		SummaryModel:    req.SummaryModel,
		SummaryPreamble: req.SummaryPreamble,
	})
	if err != nil {
		d.logger.WithError(err).Error("Search dispatch failed")
		return Outcome{ErrorMessage: NormalizeError(err)}
	}

	return Outcome{
		Query:       req.Query,
		Results:     result.Results,
		Summary:     result.Summary,
		RequestURL:  result.RequestURL,
		RawRequest:  result.RawRequest,
		RawResponse: result.RawResponse,
	}
}

// NormalizeError flattens any dispatch fault into the one string shown to the
// user. Precedence is fixed and first-match-wins: structured HTTP description,
// then the quota fault's own message, then the error's text, then the generic
// fallback when nothing usable is carried.
func NormalizeError(err error) string {
	var httpErr *discovery.HTTPError
	if errors.As(err, &httpErr) && httpErr.Description != "" {
		return httpErr.Description
	}

	var quotaErr *discovery.QuotaError
	if errors.As(err, &quotaErr) && quotaErr.Message != "" {
		return quotaErr.Message
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}

	return MsgUnknownError
}
