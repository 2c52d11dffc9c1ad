package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nvasko/enterprise-search-webapp/internal/config"
	"github.com/nvasko/enterprise-search-webapp/internal/models"
	"github.com/nvasko/enterprise-search-webapp/internal/search"
	"github.com/sirupsen/logrus"
)

// NavLinks is the static top navigation shared by every page.
var NavLinks = []models.NavLink{
	{Link: "/", Name: "Widgets", Icon: "widgets"},
	{Link: "/search", Name: "Custom UI", Icon: "build"},
}

type SearchHandler struct {
	dispatcher *search.Dispatcher
	directory  *search.Directory
	cfg        *config.Config
	logger     *logrus.Logger
}

func NewSearchHandler(
	dispatcher *search.Dispatcher,
	directory *search.Directory,
	cfg *config.Config,
	logger *logrus.Logger,
) *SearchHandler {
	return &SearchHandler{
		dispatcher: dispatcher,
		directory:  directory,
		cfg:        cfg,
		logger:     logger,
	}
}

// HandleWidgetsPage renders the homepage with the pre-built search widgets.
func (h *SearchHandler) HandleWidgetsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":                 NavLinks[0].Name,
		"nav_links":             NavLinks,
		"search_engine_options": h.cfg.Widgets,
		"language_list":         h.cfg.Languages,
	})
}

// HandleSearchPage renders the custom-UI search form.
func (h *SearchHandler) HandleSearchPage(c *gin.Context) {
	c.HTML(http.StatusOK, "search.html", h.searchPageData())
}

// HandleSearchSubmit processes a search form submission. All validation and
// error shaping happens in the dispatcher; this handler only maps the form
// onto a Request and the Outcome onto template data, so every submission gets
// a rendered page back.
func (h *SearchHandler) HandleSearchSubmit(c *gin.Context) {
	req := search.Request{
		Query:          c.PostForm("search_query"),
		EngineSelector: c.PostForm("search_engine"),
	}
	// GetPostForm keeps absent and empty fields distinct; the API treats them
	// differently.
	if model, ok := c.GetPostForm("summary_model"); ok {
		req.SummaryModel = &model
	}
	if preamble, ok := c.GetPostForm("summary_preamble"); ok {
		req.SummaryPreamble = &preamble
	}

	outcome := h.dispatcher.Dispatch(c.Request.Context(), req)

	data := h.searchPageData()
	if outcome.Failed() {
		data["message_error"] = outcome.ErrorMessage
	} else {
		data["message_success"] = outcome.Query
		data["results"] = outcome.Results
		data["summary"] = outcome.Summary
		data["request_url"] = outcome.RequestURL
		data["raw_request"] = outcome.RawRequest
		data["raw_response"] = outcome.RawResponse
	}

	c.HTML(http.StatusOK, "search.html", data)
}

func (h *SearchHandler) searchPageData() gin.H {
	return gin.H{
		"title":          NavLinks[1].Name,
		"nav_links":      NavLinks,
		"search_engines": h.directory.Names(),
		"summary_models": h.cfg.SummaryModels,
	}
}
