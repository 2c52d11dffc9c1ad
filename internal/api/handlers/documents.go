package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nvasko/enterprise-search-webapp/internal/discovery"
	"github.com/nvasko/enterprise-search-webapp/internal/models"
	"github.com/nvasko/enterprise-search-webapp/internal/search"
	"github.com/nvasko/enterprise-search-webapp/pkg/utils"
	"github.com/sirupsen/logrus"
)

// DocumentLister is the slice of the search API client needed here.
type DocumentLister interface {
	ListDocuments(ctx context.Context, datastoreID string) ([]discovery.Document, error)
}

type DocumentHandler struct {
	lister    DocumentLister
	directory *search.Directory
	logger    *logrus.Logger
}

func NewDocumentHandler(lister DocumentLister, directory *search.Directory, logger *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{
		lister:    lister,
		directory: directory,
		logger:    logger,
	}
}

// HandleListDocuments returns the documents indexed behind one of the
// configured engines. The engine query parameter uses the same zero-based
// selector as the search form.
func (h *DocumentHandler) HandleListDocuments(c *gin.Context) {
	selector := c.Query("engine")
	if selector == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Query parameter 'engine' is required", nil)
		return
	}

	engine, err := h.directory.Resolve(selector)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Unknown search engine", err)
		return
	}

	if engine.DatastoreID == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Engine has no datastore configured", nil)
		return
	}

	documents, err := h.lister.ListDocuments(c.Request.Context(), engine.DatastoreID)
	if err != nil {
		h.logger.WithError(err).WithField("datastore", engine.DatastoreID).Error("Document listing failed")
		utils.ErrorResponse(c, http.StatusBadGateway, "Failed to list documents", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Documents retrieved", models.DocumentListResponse{
		Engine:    engine.Name,
		Datastore: engine.DatastoreID,
		Documents: documents,
		Total:     len(documents),
	})
}
