package handler

import (
	"errors"
	"fmt"
	"net/http"

	"backend/internal/docgen"
	"backend/internal/middleware"
	"backend/internal/model"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService service.DocumentService
}

func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

func (h *DocumentHandler) RegisterRoutes(router *gin.RouterGroup) {
	docs := router.Group("/api/purchase-orders/:id/document")
	{
		docs.GET("", middleware.RequireRole(model.RoleAdmin, model.RolePurchasing, model.RoleViewer), h.DownloadDocument)
		docs.GET("/preview", middleware.RequireRole(model.RoleAdmin, model.RolePurchasing, model.RoleViewer), h.PreviewDocument)
	}
}

// DownloadDocument renders the order's PDF and streams it as an attachment
// @Summary      Download purchase order document
// @Tags         documents
// @Security     BearerAuth
// @Produce      application/pdf
// @Param        id  path  string  true  "Purchase order ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/purchase-orders/{id}/document [get]
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	doc, err := h.documentService.RenderDocument(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		status, msg := renderErrorStatus(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// PreviewDocument renders the order's PDF and returns it as a data URI for inline display
// @Summary      Preview purchase order document
// @Tags         documents
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Purchase order ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/purchase-orders/{id}/document/preview [get]
func (h *DocumentHandler) PreviewDocument(c *gin.Context) {
	preview, err := h.documentService.PreviewDocument(c.Request.Context(), c.Param("id"), c.GetString("userID"))
	if err != nil {
		status, msg := renderErrorStatus(err)
		c.JSON(status, response.Error(status, msg))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, preview))
}

// renderErrorStatus maps render failures to HTTP statuses. Orders that
// cannot be printed are the caller's problem (422); a missing template
// is ours (500).
func renderErrorStatus(err error) (int, string) {
	var validation *docgen.ValidationError
	if errors.As(err, &validation) {
		return http.StatusUnprocessableEntity, validation.Error()
	}
	var overflow *docgen.LayoutOverflowError
	if errors.As(err, &overflow) {
		return http.StatusUnprocessableEntity, overflow.Error()
	}
	var template *docgen.TemplateLoadError
	if errors.As(err, &template) {
		return http.StatusInternalServerError, template.Error()
	}
	if err.Error() == "purchase order not found" {
		return http.StatusNotFound, err.Error()
	}
	return http.StatusBadRequest, err.Error()
}
