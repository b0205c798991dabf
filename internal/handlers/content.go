package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) Create(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return
	}
	var input services.CreateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	content, err := h.contentService.CreateContent(c.Request.Context(), moduleID, input)
	if err != nil {
		RespondServiceError(c, "create_content_failed", err)
		return
	}
	RespondCreated(c, content)
}

func (h *ContentHandler) UpdateItem(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}
	var input services.CreateContentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	item, err := h.contentService.UpdateItem(c.Request.Context(), contentID, input)
	if err != nil {
		RespondServiceError(c, "update_item_failed", err)
		return
	}
	RespondOK(c, gin.H{"item": item})
}

func (h *ContentHandler) Delete(c *gin.Context) {
	contentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
		return
	}
	if err := h.contentService.DeleteContent(c.Request.Context(), contentID); err != nil {
		RespondServiceError(c, "delete_content_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *ContentHandler) Reorder(c *gin.Context) {
	var raw map[string]int
	if err := c.ShouldBindJSON(&raw); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	orders := make(map[uuid.UUID]int, len(raw))
	for idStr, order := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_content_id", err)
			return
		}
		orders[id] = order
	}
	applied, err := h.contentService.ReorderContents(c.Request.Context(), orders)
	if err != nil {
		RespondServiceError(c, "reorder_contents_failed", err)
		return
	}
	RespondOK(c, gin.H{"saved": applied})
}
