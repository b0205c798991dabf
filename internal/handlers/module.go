package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/services"
)

type ModuleHandler struct {
	moduleService services.ModuleService
}

func NewModuleHandler(moduleService services.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService}
}

func (h *ModuleHandler) ListForCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	modules, err := h.moduleService.ListModulesForCourse(c.Request.Context(), courseID)
	if err != nil {
		RespondServiceError(c, "load_modules_failed", err)
		return
	}
	RespondOK(c, gin.H{"modules": modules})
}

func (h *ModuleHandler) Create(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var input services.CreateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	module, err := h.moduleService.CreateModule(c.Request.Context(), courseID, input)
	if err != nil {
		RespondServiceError(c, "create_module_failed", err)
		return
	}
	RespondCreated(c, module)
}

func (h *ModuleHandler) Update(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return
	}
	var input services.CreateModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	module, err := h.moduleService.UpdateModule(c.Request.Context(), moduleID, input)
	if err != nil {
		RespondServiceError(c, "update_module_failed", err)
		return
	}
	RespondOK(c, module)
}

func (h *ModuleHandler) Delete(c *gin.Context) {
	moduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
		return
	}
	if err := h.moduleService.DeleteModule(c.Request.Context(), moduleID); err != nil {
		RespondServiceError(c, "delete_module_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Reorder accepts {"<module id>": <order>, ...}. Ids not owned by the
// caller are skipped; the response reports how many were applied.
func (h *ModuleHandler) Reorder(c *gin.Context) {
	var raw map[string]int
	if err := c.ShouldBindJSON(&raw); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	orders := make(map[uuid.UUID]int, len(raw))
	for idStr, order := range raw {
		id, err := uuid.Parse(idStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_module_id", err)
			return
		}
		orders[id] = order
	}
	applied, err := h.moduleService.ReorderModules(c.Request.Context(), orders)
	if err != nil {
		RespondServiceError(c, "reorder_modules_failed", err)
		return
	}
	RespondOK(c, gin.H{"saved": applied})
}
