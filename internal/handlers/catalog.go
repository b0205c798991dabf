package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/services"
)

// CatalogHandler serves the public read-only catalog endpoints.
type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     log.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.catalog.ListSubjects(c.Request.Context())
	if err != nil {
		h.log.Error("ListSubjects failed", "error", err)
		RespondServiceError(c, "load_subjects_failed", err)
		return
	}
	RespondOK(c, subjects)
}

func (h *CatalogHandler) GetSubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_subject_id", err)
		return
	}
	subject, err := h.catalog.GetSubject(c.Request.Context(), subjectID)
	if err != nil {
		RespondServiceError(c, "load_subject_failed", err)
		return
	}
	RespondOK(c, subject)
}

// ListCourses accepts an optional ?subject=<slug> filter.
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.catalog.ListCourses(c.Request.Context(), c.Query("subject"))
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		RespondServiceError(c, "load_courses_failed", err)
		return
	}
	RespondOK(c, courses)
}

func (h *CatalogHandler) GetCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	course, err := h.catalog.GetCourse(c.Request.Context(), courseID)
	if err != nil {
		RespondServiceError(c, "load_course_failed", err)
		return
	}
	RespondOK(c, course)
}
