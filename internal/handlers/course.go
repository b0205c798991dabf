package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/services"
)

// CourseHandler serves the owner-scoped course management endpoints,
// enrollment, and the enrollment-gated contents view.
type CourseHandler struct {
	log            *logger.Logger
	courseService  services.CourseService
	studentService services.StudentService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService, studentService services.StudentService) *CourseHandler {
	return &CourseHandler{
		log:            log.With("handler", "CourseHandler"),
		courseService:  courseService,
		studentService: studentService,
	}
}

func (h *CourseHandler) ListOwned(c *gin.Context) {
	courses, err := h.courseService.ListOwned(c.Request.Context())
	if err != nil {
		h.log.Error("ListOwned failed", "error", err)
		RespondServiceError(c, "load_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}

func (h *CourseHandler) Create(c *gin.Context) {
	var input services.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	course, err := h.courseService.CreateCourse(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, "create_course_failed", err)
		return
	}
	RespondCreated(c, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	var input services.CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_payload", err)
		return
	}
	course, err := h.courseService.UpdateCourse(c.Request.Context(), courseID, input)
	if err != nil {
		RespondServiceError(c, "update_course_failed", err)
		return
	}
	RespondOK(c, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	if err := h.courseService.DeleteCourse(c.Request.Context(), courseID); err != nil {
		RespondServiceError(c, "delete_course_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

// Enroll adds the authenticated caller to the course. Idempotent.
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	if err := h.studentService.Enroll(c.Request.Context(), courseID); err != nil {
		RespondServiceError(c, "enroll_failed", err)
		return
	}
	RespondOK(c, gin.H{"enrolled": true})
}

// Contents requires the caller to be enrolled in the course.
func (h *CourseHandler) Contents(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_course_id", err)
		return
	}
	contents, err := h.courseService.GetCourseContents(c.Request.Context(), courseID)
	if err != nil {
		RespondServiceError(c, "load_contents_failed", err)
		return
	}
	RespondOK(c, contents)
}
