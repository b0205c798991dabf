package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/educa-backend/internal/services"
)

type StudentHandler struct {
	studentService services.StudentService
}

func NewStudentHandler(studentService services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ListCourses returns the courses the authenticated student is
// enrolled in.
func (h *StudentHandler) ListCourses(c *gin.Context) {
	courses, err := h.studentService.ListEnrolledCourses(c.Request.Context())
	if err != nil {
		RespondServiceError(c, "load_enrolled_courses_failed", err)
		return
	}
	RespondOK(c, gin.H{"courses": courses})
}
