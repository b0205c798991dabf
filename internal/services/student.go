package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/requestdata"
	"github.com/yungbote/educa-backend/internal/types"
)

// StudentService is the enrollment store: membership between users and
// courses, and the course list seen by an enrolled student.
type StudentService interface {
	Enroll(ctx context.Context, courseID uuid.UUID) error
	IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error)
	ListEnrolledCourses(ctx context.Context) ([]*types.Course, error)
}

type studentService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	enrollmentRepo repos.EnrollmentRepo
}

func NewStudentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	enrollmentRepo repos.EnrollmentRepo,
) StudentService {
	return &studentService{
		db:             db,
		log:            baseLog.With("service", "StudentService"),
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Enroll adds the caller to the course's membership set. Enrolling
// twice is the same as enrolling once.
func (s *studentService) Enroll(ctx context.Context, courseID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.ErrUnauthorized
	}
	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return fmt.Errorf("failed to load course: %w", err)
	}
	if len(courses) == 0 || courses[0] == nil {
		return fmt.Errorf("%w: course", apierr.ErrNotFound)
	}
	if err := s.enrollmentRepo.Enroll(ctx, nil, courseID, rd.UserID); err != nil {
		return fmt.Errorf("failed to enroll: %w", err)
	}
	return nil
}

func (s *studentService) IsEnrolled(ctx context.Context, courseID, userID uuid.UUID) (bool, error) {
	return s.enrollmentRepo.IsEnrolled(ctx, nil, courseID, userID)
}

func (s *studentService) ListEnrolledCourses(ctx context.Context) ([]*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	courseIDs, err := s.enrollmentRepo.ListCourseIDsByUser(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	courses, err := s.courseRepo.GetByIDs(ctx, nil, courseIDs)
	if err != nil {
		return nil, err
	}
	// GetByIDs does not preserve input order; put the courses back in
	// enrollment order, most recent first.
	byID := make(map[uuid.UUID]*types.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}
	ordered := make([]*types.Course, 0, len(courses))
	for _, id := range courseIDs {
		if course, ok := byID[id]; ok {
			ordered = append(ordered, course)
		}
	}
	return ordered, nil
}
