package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/cache"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/types"
)

const (
	cacheKeySubjects     = "catalog:subjects"
	cacheKeyCoursesAll   = "catalog:courses"
	cacheKeyCoursePrefix = "catalog:courses:subject:"
)

// CatalogService serves the public, read-only catalog surface:
// subjects and courses annotated with counts, and single-course
// detail with nested module summaries.
type CatalogService interface {
	ListSubjects(ctx context.Context) ([]*types.SubjectWithCount, error)
	GetSubject(ctx context.Context, subjectID uuid.UUID) (*types.Subject, error)
	ListCourses(ctx context.Context, subjectSlug string) ([]*types.CourseWithCount, error)
	GetCourse(ctx context.Context, courseID uuid.UUID) (*CourseDetail, error)
	InvalidateCounts(ctx context.Context, subjectIDs ...uuid.UUID)
}

type catalogService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	courseRepo  repos.CourseRepo
	cache       *cache.CatalogCache
}

func NewCatalogService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	courseRepo repos.CourseRepo,
	catalogCache *cache.CatalogCache,
) CatalogService {
	return &catalogService{
		db:          db,
		log:         baseLog.With("service", "CatalogService"),
		subjectRepo: subjectRepo,
		courseRepo:  courseRepo,
		cache:       catalogCache,
	}
}

func (s *catalogService) ListSubjects(ctx context.Context) ([]*types.SubjectWithCount, error) {
	var cached []*types.SubjectWithCount
	if s.cache.Get(ctx, cacheKeySubjects, &cached) {
		return cached, nil
	}
	subjects, err := s.subjectRepo.ListWithCourseCounts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	s.cache.Set(ctx, cacheKeySubjects, subjects)
	return subjects, nil
}

func (s *catalogService) GetSubject(ctx context.Context, subjectID uuid.UUID) (*types.Subject, error) {
	subjects, err := s.subjectRepo.GetByIDs(ctx, nil, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if len(subjects) == 0 || subjects[0] == nil {
		return nil, fmt.Errorf("%w: subject", apierr.ErrNotFound)
	}
	return subjects[0], nil
}

func (s *catalogService) ListCourses(ctx context.Context, subjectSlug string) ([]*types.CourseWithCount, error) {
	key := cacheKeyCoursesAll
	var subjectID *uuid.UUID
	if subjectSlug != "" {
		subject, err := s.subjectRepo.GetBySlug(ctx, nil, subjectSlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: subject %q", apierr.ErrNotFound, subjectSlug)
			}
			return nil, fmt.Errorf("failed to load subject: %w", err)
		}
		subjectID = &subject.ID
		key = cacheKeyCoursePrefix + subject.ID.String()
	}

	var cached []*types.CourseWithCount
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}
	courses, err := s.courseRepo.ListWithModuleCounts(ctx, nil, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	s.cache.Set(ctx, key, courses)
	return courses, nil
}

func (s *catalogService) GetCourse(ctx context.Context, courseID uuid.UUID) (*CourseDetail, error) {
	course, err := s.courseRepo.GetWithModules(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apierr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	detail := &CourseDetail{
		ID:       course.ID,
		Subject:  course.SubjectID,
		Title:    course.Title,
		Slug:     course.Slug,
		Overview: course.Overview,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
		Modules:  make([]ModuleSummary, 0, len(course.Modules)),
	}
	for _, m := range course.Modules {
		detail.Modules = append(detail.Modules, ModuleSummary{
			Order:       m.Order,
			Title:       m.Title,
			Description: m.Description,
		})
	}
	return detail, nil
}

// InvalidateCounts drops the cached count-annotated listings after a
// course or module mutation.
func (s *catalogService) InvalidateCounts(ctx context.Context, subjectIDs ...uuid.UUID) {
	keys := []string{cacheKeySubjects, cacheKeyCoursesAll}
	for _, id := range subjectIDs {
		keys = append(keys, cacheKeyCoursePrefix+id.String())
	}
	s.cache.Invalidate(ctx, keys...)
}
