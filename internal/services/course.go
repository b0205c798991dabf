package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/requestdata"
	"github.com/yungbote/educa-backend/internal/types"
	"github.com/yungbote/educa-backend/internal/utils"
)

type CreateCourseInput struct {
	SubjectID uuid.UUID `json:"subject_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Overview  string    `json:"overview"`
}

// CourseService covers the owner-scoped management surface plus the
// enrollment-gated contents view. Every management query filters by
// owner == caller; an id belonging to someone else reads as NotFound,
// never as someone else's data.
type CourseService interface {
	ListOwned(ctx context.Context) ([]*types.Course, error)
	CreateCourse(ctx context.Context, input CreateCourseInput) (*types.Course, error)
	UpdateCourse(ctx context.Context, courseID uuid.UUID, input CreateCourseInput) (*types.Course, error)
	DeleteCourse(ctx context.Context, courseID uuid.UUID) error
	GetCourseContents(ctx context.Context, courseID uuid.UUID) (*CourseContents, error)
}

type courseService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	subjectRepo    repos.SubjectRepo
	moduleRepo     repos.ModuleRepo
	contentRepo    repos.ContentRepo
	itemRepo       repos.ItemRepo
	enrollmentRepo repos.EnrollmentRepo
	catalog        CatalogService
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	subjectRepo repos.SubjectRepo,
	moduleRepo repos.ModuleRepo,
	contentRepo repos.ContentRepo,
	itemRepo repos.ItemRepo,
	enrollmentRepo repos.EnrollmentRepo,
	catalog CatalogService,
) CourseService {
	return &courseService{
		db:             db,
		log:            baseLog.With("service", "CourseService"),
		courseRepo:     courseRepo,
		subjectRepo:    subjectRepo,
		moduleRepo:     moduleRepo,
		contentRepo:    contentRepo,
		itemRepo:       itemRepo,
		enrollmentRepo: enrollmentRepo,
		catalog:        catalog,
	}
}

func (s *courseService) ListOwned(ctx context.Context) ([]*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	return s.courseRepo.ListByOwner(ctx, nil, rd.UserID)
}

func (s *courseService) CreateCourse(ctx context.Context, input CreateCourseInput) (*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apierr.ErrInvalidArgument)
	}
	if input.SubjectID == uuid.Nil {
		return nil, fmt.Errorf("%w: subject is required", apierr.ErrInvalidArgument)
	}
	subjects, err := s.subjectRepo.GetByIDs(ctx, nil, []uuid.UUID{input.SubjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to load subject: %w", err)
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: subject", apierr.ErrNotFound)
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = utils.Slugify(input.Title)
	}

	course := &types.Course{
		ID:        uuid.New(),
		OwnerID:   rd.UserID,
		SubjectID: input.SubjectID,
		Title:     input.Title,
		Slug:      slug,
		Overview:  input.Overview,
	}
	if _, err := s.courseRepo.Create(ctx, nil, []*types.Course{course}); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	s.catalog.InvalidateCounts(ctx, course.SubjectID)
	return course, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID uuid.UUID, input CreateCourseInput) (*types.Course, error) {
	course, err := s.ownedCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	previousSubject := course.SubjectID
	if title := strings.TrimSpace(input.Title); title != "" {
		course.Title = title
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		course.Slug = slug
	}
	if input.Overview != "" {
		course.Overview = input.Overview
	}
	if input.SubjectID != uuid.Nil {
		course.SubjectID = input.SubjectID
	}
	if err := s.courseRepo.Update(ctx, nil, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	s.catalog.InvalidateCounts(ctx, previousSubject, course.SubjectID)
	return course, nil
}

// DeleteCourse removes the course, its modules, and every content and
// item row underneath them in one transaction. Contents and items have
// no soft delete, so the cascade has to run here rather than rely on
// the schema.
func (s *courseService) DeleteCourse(ctx context.Context, courseID uuid.UUID) error {
	course, err := s.ownedCourse(ctx, courseID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules, err := s.moduleRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{course.ID})
		if err != nil {
			return fmt.Errorf("failed to load modules for cascade: %w", err)
		}
		moduleIDs := make([]uuid.UUID, 0, len(modules))
		for _, m := range modules {
			moduleIDs = append(moduleIDs, m.ID)
		}
		if err := purgeModuleContents(ctx, tx, s.contentRepo, s.itemRepo, moduleIDs); err != nil {
			return err
		}
		for _, id := range moduleIDs {
			if err := s.moduleRepo.Delete(ctx, tx, id); err != nil {
				return fmt.Errorf("failed to delete module %s: %w", id, err)
			}
		}
		if err := s.courseRepo.Delete(ctx, tx, course.ID); err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.catalog.InvalidateCounts(ctx, course.SubjectID)
	return nil
}

// GetCourseContents returns the full nested tree with every item
// rendered. Access requires enrollment in the course; authentication
// alone is not enough.
func (s *courseService) GetCourseContents(ctx context.Context, courseID uuid.UUID) (*CourseContents, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, nil, courseID, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check enrollment: %w", err)
	}
	if !enrolled {
		return nil, fmt.Errorf("%w: not enrolled in this course", apierr.ErrForbidden)
	}

	course, err := s.courseRepo.GetWithContents(ctx, nil, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apierr.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load course contents: %w", err)
	}

	out := &CourseContents{
		ID:       course.ID,
		Subject:  course.SubjectID,
		Title:    course.Title,
		Slug:     course.Slug,
		Overview: course.Overview,
		Created:  course.CreatedAt,
		Owner:    course.OwnerID,
		Modules:  make([]ModuleWithContents, 0, len(course.Modules)),
	}
	for _, m := range course.Modules {
		mod := ModuleWithContents{
			Order:       m.Order,
			Title:       m.Title,
			Description: m.Description,
			Contents:    make([]RenderedContent, 0, len(m.Contents)),
		}
		for _, c := range m.Contents {
			item, err := s.itemRepo.Get(ctx, nil, c.ItemType, c.ItemID)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s item %s: %w", c.ItemType, c.ItemID, err)
			}
			mod.Contents = append(mod.Contents, RenderedContent{
				Order: c.Order,
				Item:  item.Render(),
			})
		}
		out.Modules = append(out.Modules, mod)
	}
	return out, nil
}

// ownedCourse loads a course and enforces the per-call owner filter.
func (s *courseService) ownedCourse(ctx context.Context, courseID uuid.UUID) (*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if len(courses) == 0 || courses[0] == nil || courses[0].OwnerID != rd.UserID {
		return nil, fmt.Errorf("%w: course", apierr.ErrNotFound)
	}
	return courses[0], nil
}
