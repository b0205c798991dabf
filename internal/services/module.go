package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/requestdata"
	"github.com/yungbote/educa-backend/internal/types"
)

type CreateModuleInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ModuleService interface {
	ListModulesForCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Module, error)
	CreateModule(ctx context.Context, courseID uuid.UUID, input CreateModuleInput) (*types.Module, error)
	UpdateModule(ctx context.Context, moduleID uuid.UUID, input CreateModuleInput) (*types.Module, error)
	DeleteModule(ctx context.Context, moduleID uuid.UUID) error
	ReorderModules(ctx context.Context, orders map[uuid.UUID]int) (int, error)
}

type moduleService struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	moduleRepo  repos.ModuleRepo
	contentRepo repos.ContentRepo
	itemRepo    repos.ItemRepo
	catalog     CatalogService
}

func NewModuleService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	contentRepo repos.ContentRepo,
	itemRepo repos.ItemRepo,
	catalog CatalogService,
) ModuleService {
	return &moduleService{
		db:          db,
		log:         baseLog.With("service", "ModuleService"),
		courseRepo:  courseRepo,
		moduleRepo:  moduleRepo,
		contentRepo: contentRepo,
		itemRepo:    itemRepo,
		catalog:     catalog,
	}
}

func (s *moduleService) ListModulesForCourse(ctx context.Context, courseID uuid.UUID) ([]*types.Module, error) {
	course, err := s.ownedCourse(ctx, nil, courseID)
	if err != nil {
		return nil, err
	}
	return s.moduleRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{course.ID})
}

// CreateModule assigns the module's order at the moment of insertion.
// The max(order)+1 read and the insert run in one transaction so two
// concurrent creates on the same course cannot both observe the same
// maximum.
func (s *moduleService) CreateModule(ctx context.Context, courseID uuid.UUID, input CreateModuleInput) (*types.Module, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apierr.ErrInvalidArgument)
	}

	var module *types.Module
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		course, err := s.ownedCourse(ctx, tx, courseID)
		if err != nil {
			return err
		}
		next, err := s.moduleRepo.NextOrder(ctx, tx, course.ID)
		if err != nil {
			return fmt.Errorf("failed to compute next order: %w", err)
		}
		module = &types.Module{
			ID:          uuid.New(),
			CourseID:    course.ID,
			Order:       next,
			Title:       input.Title,
			Description: input.Description,
		}
		if _, err := s.moduleRepo.Create(ctx, tx, []*types.Module{module}); err != nil {
			return fmt.Errorf("failed to create module: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.catalog.InvalidateCounts(ctx)
	return module, nil
}

func (s *moduleService) UpdateModule(ctx context.Context, moduleID uuid.UUID, input CreateModuleInput) (*types.Module, error) {
	module, err := s.ownedModule(ctx, nil, moduleID)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(input.Title); title != "" {
		module.Title = title
	}
	if input.Description != "" {
		module.Description = input.Description
	}
	if err := s.moduleRepo.Update(ctx, nil, module); err != nil {
		return nil, fmt.Errorf("failed to update module: %w", err)
	}
	return module, nil
}

// DeleteModule removes the module with its contents and their item
// rows in one transaction, so nothing in the item tables is left
// pointing at a dead module.
func (s *moduleService) DeleteModule(ctx context.Context, moduleID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		module, err := s.ownedModule(ctx, tx, moduleID)
		if err != nil {
			return err
		}
		if err := purgeModuleContents(ctx, tx, s.contentRepo, s.itemRepo, []uuid.UUID{module.ID}); err != nil {
			return err
		}
		if err := s.moduleRepo.Delete(ctx, tx, module.ID); err != nil {
			return fmt.Errorf("failed to delete module: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.catalog.InvalidateCounts(ctx)
	return nil
}

// ReorderModules applies a batch of id->order assignments. Entries
// whose module does not belong to one of the caller's courses match
// zero rows and are skipped; the rest are applied. No contiguity or
// uniqueness check is made on the resulting values, the caller is
// trusted. Returns the number of modules updated.
func (s *moduleService) ReorderModules(ctx context.Context, orders map[uuid.UUID]int) (int, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return 0, apierr.ErrUnauthorized
	}
	var applied int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			affected, err := s.moduleRepo.UpdateOrderOwned(ctx, tx, id, order, rd.UserID)
			if err != nil {
				return fmt.Errorf("failed to reorder module %s: %w", id, err)
			}
			applied += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func (s *moduleService) ownedCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.Course, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if len(courses) == 0 || courses[0] == nil || courses[0].OwnerID != rd.UserID {
		return nil, fmt.Errorf("%w: course", apierr.ErrNotFound)
	}
	return courses[0], nil
}

func (s *moduleService) ownedModule(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (*types.Module, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, fmt.Errorf("failed to load module: %w", err)
	}
	if len(modules) == 0 || modules[0] == nil {
		return nil, fmt.Errorf("%w: module", apierr.ErrNotFound)
	}
	module := modules[0]
	if _, err := s.ownedCourse(ctx, tx, module.CourseID); err != nil {
		return nil, err
	}
	return module, nil
}
