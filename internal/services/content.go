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

// CreateContentInput carries the union of item payload fields; the
// ones that apply are picked by the type tag, the rest are ignored.
type CreateContentInput struct {
	Type    types.ItemType `json:"type"`
	Title   string         `json:"title"`
	Content string         `json:"content"`
	URL     string         `json:"url"`
	FileKey string         `json:"file_key"`
}

// ContentService is the polymorphic item registry: create, update and
// delete of Content rows together with the single item row each one
// references.
type ContentService interface {
	CreateContent(ctx context.Context, moduleID uuid.UUID, input CreateContentInput) (*types.Content, error)
	UpdateItem(ctx context.Context, contentID uuid.UUID, input CreateContentInput) (*types.Item, error)
	DeleteContent(ctx context.Context, contentID uuid.UUID) error
	ReorderContents(ctx context.Context, orders map[uuid.UUID]int) (int, error)
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	moduleRepo  repos.ModuleRepo
	contentRepo repos.ContentRepo
	itemRepo    repos.ItemRepo
}

func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	moduleRepo repos.ModuleRepo,
	contentRepo repos.ContentRepo,
	itemRepo repos.ItemRepo,
) ContentService {
	return &contentService{
		db:          db,
		log:         baseLog.With("service", "ContentService"),
		courseRepo:  courseRepo,
		moduleRepo:  moduleRepo,
		contentRepo: contentRepo,
		itemRepo:    itemRepo,
	}
}

// CreateContent rejects unknown type tags at the boundary, then
// creates the item row and the content row (order assigned at
// insertion) in one transaction.
func (s *contentService) CreateContent(ctx context.Context, moduleID uuid.UUID, input CreateContentInput) (*types.Content, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}
	if !types.ValidItemType(input.Type) {
		return nil, fmt.Errorf("%w: item type must be one of text, video, image, file", apierr.ErrInvalidArgument)
	}
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", apierr.ErrInvalidArgument)
	}

	var content *types.Content
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		module, err := s.ownedModule(ctx, tx, moduleID, rd.UserID)
		if err != nil {
			return err
		}
		item := buildItem(input, rd.UserID)
		if err := s.itemRepo.Create(ctx, tx, item); err != nil {
			return fmt.Errorf("failed to create %s item: %w", input.Type, err)
		}
		next, err := s.contentRepo.NextOrder(ctx, tx, module.ID)
		if err != nil {
			return fmt.Errorf("failed to compute next order: %w", err)
		}
		content = &types.Content{
			ID:       uuid.New(),
			ModuleID: module.ID,
			Order:    next,
			ItemType: input.Type,
			ItemID:   item.ID(),
		}
		if _, err := s.contentRepo.Create(ctx, tx, []*types.Content{content}); err != nil {
			return fmt.Errorf("failed to create content: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) UpdateItem(ctx context.Context, contentID uuid.UUID, input CreateContentInput) (*types.Item, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.ErrUnauthorized
	}

	var item *types.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content, err := s.ownedContent(ctx, tx, contentID, rd.UserID)
		if err != nil {
			return err
		}
		item, err = s.itemRepo.Get(ctx, tx, content.ItemType, content.ItemID)
		if err != nil {
			return fmt.Errorf("failed to load %s item: %w", content.ItemType, err)
		}
		applyItemUpdate(item, input)
		if err := s.itemRepo.Update(ctx, tx, item); err != nil {
			return fmt.Errorf("failed to update %s item: %w", content.ItemType, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteContent removes the referenced item first, then the content
// row, inside one transaction: if either delete fails the whole
// operation rolls back and the error is surfaced, never swallowed.
func (s *contentService) DeleteContent(ctx context.Context, contentID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.ErrUnauthorized
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content, err := s.ownedContent(ctx, tx, contentID, rd.UserID)
		if err != nil {
			return err
		}
		if err := s.itemRepo.Delete(ctx, tx, content.ItemType, content.ItemID); err != nil {
			return fmt.Errorf("failed to delete %s item %s: %w", content.ItemType, content.ItemID, err)
		}
		if err := s.contentRepo.Delete(ctx, tx, content.ID); err != nil {
			return fmt.Errorf("failed to delete content %s after its item: %w", content.ID, err)
		}
		return nil
	})
}

// ReorderContents is the content counterpart of ReorderModules, with
// ownership resolved through the module->course->owner chain.
func (s *contentService) ReorderContents(ctx context.Context, orders map[uuid.UUID]int) (int, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return 0, apierr.ErrUnauthorized
	}
	var applied int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, order := range orders {
			affected, err := s.contentRepo.UpdateOrderOwned(ctx, tx, id, order, rd.UserID)
			if err != nil {
				return fmt.Errorf("failed to reorder content %s: %w", id, err)
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

// purgeModuleContents hard-deletes the contents of the given modules
// together with the item row each one references. Course and module
// removal call it inside their delete transaction; without it the
// item tables would orphan, since contents and items are not
// soft-deleted.
func purgeModuleContents(ctx context.Context, tx *gorm.DB, contentRepo repos.ContentRepo, itemRepo repos.ItemRepo, moduleIDs []uuid.UUID) error {
	if len(moduleIDs) == 0 {
		return nil
	}
	contents, err := contentRepo.GetByModuleIDs(ctx, tx, moduleIDs)
	if err != nil {
		return fmt.Errorf("failed to load contents for cascade: %w", err)
	}
	for _, c := range contents {
		if err := itemRepo.Delete(ctx, tx, c.ItemType, c.ItemID); err != nil {
			return fmt.Errorf("failed to delete %s item %s: %w", c.ItemType, c.ItemID, err)
		}
	}
	if err := contentRepo.DeleteByModuleIDs(ctx, tx, moduleIDs); err != nil {
		return fmt.Errorf("failed to delete contents after their items: %w", err)
	}
	return nil
}

func (s *contentService) ownedModule(ctx context.Context, tx *gorm.DB, moduleID, ownerID uuid.UUID) (*types.Module, error) {
	modules, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{moduleID})
	if err != nil {
		return nil, fmt.Errorf("failed to load module: %w", err)
	}
	if len(modules) == 0 || modules[0] == nil {
		return nil, fmt.Errorf("%w: module", apierr.ErrNotFound)
	}
	module := modules[0]
	courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{module.CourseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load course: %w", err)
	}
	if len(courses) == 0 || courses[0] == nil || courses[0].OwnerID != ownerID {
		return nil, fmt.Errorf("%w: module", apierr.ErrNotFound)
	}
	return module, nil
}

func (s *contentService) ownedContent(ctx context.Context, tx *gorm.DB, contentID, ownerID uuid.UUID) (*types.Content, error) {
	contents, err := s.contentRepo.GetByIDs(ctx, tx, []uuid.UUID{contentID})
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	if len(contents) == 0 || contents[0] == nil {
		return nil, fmt.Errorf("%w: content", apierr.ErrNotFound)
	}
	content := contents[0]
	if _, err := s.ownedModule(ctx, tx, content.ModuleID, ownerID); err != nil {
		return nil, fmt.Errorf("%w: content", apierr.ErrNotFound)
	}
	return content, nil
}

func buildItem(input CreateContentInput, ownerID uuid.UUID) *types.Item {
	fields := types.ItemFields{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   input.Title,
	}
	item := &types.Item{Type: input.Type}
	switch input.Type {
	case types.ItemTypeText:
		item.Text = &types.TextItem{ItemFields: fields, Content: input.Content}
	case types.ItemTypeVideo:
		item.Video = &types.VideoItem{ItemFields: fields, URL: input.URL}
	case types.ItemTypeImage:
		item.Image = &types.ImageItem{ItemFields: fields, FileKey: input.FileKey}
	case types.ItemTypeFile:
		item.File = &types.FileItem{ItemFields: fields, FileKey: input.FileKey}
	}
	return item
}

func applyItemUpdate(item *types.Item, input CreateContentInput) {
	title := strings.TrimSpace(input.Title)
	switch item.Type {
	case types.ItemTypeText:
		if title != "" {
			item.Text.Title = title
		}
		if input.Content != "" {
			item.Text.Content = input.Content
		}
	case types.ItemTypeVideo:
		if title != "" {
			item.Video.Title = title
		}
		if input.URL != "" {
			item.Video.URL = input.URL
		}
	case types.ItemTypeImage:
		if title != "" {
			item.Image.Title = title
		}
		if input.FileKey != "" {
			item.Image.FileKey = input.FileKey
		}
	case types.ItemTypeFile:
		if title != "" {
			item.File.Title = title
		}
		if input.FileKey != "" {
			item.File.FileKey = input.FileKey
		}
	}
}
