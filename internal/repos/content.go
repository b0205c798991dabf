package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/types"
)

type ContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contents []*types.Content) ([]*types.Content, error)
	Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
	DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) ([]*types.Content, error)
	GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Content, error)
	NextOrder(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int, error)
	UpdateOrderOwned(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, order int, ownerID uuid.UUID) (int64, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{db: db, log: baseLog.With("repo", "ContentRepo")}
}

func (r *contentRepo) Create(ctx context.Context, tx *gorm.DB, contents []*types.Content) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(contents) == 0 {
		return []*types.Content{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *contentRepo) Delete(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", contentID).
		Delete(&types.Content{}).Error
}

func (r *contentRepo) DeleteByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(moduleIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Delete(&types.Content{}).Error
}

func (r *contentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Content
	if len(contentIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", contentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRepo) GetByModuleIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Content, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Content
	if len(moduleIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("module_id IN ?", moduleIDs).
		Order(`"order" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// NextOrder mirrors ModuleRepo.NextOrder for contents within a module.
func (r *contentRepo) NextOrder(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var next int
	if err := transaction.WithContext(ctx).
		Model(&types.Content{}).
		Where("module_id = ?", moduleID).
		Select(`COALESCE(MAX("order")+1, 0)`).
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// UpdateOrderOwned applies one entry of a content reorder request,
// keyed by id AND the module->course->owner chain.
func (r *contentRepo) UpdateOrderOwned(ctx context.Context, tx *gorm.DB, contentID uuid.UUID, order int, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	ownedCourses := transaction.
		Model(&types.Course{}).
		Select("id").
		Where("owner_id = ?", ownerID)
	ownedModules := transaction.
		Model(&types.Module{}).
		Select("id").
		Where("course_id IN (?)", ownedCourses)
	result := transaction.WithContext(ctx).
		Model(&types.Content{}).
		Where("id = ? AND module_id IN (?)", contentID, ownedModules).
		Update("order", order)
	return result.RowsAffected, result.Error
}
