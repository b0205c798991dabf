package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/types"
)

type ModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, modules []*types.Module) ([]*types.Module, error)
	Update(ctx context.Context, tx *gorm.DB, module *types.Module) error
	Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Module, error)
	GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Module, error)
	NextOrder(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error)
	UpdateOrderOwned(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, order int, ownerID uuid.UUID) (int64, error)
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	return &moduleRepo{db: db, log: baseLog.With("repo", "ModuleRepo")}
}

func (r *moduleRepo) Create(ctx context.Context, tx *gorm.DB, modules []*types.Module) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(modules) == 0 {
		return []*types.Module{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepo) Update(ctx context.Context, tx *gorm.DB, module *types.Module) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(module).Error
}

func (r *moduleRepo) Delete(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", moduleID).
		Delete(&types.Module{}).Error
}

func (r *moduleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Module
	if len(moduleIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", moduleIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moduleRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Module
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order(`"order" ASC`).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// NextOrder computes the order for a module about to be inserted:
// max(order)+1 among the course's modules, 0 when there are none.
// Callers run it in the same transaction as the insert so the value
// is assigned at the moment of insertion.
func (r *moduleRepo) NextOrder(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var next int
	if err := transaction.WithContext(ctx).
		Model(&types.Module{}).
		Where("course_id = ?", courseID).
		Select(`COALESCE(MAX("order")+1, 0)`).
		Scan(&next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// UpdateOrderOwned applies one entry of a reorder request. The update
// is keyed by id AND course ownership: ids pointing at another owner's
// module match zero rows and are left untouched. Returns rows affected.
func (r *moduleRepo) UpdateOrderOwned(ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, order int, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	ownedCourses := transaction.
		Model(&types.Course{}).
		Select("id").
		Where("owner_id = ?", ownerID)
	result := transaction.WithContext(ctx).
		Model(&types.Module{}).
		Where("id = ? AND course_id IN (?)", moduleID, ownedCourses).
		Update("order", order)
	return result.RowsAffected, result.Error
}
