package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/types"
)

// ItemRepo stores the four item tables behind the closed type tag.
// Dispatch happens here, in one switch per operation, so no caller
// ever touches a table by reflected name.
type ItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.Item) error
	Update(ctx context.Context, tx *gorm.DB, item *types.Item) error
	Get(ctx context.Context, tx *gorm.DB, tag types.ItemType, itemID uuid.UUID) (*types.Item, error)
	Delete(ctx context.Context, tx *gorm.DB, tag types.ItemType, itemID uuid.UUID) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.Item) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	switch item.Type {
	case types.ItemTypeText:
		return transaction.WithContext(ctx).Create(item.Text).Error
	case types.ItemTypeVideo:
		return transaction.WithContext(ctx).Create(item.Video).Error
	case types.ItemTypeImage:
		return transaction.WithContext(ctx).Create(item.Image).Error
	case types.ItemTypeFile:
		return transaction.WithContext(ctx).Create(item.File).Error
	}
	return fmt.Errorf("unknown item type %q", item.Type)
}

func (r *itemRepo) Update(ctx context.Context, tx *gorm.DB, item *types.Item) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	switch item.Type {
	case types.ItemTypeText:
		return transaction.WithContext(ctx).Save(item.Text).Error
	case types.ItemTypeVideo:
		return transaction.WithContext(ctx).Save(item.Video).Error
	case types.ItemTypeImage:
		return transaction.WithContext(ctx).Save(item.Image).Error
	case types.ItemTypeFile:
		return transaction.WithContext(ctx).Save(item.File).Error
	}
	return fmt.Errorf("unknown item type %q", item.Type)
}

func (r *itemRepo) Get(ctx context.Context, tx *gorm.DB, tag types.ItemType, itemID uuid.UUID) (*types.Item, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	item := &types.Item{Type: tag}
	var err error
	switch tag {
	case types.ItemTypeText:
		var row types.TextItem
		err = transaction.WithContext(ctx).Where("id = ?", itemID).First(&row).Error
		item.Text = &row
	case types.ItemTypeVideo:
		var row types.VideoItem
		err = transaction.WithContext(ctx).Where("id = ?", itemID).First(&row).Error
		item.Video = &row
	case types.ItemTypeImage:
		var row types.ImageItem
		err = transaction.WithContext(ctx).Where("id = ?", itemID).First(&row).Error
		item.Image = &row
	case types.ItemTypeFile:
		var row types.FileItem
		err = transaction.WithContext(ctx).Where("id = ?", itemID).First(&row).Error
		item.File = &row
	default:
		return nil, fmt.Errorf("unknown item type %q", tag)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Delete(ctx context.Context, tx *gorm.DB, tag types.ItemType, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	switch tag {
	case types.ItemTypeText:
		return transaction.WithContext(ctx).Where("id = ?", itemID).Delete(&types.TextItem{}).Error
	case types.ItemTypeVideo:
		return transaction.WithContext(ctx).Where("id = ?", itemID).Delete(&types.VideoItem{}).Error
	case types.ItemTypeImage:
		return transaction.WithContext(ctx).Where("id = ?", itemID).Delete(&types.ImageItem{}).Error
	case types.ItemTypeFile:
		return transaction.WithContext(ctx).Where("id = ?", itemID).Delete(&types.FileItem{}).Error
	}
	return fmt.Errorf("unknown item type %q", tag)
}
