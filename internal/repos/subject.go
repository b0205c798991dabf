package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/types"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.Subject, error)
	GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Subject, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error)
	ListWithCourseCounts(ctx context.Context, tx *gorm.DB) ([]*types.SubjectWithCount, error)
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(subjects) == 0 {
		return []*types.Subject{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) GetByIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Subject
	if len(subjectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", subjectIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subjectRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.Subject
	if err := transaction.WithContext(ctx).
		Where("slug = ?", slug).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *subjectRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Subject
	if err := transaction.WithContext(ctx).
		Order("title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListWithCourseCounts annotates every subject with the number of
// courses referencing it, the contract backing the public course list.
func (r *subjectRepo) ListWithCourseCounts(ctx context.Context, tx *gorm.DB) ([]*types.SubjectWithCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.SubjectWithCount
	if err := transaction.WithContext(ctx).
		Model(&types.Subject{}).
		Select(`subject.*, (SELECT COUNT(*) FROM course WHERE course.subject_id = subject.id AND course.deleted_at IS NULL) AS total_courses`).
		Order("subject.title ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
