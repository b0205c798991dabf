package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Course struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner     *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	SubjectID uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	Title     string         `gorm:"column:title;not null" json:"title"`
	Slug      string         `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Overview  string         `gorm:"column:overview" json:"overview"`
	Metadata  datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	Modules   []*Module      `gorm:"foreignKey:CourseID;references:ID" json:"modules,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created"`
	UpdatedAt time.Time      `gorm:"not null" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Course) TableName() string { return "course" }

// CourseWithCount is the catalog row: a course annotated with the
// number of modules it owns.
type CourseWithCount struct {
	Course
	TotalModules int64 `gorm:"column:total_modules" json:"total_modules"`
}
