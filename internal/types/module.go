package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module is one section of a course. Order is unique and contiguous
// from 0 among the modules of the same course; it is assigned at
// creation and changed only through an explicit reorder.
type Module struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course        `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"course,omitempty"`
	Order       int            `gorm:"column:order;not null" json:"order"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Contents    []*Content     `gorm:"foreignKey:ModuleID;references:ID" json:"contents,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Module) TableName() string { return "module" }
