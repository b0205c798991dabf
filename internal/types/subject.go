package types

import (
	"github.com/google/uuid"
)

type Subject struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title string    `gorm:"column:title;not null" json:"title"`
	Slug  string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
}

func (Subject) TableName() string { return "subject" }

// SubjectWithCount is the catalog row: a subject annotated with the
// number of courses referencing it.
type SubjectWithCount struct {
	Subject
	TotalCourses int64 `gorm:"column:total_courses" json:"total_courses"`
}
