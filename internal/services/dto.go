package services

import (
	"time"

	"github.com/google/uuid"
)

// ModuleSummary is the module shape nested under public course
// listings: order, title, description and nothing else.
type ModuleSummary struct {
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CourseDetail struct {
	ID       uuid.UUID       `json:"id"`
	Subject  uuid.UUID       `json:"subject"`
	Title    string          `json:"title"`
	Slug     string          `json:"slug"`
	Overview string          `json:"overview"`
	Created  time.Time       `json:"created"`
	Owner    uuid.UUID       `json:"owner"`
	Modules  []ModuleSummary `json:"modules"`
}

// RenderedContent carries a content row with its item already rendered
// to the display string.
type RenderedContent struct {
	Order int    `json:"order"`
	Item  string `json:"item"`
}

type ModuleWithContents struct {
	Order       int               `json:"order"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Contents    []RenderedContent `json:"contents"`
}

type CourseContents struct {
	ID       uuid.UUID            `json:"id"`
	Subject  uuid.UUID            `json:"subject"`
	Title    string               `json:"title"`
	Slug     string               `json:"slug"`
	Overview string               `json:"overview"`
	Created  time.Time            `json:"created"`
	Owner    uuid.UUID            `json:"owner"`
	Modules  []ModuleWithContents `json:"modules"`
}
