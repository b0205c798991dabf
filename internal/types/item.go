package types

import (
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"
)

// ItemFields are the columns shared by the four item tables.
type ItemFields struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type TextItem struct {
	ItemFields
	Content string `gorm:"column:content" json:"content"`
}

func (TextItem) TableName() string { return "text" }

type VideoItem struct {
	ItemFields
	URL string `gorm:"column:url" json:"url"`
}

func (VideoItem) TableName() string { return "video" }

type ImageItem struct {
	ItemFields
	FileKey string `gorm:"column:file_key" json:"file_key"`
}

func (ImageItem) TableName() string { return "image" }

type FileItem struct {
	ItemFields
	FileKey string `gorm:"column:file_key" json:"file_key"`
}

func (FileItem) TableName() string { return "file" }

// Item is the tagged union over the four item tables. Exactly one of
// the pointers is set, matching Type.
type Item struct {
	Type  ItemType
	Text  *TextItem
	Video *VideoItem
	Image *ImageItem
	File  *FileItem
}

func (it *Item) ID() uuid.UUID {
	switch it.Type {
	case ItemTypeText:
		return it.Text.ID
	case ItemTypeVideo:
		return it.Video.ID
	case ItemTypeImage:
		return it.Image.ID
	case ItemTypeFile:
		return it.File.ID
	}
	return uuid.Nil
}

func (it *Item) OwnerID() uuid.UUID {
	switch it.Type {
	case ItemTypeText:
		return it.Text.OwnerID
	case ItemTypeVideo:
		return it.Video.OwnerID
	case ItemTypeImage:
		return it.Image.OwnerID
	case ItemTypeFile:
		return it.File.OwnerID
	}
	return uuid.Nil
}

func (it *Item) Title() string {
	switch it.Type {
	case ItemTypeText:
		return it.Text.Title
	case ItemTypeVideo:
		return it.Video.Title
	case ItemTypeImage:
		return it.Image.Title
	case ItemTypeFile:
		return it.File.Title
	}
	return ""
}

// Render produces the display representation of the item. It is a pure
// function of the item's fields and type tag; the markup mirrors the
// per-type display templates of the course frontend.
func (it *Item) Render() string {
	switch it.Type {
	case ItemTypeText:
		return fmt.Sprintf("<div class=\"text\"><h3>%s</h3><p>%s</p></div>",
			html.EscapeString(it.Text.Title), html.EscapeString(it.Text.Content))
	case ItemTypeVideo:
		return fmt.Sprintf("<div class=\"video\"><h3>%s</h3><iframe src=%q></iframe></div>",
			html.EscapeString(it.Video.Title), it.Video.URL)
	case ItemTypeImage:
		return fmt.Sprintf("<div class=\"image\"><h3>%s</h3><img src=%q alt=%q></div>",
			html.EscapeString(it.Image.Title), "/media/"+it.Image.FileKey, it.Image.Title)
	case ItemTypeFile:
		return fmt.Sprintf("<div class=\"file\"><h3>%s</h3><a href=%q>Download</a></div>",
			html.EscapeString(it.File.Title), "/media/"+it.File.FileKey)
	}
	return ""
}
