package types

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidItemType(t *testing.T) {
	for _, tag := range []ItemType{ItemTypeText, ItemTypeVideo, ItemTypeImage, ItemTypeFile} {
		if !ValidItemType(tag) {
			t.Fatalf("ValidItemType(%q) = false", tag)
		}
	}
	for _, tag := range []ItemType{"", "quiz", "TEXT"} {
		if ValidItemType(tag) {
			t.Fatalf("ValidItemType(%q) = true", tag)
		}
	}
}

func TestItemRenderPerType(t *testing.T) {
	id := uuid.New()
	owner := uuid.New()

	cases := []struct {
		name string
		item Item
		want []string
	}{
		{
			name: "text",
			item: Item{Type: ItemTypeText, Text: &TextItem{ItemFields: ItemFields{ID: id, OwnerID: owner, Title: "Reading"}, Content: "Some prose."}},
			want: []string{`class="text"`, "<h3>Reading</h3>", "Some prose."},
		},
		{
			name: "video",
			item: Item{Type: ItemTypeVideo, Video: &VideoItem{ItemFields: ItemFields{ID: id, OwnerID: owner, Title: "Lecture"}, URL: "https://v.example.com/1"}},
			want: []string{`class="video"`, "<iframe", "https://v.example.com/1"},
		},
		{
			name: "image",
			item: Item{Type: ItemTypeImage, Image: &ImageItem{ItemFields: ItemFields{ID: id, OwnerID: owner, Title: "Diagram"}, FileKey: "diagram.png"}},
			want: []string{`class="image"`, "<img", "/media/diagram.png"},
		},
		{
			name: "file",
			item: Item{Type: ItemTypeFile, File: &FileItem{ItemFields: ItemFields{ID: id, OwnerID: owner, Title: "Slides"}, FileKey: "slides.pdf"}},
			want: []string{`class="file"`, "Download", "/media/slides.pdf"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.item.Render()
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Fatalf("Render() = %q, missing %q", got, fragment)
				}
			}
			if tc.item.ID() != id || tc.item.OwnerID() != owner {
				t.Fatalf("accessor mismatch for %s", tc.name)
			}
		})
	}
}

func TestItemRenderEscapesMarkup(t *testing.T) {
	item := Item{Type: ItemTypeText, Text: &TextItem{
		ItemFields: ItemFields{ID: uuid.New(), Title: "<script>alert(1)</script>"},
		Content:    "a < b & c",
	}}
	got := item.Render()
	if strings.Contains(got, "<script>") {
		t.Fatalf("Render() leaked raw markup: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") || !strings.Contains(got, "a &lt; b &amp; c") {
		t.Fatalf("Render() = %q, want escaped fragments", got)
	}
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Email: "x@example.com", FirstName: "Ada", LastName: "Lovelace"}
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Fatalf("DisplayName = %q", got)
	}
	u = &User{Email: "x@example.com"}
	if got := u.DisplayName(); got != "x@example.com" {
		t.Fatalf("DisplayName fallback = %q", got)
	}
}
