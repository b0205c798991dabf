package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/testutil"
	"github.com/yungbote/educa-backend/internal/types"
)

func TestCreateCourseSlugifiesTitle(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")

	course, err := env.courses.CreateCourse(testutil.AuthedCtx(owner.ID, "owner"), CreateCourseInput{
		SubjectID: subject.ID,
		Title:     "Linear Algebra II",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	if course.Slug != "linear-algebra-ii" {
		t.Fatalf("slug = %q", course.Slug)
	}
	if course.OwnerID != owner.ID {
		t.Fatalf("owner = %s", course.OwnerID)
	}
}

func TestManageForeignCourseIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	other := testutil.SeedUser(t, seedCtx, env.db, "other@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ctx := testutil.AuthedCtx(other.ID, "other")
	if _, err := env.courses.UpdateCourse(ctx, course.ID, CreateCourseInput{Title: "stolen"}); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("UpdateCourse err = %v, want ErrNotFound", err)
	}
	if err := env.courses.DeleteCourse(ctx, course.ID); !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("DeleteCourse err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCourseCascadesModulesContentsAndItems(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ctx := testutil.AuthedCtx(owner.ID, "owner")
	module, err := env.modules.CreateModule(ctx, course.ID, CreateModuleInput{Title: "intro"})
	if err != nil {
		t.Fatalf("CreateModule: %v", err)
	}
	text, err := env.contents.CreateContent(ctx, module.ID, CreateContentInput{
		Type:    types.ItemTypeText,
		Title:   "reading",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("CreateContent text: %v", err)
	}
	video, err := env.contents.CreateContent(ctx, module.ID, CreateContentInput{
		Type:  types.ItemTypeVideo,
		Title: "lecture",
		URL:   "https://v.example.com/1",
	})
	if err != nil {
		t.Fatalf("CreateContent video: %v", err)
	}

	if err := env.courses.DeleteCourse(ctx, course.ID); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}

	rows, err := env.contentRepo.GetByIDs(context.Background(), nil, []uuid.UUID{text.ID, video.ID})
	if err != nil {
		t.Fatalf("reload contents: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("content rows survived course delete: %+v", rows)
	}
	for _, c := range []struct {
		tag types.ItemType
		id  uuid.UUID
	}{{text.ItemType, text.ItemID}, {video.ItemType, video.ItemID}} {
		if _, err := env.itemRepo.Get(context.Background(), nil, c.tag, c.id); err == nil {
			t.Fatalf("%s item survived course delete", c.tag)
		}
	}

	modules, err := env.moduleRepo.GetByCourseIDs(context.Background(), nil, []uuid.UUID{course.ID})
	if err != nil {
		t.Fatalf("reload modules: %v", err)
	}
	if len(modules) != 0 {
		t.Fatalf("modules survived course delete: %+v", modules)
	}
}

func TestGetCourseContentsRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	student := testutil.SeedUser(t, seedCtx, env.db, "student@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ownerCtx := testutil.AuthedCtx(owner.ID, "owner")
	module, err := env.modules.CreateModule(ownerCtx, course.ID, CreateModuleInput{Title: "intro", Description: "first steps"})
	if err != nil {
		t.Fatalf("CreateModule: %v", err)
	}
	if _, err := env.contents.CreateContent(ownerCtx, module.ID, CreateContentInput{
		Type:    types.ItemTypeText,
		Title:   "Welcome",
		Content: "Read this first.",
	}); err != nil {
		t.Fatalf("CreateContent text: %v", err)
	}
	if _, err := env.contents.CreateContent(ownerCtx, module.ID, CreateContentInput{
		Type:  types.ItemTypeVideo,
		Title: "Lecture 1",
		URL:   "https://videos.example.com/1",
	}); err != nil {
		t.Fatalf("CreateContent video: %v", err)
	}

	studentCtx := testutil.AuthedCtx(student.ID, "student")
	if _, err := env.courses.GetCourseContents(studentCtx, course.ID); !errors.Is(err, apierr.ErrForbidden) {
		t.Fatalf("pre-enrollment err = %v, want ErrForbidden", err)
	}

	if err := env.students.Enroll(studentCtx, course.ID); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	tree, err := env.courses.GetCourseContents(studentCtx, course.ID)
	if err != nil {
		t.Fatalf("post-enrollment GetCourseContents: %v", err)
	}

	if tree.ID != course.ID || tree.Owner != owner.ID {
		t.Fatalf("tree identity mismatch: %+v", tree)
	}
	if len(tree.Modules) != 1 {
		t.Fatalf("modules = %d, want 1", len(tree.Modules))
	}
	m := tree.Modules[0]
	if m.Title != "intro" || m.Order != 0 {
		t.Fatalf("module = %+v", m)
	}
	if len(m.Contents) != 2 {
		t.Fatalf("contents = %d, want 2", len(m.Contents))
	}
	if m.Contents[0].Order != 0 || !strings.Contains(m.Contents[0].Item, "Read this first.") {
		t.Fatalf("contents[0] = %+v", m.Contents[0])
	}
	if m.Contents[1].Order != 1 || !strings.Contains(m.Contents[1].Item, "https://videos.example.com/1") {
		t.Fatalf("contents[1] = %+v", m.Contents[1])
	}
}

func TestGetCourseContentsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.courses.GetCourseContents(context.Background(), uuid.New())
	if !errors.Is(err, apierr.ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}
