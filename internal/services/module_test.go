package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/testutil"
	"github.com/yungbote/educa-backend/internal/types"
)

func TestCreateModuleAssignsSequentialOrders(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ctx := testutil.AuthedCtx(owner.ID, "owner")
	for i := 0; i < 3; i++ {
		m, err := env.modules.CreateModule(ctx, course.ID, CreateModuleInput{Title: "module"})
		if err != nil {
			t.Fatalf("CreateModule #%d: %v", i, err)
		}
		if m.Order != i {
			t.Fatalf("module #%d got order %d", i, m.Order)
		}
	}

	listed, err := env.modules.ListModulesForCourse(ctx, course.ID)
	if err != nil {
		t.Fatalf("ListModulesForCourse: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("listed %d modules, want 3", len(listed))
	}
	for i, m := range listed {
		if m.Order != i {
			t.Fatalf("listed[%d].Order = %d", i, m.Order)
		}
	}
}

func TestCreateModuleOnForeignCourseIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	other := testutil.SeedUser(t, seedCtx, env.db, "other@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	_, err := env.modules.CreateModule(testutil.AuthedCtx(other.ID, "other"), course.ID, CreateModuleInput{Title: "module"})
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReorderModulesSkipsForeignIDs(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	other := testutil.SeedUser(t, seedCtx, env.db, "other@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")

	mine := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")
	m0 := testutil.SeedModule(t, seedCtx, env.db, mine.ID, 0)
	m1 := testutil.SeedModule(t, seedCtx, env.db, mine.ID, 1)

	theirs := testutil.SeedCourse(t, seedCtx, env.db, other.ID, subject.ID, "geometry")
	foreign := testutil.SeedModule(t, seedCtx, env.db, theirs.ID, 0)

	ctx := testutil.AuthedCtx(owner.ID, "owner")
	applied, err := env.modules.ReorderModules(ctx, map[uuid.UUID]int{
		m0.ID:      1,
		m1.ID:      0,
		foreign.ID: 5,
	})
	if err != nil {
		t.Fatalf("ReorderModules: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}

	listed, err := env.modules.ListModulesForCourse(ctx, mine.ID)
	if err != nil {
		t.Fatalf("ListModulesForCourse: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != m1.ID || listed[1].ID != m0.ID {
		t.Fatalf("order not applied: %+v", listed)
	}

	foreignAfter, err := env.moduleRepo.GetByIDs(context.Background(), nil, []uuid.UUID{foreign.ID})
	if err != nil || len(foreignAfter) != 1 {
		t.Fatalf("reload foreign module: err=%v len=%d", err, len(foreignAfter))
	}
	if foreignAfter[0].Order != 0 {
		t.Fatalf("foreign module order changed to %d", foreignAfter[0].Order)
	}
}

func TestDeleteModuleCascadesContentsAndItems(t *testing.T) {
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
	content, err := env.contents.CreateContent(ctx, module.ID, CreateContentInput{
		Type:    types.ItemTypeText,
		Title:   "reading",
		Content: "body",
	})
	if err != nil {
		t.Fatalf("CreateContent: %v", err)
	}

	if err := env.modules.DeleteModule(ctx, module.ID); err != nil {
		t.Fatalf("DeleteModule: %v", err)
	}

	rows, err := env.contentRepo.GetByIDs(context.Background(), nil, []uuid.UUID{content.ID})
	if err != nil {
		t.Fatalf("reload content: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("content row survived module delete: %+v", rows[0])
	}
	if _, err := env.itemRepo.Get(context.Background(), nil, content.ItemType, content.ItemID); err == nil {
		t.Fatalf("item row survived module delete")
	}
}

func TestDeleteModuleThenCreateContinuesFromMax(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ctx := testutil.AuthedCtx(owner.ID, "owner")
	var last uuid.UUID
	for i := 0; i < 3; i++ {
		m, err := env.modules.CreateModule(ctx, course.ID, CreateModuleInput{Title: "module"})
		if err != nil {
			t.Fatalf("CreateModule: %v", err)
		}
		last = m.ID
	}
	if err := env.modules.DeleteModule(ctx, last); err != nil {
		t.Fatalf("DeleteModule: %v", err)
	}

	// Orders are assigned from the live maximum, so the freed slot is
	// reused after the tail module is removed.
	m, err := env.modules.CreateModule(ctx, course.ID, CreateModuleInput{Title: "module"})
	if err != nil {
		t.Fatalf("CreateModule after delete: %v", err)
	}
	if m.Order != 2 {
		t.Fatalf("order after tail delete = %d, want 2", m.Order)
	}
}
