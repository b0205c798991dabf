package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/educa-backend/internal/apierr"
	"github.com/yungbote/educa-backend/internal/testutil"
	"github.com/yungbote/educa-backend/internal/types"
)

func TestEnrollIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	student := testutil.SeedUser(t, seedCtx, env.db, "student@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	ctx := testutil.AuthedCtx(student.ID, "student")
	if err := env.students.Enroll(ctx, course.ID); err != nil {
		t.Fatalf("first Enroll: %v", err)
	}
	if err := env.students.Enroll(ctx, course.ID); err != nil {
		t.Fatalf("second Enroll: %v", err)
	}

	enrolled, err := env.students.IsEnrolled(ctx, course.ID, student.ID)
	if err != nil {
		t.Fatalf("IsEnrolled: %v", err)
	}
	if !enrolled {
		t.Fatalf("IsEnrolled = false after Enroll")
	}

	listed, err := env.students.ListEnrolledCourses(ctx)
	if err != nil {
		t.Fatalf("ListEnrolledCourses: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != course.ID {
		t.Fatalf("enrolled courses = %+v, want exactly the one course", listed)
	}
}

func TestEnrollUnknownCourseIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	student := testutil.SeedUser(t, context.Background(), env.db, "student@example.com")

	err := env.students.Enroll(testutil.AuthedCtx(student.ID, "student"), uuid.New())
	if !errors.Is(err, apierr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListEnrolledCoursesMostRecentFirst(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	student := testutil.SeedUser(t, seedCtx, env.db, "student@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	first := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")
	second := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "calculus")

	// Seed enrollments directly so the timestamps are unambiguous:
	// "second" is the more recent enrollment.
	now := time.Now().UTC()
	for _, e := range []*types.Enrollment{
		{ID: uuid.New(), CourseID: first.ID, UserID: student.ID, CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), CourseID: second.ID, UserID: student.ID, CreatedAt: now},
	} {
		if err := env.db.WithContext(seedCtx).Create(e).Error; err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
	}

	listed, err := env.students.ListEnrolledCourses(testutil.AuthedCtx(student.ID, "student"))
	if err != nil {
		t.Fatalf("ListEnrolledCourses: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("len(listed) = %d, want 2", len(listed))
	}
	if listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Fatalf("courses = [%s, %s], want most recent enrollment first", listed[0].Title, listed[1].Title)
	}
}

func TestIsEnrolledFalseWithoutEnrollment(t *testing.T) {
	env := newTestEnv(t)
	seedCtx := context.Background()

	owner := testutil.SeedUser(t, seedCtx, env.db, "owner@example.com")
	student := testutil.SeedUser(t, seedCtx, env.db, "student@example.com")
	subject := testutil.SeedSubject(t, seedCtx, env.db, "math")
	course := testutil.SeedCourse(t, seedCtx, env.db, owner.ID, subject.ID, "algebra")

	enrolled, err := env.students.IsEnrolled(context.Background(), course.ID, student.ID)
	if err != nil {
		t.Fatalf("IsEnrolled: %v", err)
	}
	if enrolled {
		t.Fatalf("IsEnrolled = true without enrollment")
	}
}
