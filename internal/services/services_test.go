package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/testutil"
)

// testEnv wires the full service graph against one throwaway database.
type testEnv struct {
	db *gorm.DB

	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	subjectRepo    repos.SubjectRepo
	courseRepo     repos.CourseRepo
	moduleRepo     repos.ModuleRepo
	contentRepo    repos.ContentRepo
	itemRepo       repos.ItemRepo
	enrollmentRepo repos.EnrollmentRepo

	catalog  CatalogService
	courses  CourseService
	modules  ModuleService
	contents ContentService
	students StudentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	env := &testEnv{
		db:             db,
		userRepo:       repos.NewUserRepo(db, log),
		userTokenRepo:  repos.NewUserTokenRepo(db, log),
		subjectRepo:    repos.NewSubjectRepo(db, log),
		courseRepo:     repos.NewCourseRepo(db, log),
		moduleRepo:     repos.NewModuleRepo(db, log),
		contentRepo:    repos.NewContentRepo(db, log),
		itemRepo:       repos.NewItemRepo(db, log),
		enrollmentRepo: repos.NewEnrollmentRepo(db, log),
	}
	env.catalog = NewCatalogService(db, log, env.subjectRepo, env.courseRepo, nil)
	env.courses = NewCourseService(db, log, env.courseRepo, env.subjectRepo, env.moduleRepo, env.contentRepo, env.itemRepo, env.enrollmentRepo, env.catalog)
	env.modules = NewModuleService(db, log, env.courseRepo, env.moduleRepo, env.contentRepo, env.itemRepo, env.catalog)
	env.contents = NewContentService(db, log, env.courseRepo, env.moduleRepo, env.contentRepo, env.itemRepo)
	env.students = NewStudentService(db, log, env.courseRepo, env.enrollmentRepo)
	return env
}
