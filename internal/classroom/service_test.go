package classroom_test

import (
	"context"
	"testing"

	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/events"
	"academic-service/internal/memdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (classroom.Service, *events.Recorder) {
	t.Helper()
	recorder := &events.Recorder{}
	repo := memdb.NewClassRepository(memdb.Open())
	return classroom.NewService(repo, codegen.NewSequencer(), recorder), recorder
}

func kelasA() *classroom.ClassRoom {
	return &classroom.ClassRoom{
		Name:        "Kelas A",
		SubjectName: "Basis Data",
		Semester:    "Ganjil",
		Year:        2024,
	}
}

func TestClassService(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateClass_GeneratesCode", func(t *testing.T) {
		svc, _ := newService(t)

		first, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)
		second, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)

		assert.Equal(t, "KLS001", first.Code)
		assert.Equal(t, "KLS002", second.Code)
		assert.NotNil(t, first.StudentIDs)
		assert.Empty(t, first.StudentIDs)
	})

	t.Run("CreateClass_InvalidInput", func(t *testing.T) {
		svc, _ := newService(t)

		noName := kelasA()
		noName.Name = ""
		_, err := svc.CreateClass(ctx, noName)
		assert.ErrorIs(t, err, classroom.ErrInvalidInput)

		noSubject := kelasA()
		noSubject.SubjectName = "  "
		_, err = svc.CreateClass(ctx, noSubject)
		assert.ErrorIs(t, err, classroom.ErrInvalidInput)
	})

	t.Run("AddStudentToClass_Idempotent", func(t *testing.T) {
		svc, recorder := newService(t)

		class, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)

		_, err = svc.AddStudentToClass(ctx, class.ID, "student-1")
		require.NoError(t, err)
		updated, err := svc.AddStudentToClass(ctx, class.ID, "student-1")
		require.NoError(t, err)

		assert.Equal(t, []string{"student-1"}, updated.StudentIDs)
		assert.Equal(t, []string{"class/created", "class/student_enrolled"}, recorder.Actions())
		assert.Equal(t, "student-1", recorder.Events[1].Ref)
	})

	t.Run("AddStudentToClass_KeepsOrder", func(t *testing.T) {
		svc, _ := newService(t)

		class, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)

		for _, id := range []string{"b", "a", "c"} {
			_, err = svc.AddStudentToClass(ctx, class.ID, id)
			require.NoError(t, err)
		}

		stored, err := svc.GetClassByID(ctx, class.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, stored.StudentIDs)
	})

	t.Run("AddStudentToClass_ClassNotFound", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.AddStudentToClass(ctx, "missing", "student-1")
		assert.ErrorIs(t, err, classroom.ErrClassNotFound)
	})

	t.Run("RemoveStudentFromClass", func(t *testing.T) {
		svc, _ := newService(t)

		class := kelasA()
		class.StudentIDs = []string{"s1", "s2", "s3"}
		created, err := svc.CreateClass(ctx, class)
		require.NoError(t, err)

		updated, err := svc.RemoveStudentFromClass(ctx, created.ID, "s2")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1", "s3"}, updated.StudentIDs)
	})

	t.Run("RemoveStudentFromClass_NotEnrolledIsNoop", func(t *testing.T) {
		svc, recorder := newService(t)

		class := kelasA()
		class.StudentIDs = []string{"s1"}
		created, err := svc.CreateClass(ctx, class)
		require.NoError(t, err)

		unchanged, err := svc.RemoveStudentFromClass(ctx, created.ID, "deleted-student")
		require.NoError(t, err)
		assert.Equal(t, []string{"s1"}, unchanged.StudentIDs)
		assert.Equal(t, []string{"class/created"}, recorder.Actions())
	})

	t.Run("UpdateClass_ReplacesEnrollment", func(t *testing.T) {
		svc, _ := newService(t)

		class := kelasA()
		class.StudentIDs = []string{"s1"}
		created, err := svc.CreateClass(ctx, class)
		require.NoError(t, err)

		updated, err := svc.UpdateClass(ctx, created.ID, &classroom.ClassRoom{
			Name:        "Kelas B",
			SubjectName: "Basis Data",
			StudentIDs:  []string{"s2", "s2"},
		})
		require.NoError(t, err)
		assert.Equal(t, created.Code, updated.Code)
		assert.Equal(t, "Kelas B", updated.Name)
		// raw replace does not deduplicate
		assert.Equal(t, []string{"s2", "s2"}, updated.StudentIDs)

		cleared, err := svc.UpdateClass(ctx, created.ID, &classroom.ClassRoom{Name: "Kelas B", SubjectName: "Basis Data"})
		require.NoError(t, err)
		assert.NotNil(t, cleared.StudentIDs)
		assert.Empty(t, cleared.StudentIDs)
	})

	t.Run("UpdateClass_NotFound", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.UpdateClass(ctx, "missing", kelasA())
		assert.ErrorIs(t, err, classroom.ErrClassNotFound)
	})

	t.Run("DeleteClass", func(t *testing.T) {
		svc, _ := newService(t)

		created, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteClass(ctx, created.ID))
		assert.ErrorIs(t, svc.DeleteClass(ctx, created.ID), classroom.ErrClassNotFound)

		count, err := svc.CountClasses(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
