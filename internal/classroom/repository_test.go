package classroom_test

import (
	"context"
	"testing"

	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/events"
	"academic-service/internal/testsupport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassRepository_Postgres(t *testing.T) {
	pg := testsupport.Postgres(t)
	pg.Migrate(t, (*classroom.ClassRoom)(nil))

	ctx := context.Background()
	repo := classroom.NewRepository(pg.DB)

	t.Run("StudentIDsRoundTripAsArray", func(t *testing.T) {
		pg.Truncate(t, "classes")

		class := kelasA()
		class.Code = "KLS001"
		class.StudentIDs = []string{"s-1", "s-2"}
		created, err := repo.Create(ctx, class)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"s-1", "s-2"}, found.StudentIDs)
	})

	t.Run("DuplicateCodeRejected", func(t *testing.T) {
		pg.Truncate(t, "classes")

		_, err := repo.Create(ctx, &classroom.ClassRoom{Code: "KLS001", Name: "Kelas A", SubjectName: "Basis Data"})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &classroom.ClassRoom{Code: "KLS001", Name: "Kelas B", SubjectName: "Basis Data"})
		assert.ErrorIs(t, err, classroom.ErrDuplicateCode)
	})

	t.Run("NilStudentIDsStoredEmpty", func(t *testing.T) {
		pg.Truncate(t, "classes")

		class := kelasA()
		class.Code = "KLS001"
		created, err := repo.Create(ctx, class)
		require.NoError(t, err)

		found, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.StudentIDs)
		assert.Empty(t, found.StudentIDs)
	})

	t.Run("EnrollmentThroughService", func(t *testing.T) {
		pg.Truncate(t, "classes")

		svc := classroom.NewService(repo, codegen.NewSequencer(), events.Noop())
		created, err := svc.CreateClass(ctx, kelasA())
		require.NoError(t, err)
		assert.Equal(t, "KLS001", created.Code)

		_, err = svc.AddStudentToClass(ctx, created.ID, "s-1")
		require.NoError(t, err)
		_, err = svc.AddStudentToClass(ctx, created.ID, "s-1")
		require.NoError(t, err)
		updated, err := svc.AddStudentToClass(ctx, created.ID, "s-2")
		require.NoError(t, err)
		assert.Equal(t, []string{"s-1", "s-2"}, updated.StudentIDs)

		removed, err := svc.RemoveStudentFromClass(ctx, created.ID, "s-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"s-2"}, removed.StudentIDs)

		require.NoError(t, svc.DeleteClass(ctx, created.ID))
		_, err = svc.GetClassByID(ctx, created.ID)
		assert.ErrorIs(t, err, classroom.ErrClassNotFound)
	})
}
