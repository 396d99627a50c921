package seed_test

import (
	"context"
	"testing"
	"testing/fstest"

	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/events"
	"academic-service/internal/logger"
	"academic-service/internal/memdb"
	"academic-service/internal/metrics"
	"academic-service/internal/seed"
	"academic-service/internal/student"
	"academic-service/internal/subject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *memdb.DB
	students student.Service
	subjects subject.Service
	classes  classroom.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := memdb.Open()
	seq := codegen.NewSequencer()
	pub := events.Noop()
	return &fixture{
		db:       db,
		students: student.NewService(memdb.NewStudentRepository(db), seq, pub, codegen.Majors()),
		subjects: subject.NewService(memdb.NewSubjectRepository(db), seq, pub),
		classes:  classroom.NewService(memdb.NewClassRepository(db), seq, pub),
	}
}

func (f *fixture) seeder(source seed.Source) *seed.Seeder {
	return seed.NewSeeder(f.students, f.subjects, f.classes, source, logger.Discard(), metrics.NewMock())
}

func TestSeeder_DefaultDataset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	report := f.seeder(seed.NewFileSource(seed.DefaultFS())).Run(ctx)

	assert.Empty(t, report.Failed)
	assert.Equal(t, 16, report.Students)
	assert.Equal(t, 12, report.Subjects)
	assert.Equal(t, 6, report.Classes)
	assert.Zero(t, report.Migrated)

	subjects, err := f.subjects.GetAllSubjects(ctx)
	require.NoError(t, err)
	subjectIDs := map[string]string{}
	for _, sb := range subjects {
		subjectIDs[sb.Name] = sb.ID
		assert.Regexp(t, `^(SI|TI)\d{3}$`, sb.Code)
	}

	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	byNIM := map[string]string{}
	for _, st := range students {
		byNIM[st.NIM] = st.ID
	}

	classes, err := f.classes.GetAllClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 6)
	for _, c := range classes {
		assert.Regexp(t, `^KLS\d{3}$`, c.Code)
		assert.Equal(t, subjectIDs[c.SubjectName], c.SubjectID, c.Name)
		assert.Empty(t, c.StudentNIMs)
		if c.Name == "Basis Data A" {
			assert.Equal(t, []string{byNIM["1020210001"], byNIM["1020210002"], byNIM["1020220001"]}, c.StudentIDs)
		}
	}
}

func TestSeeder_ClassResolution(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	fsys := fstest.MapFS{
		"students.json": {Data: []byte(`[
			{"nim": "1020230001", "name": "Andi Pratama", "email": "andi@x.com", "major": "Sistem Informasi", "batch": 2023}
		]`)},
		"subjects.json": {Data: []byte(`[
			{"name": "Basis Data", "major": "Sistem Informasi", "sks": 3},
			{"name": "Basis Data", "major": "Teknologi Informasi", "sks": 3}
		]`)},
		"classes.json": {Data: []byte(`[
			{"name": "Kelas A", "subjectName": "Basis Data", "studentNims": ["1020230001", "9999999999"]},
			{"name": "Kelas B", "subjectName": "Tidak Ada"}
		]`)},
	}

	report := f.seeder(seed.NewFileSource(fsys)).Run(ctx)
	require.Empty(t, report.Failed)

	subjects, err := f.subjects.GetAllSubjects(ctx)
	require.NoError(t, err)
	var firstBasisData string
	for _, sb := range subjects {
		if sb.Code == "SI001" {
			firstBasisData = sb.ID
		}
	}
	students, err := f.students.GetAllStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)

	classes, err := f.classes.GetAllClasses(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	byName := map[string]classroom.ClassRoom{}
	for _, c := range classes {
		byName[c.Name] = c
	}

	t.Run("FirstSubjectMatchWins", func(t *testing.T) {
		assert.Equal(t, firstBasisData, byName["Kelas A"].SubjectID)
	})

	t.Run("UnknownNIMsDropped", func(t *testing.T) {
		assert.Equal(t, []string{students[0].ID}, byName["Kelas A"].StudentIDs)
	})

	t.Run("UnknownSubjectLeavesIDEmpty", func(t *testing.T) {
		assert.Empty(t, byName["Kelas B"].SubjectID)
		assert.Empty(t, byName["Kelas B"].StudentIDs)
	})
}

func TestSeeder_NonEmptyCollections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.students.CreateStudent(ctx, &student.Student{
		Name: "Budi Santoso", Email: "budi@x.com", Major: codegen.MajorTeknologiInformasi, Batch: 2023,
	})
	require.NoError(t, err)

	// legacy subjects stored without a major
	subjectRepo := memdb.NewSubjectRepository(f.db)
	for _, code := range []string{"SI009", "TI003", "MK001"} {
		_, err := subjectRepo.Create(ctx, &subject.Subject{Code: code, Name: "Legacy " + code, SKS: 2})
		require.NoError(t, err)
	}
	_, err = f.classes.CreateClass(ctx, &classroom.ClassRoom{Name: "Kelas A", SubjectName: "Basis Data"})
	require.NoError(t, err)

	report := f.seeder(seed.NewFileSource(seed.DefaultFS())).Run(ctx)

	assert.Empty(t, report.Failed)
	assert.Zero(t, report.Students)
	assert.Zero(t, report.Subjects)
	assert.Zero(t, report.Classes)
	assert.Equal(t, 2, report.Migrated)

	count, err := f.students.CountStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	subjects, err := f.subjects.GetAllSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 3)

	majors := map[string]string{}
	for _, sb := range subjects {
		majors[sb.Code] = sb.Major
	}
	assert.Equal(t, map[string]string{
		"MK001": "",
		"SI009": codegen.MajorSistemInformasi,
		"TI003": codegen.MajorTeknologiInformasi,
	}, majors)
}

func TestSeeder_FailuresStayInTheirCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingFile", func(t *testing.T) {
		f := newFixture(t)
		fsys := fstest.MapFS{
			"subjects.json": {Data: []byte(`[{"name": "Basis Data", "major": "Sistem Informasi", "sks": 3}]`)},
			"classes.json":  {Data: []byte(`[{"name": "Kelas A", "subjectName": "Basis Data"}]`)},
		}

		report := f.seeder(seed.NewFileSource(fsys)).Run(ctx)

		assert.Equal(t, []string{events.EntityStudent}, report.Failed)
		assert.Equal(t, 1, report.Subjects)
		assert.Equal(t, 1, report.Classes)
	})

	t.Run("BadRecordStopsCollection", func(t *testing.T) {
		f := newFixture(t)
		fsys := fstest.MapFS{
			"students.json": {Data: []byte(`[]`)},
			"subjects.json": {Data: []byte(`[
				{"name": "Basis Data", "major": "Sistem Informasi", "sks": 3},
				{"name": "Anatomi", "major": "Kedokteran", "sks": 3},
				{"name": "Struktur Data", "major": "Teknologi Informasi", "sks": 3}
			]`)},
			"classes.json": {Data: []byte(`not json`)},
		}

		report := f.seeder(seed.NewFileSource(fsys)).Run(ctx)

		assert.Equal(t, []string{events.EntitySubject, events.EntityClass}, report.Failed)
		assert.Equal(t, 1, report.Subjects)

		count, err := f.subjects.CountSubjects(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestSyntheticSource(t *testing.T) {
	ctx := context.Background()

	names, err := seed.LoadNames(seed.DefaultFS())
	require.NoError(t, err)
	source := seed.NewSyntheticSource(names, seed.NewFileSource(seed.DefaultFS()))

	t.Run("Students", func(t *testing.T) {
		students, err := source.Students(ctx)
		require.NoError(t, err)
		require.Len(t, students, 100)

		perMajor := map[string]int{}
		perStatus := map[student.Status]int{}
		perBatch := map[int]int{}
		for _, st := range students {
			perMajor[st.Major]++
			perStatus[st.Status]++
			perBatch[st.Batch]++
			assert.NotEmpty(t, st.Name)
			assert.Contains(t, st.Email, "@student.ac.id")
		}

		assert.Equal(t, map[string]int{
			codegen.MajorSistemInformasi:    50,
			codegen.MajorTeknologiInformasi: 50,
		}, perMajor)
		assert.Equal(t, map[student.Status]int{
			student.StatusActive:    70,
			student.StatusNotActive: 20,
			student.StatusDropout:   10,
		}, perStatus)
		assert.Len(t, perBatch, 5)
		for year, n := range perBatch {
			assert.Equal(t, 20, n, "batch %d", year)
		}

		// status is positional, not random
		assert.Equal(t, student.StatusActive, students[0].Status)
		assert.Equal(t, student.StatusNotActive, students[7].Status)
		assert.Equal(t, student.StatusDropout, students[9].Status)
	})

	t.Run("Subjects", func(t *testing.T) {
		subjects, err := source.Subjects(ctx)
		require.NoError(t, err)
		require.Len(t, subjects, 100)

		si := subjects[:50]
		pool := names.Subjects[codegen.MajorSistemInformasi]
		assert.Equal(t, pool[0], si[0].Name)
		assert.Equal(t, pool[0]+" 2", si[len(pool)].Name)
		assert.Equal(t, pool[0]+" 3", si[2*len(pool)].Name)
		for _, sb := range subjects {
			assert.GreaterOrEqual(t, sb.SKS, 1)
			assert.LessOrEqual(t, sb.SKS, 6)
		}
	})

	t.Run("SeedsThroughServices", func(t *testing.T) {
		f := newFixture(t)

		report := f.seeder(source).Run(ctx)

		assert.Empty(t, report.Failed)
		assert.Equal(t, 100, report.Students)
		assert.Equal(t, 100, report.Subjects)
		assert.Equal(t, 6, report.Classes)

		stats, err := f.students.Statistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 50, stats.SITotal)
		assert.Equal(t, 35, stats.TIActive)
	})
}

func TestLoadNames_Invalid(t *testing.T) {
	_, err := seed.LoadNames(fstest.MapFS{
		"names.json": {Data: []byte(`{"batchYears": [2023], "firstNames": ["Andi"], "lastNames": ["Pratama"], "emailDomain": "x.id"}`)},
	})
	assert.ErrorContains(t, err, "no subject names")

	_, err = seed.LoadNames(fstest.MapFS{})
	assert.Error(t, err)
}
