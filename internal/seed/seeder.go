// Package seed fills empty collections at startup and migrates subjects that
// were stored before the major field existed.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/events"
	"academic-service/internal/metrics"
	"academic-service/internal/student"
	"academic-service/internal/subject"
)

// Report summarizes one seeding pass.
type Report struct {
	Students int
	Subjects int
	Classes  int
	Migrated int
	// Failed names the collections whose step returned an error.
	Failed []string
}

type Seeder struct {
	students student.Service
	subjects subject.Service
	classes  classroom.Service
	source   Source
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewSeeder(
	students student.Service,
	subjects subject.Service,
	classes classroom.Service,
	source Source,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Seeder {
	return &Seeder{
		students: students,
		subjects: subjects,
		classes:  classes,
		source:   source,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run seeds students, subjects and classes in that order. Each collection is
// handled on its own: a failure is logged and the next collection still runs.
// Within a collection the first failing record stops that collection.
func (s *Seeder) Run(ctx context.Context) Report {
	s.logger.InfoContext(ctx, "starting data initialization")

	var report Report
	steps := []struct {
		entity string
		run    func(context.Context, *Report) error
	}{
		{events.EntityStudent, s.seedStudents},
		{events.EntitySubject, s.seedSubjects},
		{events.EntityClass, s.seedClasses},
	}
	for _, step := range steps {
		if err := step.run(ctx, &report); err != nil {
			s.logger.ErrorContext(ctx, "seeding failed", "entity", step.entity, "error", err)
			report.Failed = append(report.Failed, step.entity)
		}
	}

	s.logger.InfoContext(ctx, "data initialization completed",
		"students", report.Students,
		"subjects", report.Subjects,
		"classes", report.Classes,
		"migrated", report.Migrated,
	)
	return report
}

func (s *Seeder) seedStudents(ctx context.Context, report *Report) error {
	count, err := s.students.CountStudents(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "students already present, skipping", "count", count)
		return nil
	}

	students, err := s.source.Students(ctx)
	if err != nil {
		return err
	}
	for i := range students {
		if _, err := s.students.CreateStudent(ctx, &students[i]); err != nil {
			return fmt.Errorf("create student %q: %w", students[i].Name, err)
		}
		report.Students++
	}

	s.metrics.RecordSeeded(ctx, events.EntityStudent, report.Students)
	s.logger.InfoContext(ctx, "initialized students", "count", report.Students)
	return nil
}

func (s *Seeder) seedSubjects(ctx context.Context, report *Report) error {
	count, err := s.subjects.CountSubjects(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "subjects already present, checking major migration", "count", count)
		return s.migrateSubjectMajors(ctx, report)
	}

	subjects, err := s.source.Subjects(ctx)
	if err != nil {
		return err
	}
	for i := range subjects {
		if _, err := s.subjects.CreateSubject(ctx, &subjects[i]); err != nil {
			return fmt.Errorf("create subject %q: %w", subjects[i].Name, err)
		}
		report.Subjects++
	}

	s.metrics.RecordSeeded(ctx, events.EntitySubject, report.Subjects)
	s.logger.InfoContext(ctx, "initialized subjects", "count", report.Subjects)
	return nil
}

// migrateSubjectMajors fills in the major of subjects stored without one,
// inferring it from the code prefix. Codes with an unknown prefix are left
// alone.
func (s *Seeder) migrateSubjectMajors(ctx context.Context, report *Report) error {
	subjects, err := s.subjects.GetAllSubjects(ctx)
	if err != nil {
		return err
	}

	for i := range subjects {
		sb := &subjects[i]
		if sb.Major != "" {
			continue
		}
		major, ok := codegen.MajorFromCode(sb.Code)
		if !ok {
			continue
		}
		sb.Major = major
		if _, err := s.subjects.UpdateSubject(ctx, sb.ID, sb); err != nil {
			return fmt.Errorf("migrate subject %q: %w", sb.Code, err)
		}
		report.Migrated++
	}

	if report.Migrated > 0 {
		s.logger.InfoContext(ctx, "migrated subject majors", "count", report.Migrated)
	} else {
		s.logger.InfoContext(ctx, "no subjects needed migration")
	}
	return nil
}

func (s *Seeder) seedClasses(ctx context.Context, report *Report) error {
	count, err := s.classes.CountClasses(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.InfoContext(ctx, "classes already present, skipping", "count", count)
		return nil
	}

	classes, err := s.source.Classes(ctx)
	if err != nil {
		return err
	}

	subjects, err := s.subjects.GetAllSubjects(ctx)
	if err != nil {
		return err
	}
	students, err := s.students.GetAllStudents(ctx)
	if err != nil {
		return err
	}

	// first subject with a given name wins
	subjectIDs := make(map[string]string, len(subjects))
	for _, sb := range subjects {
		if _, ok := subjectIDs[sb.Name]; !ok {
			subjectIDs[sb.Name] = sb.ID
		}
	}
	studentIDs := make(map[string]string, len(students))
	for _, st := range students {
		if _, ok := studentIDs[st.NIM]; !ok {
			studentIDs[st.NIM] = st.ID
		}
	}

	for i := range classes {
		class := &classes[i]
		if id, ok := subjectIDs[class.SubjectName]; ok {
			class.SubjectID = id
		}

		if len(class.StudentNIMs) > 0 {
			ids := make([]string, 0, len(class.StudentNIMs))
			for _, nim := range class.StudentNIMs {
				if id, ok := studentIDs[nim]; ok {
					ids = append(ids, id)
				}
			}
			class.StudentIDs = ids
			s.logger.InfoContext(ctx, "resolved class students",
				"class", class.Name,
				"students", len(ids),
				"unmatched", len(class.StudentNIMs)-len(ids),
			)
		}

		if _, err := s.classes.CreateClass(ctx, class); err != nil {
			return fmt.Errorf("create class %q: %w", class.Name, err)
		}
		report.Classes++
	}

	s.metrics.RecordSeeded(ctx, events.EntityClass, report.Classes)
	s.logger.InfoContext(ctx, "initialized classes", "count", report.Classes)
	return nil
}
