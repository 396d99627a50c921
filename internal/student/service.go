package student

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academic-service/internal/codegen"
	"academic-service/internal/events"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateNIM    = errors.New("nim already exists")
)

type Service interface {
	CreateStudent(ctx context.Context, student *Student) (*Student, error)
	GetAllStudents(ctx context.Context) ([]Student, error)
	GetStudentByID(ctx context.Context, id string) (*Student, error)
	UpdateStudent(ctx context.Context, id string, student *Student) (*Student, error)
	DeleteStudent(ctx context.Context, id string) error
	CountStudents(ctx context.Context) (int, error)
	MajorOptions() []string
	Statistics(ctx context.Context) (*Statistics, error)
}

type service struct {
	repo      Repository
	seq       *codegen.Sequencer
	publisher events.Publisher
	majors    []string
}

func NewService(repo Repository, seq *codegen.Sequencer, publisher events.Publisher, majors []string) Service {
	return &service{
		repo:      repo,
		seq:       seq,
		publisher: publisher,
		majors:    majors,
	}
}

func (s *service) CreateStudent(ctx context.Context, student *Student) (*Student, error) {
	if strings.TrimSpace(student.Name) == "" {
		return nil, fmt.Errorf("%w: student name cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(student.Major) == "" {
		return nil, fmt.Errorf("%w: student major cannot be empty", ErrInvalidInput)
	}
	if student.Batch == 0 {
		return nil, fmt.Errorf("%w: student batch cannot be empty", ErrInvalidInput)
	}

	if strings.TrimSpace(student.NIM) == "" {
		nim, err := s.seq.NIM(ctx, student.Major, student.Batch, s.repo.NIMs)
		if err != nil {
			if errors.Is(err, codegen.ErrUnknownMajor) {
				return nil, fmt.Errorf("%w: unknown major %q", ErrInvalidInput, student.Major)
			}
			return nil, err
		}
		student.NIM = nim
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionCreated, created)
	return created, nil
}

func (s *service) GetAllStudents(ctx context.Context) ([]Student, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetStudentByID(ctx context.Context, id string) (*Student, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStudent replaces the stored student. A blank NIM keeps the stored one.
func (s *service) UpdateStudent(ctx context.Context, id string, student *Student) (*Student, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	student.ID = id
	if strings.TrimSpace(student.NIM) == "" {
		student.NIM = existing.NIM
	}

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionUpdated, student)
	return student, nil
}

func (s *service) DeleteStudent(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, events.ActionDeleted, existing)
	return nil
}

func (s *service) CountStudents(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) MajorOptions() []string {
	return append([]string(nil), s.majors...)
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	students, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{TotalStudents: len(students)}
	for _, st := range students {
		switch st.Major {
		case codegen.MajorSistemInformasi:
			stats.SITotal++
			switch st.Status {
			case StatusActive:
				stats.SIActive++
			case StatusNotActive:
				stats.SINotActive++
			}
		case codegen.MajorTeknologiInformasi:
			stats.TITotal++
			switch st.Status {
			case StatusActive:
				stats.TIActive++
			case StatusNotActive:
				stats.TINotActive++
			}
		}
	}
	return stats, nil
}

func (s *service) emit(ctx context.Context, action string, st *Student) {
	// delivery is best effort, publishers log their own failures
	_ = s.publisher.Publish(ctx, events.New(events.EntityStudent, action, st.ID, st.NIM))
}
