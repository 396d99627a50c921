package subject

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"academic-service/internal/codegen"
	"academic-service/internal/events"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateCode   = errors.New("subject code already exists")
)

type Service interface {
	CreateSubject(ctx context.Context, subject *Subject) (*Subject, error)
	GetAllSubjects(ctx context.Context) ([]Subject, error)
	GetSubjectByID(ctx context.Context, id string) (*Subject, error)
	UpdateSubject(ctx context.Context, id string, subject *Subject) (*Subject, error)
	DeleteSubject(ctx context.Context, id string) error
	CountSubjects(ctx context.Context) (int, error)
}

type service struct {
	repo      Repository
	seq       *codegen.Sequencer
	publisher events.Publisher
}

func NewService(repo Repository, seq *codegen.Sequencer, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		seq:       seq,
		publisher: publisher,
	}
}

func (s *service) CreateSubject(ctx context.Context, subject *Subject) (*Subject, error) {
	if strings.TrimSpace(subject.Name) == "" {
		return nil, fmt.Errorf("%w: subject name cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(subject.Major) == "" {
		return nil, fmt.Errorf("%w: subject major cannot be empty", ErrInvalidInput)
	}
	if subject.SKS < 1 || subject.SKS > 6 {
		return nil, fmt.Errorf("%w: SKS must be between 1 and 6", ErrInvalidInput)
	}

	if strings.TrimSpace(subject.Code) == "" {
		code, err := s.generateCode(ctx, subject.Major)
		if err != nil {
			return nil, err
		}
		subject.Code = code
	}

	created, err := s.repo.Create(ctx, subject)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionCreated, created)
	return created, nil
}

func (s *service) GetAllSubjects(ctx context.Context) ([]Subject, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetSubjectByID(ctx context.Context, id string) (*Subject, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateSubject replaces the stored subject. The code is regenerated only when
// a previously set major changes; a subject stored without a major keeps its
// code whatever major it receives. A blank incoming code keeps the stored one.
func (s *service) UpdateSubject(ctx context.Context, id string, subject *Subject) (*Subject, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject.ID = id
	switch {
	case existing.Major != "" && subject.Major != existing.Major:
		code, err := s.generateCode(ctx, subject.Major)
		if err != nil {
			return nil, err
		}
		subject.Code = code
	case strings.TrimSpace(subject.Code) == "":
		subject.Code = existing.Code
	}

	if err := s.repo.Update(ctx, subject); err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionUpdated, subject)
	return subject, nil
}

func (s *service) DeleteSubject(ctx context.Context, id string) error {
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

func (s *service) CountSubjects(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) generateCode(ctx context.Context, major string) (string, error) {
	code, err := s.seq.SubjectCode(ctx, major, s.repo.Codes)
	if errors.Is(err, codegen.ErrUnknownMajor) {
		return "", fmt.Errorf("%w: unknown major %q", ErrInvalidInput, major)
	}
	return code, err
}

func (s *service) emit(ctx context.Context, action string, sb *Subject) {
	_ = s.publisher.Publish(ctx, events.New(events.EntitySubject, action, sb.ID, sb.Code))
}
