package classroom

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"academic-service/internal/codegen"
	"academic-service/internal/events"
)

var (
	ErrClassNotFound = errors.New("class not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicateCode = errors.New("class code already exists")
)

type Service interface {
	CreateClass(ctx context.Context, class *ClassRoom) (*ClassRoom, error)
	GetAllClasses(ctx context.Context) ([]ClassRoom, error)
	GetClassByID(ctx context.Context, id string) (*ClassRoom, error)
	UpdateClass(ctx context.Context, id string, class *ClassRoom) (*ClassRoom, error)
	DeleteClass(ctx context.Context, id string) error
	AddStudentToClass(ctx context.Context, classID, studentID string) (*ClassRoom, error)
	RemoveStudentFromClass(ctx context.Context, classID, studentID string) (*ClassRoom, error)
	CountClasses(ctx context.Context) (int, error)
}

type service struct {
	repo      Repository
	seq       *codegen.Sequencer
	publisher events.Publisher

	// serializes read-modify-write of enrollment lists
	enrollMu sync.Mutex
}

func NewService(repo Repository, seq *codegen.Sequencer, publisher events.Publisher) Service {
	return &service{
		repo:      repo,
		seq:       seq,
		publisher: publisher,
	}
}

func (s *service) CreateClass(ctx context.Context, class *ClassRoom) (*ClassRoom, error) {
	if strings.TrimSpace(class.Name) == "" {
		return nil, fmt.Errorf("%w: class name cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(class.SubjectName) == "" {
		return nil, fmt.Errorf("%w: subject name cannot be empty", ErrInvalidInput)
	}

	if strings.TrimSpace(class.Code) == "" {
		code, err := s.seq.ClassCode(ctx, s.repo.Codes)
		if err != nil {
			return nil, err
		}
		class.Code = code
	}
	if class.StudentIDs == nil {
		class.StudentIDs = []string{}
	}
	class.StudentNIMs = nil

	created, err := s.repo.Create(ctx, class)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionCreated, created, "")
	return created, nil
}

func (s *service) GetAllClasses(ctx context.Context) ([]ClassRoom, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetClassByID(ctx context.Context, id string) (*ClassRoom, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateClass replaces the stored class, enrollment list included. A blank
// code keeps the stored one.
func (s *service) UpdateClass(ctx context.Context, id string, class *ClassRoom) (*ClassRoom, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	class.ID = id
	if strings.TrimSpace(class.Code) == "" {
		class.Code = existing.Code
	}
	if class.StudentIDs == nil {
		class.StudentIDs = []string{}
	}
	class.StudentNIMs = nil

	if err := s.repo.Update(ctx, class); err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionUpdated, class, "")
	return class, nil
}

func (s *service) DeleteClass(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, events.ActionDeleted, existing, "")
	return nil
}

// AddStudentToClass enrolls a student once; adding an enrolled student
// returns the class unchanged.
func (s *service) AddStudentToClass(ctx context.Context, classID, studentID string) (*ClassRoom, error) {
	if strings.TrimSpace(studentID) == "" {
		return nil, fmt.Errorf("%w: student id cannot be empty", ErrInvalidInput)
	}

	s.enrollMu.Lock()
	defer s.enrollMu.Unlock()

	class, err := s.repo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.HasStudent(studentID) {
		return class, nil
	}

	class.StudentIDs = append(class.StudentIDs, studentID)
	if err := s.repo.Update(ctx, class); err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionStudentEnrolled, class, studentID)
	return class, nil
}

// RemoveStudentFromClass drops a student from the enrollment list. Removing a
// student that is not enrolled, or no longer exists, is not an error.
func (s *service) RemoveStudentFromClass(ctx context.Context, classID, studentID string) (*ClassRoom, error) {
	s.enrollMu.Lock()
	defer s.enrollMu.Unlock()

	class, err := s.repo.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if !class.HasStudent(studentID) {
		return class, nil
	}

	kept := make([]string, 0, len(class.StudentIDs))
	for _, id := range class.StudentIDs {
		if id != studentID {
			kept = append(kept, id)
		}
	}
	class.StudentIDs = kept

	if err := s.repo.Update(ctx, class); err != nil {
		return nil, err
	}

	s.emit(ctx, events.ActionStudentRemoved, class, studentID)
	return class, nil
}

func (s *service) CountClasses(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *service) emit(ctx context.Context, action string, c *ClassRoom, ref string) {
	event := events.New(events.EntityClass, action, c.ID, c.Code)
	event.Ref = ref
	_ = s.publisher.Publish(ctx, event)
}
