package memdb

import (
	"context"

	"academic-service/internal/student"
)

type studentRepository struct {
	t *table[student.Student]
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{t: db.students}
}

func (r *studentRepository) Create(_ context.Context, st *student.Student) (*student.Student, error) {
	created, err := r.t.insert(*st, func(s *student.Student, id string) { s.ID = id })
	if err != nil {
		return nil, err
	}
	st.ID = created.ID
	return st, nil
}

func (r *studentRepository) GetAll(context.Context) ([]student.Student, error) {
	r.t.mutex.RLock()
	defer r.t.mutex.RUnlock()
	return r.t.query(), nil
}

func (r *studentRepository) GetByID(_ context.Context, id string) (*student.Student, error) {
	st, ok := r.t.get(id)
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return &st, nil
}

func (r *studentRepository) Update(_ context.Context, st *student.Student) error {
	found, err := r.t.replace(st.ID, *st)
	if !found {
		return student.ErrStudentNotFound
	}
	return err
}

func (r *studentRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return student.ErrStudentNotFound
	}
	return nil
}

func (r *studentRepository) Count(context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *studentRepository) NIMs(_ context.Context, prefix string) ([]string, error) {
	return r.t.codes(prefix), nil
}
