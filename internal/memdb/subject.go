package memdb

import (
	"context"

	"academic-service/internal/subject"
)

type subjectRepository struct {
	t *table[subject.Subject]
}

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{t: db.subjects}
}

func (r *subjectRepository) Create(_ context.Context, sb *subject.Subject) (*subject.Subject, error) {
	created, err := r.t.insert(*sb, func(s *subject.Subject, id string) { s.ID = id })
	if err != nil {
		return nil, err
	}
	sb.ID = created.ID
	return sb, nil
}

func (r *subjectRepository) GetAll(context.Context) ([]subject.Subject, error) {
	r.t.mutex.RLock()
	defer r.t.mutex.RUnlock()
	return r.t.query(), nil
}

func (r *subjectRepository) GetByID(_ context.Context, id string) (*subject.Subject, error) {
	sb, ok := r.t.get(id)
	if !ok {
		return nil, subject.ErrSubjectNotFound
	}
	return &sb, nil
}

func (r *subjectRepository) Update(_ context.Context, sb *subject.Subject) error {
	found, err := r.t.replace(sb.ID, *sb)
	if !found {
		return subject.ErrSubjectNotFound
	}
	return err
}

func (r *subjectRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return subject.ErrSubjectNotFound
	}
	return nil
}

func (r *subjectRepository) Count(context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *subjectRepository) Codes(_ context.Context, prefix string) ([]string, error) {
	return r.t.codes(prefix), nil
}
