package memdb

import (
	"context"
	"slices"

	"academic-service/internal/classroom"
)

type classRepository struct {
	t *table[classroom.ClassRoom]
}

func NewClassRepository(db *DB) classroom.Repository {
	return &classRepository{t: db.classes}
}

// detach copies the enrollment list so callers never share the stored slice.
func detach(c classroom.ClassRoom) classroom.ClassRoom {
	c.StudentIDs = slices.Clone(c.StudentIDs)
	if c.StudentIDs == nil {
		c.StudentIDs = []string{}
	}
	c.StudentNIMs = nil
	return c
}

func (r *classRepository) Create(_ context.Context, c *classroom.ClassRoom) (*classroom.ClassRoom, error) {
	created, err := r.t.insert(detach(*c), func(c *classroom.ClassRoom, id string) { c.ID = id })
	if err != nil {
		return nil, err
	}
	c.ID = created.ID
	return c, nil
}

func (r *classRepository) GetAll(context.Context) ([]classroom.ClassRoom, error) {
	r.t.mutex.RLock()
	defer r.t.mutex.RUnlock()

	classes := r.t.query()
	for i := range classes {
		classes[i] = detach(classes[i])
	}
	return classes, nil
}

func (r *classRepository) GetByID(_ context.Context, id string) (*classroom.ClassRoom, error) {
	c, ok := r.t.get(id)
	if !ok {
		return nil, classroom.ErrClassNotFound
	}
	c = detach(c)
	return &c, nil
}

func (r *classRepository) Update(_ context.Context, c *classroom.ClassRoom) error {
	found, err := r.t.replace(c.ID, detach(*c))
	if !found {
		return classroom.ErrClassNotFound
	}
	return err
}

func (r *classRepository) Delete(_ context.Context, id string) error {
	if !r.t.remove(id) {
		return classroom.ErrClassNotFound
	}
	return nil
}

func (r *classRepository) Count(context.Context) (int, error) {
	return r.t.count(), nil
}

func (r *classRepository) Codes(_ context.Context, prefix string) ([]string, error) {
	return r.t.codes(prefix), nil
}
