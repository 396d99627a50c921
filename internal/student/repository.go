package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"academic-service/internal/db"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, student *Student) (*Student, error)
	GetAll(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// NIMs lists the stored NIMs starting with prefix.
	NIMs(ctx context.Context, prefix string) ([]string, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, student *Student) (*Student, error) {
	student.ID = uuid.NewString()
	if _, err := r.db.NewInsert().Model(student).Exec(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return student, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Student, error) {
	students := []Student{}
	err := r.db.NewSelect().Model(&students).Order("nim ASC").Scan(ctx)
	return students, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Student, error) {
	student := new(Student)
	err := r.db.NewSelect().Model(student).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (r *repository) Update(ctx context.Context, student *Student) error {
	result, err := r.db.NewUpdate().Model(student).WherePK().Exec(ctx)
	if err != nil {
		return mapWriteError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().Model((*Student)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrStudentNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Student)(nil)).Count(ctx)
}

func (r *repository) NIMs(ctx context.Context, prefix string) ([]string, error) {
	var nims []string
	err := r.db.NewSelect().
		Model((*Student)(nil)).
		Column("nim").
		Where("nim LIKE ?", prefix+"%").
		Scan(ctx, &nims)
	return nims, err
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateNIM, err)
	}
	return err
}
