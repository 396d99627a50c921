package classroom

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
	Create(ctx context.Context, class *ClassRoom) (*ClassRoom, error)
	GetAll(ctx context.Context) ([]ClassRoom, error)
	GetByID(ctx context.Context, id string) (*ClassRoom, error)
	Update(ctx context.Context, class *ClassRoom) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Codes(ctx context.Context, prefix string) ([]string, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, class *ClassRoom) (*ClassRoom, error) {
	class.ID = uuid.NewString()
	if class.StudentIDs == nil {
		class.StudentIDs = []string{}
	}
	if _, err := r.db.NewInsert().Model(class).Exec(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return class, nil
}

func (r *repository) GetAll(ctx context.Context) ([]ClassRoom, error) {
	classes := []ClassRoom{}
	err := r.db.NewSelect().Model(&classes).Order("code ASC").Scan(ctx)
	return classes, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*ClassRoom, error) {
	class := new(ClassRoom)
	err := r.db.NewSelect().Model(class).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	if class.StudentIDs == nil {
		class.StudentIDs = []string{}
	}
	return class, nil
}

func (r *repository) Update(ctx context.Context, class *ClassRoom) error {
	if class.StudentIDs == nil {
		class.StudentIDs = []string{}
	}
	result, err := r.db.NewUpdate().Model(class).WherePK().Exec(ctx)
	if err != nil {
		return mapWriteError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().Model((*ClassRoom)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*ClassRoom)(nil)).Count(ctx)
}

func (r *repository) Codes(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := r.db.NewSelect().
		Model((*ClassRoom)(nil)).
		Column("code").
		Where("code LIKE ?", prefix+"%").
		Scan(ctx, &codes)
	return codes, err
}

func mapWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateCode, err)
	}
	return err
}
