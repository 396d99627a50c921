package subject

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
	Create(ctx context.Context, subject *Subject) (*Subject, error)
	GetAll(ctx context.Context) ([]Subject, error)
	GetByID(ctx context.Context, id string) (*Subject, error)
	Update(ctx context.Context, subject *Subject) error
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

func (r *repository) Create(ctx context.Context, subject *Subject) (*Subject, error) {
	subject.ID = uuid.NewString()
	if _, err := r.db.NewInsert().Model(subject).Exec(ctx); err != nil {
		return nil, mapWriteError(err)
	}
	return subject, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Subject, error) {
	subjects := []Subject{}
	err := r.db.NewSelect().Model(&subjects).Order("code ASC").Scan(ctx)
	return subjects, err
}

func (r *repository) GetByID(ctx context.Context, id string) (*Subject, error) {
	subject := new(Subject)
	err := r.db.NewSelect().Model(subject).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (r *repository) Update(ctx context.Context, subject *Subject) error {
	result, err := r.db.NewUpdate().Model(subject).WherePK().Exec(ctx)
	if err != nil {
		return mapWriteError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().Model((*Subject)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*Subject)(nil)).Count(ctx)
}

func (r *repository) Codes(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	err := r.db.NewSelect().
		Model((*Subject)(nil)).
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
