package app

import (
	"context"
	"fmt"

	"academic-service/internal/classroom"
	"academic-service/internal/config"
	"academic-service/internal/db"
	"academic-service/internal/health"
	"academic-service/internal/memdb"
	"academic-service/internal/student"
	"academic-service/internal/subject"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/metric"
)

type store struct {
	students student.Repository
	subjects subject.Repository
	classes  classroom.Repository
	checks   map[string]health.Check
	close    func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, meter metric.Meter) (*store, error) {
	if cfg.Driver == "memory" {
		mem := memdb.Open()
		return &store{
			students: memdb.NewStudentRepository(mem),
			subjects: memdb.NewSubjectRepository(mem),
			classes:  memdb.NewClassRepository(mem),
			checks:   map[string]health.Check{},
			close:    func() {},
		}, nil
	}

	database, err := db.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, database, models()...); err != nil {
		db.Close(database)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.RegisterPoolMetrics(meter, database.DB); err != nil {
		db.Close(database)
		return nil, fmt.Errorf("failed to register pool metrics: %w", err)
	}

	return postgresStore(database), nil
}

func postgresStore(database *bun.DB) *store {
	return &store{
		students: student.NewRepository(database),
		subjects: subject.NewRepository(database),
		classes:  classroom.NewRepository(database),
		checks:   map[string]health.Check{"postgres": db.Ping(database)},
		close:    func() { db.Close(database) },
	}
}

func models() []interface{} {
	return []interface{}{
		(*student.Student)(nil),
		(*subject.Subject)(nil),
		(*classroom.ClassRoom)(nil),
	}
}
