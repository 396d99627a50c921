package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"academic-service/internal/auth"
	"academic-service/internal/classroom"
	"academic-service/internal/codegen"
	"academic-service/internal/config"
	"academic-service/internal/events"
	"academic-service/internal/health"
	"academic-service/internal/logger"
	"academic-service/internal/metrics"
	"academic-service/internal/middleware"
	"academic-service/internal/seed"
	"academic-service/internal/student"
	"academic-service/internal/subject"
	"academic-service/internal/telemetry"
	"academic-service/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const healthWatchInterval = 15 * time.Second

type App struct {
	config     *config.Config
	router     chi.Router
	server     *http.Server
	grpcServer *grpc.Server
	health     *health.GRPCServer
	publisher  events.Publisher
	telemetry  *telemetry.Provider
	store      *store
	logger     *slog.Logger
	stopWatch  context.CancelFunc
}

func New() *App {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogLogger := logger.NewWithServiceContext(ServiceName, Version, cfg.Log.Level)
	slog.SetDefault(slogLogger)
	slogLogger.Info("config loaded", "env", cfg.Env, "database_driver", cfg.Database.Driver, "commit", GitCommit, "build_time", BuildTime)

	app, err := build(context.Background(), cfg, slogLogger)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	return app
}

// checkMajors rejects configured majors that have no NIM or subject code.
func checkMajors(options []string) error {
	for _, major := range options {
		if _, err := codegen.MajorCode(major); err != nil {
			return fmt.Errorf("majors.options %q: %w", major, err)
		}
	}
	return nil
}

func build(ctx context.Context, cfg *config.Config, slogLogger *slog.Logger) (*App, error) {
	slogLogger.Info("initializing application")

	if err := checkMajors(cfg.Majors.List()); err != nil {
		return nil, err
	}

	provider, err := telemetry.Init(ctx, cfg.Telemetry.OTLPEndpoint, ServiceName, Version, slogLogger)
	if err != nil {
		return nil, err
	}

	meter := otel.Meter(ServiceName)
	appMetrics, err := metrics.New(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	if err := metrics.RegisterServiceInfo(meter, ServiceName, Version, cfg.Env); err != nil {
		slogLogger.Warn("failed to register service info", "error", err)
	}
	if err := metrics.RegisterRuntime(meter, time.Now()); err != nil {
		slogLogger.Warn("failed to register runtime metrics", "error", err)
	}

	users := make([]auth.User, 0, len(cfg.Auth.Users))
	for _, u := range cfg.Auth.Users {
		users = append(users, auth.User{Username: u.Username, Password: u.Password, Roles: u.Roles})
	}
	accounts, err := auth.NewUsers(users)
	if err != nil {
		return nil, fmt.Errorf("invalid auth.users: %w", err)
	}

	var source seed.Source
	if cfg.Seed.Enabled {
		if source, err = seedSource(cfg.Seed); err != nil {
			return nil, err
		}
	}

	st, err := openStore(ctx, cfg.Database, meter)
	if err != nil {
		return nil, err
	}

	app := &App{
		config:    cfg,
		router:    chi.NewRouter(),
		telemetry: provider,
		store:     st,
		logger:    slogLogger,
	}

	app.publisher = openPublishers(cfg, slogLogger, st.checks)

	// NIMs and codes are issued through one sequencer per process.
	seq := codegen.NewSequencer()
	studentService := student.NewService(st.students, seq, app.publisher, cfg.Majors.List())
	subjectService := subject.NewService(st.subjects, seq, app.publisher)
	classService := classroom.NewService(st.classes, seq, app.publisher)

	if source != nil {
		report := seed.NewSeeder(studentService, subjectService, classService, source, slogLogger, appMetrics).Run(ctx)
		if len(report.Failed) > 0 {
			slogLogger.Warn("data initialization finished with failures", "failed", report.Failed)
		}
	}

	session := auth.NewSession(auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()), cfg.Auth.SecureCookie, slogLogger)
	authHandler := auth.NewHandler(accounts, auth.NewGoogleVerifier(cfg.Auth.GoogleClientID, cfg.Auth.AdminEmails), session, slogLogger, appMetrics)

	healthHandler := health.NewHandler(st.checks, appMetrics)
	studentHandler := student.NewHandler(studentService, slogLogger, appMetrics)
	subjectHandler := subject.NewHandler(subjectService, slogLogger, appMetrics)
	classHandler := classroom.NewHandler(classService, slogLogger, appMetrics)
	webHandler := web.NewHandler(cfg.Auth.GoogleClientID)

	app.router.Use(chimw.RequestID)
	app.router.Use(chimw.Recoverer)
	app.router.Use(middleware.RequestLogger(slogLogger))
	app.router.Use(middleware.CORS(cfg.Server.CORSOrigins))
	app.router.Use(session.Load)

	// Public endpoints
	healthHandler.RegisterRoutes(app.router)
	authHandler.RegisterRoutes(app.router)
	webHandler.RegisterRoutes(app.router, auth.RequirePage)

	app.router.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth)
		r.Get("/user", authHandler.CurrentUser)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleUser))
			studentHandler.RegisterRoutes(r)
			subjectHandler.RegisterRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(auth.RoleAdmin))
			classHandler.RegisterRoutes(r)
		})
	})

	app.grpcServer = grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	app.health = health.NewGRPCServer(healthHandler, slogLogger)
	grpc_health_v1.RegisterHealthServer(app.grpcServer, app.health)

	slogLogger.Info("application initialized successfully")
	return app, nil
}

func seedSource(cfg config.SeedConfig) (seed.Source, error) {
	fsys := seed.DefaultFS()
	if cfg.Dir != "" {
		fsys = os.DirFS(cfg.Dir)
	}

	files := seed.NewFileSource(fsys)
	if cfg.Mode != "synthetic" {
		return files, nil
	}

	names, err := seed.LoadNames(nameFS(cfg.Dir, fsys))
	if err != nil {
		return nil, err
	}
	return seed.NewSyntheticSource(names, files), nil
}

// nameFS falls back to the embedded name pools when the seed directory has
// no names.json of its own.
func nameFS(dir string, fsys fs.FS) fs.FS {
	if dir == "" {
		return fsys
	}
	if _, err := fs.Stat(fsys, seed.NamesFile); err != nil {
		return seed.DefaultFS()
	}
	return fsys
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Run() error {
	watchCtx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	go a.health.Monitor(watchCtx, healthWatchInterval)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", a.config.Grpc.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}
	go func() {
		a.logger.Info("gRPC server starting", "port", a.config.Grpc.Port)
		if err := a.grpcServer.Serve(lis); err != nil {
			a.logger.Error("gRPC server error", "error", err)
		}
	}()

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  time.Duration(a.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(a.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(a.config.Server.IdleTimeout) * time.Second,
	}

	a.logger.Info("server starting", "port", a.config.Server.Port)
	if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ShutdownTimeout is how long main waits for Shutdown.
func (a *App) ShutdownTimeout() time.Duration {
	return time.Duration(a.config.Server.ShutdownTimeout) * time.Second
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.health.Shutdown()

	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown: %w", err))
		}
	}
	a.grpcServer.GracefulStop()

	if err := a.publisher.Close(); err != nil {
		a.logger.Error("publisher close error", "error", err)
	}
	a.store.close()

	if err := a.telemetry.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
