package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported for the API.
const ServiceName = "academic.v1.AcademicService"

// GRPCServer mirrors the HTTP readiness checks into the standard gRPC
// health service.
type GRPCServer struct {
	*health.Server
	handler *Handler
	logger  *slog.Logger
}

func NewGRPCServer(handler *Handler, logger *slog.Logger) *GRPCServer {
	s := &GRPCServer{
		Server:  health.NewServer(),
		handler: handler,
		logger:  logger,
	}
	s.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	s.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return s
}

// Refresh runs the checks once and updates the serving status.
func (s *GRPCServer) Refresh(ctx context.Context) {
	status := grpc_health_v1.HealthCheckResponse_SERVING
	if results, ok := s.handler.Run(ctx); !ok {
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		s.logger.WarnContext(ctx, "dependency check failed", "checks", results)
	}
	s.SetServingStatus(ServiceName, status)
}

// Monitor refreshes the status every interval until ctx is done.
func (s *GRPCServer) Monitor(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}
