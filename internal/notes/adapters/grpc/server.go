// Package grpc поднимает gRPC сервер со стандартной службой проверки здоровья.
package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"gonotes/internal/notes/config"
	"gonotes/pkg/logger"
)

// ServiceName - имя службы, под которым публикуется статус сервиса заметок.
const ServiceName = "gonotes.Notes"

// DefaultHealthInterval используется, если период проверки не задан.
const DefaultHealthInterval = 10 * time.Second

// Константы для логирования.
const (
	LogDependencyUp   = "dependency check passed, reporting SERVING"
	LogDependencyDown = "dependency check failed, reporting NOT_SERVING"
)

// Checker проверяет доступность зависимости сервиса.
type Checker func(ctx context.Context) error

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	address  string
	listener net.Listener
}

// New создает новый экземпляр gRPC сервера. До вызова SetServing все службы
// сообщают NOT_SERVING.
func New(cfg *config.GRPCConfig) *Server {
	srv := grpc.NewServer()
	hs := health.NewServer()

	healthpb.RegisterHealthServer(srv, hs)
	reflection.Register(srv)

	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		server:  srv,
		health:  hs,
		address: cfg.GetAddress(),
	}
}

// SetServing переключает статус сервиса.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Watch выполняет check сразу и затем каждые interval до отмены ctx.
// Статус SERVING выставляется только после успешной проверки.
func (s *Server) Watch(ctx context.Context, interval time.Duration, check Checker) {
	log := logger.Log(ctx).With(zap.String("service", ServiceName))

	if interval <= 0 {
		interval = DefaultHealthInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := false
	for {
		err := check(ctx)
		if ctx.Err() != nil {
			return
		}

		switch {
		case err == nil && !serving:
			log.Info(ctx, LogDependencyUp)
		case err != nil && serving:
			log.Warn(ctx, LogDependencyDown, zap.Error(err))
		}
		serving = err == nil
		s.SetServing(serving)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	log.Info(ctx, "gRPC health server started", zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()

	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) error {
	logger.Log(ctx).Info(ctx, "stopping gRPC server")

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("gRPC graceful stop interrupted: %w", ctx.Err())
	}
}
