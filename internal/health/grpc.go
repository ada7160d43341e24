// Package health exposes the service's liveness surfaces: the gRPC
// Health Checking Protocol server that orchestrators probe, and the HTTP
// reachability checker the traffic generator runs before an attack.
package health

import (
	"fmt"
	"net"

	"github.com/arjun-palani-sada/aiops-demo-service/pkg/logger"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// GRPCServer serves the gRPC Health Checking Protocol for the service.
// Platforms that probe gRPC health (Kubernetes, service meshes) get
// SERVING for both the empty service name and the configured one.
type GRPCServer struct {
	serviceName string
	server      *grpc.Server
	health      *healthpb.Server
	listener    net.Listener
}

// NewGRPCServer creates a gRPC health server for the named service
func NewGRPCServer(serviceName string) *GRPCServer {
	return &GRPCServer{
		serviceName: serviceName,
	}
}

// Start opens the listener and begins serving health checks. The listener
// is opened synchronously so a bad port fails here.
func (g *GRPCServer) Start(port int) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", port, err)
	}
	g.listener = listener

	g.server = grpc.NewServer()
	g.health = healthpb.NewServer()
	grpc_health_v1.RegisterHealthServer(g.server, g.health)

	g.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	g.health.SetServingStatus(g.serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		if err := g.server.Serve(listener); err != nil {
			logger.Error("gRPC health server error: %v", err)
		}
	}()

	logger.Info("gRPC health server listening on %s", listener.Addr())
	return nil
}

// Stop marks the service NOT_SERVING and drains the server
func (g *GRPCServer) Stop() {
	if g.server == nil {
		return
	}
	g.health.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	g.health.SetServingStatus(g.serviceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	g.server.GracefulStop()
	logger.Info("gRPC health server stopped")
}

// Addr returns the address the server is listening on, or "" before Start
func (g *GRPCServer) Addr() string {
	if g.listener == nil {
		return ""
	}
	return g.listener.Addr().String()
}
