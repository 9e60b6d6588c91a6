package grpc

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/motif-planner/internal/application/logging"
	"github.com/andrescamacho/motif-planner/internal/application/mediator"
	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
)

// ServerOptions tune the planner server
type ServerOptions struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per second, <= 0 disables limiting
	Burst           int
	Logger          logging.Logger
}

// PlannerServer serves planning queries over gRPC.
// Every call is dispatched through the mediator, so handler middleware applies.
type PlannerServer struct {
	mediator mediator.Mediator
	listener net.Listener
	server   *grpc.Server
	health   *health.Server
	opts     ServerOptions

	shutdownChan chan os.Signal
	done         chan struct{}
	stopOnce     sync.Once
}

// NewPlannerServer listens on a TCP address
func NewPlannerServer(med mediator.Mediator, address string, opts ServerOptions) (*PlannerServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return NewPlannerServerWithListener(med, listener, opts), nil
}

// NewPlannerServerWithListener serves on an existing listener
func NewPlannerServerWithListener(med mediator.Mediator, listener net.Listener, opts ServerOptions) *PlannerServer {
	if opts.Logger == nil {
		opts.Logger = logging.LoggerFromContext(context.Background())
	}

	interceptors := []grpc.UnaryServerInterceptor{loggingInterceptor(opts.Logger)}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		interceptors = append(interceptors, rateLimitInterceptor(rate.NewLimiter(rate.Limit(opts.RateLimit), burst)))
	}
	interceptors = append(interceptors, timeoutInterceptor(opts.RequestTimeout))

	s := &PlannerServer{
		mediator:     med,
		listener:     listener,
		server:       grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...)),
		health:       health.NewServer(),
		opts:         opts,
		shutdownChan: make(chan os.Signal, 1),
		done:         make(chan struct{}),
	}
	RegisterPlannerServiceServer(s.server, &plannerServiceImpl{mediator: med})

	// Empty service name reports overall server health
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(PlannerServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s.server, s.health)
	return s
}

// Addr returns the listen address
func (s *PlannerServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Start serves until Stop is called or SIGINT/SIGTERM is received
func (s *PlannerServer) Start() error {
	signal.Notify(s.shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(s.shutdownChan)

	go s.handleShutdown()

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(s.listener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-s.done:
		s.gracefulStop()
		return nil
	}
}

// Stop requests a graceful shutdown
func (s *PlannerServer) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *PlannerServer) handleShutdown() {
	select {
	case <-s.shutdownChan:
		s.opts.Logger.Log("INFO", "shutdown signal received", nil)
		s.Stop()
	case <-s.done:
	}
}

// gracefulStop waits for in-flight calls up to the shutdown timeout
func (s *PlannerServer) gracefulStop() {
	s.health.Shutdown()

	if s.opts.ShutdownTimeout <= 0 {
		s.server.GracefulStop()
		return
	}

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(s.opts.ShutdownTimeout):
		s.server.Stop()
	}
}

// plannerServiceImpl bridges gRPC calls to the mediator
type plannerServiceImpl struct {
	mediator mediator.Mediator
}

func (p *plannerServiceImpl) Plan(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := &queries.PlanRequirementsQuery{}
	return p.dispatch(ctx, in, query)
}

func (p *plannerServiceImpl) ResolveEquipment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := &queries.ResolveEquipmentQuery{}
	return p.dispatch(ctx, in, query)
}

func (p *plannerServiceImpl) ListEntities(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	query := &queries.ListEntitiesQuery{}
	return p.dispatch(ctx, in, query)
}

func (p *plannerServiceImpl) dispatch(ctx context.Context, in *structpb.Struct, query mediator.Request) (*structpb.Struct, error) {
	if err := fromStruct(in, query); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid request payload: %v", err)
	}

	response, err := p.mediator.Send(ctx, query)
	if err != nil {
		return nil, toStatusError(ctx, err)
	}

	out, err := toStruct(response)
	if err != nil {
		return nil, toStatusError(ctx, err)
	}
	return out, nil
}
