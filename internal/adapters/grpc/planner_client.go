package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/motif-planner/internal/application/planning/queries"
)

// PlannerClientGRPC calls a remote planner daemon
type PlannerClientGRPC struct {
	conn *grpc.ClientConn
}

// NewPlannerClientGRPC creates a client for the daemon at address (host:port)
func NewPlannerClientGRPC(address string, opts ...grpc.DialOption) (*PlannerClientGRPC, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to planner daemon: %w", err)
	}
	return &PlannerClientGRPC{conn: conn}, nil
}

// Close closes the gRPC connection
func (c *PlannerClientGRPC) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Plan builds a requirement tree remotely
func (c *PlannerClientGRPC) Plan(ctx context.Context, query *queries.PlanRequirementsQuery) (*queries.PlanRequirementsResponse, error) {
	resp := &queries.PlanRequirementsResponse{}
	if err := c.invoke(ctx, planMethod, query, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ResolveEquipment resolves equipment settings remotely
func (c *PlannerClientGRPC) ResolveEquipment(ctx context.Context, query *queries.ResolveEquipmentQuery) (*queries.ResolveEquipmentResponse, error) {
	resp := &queries.ResolveEquipmentResponse{}
	if err := c.invoke(ctx, resolveEquipmentMethod, query, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListEntities lists catalog entities remotely
func (c *PlannerClientGRPC) ListEntities(ctx context.Context, query *queries.ListEntitiesQuery) (*queries.ListEntitiesResponse, error) {
	resp := &queries.ListEntitiesResponse{}
	if err := c.invoke(ctx, listEntitiesMethod, query, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Health reports the serving status of the planner service
func (c *PlannerClientGRPC) Health(ctx context.Context) (string, error) {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{
		Service: PlannerServiceName,
	})
	if err != nil {
		return "", fmt.Errorf("health check failed: %w", err)
	}
	return resp.GetStatus().String(), nil
}

func (c *PlannerClientGRPC) invoke(ctx context.Context, method string, request, response interface{}) error {
	in, err := toStruct(request)
	if err != nil {
		return err
	}

	out := &structpb.Struct{}
	var trailer metadata.MD
	if err := c.conn.Invoke(ctx, method, in, out, grpc.Trailer(&trailer)); err != nil {
		return fromStatusError(err, trailer)
	}
	return fromStruct(out, response)
}
