package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The planner service exchanges JSON-shaped google.protobuf.Struct messages, so it
// needs no generated stubs. Payload shapes are the planning query and response types.
const (
	PlannerServiceName = "planner.v1.PlannerService"

	planMethod             = "/" + PlannerServiceName + "/Plan"
	resolveEquipmentMethod = "/" + PlannerServiceName + "/ResolveEquipment"
	listEntitiesMethod     = "/" + PlannerServiceName + "/ListEntities"
)

// PlannerServiceServer is the server API for the planner service
type PlannerServiceServer interface {
	Plan(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveEquipment(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEntities(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPlannerServiceServer registers srv with a gRPC server
func RegisterPlannerServiceServer(s grpc.ServiceRegistrar, srv PlannerServiceServer) {
	s.RegisterService(&plannerServiceDesc, srv)
}

var plannerServiceDesc = grpc.ServiceDesc{
	ServiceName: PlannerServiceName,
	HandlerType: (*PlannerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Plan",
			Handler: unaryHandler(planMethod, func(srv PlannerServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.Plan
			}),
		},
		{
			MethodName: "ResolveEquipment",
			Handler: unaryHandler(resolveEquipmentMethod, func(srv PlannerServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.ResolveEquipment
			}),
		},
		{
			MethodName: "ListEntities",
			Handler: unaryHandler(listEntitiesMethod, func(srv PlannerServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error) {
				return srv.ListEntities
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planner/v1/planner.proto",
}

// unaryHandler adapts one service method to the grpc.MethodDesc handler shape
func unaryHandler(
	fullMethod string,
	method func(PlannerServiceServer) func(context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}

		call := method(srv.(PlannerServiceServer))
		if interceptor == nil {
			return call(ctx, in)
		}

		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
