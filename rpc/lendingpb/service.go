package lendingpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "lendingpb.LendingSnapshot"

// LendingSnapshotServer is the server-side interface of the snapshot
// service, mirroring the shape protoc-gen-go-grpc would produce for a
// service with three unary, read-only RPCs.
type LendingSnapshotServer interface {
	GetAllMarkets(context.Context, *GetAllMarketsRequest) (*GetAllMarketsResponse, error)
	GetUserPositions(context.Context, *GetUserPositionsRequest) (*GetUserPositionsResponse, error)
	GetUserBalances(context.Context, *GetUserBalancesRequest) (*GetUserBalancesResponse, error)
}

// UnimplementedLendingSnapshotServer must be embedded by every concrete
// implementation for forward compatibility, the same contract
// protoc-gen-go-grpc's generated Unimplemented*Server types carry: a
// method added to the interface later does not break existing
// implementations that embed this type.
type UnimplementedLendingSnapshotServer struct{}

func (UnimplementedLendingSnapshotServer) GetAllMarkets(context.Context, *GetAllMarketsRequest) (*GetAllMarketsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAllMarkets not implemented")
}

func (UnimplementedLendingSnapshotServer) GetUserPositions(context.Context, *GetUserPositionsRequest) (*GetUserPositionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserPositions not implemented")
}

func (UnimplementedLendingSnapshotServer) GetUserBalances(context.Context, *GetUserBalancesRequest) (*GetUserBalancesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUserBalances not implemented")
}

// RegisterLendingSnapshotServer registers srv against s under the
// service's ServiceDesc.
func RegisterLendingSnapshotServer(s grpc.ServiceRegistrar, srv LendingSnapshotServer) {
	s.RegisterService(&LendingSnapshot_ServiceDesc, srv)
}

func _LendingSnapshot_GetAllMarkets_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetAllMarketsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingSnapshotServer).GetAllMarkets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetAllMarkets"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LendingSnapshotServer).GetAllMarkets(ctx, req.(*GetAllMarketsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LendingSnapshot_GetUserPositions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetUserPositionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingSnapshotServer).GetUserPositions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetUserPositions"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LendingSnapshotServer).GetUserPositions(ctx, req.(*GetUserPositionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _LendingSnapshot_GetUserBalances_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetUserBalancesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LendingSnapshotServer).GetUserBalances(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetUserBalances"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LendingSnapshotServer).GetUserBalances(ctx, req.(*GetUserBalancesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// LendingSnapshot_ServiceDesc is the grpc.ServiceDesc for this service,
// built by hand in the same shape protoc-gen-go-grpc emits.
var LendingSnapshot_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LendingSnapshotServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetAllMarkets", Handler: _LendingSnapshot_GetAllMarkets_Handler},
		{MethodName: "GetUserPositions", Handler: _LendingSnapshot_GetUserPositions_Handler},
		{MethodName: "GetUserBalances", Handler: _LendingSnapshot_GetUserBalances_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lendingpb/lending.proto",
}

// LendingSnapshotClient is the client-side interface of the snapshot
// service.
type LendingSnapshotClient interface {
	GetAllMarkets(ctx context.Context, in *GetAllMarketsRequest, opts ...grpc.CallOption) (*GetAllMarketsResponse, error)
	GetUserPositions(ctx context.Context, in *GetUserPositionsRequest, opts ...grpc.CallOption) (*GetUserPositionsResponse, error)
	GetUserBalances(ctx context.Context, in *GetUserBalancesRequest, opts ...grpc.CallOption) (*GetUserBalancesResponse, error)
}

type lendingSnapshotClient struct {
	cc grpc.ClientConnInterface
}

// NewLendingSnapshotClient wraps cc, forcing every call through the JSON
// codec registered in codec.go.
func NewLendingSnapshotClient(cc grpc.ClientConnInterface) LendingSnapshotClient {
	return &lendingSnapshotClient{cc: cc}
}

func (c *lendingSnapshotClient) callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}

func (c *lendingSnapshotClient) GetAllMarkets(ctx context.Context, in *GetAllMarketsRequest, opts ...grpc.CallOption) (*GetAllMarketsResponse, error) {
	out := new(GetAllMarketsResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetAllMarkets", in, out, c.callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lendingSnapshotClient) GetUserPositions(ctx context.Context, in *GetUserPositionsRequest, opts ...grpc.CallOption) (*GetUserPositionsResponse, error) {
	out := new(GetUserPositionsResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetUserPositions", in, out, c.callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *lendingSnapshotClient) GetUserBalances(ctx context.Context, in *GetUserBalancesRequest, opts ...grpc.CallOption) (*GetUserBalancesResponse, error) {
	out := new(GetUserBalancesResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetUserBalances", in, out, c.callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}
