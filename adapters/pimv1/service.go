package pimv1

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ansys.api.platform.instancemanagement.v1.ProductInstanceManager"

// Full method names.
const (
	ListDefinitionsMethod = "/" + ServiceName + "/ListDefinitions"
	ListInstancesMethod   = "/" + ServiceName + "/ListInstances"
	CreateInstanceMethod  = "/" + ServiceName + "/CreateInstance"
	GetInstanceMethod     = "/" + ServiceName + "/GetInstance"
	DeleteInstanceMethod  = "/" + ServiceName + "/DeleteInstance"
)

// ProductInstanceManagerClient calls the service over any gRPC connection.
type ProductInstanceManagerClient struct {
	cc grpc.ClientConnInterface
}

// NewProductInstanceManagerClient returns a client calling the service over cc.
func NewProductInstanceManagerClient(cc grpc.ClientConnInterface) *ProductInstanceManagerClient {
	return &ProductInstanceManagerClient{cc: cc}
}

// ListDefinitions returns the definitions matching the product name and version of in; empty values match all.
func (c *ProductInstanceManagerClient) ListDefinitions(ctx context.Context, in *ListDefinitionsRequest, opts ...grpc.CallOption) (*ListDefinitionsResponse, error) {
	out := &ListDefinitionsResponse{}
	return out, c.invoke(ctx, ListDefinitionsMethod, in, out, opts...)
}

// ListInstances returns every instance known to the server.
func (c *ProductInstanceManagerClient) ListInstances(ctx context.Context, in *ListInstancesRequest, opts ...grpc.CallOption) (*ListInstancesResponse, error) {
	out := &ListInstancesResponse{}
	return out, c.invoke(ctx, ListInstancesMethod, in, out, opts...)
}

// CreateInstance asks the server to start an instance of in.Instance.DefinitionName.
func (c *ProductInstanceManagerClient) CreateInstance(ctx context.Context, in *CreateInstanceRequest, opts ...grpc.CallOption) (*Instance, error) {
	out := &Instance{}
	return out, c.invoke(ctx, CreateInstanceMethod, in, out, opts...)
}

// GetInstance returns the current server view of the instance in.Name.
func (c *ProductInstanceManagerClient) GetInstance(ctx context.Context, in *GetInstanceRequest, opts ...grpc.CallOption) (*Instance, error) {
	out := &Instance{}
	return out, c.invoke(ctx, GetInstanceMethod, in, out, opts...)
}

// DeleteInstance asks the server to remove the instance in.Name.
func (c *ProductInstanceManagerClient) DeleteInstance(ctx context.Context, in *DeleteInstanceRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := &Empty{}
	return out, c.invoke(ctx, DeleteInstanceMethod, in, out, opts...)
}

func (c *ProductInstanceManagerClient) invoke(ctx context.Context, method string, in, out Message, opts ...grpc.CallOption) error {
	reply := &emptypb.Empty{}
	if err := c.cc.Invoke(ctx, method, ToEmpty(in), reply, opts...); err != nil {
		return err
	}
	if err := FromEmpty(reply, out); err != nil {
		return fmt.Errorf("pimv1: decode %s reply: %w", method, err)
	}
	return nil
}

// ProductInstanceManagerServer is the server API of the service.
type ProductInstanceManagerServer interface {
	ListDefinitions(context.Context, *ListDefinitionsRequest) (*ListDefinitionsResponse, error)
	ListInstances(context.Context, *ListInstancesRequest) (*ListInstancesResponse, error)
	CreateInstance(context.Context, *CreateInstanceRequest) (*Instance, error)
	GetInstance(context.Context, *GetInstanceRequest) (*Instance, error)
	DeleteInstance(context.Context, *DeleteInstanceRequest) (*Empty, error)
}

// UnimplementedProductInstanceManagerServer answers codes.Unimplemented to every call. Embed it to implement a subset.
type UnimplementedProductInstanceManagerServer struct{}

func (UnimplementedProductInstanceManagerServer) ListDefinitions(context.Context, *ListDefinitionsRequest) (*ListDefinitionsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDefinitions not implemented")
}

func (UnimplementedProductInstanceManagerServer) ListInstances(context.Context, *ListInstancesRequest) (*ListInstancesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListInstances not implemented")
}

func (UnimplementedProductInstanceManagerServer) CreateInstance(context.Context, *CreateInstanceRequest) (*Instance, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateInstance not implemented")
}

func (UnimplementedProductInstanceManagerServer) GetInstance(context.Context, *GetInstanceRequest) (*Instance, error) {
	return nil, status.Error(codes.Unimplemented, "method GetInstance not implemented")
}

func (UnimplementedProductInstanceManagerServer) DeleteInstance(context.Context, *DeleteInstanceRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteInstance not implemented")
}

// ServiceDesc describes the service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductInstanceManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDefinitions", Handler: unaryHandler(ListDefinitionsMethod, ProductInstanceManagerServer.ListDefinitions)},
		{MethodName: "ListInstances", Handler: unaryHandler(ListInstancesMethod, ProductInstanceManagerServer.ListInstances)},
		{MethodName: "CreateInstance", Handler: unaryHandler(CreateInstanceMethod, ProductInstanceManagerServer.CreateInstance)},
		{MethodName: "GetInstance", Handler: unaryHandler(GetInstanceMethod, ProductInstanceManagerServer.GetInstance)},
		{MethodName: "DeleteInstance", Handler: unaryHandler(DeleteInstanceMethod, ProductInstanceManagerServer.DeleteInstance)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ansys/api/platform/instancemanagement/v1/product_instance_manager.proto",
}

// RegisterProductInstanceManagerServer registers srv on s.
func RegisterProductInstanceManagerServer(s grpc.ServiceRegistrar, srv ProductInstanceManagerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unaryHandler adapts a server method to grpc.MethodHandler: the request arrives as emptypb.Empty,
// is decoded into Req, and the response is packed back into emptypb.Empty.
func unaryHandler[Req any, PReq interface {
	*Req
	Message
}, Resp Message](fullMethod string, call func(ProductInstanceManagerServer, context.Context, PReq) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := &emptypb.Empty{}
		if err := dec(in); err != nil {
			return nil, err
		}
		req := PReq(new(Req))
		if err := FromEmpty(in, req); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "decode request: %v", err)
		}
		handler := func(ctx context.Context, r any) (any, error) {
			resp, err := call(srv.(ProductInstanceManagerServer), ctx, r.(PReq))
			if err != nil {
				return nil, err
			}
			return ToEmpty(resp), nil
		}
		if interceptor == nil {
			return handler(ctx, req)
		}
		return interceptor(ctx, req, &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}, handler)
	}
}
