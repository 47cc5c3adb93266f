package proberpc

import "context"

import "google.golang.org/grpc"


//=========================================== Probe RPC Service


const ServiceName = "syncpay.ProbeService"
const HealthPingMethod = "/" + ServiceName + "/HealthPingRPC"
const ClockProbeMethod = "/" + ServiceName + "/ClockProbeRPC"

type ProbeServiceServer interface {
	HealthPingRPC(ctx context.Context, req *HealthPing) (*HealthPingResponse, error)
	ClockProbeRPC(ctx context.Context, req *ClockProbe) (*ClockProbeResponse, error)
}

type ProbeServiceClient interface {
	HealthPingRPC(ctx context.Context, req *HealthPing, opts ...grpc.CallOption) (*HealthPingResponse, error)
	ClockProbeRPC(ctx context.Context, req *ClockProbe, opts ...grpc.CallOption) (*ClockProbeResponse, error)
}

type probeServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProbeServiceClient(cc grpc.ClientConnInterface) ProbeServiceClient {
	return &probeServiceClient{ cc: cc }
}

func (client *probeServiceClient) HealthPingRPC(ctx context.Context, req *HealthPing, opts ...grpc.CallOption) (*HealthPingResponse, error) {
	res := new(HealthPingResponse)
	err := client.cc.Invoke(ctx, HealthPingMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func (client *probeServiceClient) ClockProbeRPC(ctx context.Context, req *ClockProbe, opts ...grpc.CallOption) (*ClockProbeResponse, error) {
	res := new(ClockProbeResponse)
	err := client.cc.Invoke(ctx, ClockProbeMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func RegisterProbeServiceServer(registrar grpc.ServiceRegistrar, srv ProbeServiceServer) {
	registrar.RegisterService(&ProbeService_ServiceDesc, srv)
}

func _ProbeService_HealthPingRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(HealthPing)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(ProbeServiceServer).HealthPingRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: HealthPingMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProbeServiceServer).HealthPingRPC(ctx, req.(*HealthPing))
	}

	return interceptor(ctx, in, info, handler)
}

func _ProbeService_ClockProbeRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ClockProbe)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(ProbeServiceServer).ClockProbeRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: ClockProbeMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ProbeServiceServer).ClockProbeRPC(ctx, req.(*ClockProbe))
	}

	return interceptor(ctx, in, info, handler)
}

var ProbeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProbeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "HealthPingRPC",
			Handler: _ProbeService_HealthPingRPC_Handler,
		},
		{
			MethodName: "ClockProbeRPC",
			Handler: _ProbeService_ClockProbeRPC_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
	Metadata: "proberpc",
}
