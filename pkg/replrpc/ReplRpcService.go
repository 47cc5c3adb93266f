package replrpc

import "context"

import "google.golang.org/grpc"


//=========================================== Replication RPC Service


const ServiceName = "syncpay.ReplicationService"
const ReplicateMethod = "/" + ServiceName + "/ReplicateRPC"
const AppendEntryMethod = "/" + ServiceName + "/AppendEntryRPC"
const PullLedgerMethod = "/" + ServiceName + "/PullLedgerRPC"

type ReplicationServiceServer interface {
	ReplicateRPC(ctx context.Context, req *Replicate) (*ReplicateResponse, error)
	AppendEntryRPC(ctx context.Context, req *AppendEntry) (*AppendEntryResponse, error)
	PullLedgerRPC(ctx context.Context, req *PullLedger) (*PullLedgerResponse, error)
}

type ReplicationServiceClient interface {
	ReplicateRPC(ctx context.Context, req *Replicate, opts ...grpc.CallOption) (*ReplicateResponse, error)
	AppendEntryRPC(ctx context.Context, req *AppendEntry, opts ...grpc.CallOption) (*AppendEntryResponse, error)
	PullLedgerRPC(ctx context.Context, req *PullLedger, opts ...grpc.CallOption) (*PullLedgerResponse, error)
}

type replicationServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewReplicationServiceClient(cc grpc.ClientConnInterface) ReplicationServiceClient {
	return &replicationServiceClient{ cc: cc }
}

func (client *replicationServiceClient) ReplicateRPC(ctx context.Context, req *Replicate, opts ...grpc.CallOption) (*ReplicateResponse, error) {
	res := new(ReplicateResponse)
	err := client.cc.Invoke(ctx, ReplicateMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func (client *replicationServiceClient) AppendEntryRPC(ctx context.Context, req *AppendEntry, opts ...grpc.CallOption) (*AppendEntryResponse, error) {
	res := new(AppendEntryResponse)
	err := client.cc.Invoke(ctx, AppendEntryMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func (client *replicationServiceClient) PullLedgerRPC(ctx context.Context, req *PullLedger, opts ...grpc.CallOption) (*PullLedgerResponse, error) {
	res := new(PullLedgerResponse)
	err := client.cc.Invoke(ctx, PullLedgerMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func RegisterReplicationServiceServer(registrar grpc.ServiceRegistrar, srv ReplicationServiceServer) {
	registrar.RegisterService(&ReplicationService_ServiceDesc, srv)
}

func _ReplicationService_ReplicateRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Replicate)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(ReplicationServiceServer).ReplicateRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: ReplicateMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReplicationServiceServer).ReplicateRPC(ctx, req.(*Replicate))
	}

	return interceptor(ctx, in, info, handler)
}

func _ReplicationService_AppendEntryRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(AppendEntry)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(ReplicationServiceServer).AppendEntryRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: AppendEntryMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReplicationServiceServer).AppendEntryRPC(ctx, req.(*AppendEntry))
	}

	return interceptor(ctx, in, info, handler)
}

func _ReplicationService_PullLedgerRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PullLedger)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(ReplicationServiceServer).PullLedgerRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: PullLedgerMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ReplicationServiceServer).PullLedgerRPC(ctx, req.(*PullLedger))
	}

	return interceptor(ctx, in, info, handler)
}

var ReplicationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReplicationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ReplicateRPC",
			Handler: _ReplicationService_ReplicateRPC_Handler,
		},
		{
			MethodName: "AppendEntryRPC",
			Handler: _ReplicationService_AppendEntryRPC_Handler,
		},
		{
			MethodName: "PullLedgerRPC",
			Handler: _ReplicationService_PullLedgerRPC_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
	Metadata: "replrpc",
}
