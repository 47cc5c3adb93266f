package electionrpc

import "context"

import "google.golang.org/grpc"


//=========================================== Leader Election RPC Service


/*
	hand rolled grpc service descriptor --> the wire format is cbor rather than
	protobuf, so the client stub and unary handlers are written out here the
	same way generated code would lay them out
*/

const ServiceName = "syncpay.LeaderElectionService"
const RequestVoteMethod = "/" + ServiceName + "/RequestVoteRPC"

type LeaderElectionServiceServer interface {
	RequestVoteRPC(ctx context.Context, req *RequestVote) (*RequestVoteResponse, error)
}

type LeaderElectionServiceClient interface {
	RequestVoteRPC(ctx context.Context, req *RequestVote, opts ...grpc.CallOption) (*RequestVoteResponse, error)
}

type leaderElectionServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLeaderElectionServiceClient(cc grpc.ClientConnInterface) LeaderElectionServiceClient {
	return &leaderElectionServiceClient{ cc: cc }
}

func (client *leaderElectionServiceClient) RequestVoteRPC(ctx context.Context, req *RequestVote, opts ...grpc.CallOption) (*RequestVoteResponse, error) {
	res := new(RequestVoteResponse)
	err := client.cc.Invoke(ctx, RequestVoteMethod, req, res, opts...)
	if err != nil { return nil, err }

	return res, nil
}

func RegisterLeaderElectionServiceServer(registrar grpc.ServiceRegistrar, srv LeaderElectionServiceServer) {
	registrar.RegisterService(&LeaderElectionService_ServiceDesc, srv)
}

func _LeaderElectionService_RequestVoteRPC_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(RequestVote)
	if err := dec(in); err != nil { return nil, err }
	if interceptor == nil { return srv.(LeaderElectionServiceServer).RequestVoteRPC(ctx, in) }

	info := &grpc.UnaryServerInfo{
		Server: srv,
		FullMethod: RequestVoteMethod,
	}

	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LeaderElectionServiceServer).RequestVoteRPC(ctx, req.(*RequestVote))
	}

	return interceptor(ctx, in, info, handler)
}

var LeaderElectionService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LeaderElectionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RequestVoteRPC",
			Handler: _LeaderElectionService_RequestVoteRPC_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
	Metadata: "electionrpc",
}
