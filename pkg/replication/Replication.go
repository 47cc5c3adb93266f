package replication

import "net"
import "time"
import "google.golang.org/grpc"

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/replrpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Replication Service


const NAME = "Replication"
var Log = clog.NewCustomLog(NAME)

func NewReplicationService(opts *ReplicationOpts) *ReplicationService {
	rlService := &ReplicationService{
		Port: utils.NormalizePort(opts.Port),
		HeartbeatInterval: time.Duration(opts.HeartbeatIntervalInMs) * time.Millisecond,
		ReplicationTimeout: time.Duration(opts.ReplicationTimeoutInMs) * time.Millisecond,
		MaxTransactionAmount: opts.MaxTransactionAmount,
		ConnectionPool: opts.ConnectionPool,
		CurrentSystem: opts.CurrentSystem,
		Systems: opts.Systems,
		Ledger: opts.Ledger,
		Dedup: opts.Dedup,
		Store: opts.Store,
		Clock: opts.Clock,
		LeaderAcknowledgedSignal: make(chan bool, 1),
		ForceHeartbeatSignal: make(chan bool, 1),
	}

	if rlService.HeartbeatInterval == 0 { rlService.HeartbeatInterval = DefaultHeartbeatIntervalInMs * time.Millisecond }
	if rlService.ReplicationTimeout == 0 { rlService.ReplicationTimeout = DefaultReplicationTimeoutInMs * time.Millisecond }
	if rlService.MaxTransactionAmount == 0 { rlService.MaxTransactionAmount = DefaultMaxTransactionAmount }

	return rlService
}

/*
	Start Replication Service:
		start the replication grpc server and then run the heartbeat loop on
		the calling goroutine
*/

func (rlService *ReplicationService) StartReplicationService(listener *net.Listener) {
	srv := grpc.NewServer()
	Log.Info("replication gRPC server is listening on port:", rlService.Port)
	replrpc.RegisterReplicationServiceServer(srv, rlService)

	go func() {
		serveErr := srv.Serve(*listener)
		if serveErr != nil { Log.Fatal("failed to serve:", serveErr.Error()) }
	}()

	rlService.StartHeartbeatLoop()
}

/*
	Start Heartbeat Loop:
		while leader, broadcast an AppendEntry heartbeat every interval so
		followers hold off elections and learn the commit watermark

		ForceHeartbeatSignal fires immediately after winning an election so
		the new leader asserts authority without waiting a full interval
*/

func (rlService *ReplicationService) StartHeartbeatLoop() {
	ticker := time.NewTicker(rlService.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
			case <- rlService.ForceHeartbeatSignal:
				rlService.heartbeatIfLeader()
			case <- ticker.C:
				rlService.heartbeatIfLeader()
		}
	}
}

func (rlService *ReplicationService) heartbeatIfLeader() {
	state, term := rlService.CurrentSystem.GetStateAndTerm()
	if state != system.Leader { return }
	rlService.Heartbeat(term)
}
