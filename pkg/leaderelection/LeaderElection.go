package leaderelection

import "net"
import "time"
import "google.golang.org/grpc"

import "github.com/sirgallo/syncpay/pkg/electionrpc"
import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Leader Election Service


const NAME = "Leader Election"
var Log = clog.NewCustomLog(NAME)

/*
	create a new leader election service:
		initialize the service with a randomized election timeout and
		the signal channels used by the other modules

		LeaderDownSignal short circuits the remaining timeout when the
		health monitor reports the current leader down, HeartbeatOnElection
		notifies the replication module to assert leadership immediately
		after winning
*/

func NewLeaderElectionService(opts *LeaderElectionOpts) *LeaderElectionService {
	leService := &LeaderElectionService{
		Port: utils.NormalizePort(opts.Port),
		ElectionTimeoutMinInMs: opts.ElectionTimeoutMinInMs,
		ElectionTimeoutMaxInMs: opts.ElectionTimeoutMaxInMs,
		ConnectionPool: opts.ConnectionPool,
		CurrentSystem: opts.CurrentSystem,
		Systems: opts.Systems,
		ResetTimeoutSignal: make(chan bool),
		LeaderDownSignal: make(chan bool),
		HeartbeatOnElection: make(chan bool, 1),
	}

	if leService.ElectionTimeoutMinInMs == 0 { leService.ElectionTimeoutMinInMs = DefaultElectionTimeoutMinInMs }
	if leService.ElectionTimeoutMaxInMs == 0 { leService.ElectionTimeoutMaxInMs = DefaultElectionTimeoutMaxInMs }

	leService.Timeout = leService.calculateTimeout()
	return leService
}

/*
	Start Leader Election Service:
		start the request vote grpc server and then run the election
		timeout loop on the calling goroutine
*/

func (leService *LeaderElectionService) StartLeaderElectionService(listener *net.Listener) {
	srv := grpc.NewServer()
	Log.Info("leader election gRPC server is listening on port:", leService.Port)
	electionrpc.RegisterLeaderElectionServiceServer(srv, leService)

	go func() {
		serveErr := srv.Serve(*listener)
		if serveErr != nil { Log.Fatal("failed to serve:", serveErr.Error()) }
	}()

	leService.StartElectionTimeout()
}

/*
	Start Election Timeout:
		1.) on a reset signal, the leader is active, so reinitialize the
			randomized timeout
		2.) on a leader down signal from the health monitor, skip the
			remaining timeout and start an election immediately
		3.) on timeout expiry, start an election if still a follower
*/

func (leService *LeaderElectionService) StartElectionTimeout() {
	Log.Info("election timeout period:", leService.Timeout)
	leService.ElectionTimer = time.NewTimer(leService.Timeout)

	for {
		select {
			case <- leService.ResetTimeoutSignal:
				leService.resetTimer()
			case <- leService.LeaderDownSignal:
				Log.Warn("current leader reported down, triggering election early on:", leService.CurrentSystem.Host)
				leService.electIfFollower()
				leService.resetTimer()
			case <- leService.ElectionTimer.C:
				leService.electIfFollower()
				leService.resetTimer()
		}
	}
}

func (leService *LeaderElectionService) electIfFollower() {
	state, _ := leService.CurrentSystem.GetStateAndTerm()
	if state != system.Follower { return }

	Log.Info("triggering election process on:", leService.CurrentSystem.Host)
	leService.Election()
}
