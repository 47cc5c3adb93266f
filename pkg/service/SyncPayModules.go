package service

import "context"
import "net"
import "google.golang.org/grpc"

import "github.com/sirgallo/syncpay/pkg/healthmonitor"
import "github.com/sirgallo/syncpay/pkg/proberpc"


//=========================================== SyncPay Modules


/*
	Start Modules:
		initialize net listeners and start all sub modules
		modules:
			1. leader election module
			2. replication module
			3. probe server --> health pings and clock probes share one grpc
				service, so one server delegates to both modules
			4. health monitor ping loop
			5. clock sync probe loop
*/

func (syncpay *SyncPayService) StartModules() {
	host := syncpay.CurrentSystem.Host

	leListener, leErr := net.Listen(syncpay.Protocol, host + syncpay.LeaderElection.Port)
	if leErr != nil { Log.Fatal("failed to listen:", leErr.Error()) }

	rlListener, rlErr := net.Listen(syncpay.Protocol, host + syncpay.Replication.Port)
	if rlErr != nil { Log.Fatal("failed to listen:", rlErr.Error()) }

	probeListener, probeErr := net.Listen(syncpay.Protocol, host + syncpay.HealthMonitor.Port)
	if probeErr != nil { Log.Fatal("failed to listen:", probeErr.Error()) }

	go syncpay.LeaderElection.StartLeaderElectionService(&leListener)
	go syncpay.Replication.StartReplicationService(&rlListener)
	go syncpay.startProbeServer(&probeListener)
	go syncpay.HealthMonitor.StartPingLoop()
	go syncpay.ClockSync.StartProbeLoop()
}

/*
	Start Module Pass Throughs:
		go routine 1:
			on acknowledged signal from the replication module (a valid leader
			contacted this node), attempt reset timeout on the leader election
			module
		go routine 2:
			on signal from successful leader election, force a heartbeat round
			on the replication module so the new leader asserts authority
			immediately
		go routine 3:
			on health events --> a down leader short circuits the election
			timeout, and a recovered transition triggers reconciliation so the
			rejoining side of a partition catches up
*/

func (syncpay *SyncPayService) StartModulePassThroughs() {
	go func() {
		for range syncpay.Replication.LeaderAcknowledgedSignal {
			select {
				case syncpay.LeaderElection.ResetTimeoutSignal <- true:
				default:
			}
		}
	}()

	go func() {
		for range syncpay.LeaderElection.HeartbeatOnElection {
			select {
				case syncpay.Replication.ForceHeartbeatSignal <- true:
				default:
			}
		}
	}()

	go func() {
		for event := range syncpay.HealthMonitor.EventChannel {
			switch event.Type {
				case healthmonitor.PeerDown:
					if event.Host == syncpay.CurrentSystem.GetCurrentLeader() {
						Log.Warn("current leader", event.Host, "reported down")
						select {
							case syncpay.LeaderElection.LeaderDownSignal <- true:
							default:
						}
					}
				case healthmonitor.PeerRecovered:
					Log.Info("peer", event.Host, "recovered, reconciling committed ledger")
					go func() {
						if reconcileErr := syncpay.Replication.ReconcileFromPeers(); reconcileErr != nil {
							Log.Warn("reconciliation after recovery incomplete:", reconcileErr.Error())
						}
					}()
			}
		}
	}()
}

/*
	probeServer fans the shared probe service out to the owning modules
*/

type probeServer struct {
	healthMonitor *healthmonitor.HealthMonitorService
	clockSync clockProbeHandler
}

type clockProbeHandler interface {
	HandleClockProbe(ctx context.Context, req *proberpc.ClockProbe) (*proberpc.ClockProbeResponse, error)
}

func (ps *probeServer) HealthPingRPC(ctx context.Context, req *proberpc.HealthPing) (*proberpc.HealthPingResponse, error) {
	return ps.healthMonitor.HandleHealthPing(ctx, req)
}

func (ps *probeServer) ClockProbeRPC(ctx context.Context, req *proberpc.ClockProbe) (*proberpc.ClockProbeResponse, error) {
	return ps.clockSync.HandleClockProbe(ctx, req)
}

func (syncpay *SyncPayService) startProbeServer(listener *net.Listener) {
	srv := grpc.NewServer()
	Log.Info("probe gRPC server is listening on port:", syncpay.HealthMonitor.Port)

	proberpc.RegisterProbeServiceServer(srv, &probeServer{
		healthMonitor: syncpay.HealthMonitor,
		clockSync: syncpay.ClockSync,
	})

	serveErr := srv.Serve(*listener)
	if serveErr != nil { Log.Fatal("failed to serve:", serveErr.Error()) }
}
