package service

import "time"

import "github.com/sirgallo/syncpay/pkg/clocksync"
import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/dedup"
import "github.com/sirgallo/syncpay/pkg/healthmonitor"
import "github.com/sirgallo/syncpay/pkg/leaderelection"
import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/replication"
import "github.com/sirgallo/syncpay/pkg/stats"
import "github.com/sirgallo/syncpay/pkg/store"
import "github.com/sirgallo/syncpay/pkg/system"


//=========================================== SyncPay Service


const NAME = "SyncPay"
var Log = clog.NewCustomLog(NAME)

/*
	initialize sub modules under the same syncpay service and link together

	every module gets its own connection pool so a slow module cannot starve
	another module's rpc traffic, and all modules share the same system
	records so state, term, and peer status are observed consistently
*/

func NewSyncPayService(opts *SyncPayServiceOpts) *SyncPayService {
	currentSystem := &system.System{
		Host: opts.Host,
		NodeId: opts.NodeId,
		State: system.Follower,
		Status: system.Healthy,
	}

	var systems []*system.System
	for _, peer := range opts.Peers {
		systems = append(systems, &system.System{
			Host: peer,
			NodeId: peer,
			Status: system.Healthy,
		})
	}

	ledgerStore, storeErr := store.NewBoltStore(opts.StorePath)
	if storeErr != nil { Log.Fatal("unable to create or open ledger store:", storeErr.Error()) }

	syncpay := &SyncPayService{
		Protocol: opts.Protocol,
		Ports: opts.Ports,
		CurrentSystem: currentSystem,
		Systems: systems,
		Ledger: ledger.NewLedger(),
		Dedup: dedup.NewDeduplicationManager(dedup.DeduplicationOpts{}),
		Store: ledgerStore,
		StorePath: opts.StorePath,
	}

	leConnPool := connpool.NewConnectionPool(opts.ConnPoolOpts)
	rlConnPool := connpool.NewConnectionPool(opts.ConnPoolOpts)
	hmConnPool := connpool.NewConnectionPool(opts.ConnPoolOpts)
	csConnPool := connpool.NewConnectionPool(opts.ConnPoolOpts)

	syncpay.LeaderElection = leaderelection.NewLeaderElectionService(&leaderelection.LeaderElectionOpts{
		Port: opts.Ports.LeaderElection,
		ElectionTimeoutMinInMs: opts.ElectionTimeoutMinInMs,
		ElectionTimeoutMaxInMs: opts.ElectionTimeoutMaxInMs,
		ConnectionPool: leConnPool,
		CurrentSystem: currentSystem,
		Systems: systems,
	})

	syncpay.ClockSync = clocksync.NewClockSyncService(&clocksync.ClockSyncOpts{
		Port: opts.Ports.Probe,
		ProbeInterval: time.Duration(opts.ClockProbeIntervalInMs) * time.Millisecond,
		ConnectionPool: csConnPool,
		CurrentSystem: currentSystem,
		Systems: systems,
	})

	syncpay.HealthMonitor = healthmonitor.NewHealthMonitorService(&healthmonitor.HealthMonitorOpts{
		Port: opts.Ports.Probe,
		PingInterval: time.Duration(opts.PingIntervalInMs) * time.Millisecond,
		FailureThreshold: opts.FailureThreshold,
		ConnectionPool: hmConnPool,
		CurrentSystem: currentSystem,
		Systems: systems,
	})

	syncpay.Replication = replication.NewReplicationService(&replication.ReplicationOpts{
		Port: opts.Ports.Replication,
		HeartbeatIntervalInMs: opts.HeartbeatIntervalInMs,
		ReplicationTimeoutInMs: opts.ReplicationTimeoutInMs,
		MaxTransactionAmount: opts.MaxTransactionAmount,
		ConnectionPool: rlConnPool,
		CurrentSystem: currentSystem,
		Systems: systems,
		Ledger: syncpay.Ledger,
		Dedup: syncpay.Dedup,
		Store: ledgerStore,
		Clock: syncpay.ClockSync,
	})

	return syncpay
}

/*
	Start SyncPay Service:
		1.) replay the persisted committed ledger so the in memory view
			reflects everything this node committed before the restart
		2.) start net listeners and all sub modules
		3.) start module pass throughs
		4.) after a short delay reconcile against peers to pick up whatever
			committed while this node was offline
*/

func (syncpay *SyncPayService) StartSyncPayService() {
	replayed, replayErr := syncpay.ReplayLedgerOnStartup()
	if replayErr != nil { Log.Error("error on ledger replay:", replayErr.Error()) }
	if replayed > 0 { Log.Info("replayed", replayed, "committed transactions from the ledger store") }

	syncpay.StartModules()
	syncpay.StartModulePassThroughs()

	go func() {
		time.Sleep(ReconcileOnStartupDelay)
		if reconcileErr := syncpay.Replication.ReconcileFromPeers(); reconcileErr != nil {
			Log.Warn("startup reconciliation incomplete:", reconcileErr.Error())
		}
	}()

	select {}
}

/*
	Replay Ledger On Startup:
		the store only holds committed entries, so every replayed entry merges
		straight into the committed view
*/

func (syncpay *SyncPayService) ReplayLedgerOnStartup() (int, error) {
	entries, replayErr := syncpay.Store.ReplayCommitted()
	if replayErr != nil { return 0, replayErr }

	replayed := 0
	for _, entry := range entries {
		if syncpay.Ledger.MergeCommitted(entry) {
			syncpay.Dedup.RegisterTransaction(entry.Transaction)
			replayed++
		}
	}

	return replayed, nil
}

//=========================================== Cluster Node Operations


/*
	Submit Transaction:
		the write path entry point for clients --> delegates to the
		replication module, which enforces leadership, idempotency, and
		quorum commit
*/

func (syncpay *SyncPayService) SubmitTransaction(tx ledger.Transaction) (*ledger.LedgerEntry, error) {
	return syncpay.Replication.SubmitTransaction(tx)
}

/*
	Get Ledger:
		the committed view in (term, sequence) order --> identical across
		nodes once replication has converged
*/

func (syncpay *SyncPayService) GetLedger() []ledger.LedgerEntry {
	return syncpay.Ledger.CommittedEntries()
}

/*
	Get Status:
		aggregate the node's consensus position and module level views into
		one snapshot
*/

func (syncpay *SyncPayService) GetStatus() NodeStatus {
	state, term := syncpay.CurrentSystem.GetStateAndTerm()

	status := NodeStatus{
		NodeId: syncpay.CurrentSystem.NodeId,
		Host: syncpay.CurrentSystem.Host,
		State: string(state),
		Term: term,
		Leader: syncpay.CurrentSystem.GetCurrentLeader(),
		ClusterHealthy: syncpay.HealthMonitor.IsClusterHealthy(),
		Ledger: syncpay.Ledger.Counts(),
		Replication: syncpay.Replication.GetStats(),
		Deduplication: syncpay.Dedup.GetStats(),
		PeerHealth: syncpay.HealthMonitor.GetPeerHealthView(),
		ClockOffsets: syncpay.ClockSync.GetClockOffsetsView(),
	}

	nodeStats, statsErr := stats.CalculateCurrentStats(syncpay.StorePath)
	if statsErr == nil { status.Node = nodeStats }

	return status
}
