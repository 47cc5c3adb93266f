package service

import "time"

import "github.com/sirgallo/syncpay/pkg/clocksync"
import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/dedup"
import "github.com/sirgallo/syncpay/pkg/healthmonitor"
import "github.com/sirgallo/syncpay/pkg/leaderelection"
import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replication"
import "github.com/sirgallo/syncpay/pkg/stats"
import "github.com/sirgallo/syncpay/pkg/store"
import "github.com/sirgallo/syncpay/pkg/system"


type SyncPayPortOpts struct {
	LeaderElection int
	Replication int
	Probe int
}

type SyncPayServiceOpts struct {
	Protocol string
	Ports SyncPayPortOpts

	Host string
	NodeId string
	Peers []string
	StorePath string

	ConnPoolOpts connpool.ConnectionPoolOpts

	ElectionTimeoutMinInMs int
	ElectionTimeoutMaxInMs int
	HeartbeatIntervalInMs int
	ReplicationTimeoutInMs int
	MaxTransactionAmount float64

	PingIntervalInMs int
	FailureThreshold int
	ClockProbeIntervalInMs int
}

type SyncPayService struct {
	Protocol string
	Ports SyncPayPortOpts

	// Persistent State
	CurrentSystem *system.System
	Systems []*system.System

	Ledger *ledger.Ledger
	Dedup *dedup.DeduplicationManager
	Store store.LedgerStore
	StorePath string

	// Modules
	LeaderElection *leaderelection.LeaderElectionService
	Replication *replication.ReplicationService
	HealthMonitor *healthmonitor.HealthMonitorService
	ClockSync *clocksync.ClockSyncService
}

/*
	NodeStatus is the aggregate view of a single node returned by the status
	surface --> consensus position, ledger counts, peer health, clock offsets,
	and resource stats in one snapshot
*/

type NodeStatus struct {
	NodeId string `json:"nodeId"`
	Host string `json:"host"`
	State string `json:"state"`
	Term int64 `json:"term"`
	Leader string `json:"leader"`
	ClusterHealthy bool `json:"clusterHealthy"`

	Ledger ledger.LedgerCounts `json:"ledger"`
	Replication replication.ReplicationStats `json:"replication"`
	Deduplication dedup.DeduplicationStats `json:"deduplication"`
	PeerHealth map[string]healthmonitor.PeerHealthSnapshot `json:"peerHealth"`
	ClockOffsets map[string]clocksync.ClockOffsetSnapshot `json:"clockOffsets"`
	Node *stats.NodeStats `json:"node,omitempty"`
}

const ReconcileOnStartupDelay = 1 * time.Second
