package replication

import "sync"
import "time"

import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/dedup"
import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replrpc"
import "github.com/sirgallo/syncpay/pkg/store"
import "github.com/sirgallo/syncpay/pkg/system"


/*
	ClockSource abstracts the synchronized cluster clock so the leader can
	stamp transactions with corrected time instead of its raw local clock
*/

type ClockSource interface {
	CorrectedTime() time.Time
}

type ReplicationOpts struct {
	Port int
	HeartbeatIntervalInMs int
	ReplicationTimeoutInMs int
	MaxTransactionAmount float64

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System

	Ledger *ledger.Ledger
	Dedup *dedup.DeduplicationManager
	Store store.LedgerStore
	Clock ClockSource
}

type ReplicationService struct {
	Port string
	HeartbeatInterval time.Duration
	ReplicationTimeout time.Duration
	MaxTransactionAmount float64

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System

	Ledger *ledger.Ledger
	Dedup *dedup.DeduplicationManager
	Store store.LedgerStore
	Clock ClockSource

	// slot assignment and commit watermark for the current leadership term
	slotMutex sync.Mutex
	slotTerm int64
	nextSequence int64
	commitSequence int64

	stats ReplicationCounters

	// Module Specific
	LeaderAcknowledgedSignal chan bool
	ForceHeartbeatSignal chan bool
}

type ReplicationCounters struct {
	mutex sync.Mutex
	submitted int64
	committed int64
	rejected int64
	timedOut int64
	reconciled int64
}

type ReplicationStats struct {
	Submitted  int64 `json:"submitted"`
	Committed  int64 `json:"committed"`
	Rejected   int64 `json:"rejected"`
	TimedOut   int64 `json:"timedOut"`
	Reconciled int64 `json:"reconciled"`
}

type replicateResult struct {
	res *replrpc.ReplicateResponse
	host string
}

const DefaultHeartbeatIntervalInMs = 50
const DefaultReplicationTimeoutInMs = 500
const DefaultMaxTransactionAmount = 1_000_000.0
const ReconcilePageLimit = int64(256)
