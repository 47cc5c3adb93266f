package healthmonitor

import "sync"
import "time"

import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/system"


type HealthEventType string

const (
	PeerDown      HealthEventType = "peerDown"
	PeerRecovered HealthEventType = "peerRecovered"
)

type HealthEvent struct {
	Host string
	Type HealthEventType
}

/*
	per peer bookkeeping, owned exclusively by the health monitor

	records are independently updated so each carries its own lock instead of
	serializing the whole peer table behind one mutex
*/

type PeerHealthRecord struct {
	mutex sync.Mutex
	consecutiveFailures int
	lastSuccess time.Time
	lastRTT time.Duration
}

type PeerHealthSnapshot struct {
	Status              system.SystemStatus `json:"status"`
	ConsecutiveFailures int                 `json:"consecutiveFailures"`
	LastSuccess         int64               `json:"lastSuccess"`
	RTTInMilliseconds   float64             `json:"rttMs"`
}

type HealthMonitorOpts struct {
	Port int
	PingInterval time.Duration
	PingTimeout time.Duration
	FailureThreshold int

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System
}

type HealthMonitorService struct {
	Port string
	PingInterval time.Duration
	PingTimeout time.Duration
	FailureThreshold int

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System

	records map[string]*PeerHealthRecord

	// consumed by the orchestrator to drive elections and reconciliation
	EventChannel chan HealthEvent
}

const DefaultPingInterval = 1 * time.Second
const DefaultPingTimeout = 500 * time.Millisecond
const DefaultFailureThreshold = 3
const EventChannelBuffSize = 64
