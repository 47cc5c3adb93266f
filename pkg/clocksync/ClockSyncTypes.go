package clocksync

import "sync"
import "time"

import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/system"


/*
	one round trip probe result

	offset = ((t1 - t0) + (t2 - t3)) / 2
	delay  = (t3 - t0) - (t2 - t1)

	where t0/t3 are local send/receive times and t1/t2 the peer's receive/reply
	times
*/

type ClockSample struct {
	Offset time.Duration
	Delay  time.Duration
}

/*
	per peer estimation state

	the sample window is bounded and discarded after every recomputation cycle;
	only the smoothed estimate, its quality measures, and the trusted flag
	survive between cycles
*/

type PeerClockRecord struct {
	mutex sync.Mutex
	samples []ClockSample

	trusted bool
	smoothedOffset time.Duration
	accuracy time.Duration
	driftPerSecond float64
	lastComputed time.Time
}

type ClockOffsetSnapshot struct {
	OffsetInMilliseconds   float64 `json:"offsetMs"`
	AccuracyInMilliseconds float64 `json:"accuracyMs"`
	DriftPPM               float64 `json:"driftPpm"`
	Trusted                bool    `json:"trusted"`
}

type ClockSyncOpts struct {
	Port int
	ProbeInterval time.Duration
	ProbeTimeout time.Duration
	MinSamples int
	MaxSamples int
	OutlierMultiple float64

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System
}

type ClockSyncService struct {
	Port string
	ProbeInterval time.Duration
	ProbeTimeout time.Duration
	MinSamples int
	MaxSamples int
	OutlierMultiple float64

	ConnectionPool *connpool.ConnectionPool
	CurrentSystem *system.System
	Systems []*system.System

	records map[string]*PeerClockRecord
}

const DefaultProbeInterval = 2 * time.Second
const DefaultProbeTimeout = 500 * time.Millisecond
const DefaultMinSamples = 3
const DefaultMaxSamples = 10
const DefaultOutlierMultiple = 4.0
const ProbeAttemptsPerCycle = 3
