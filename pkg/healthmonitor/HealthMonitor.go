package healthmonitor

import "context"
import "sync"
import "time"

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/proberpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Health Monitor


const NAME = "HealthMonitor"
var Log = clog.NewCustomLog(NAME)


func NewHealthMonitorService(opts *HealthMonitorOpts) *HealthMonitorService {
	pingInterval := opts.PingInterval
	if pingInterval == 0 { pingInterval = DefaultPingInterval }

	pingTimeout := opts.PingTimeout
	if pingTimeout == 0 { pingTimeout = DefaultPingTimeout }

	failureThreshold := opts.FailureThreshold
	if failureThreshold == 0 { failureThreshold = DefaultFailureThreshold }

	records := make(map[string]*PeerHealthRecord)
	for _, sys := range opts.Systems {
		records[sys.Host] = &PeerHealthRecord{}
	}

	return &HealthMonitorService{
		Port: utils.NormalizePort(opts.Port),
		PingInterval: pingInterval,
		PingTimeout: pingTimeout,
		FailureThreshold: failureThreshold,
		ConnectionPool: opts.ConnectionPool,
		CurrentSystem: opts.CurrentSystem,
		Systems: opts.Systems,
		records: records,
		EventChannel: make(chan HealthEvent, EventChannelBuffSize),
	}
}

/*
	Start Ping Loop:
		1.) on a fixed interval, ping every peer concurrently
		2.) each round finishes independently of slow peers --> every probe is
			bounded by the ping timeout, so a round can never outlast the next

	the monitor is a passive observer: it pings, bookkeeps, and emits events,
	but never retries aggressively or blocks another module
*/

func (hmService *HealthMonitorService) StartPingLoop() {
	ticker := time.NewTicker(hmService.PingInterval)
	defer ticker.Stop()

	for range ticker.C {
		var pingWG sync.WaitGroup

		for _, sys := range hmService.Systems {
			pingWG.Add(1)

			go func(sys *system.System) {
				defer pingWG.Done()
				hmService.pingPeer(sys)
			}(sys)
		}

		pingWG.Wait()
	}
}

/*
	Ping Peer:
		1.) send a HealthPingRPC bounded by the ping timeout
		2.) on success --> reset the failure count, record the round trip time,
			and if the peer was Down transition it directly back to Healthy and
			emit a recovery event (the sole trigger for reconciliation)
		3.) on failure --> increment the failure count; Healthy degrades to
			Suspect on the first failure, and crossing the threshold transitions
			the peer to Down and emits the failure event
*/

func (hmService *HealthMonitorService) pingPeer(sys *system.System) {
	record := hmService.records[sys.Host]

	conn, connErr := hmService.ConnectionPool.GetConnection(sys.Host, hmService.Port)
	if connErr != nil {
		hmService.recordFailure(sys, record)
		return
	}

	client := proberpc.NewProbeServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), hmService.PingTimeout)
	defer cancel()

	sendTime := time.Now()

	request := &proberpc.HealthPing{
		NodeId: hmService.CurrentSystem.Host,
		Timestamp: sendTime.UnixNano(),
	}

	_, pingErr := client.HealthPingRPC(ctx, request)

	hmService.ConnectionPool.PutConnection(sys.Host, conn)

	if pingErr != nil {
		hmService.recordFailure(sys, record)
		return
	}

	hmService.recordSuccess(sys, record, time.Since(sendTime))
}

func (hmService *HealthMonitorService) recordSuccess(sys *system.System, record *PeerHealthRecord, rtt time.Duration) {
	record.mutex.Lock()
	record.consecutiveFailures = 0
	record.lastSuccess = time.Now()
	record.lastRTT = rtt
	record.mutex.Unlock()

	previousStatus := sys.GetStatus()
	sys.SetStatus(system.Healthy)

	if previousStatus == system.Down {
		Log.Info("peer", sys.Host, "has recovered")
		hmService.emitEvent(HealthEvent{ Host: sys.Host, Type: PeerRecovered })
	}
}

func (hmService *HealthMonitorService) recordFailure(sys *system.System, record *PeerHealthRecord) {
	record.mutex.Lock()
	record.consecutiveFailures++
	failures := record.consecutiveFailures
	record.mutex.Unlock()

	previousStatus := sys.GetStatus()

	if failures >= hmService.FailureThreshold {
		if previousStatus != system.Down {
			sys.SetStatus(system.Down)
			Log.Warn("peer", sys.Host, "marked down after", failures, "consecutive failures")
			hmService.emitEvent(HealthEvent{ Host: sys.Host, Type: PeerDown })
		}

		return
	}

	if previousStatus == system.Healthy { sys.SetStatus(system.Suspect) }
}

/*
	events are emitted best effort --> if the orchestrator is not draining the
	channel the monitor drops the event rather than block its ping loop
*/

func (hmService *HealthMonitorService) emitEvent(event HealthEvent) {
	select {
		case hmService.EventChannel <- event:
		default:
			Log.Warn("event channel full, dropping health event for", event.Host)
	}
}
