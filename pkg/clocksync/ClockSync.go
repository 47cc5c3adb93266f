package clocksync

import "context"
import "sync"
import "time"

import "github.com/sirgallo/syncpay/pkg/logger"
import "github.com/sirgallo/syncpay/pkg/proberpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Clock Sync Service


const NAME = "Clock Sync"
var Log = clog.NewCustomLog(NAME)

/*
	create a new clock sync service:
		instantiate per peer estimation records and apply defaults for any
		unset probe options
*/

func NewClockSyncService(opts *ClockSyncOpts) *ClockSyncService {
	csService := &ClockSyncService{
		Port: utils.NormalizePort(opts.Port),
		ProbeInterval: opts.ProbeInterval,
		ProbeTimeout: opts.ProbeTimeout,
		MinSamples: opts.MinSamples,
		MaxSamples: opts.MaxSamples,
		OutlierMultiple: opts.OutlierMultiple,
		ConnectionPool: opts.ConnectionPool,
		CurrentSystem: opts.CurrentSystem,
		Systems: opts.Systems,
		records: make(map[string]*PeerClockRecord),
	}

	if csService.ProbeInterval == 0 { csService.ProbeInterval = DefaultProbeInterval }
	if csService.ProbeTimeout == 0 { csService.ProbeTimeout = DefaultProbeTimeout }
	if csService.MinSamples == 0 { csService.MinSamples = DefaultMinSamples }
	if csService.MaxSamples == 0 { csService.MaxSamples = DefaultMaxSamples }
	if csService.OutlierMultiple == 0 { csService.OutlierMultiple = DefaultOutlierMultiple }

	for _, sys := range opts.Systems {
		csService.records[sys.Host] = &PeerClockRecord{}
	}

	return csService
}

/*
	Start Probe Loop:
		on each tick, probe every reachable peer concurrently and fold the
		measured samples into that peer's estimation record
*/

func (csService *ClockSyncService) StartProbeLoop() {
	Log.Info("starting clock probe loop on:", csService.CurrentSystem.Host)

	ticker := time.NewTicker(csService.ProbeInterval)
	defer ticker.Stop()

	for range ticker.C {
		reachable := system.ReachableSystems(csService.Systems)

		var probeWG sync.WaitGroup
		for _, sys := range reachable {
			probeWG.Add(1)
			go func(sys *system.System) {
				defer probeWG.Done()
				csService.probePeer(sys)
			}(sys)
		}

		probeWG.Wait()
	}
}

/*
	probe a single peer:
		1.) issue a fixed number of round trip probes and keep the successful
			samples
		2.) append them to the peer's bounded window
		3.) once the window holds enough samples, recompute the smoothed
			offset and discard the window
*/

func (csService *ClockSyncService) probePeer(sys *system.System) {
	record, ok := csService.records[sys.Host]
	if ! ok { return }

	conn, connErr := csService.ConnectionPool.GetConnection(sys.Host, csService.Port)
	if connErr != nil {
		Log.Error("failed to connect to", sys.Host + csService.Port, "for clock probe:", connErr.Error())
		return
	}

	client := proberpc.NewProbeServiceClient(conn)

	var cycleSamples []ClockSample
	for attempt := 0; attempt < ProbeAttemptsPerCycle; attempt++ {
		sample, sampleErr := csService.measureSample(client)
		if sampleErr != nil { continue }
		cycleSamples = append(cycleSamples, *sample)
	}

	csService.ConnectionPool.PutConnection(sys.Host, conn)

	if len(cycleSamples) == 0 { return }

	record.mutex.Lock()
	defer record.mutex.Unlock()

	record.samples = append(record.samples, cycleSamples...)
	if len(record.samples) > csService.MaxSamples {
		record.samples = record.samples[len(record.samples) - csService.MaxSamples:]
	}

	if len(record.samples) >= csService.MinSamples { csService.recomputeOffset(sys.Host, record) }
}

/*
	measure a single round trip sample against a peer using the four
	timestamp exchange
*/

func (csService *ClockSyncService) measureSample(client proberpc.ProbeServiceClient) (*ClockSample, error) {
	ctx, cancel := context.WithTimeout(context.Background(), csService.ProbeTimeout)
	defer cancel()

	t0 := time.Now().UnixNano()

	res, rpcErr := client.ClockProbeRPC(ctx, &proberpc.ClockProbe{
		NodeId: csService.CurrentSystem.NodeId,
		T0: t0,
	})

	t3 := time.Now().UnixNano()
	if rpcErr != nil { return nil, rpcErr }

	offset := time.Duration(((res.T1 - t0) + (res.T2 - t3)) / 2)
	delay := time.Duration((t3 - t0) - (res.T2 - res.T1))

	return &ClockSample{Offset: offset, Delay: delay}, nil
}

/*
	recompute the smoothed offset for a peer:
		1.) reject samples whose round trip delay exceeds a multiple of the
			median delay, which filters probes distorted by network jitter
		2.) take the median offset of the surviving samples as the new
			smoothed estimate
		3.) derive drift from the change in estimate since the last cycle and
			accuracy from the spread of the surviving offsets
		4.) discard the window

	caller must hold the record mutex
*/

func (csService *ClockSyncService) recomputeOffset(host string, record *PeerClockRecord) {
	survivors := rejectOutliers(record.samples, csService.OutlierMultiple)
	if len(survivors) == 0 { survivors = record.samples }

	offsets := utils.Map[ClockSample, time.Duration](survivors, func(sample ClockSample) time.Duration { return sample.Offset })
	newOffset := medianDuration(offsets)
	now := time.Now()

	if record.trusted && ! record.lastComputed.IsZero() {
		elapsed := now.Sub(record.lastComputed).Seconds()
		if elapsed > 0 { record.driftPerSecond = (newOffset - record.smoothedOffset).Seconds() / elapsed }
	}

	record.smoothedOffset = newOffset
	record.accuracy = offsetSpread(offsets)
	record.trusted = true
	record.lastComputed = now
	record.samples = nil

	Log.Debug("clock offset for", host, "now", record.smoothedOffset.String(), "accuracy", record.accuracy.String())
}

/*
	Corrected Time:
		return the local clock adjusted by the best available offset estimate

		the current leader's estimate is preferred so every node converges on
		the leader's timeline. when no leader estimate is trusted, fall back
		to the mean of the trusted peer estimates, and finally to the raw
		local clock when nothing is trusted yet
*/

func (csService *ClockSyncService) CorrectedTime() time.Time {
	now := time.Now()

	leader := csService.CurrentSystem.GetCurrentLeader()
	if leader == csService.CurrentSystem.Host { return now }

	if leader != utils.GetZero[string]() {
		if record, ok := csService.records[leader]; ok {
			record.mutex.Lock()
			trusted, offset := record.trusted, record.smoothedOffset
			record.mutex.Unlock()

			if trusted { return now.Add(offset) }
		}
	}

	var total time.Duration
	var trustedCount int

	for _, record := range csService.records {
		record.mutex.Lock()
		if record.trusted {
			total = total + record.smoothedOffset
			trustedCount++
		}
		record.mutex.Unlock()
	}

	if trustedCount == 0 { return now }
	return now.Add(total / time.Duration(trustedCount))
}
