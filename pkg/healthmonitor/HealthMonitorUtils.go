package healthmonitor

import "github.com/sirgallo/syncpay/pkg/system"


//=========================================== Health Monitor Utils


/*
	snapshot of the peer table for status reporting --> read only view, the
	records themselves stay owned by the monitor
*/

func (hmService *HealthMonitorService) GetPeerHealthView() map[string]PeerHealthSnapshot {
	view := make(map[string]PeerHealthSnapshot)

	for _, sys := range hmService.Systems {
		record := hmService.records[sys.Host]

		record.mutex.Lock()
		snapshot := PeerHealthSnapshot{
			Status: sys.GetStatus(),
			ConsecutiveFailures: record.consecutiveFailures,
			LastSuccess: record.lastSuccess.UnixNano(),
			RTTInMilliseconds: float64(record.lastRTT.Microseconds()) / 1000.0,
		}
		record.mutex.Unlock()

		view[sys.Host] = snapshot
	}

	return view
}

/*
	the cluster is healthy while a strict majority of the configured nodes,
	including this one, are currently reachable
*/

func (hmService *HealthMonitorService) IsClusterHealthy() bool {
	healthyCount := 1

	for _, sys := range hmService.Systems {
		if sys.GetStatus() == system.Healthy { healthyCount++ }
	}

	totalNodes := len(hmService.Systems) + 1
	return healthyCount >= system.QuorumSize(totalNodes)
}
