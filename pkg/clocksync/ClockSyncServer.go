package clocksync

import "context"
import "time"

import "github.com/sirgallo/syncpay/pkg/proberpc"


//=========================================== Clock Sync Server


/*
	Handle Clock Probe:
		stamp the receive time on entry and the reply time just before
		returning so the requester can separate processing time from
		network delay
*/

func (csService *ClockSyncService) HandleClockProbe(ctx context.Context, req *proberpc.ClockProbe) (*proberpc.ClockProbeResponse, error) {
	t1 := time.Now().UnixNano()

	res := &proberpc.ClockProbeResponse{
		NodeId: csService.CurrentSystem.NodeId,
		T1: t1,
		T2: time.Now().UnixNano(),
	}

	return res, nil
}
