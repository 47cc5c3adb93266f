package healthmonitor

import "context"
import "time"

import "github.com/sirgallo/syncpay/pkg/proberpc"


/*
	HealthPingRPC handler:
		answering at all is the health signal --> the response just carries this
		node's identity and receive time so the pinger can record round trip
*/

func (hmService *HealthMonitorService) HandleHealthPing(ctx context.Context, req *proberpc.HealthPing) (*proberpc.HealthPingResponse, error) {
	return &proberpc.HealthPingResponse{
		NodeId: hmService.CurrentSystem.Host,
		Timestamp: time.Now().UnixNano(),
	}, nil
}
