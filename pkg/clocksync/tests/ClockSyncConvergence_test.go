package clocksynctests

import "context"
import "net"
import "testing"
import "time"

import "google.golang.org/grpc"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/clocksync"
import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/proberpc"
import "github.com/sirgallo/syncpay/pkg/system"


/*
	probe target whose clock runs ahead of ours by a fixed skew
*/

type skewedClockStub struct {
	skew time.Duration
}

func (stub *skewedClockStub) HealthPingRPC(ctx context.Context, req *proberpc.HealthPing) (*proberpc.HealthPingResponse, error) {
	return &proberpc.HealthPingResponse{ NodeId: "peer-1", Timestamp: time.Now().Add(stub.skew).UnixNano() }, nil
}

func (stub *skewedClockStub) ClockProbeRPC(ctx context.Context, req *proberpc.ClockProbe) (*proberpc.ClockProbeResponse, error) {
	now := time.Now().Add(stub.skew).UnixNano()
	return &proberpc.ClockProbeResponse{ NodeId: "peer-1", T1: now, T2: now }, nil
}

func TestOffsetConvergesTowardSkewedPeer(t *testing.T) {
	skew := 500 * time.Millisecond

	listener, listenErr := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, listenErr)

	srv := grpc.NewServer()
	proberpc.RegisterProbeServiceServer(srv, &skewedClockStub{ skew: skew })
	go srv.Serve(listener)
	t.Cleanup(srv.Stop)

	peer := &system.System{ Host: "127.0.0.1", NodeId: "peer-1", Status: system.Healthy }
	currentSystem := &system.System{ Host: "node-1", NodeId: "node-1", Status: system.Healthy }

	csService := clocksync.NewClockSyncService(&clocksync.ClockSyncOpts{
		Port: listener.Addr().(*net.TCPAddr).Port,
		ProbeInterval: 20 * time.Millisecond,
		ConnectionPool: connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 2 }),
		CurrentSystem: currentSystem,
		Systems: []*system.System{ peer },
	})

	go csService.StartProbeLoop()

	deadline := time.Now().Add(3 * time.Second)
	var snapshot clocksync.ClockOffsetSnapshot

	for time.Now().Before(deadline) {
		snapshot = csService.GetClockOffsetsView()["127.0.0.1"]
		if snapshot.Trusted { break }
		time.Sleep(20 * time.Millisecond)
	}

	require.True(t, snapshot.Trusted, "expected a trusted offset estimate within the deadline")
	assert.InDelta(t, float64(skew / time.Millisecond), snapshot.OffsetInMilliseconds, 50.0)

	// the estimate applies toward the current leader
	currentSystem.AdoptTermIfNewer("127.0.0.1", 1)

	corrected := csService.CorrectedTime()
	driftFromSkewedPeer := corrected.Sub(time.Now().Add(skew))
	assert.Less(t, driftFromSkewedPeer.Abs(), 100 * time.Millisecond)
}
