package clocksynctests

import "context"
import "testing"
import "time"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/clocksync"
import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/proberpc"
import "github.com/sirgallo/syncpay/pkg/system"


func newClockSync(peers []*system.System) *clocksync.ClockSyncService {
	return clocksync.NewClockSyncService(&clocksync.ClockSyncOpts{
		Port: 54323,
		ConnectionPool: connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 2 }),
		CurrentSystem: &system.System{ Host: "node-1", NodeId: "node-1", Status: system.Healthy },
		Systems: peers,
	})
}

func TestHandleClockProbeStampsReceiveAndReplyTimes(t *testing.T) {
	csService := newClockSync(nil)

	before := time.Now().UnixNano()
	res, probeErr := csService.HandleClockProbe(context.Background(), &proberpc.ClockProbe{ NodeId: "node-2", T0: before })
	after := time.Now().UnixNano()

	require.NoError(t, probeErr)
	assert.Equal(t, "node-1", res.NodeId)
	assert.GreaterOrEqual(t, res.T1, before)
	assert.GreaterOrEqual(t, res.T2, res.T1)
	assert.LessOrEqual(t, res.T2, after)
}

func TestCorrectedTimeFallsBackToLocalClock(t *testing.T) {
	peer := &system.System{ Host: "node-2", Status: system.Healthy }
	csService := newClockSync([]*system.System{ peer })

	// no samples collected yet --> no trusted estimate to apply
	before := time.Now()
	corrected := csService.CorrectedTime()
	after := time.Now()

	assert.False(t, corrected.Before(before))
	assert.False(t, corrected.After(after))
}

func TestClockOffsetsViewStartsUntrusted(t *testing.T) {
	peer := &system.System{ Host: "node-2", Status: system.Healthy }
	csService := newClockSync([]*system.System{ peer })

	view := csService.GetClockOffsetsView()
	snapshot, ok := view["node-2"]
	require.True(t, ok)

	assert.False(t, snapshot.Trusted)
	assert.Zero(t, snapshot.OffsetInMilliseconds)
}
