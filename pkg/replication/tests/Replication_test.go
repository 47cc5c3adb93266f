package replicationtests

import "context"
import "path/filepath"
import "testing"
import "time"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/connpool"
import "github.com/sirgallo/syncpay/pkg/dedup"
import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replication"
import "github.com/sirgallo/syncpay/pkg/replrpc"
import "github.com/sirgallo/syncpay/pkg/store"
import "github.com/sirgallo/syncpay/pkg/system"


type fixedClock struct{}

func (fc fixedClock) CorrectedTime() time.Time { return time.Unix(0, 1700000000000000000) }

func newReplicationService(t *testing.T, currentSystem *system.System, peers []*system.System, port int) *replication.ReplicationService {
	t.Helper()

	ledgerStore, storeErr := store.NewBoltStore(filepath.Join(t.TempDir(), "syncpay.db"))
	require.NoError(t, storeErr)
	t.Cleanup(func() { ledgerStore.Close() })

	return replication.NewReplicationService(&replication.ReplicationOpts{
		Port: port,
		ReplicationTimeoutInMs: 500,
		ConnectionPool: connpool.NewConnectionPool(connpool.ConnectionPoolOpts{ MaxConn: 2 }),
		CurrentSystem: currentSystem,
		Systems: peers,
		Ledger: ledger.NewLedger(),
		Dedup: dedup.NewDeduplicationManager(dedup.DeduplicationOpts{}),
		Store: ledgerStore,
		Clock: fixedClock{},
	})
}

func newPayment(id string, amount float64) ledger.Transaction {
	return ledger.Transaction{ Id: id, Sender: "alice", Receiver: "bob", Amount: amount }
}

func TestSubmitRejectsInvalidTransactions(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	rlService := newReplicationService(t, sys, nil, 54322)

	cases := []ledger.Transaction{
		{ Sender: "", Receiver: "bob", Amount: 10 },
		{ Sender: "alice", Receiver: "", Amount: 10 },
		{ Sender: "alice", Receiver: "alice", Amount: 10 },
		{ Sender: "alice", Receiver: "bob", Amount: 0 },
		{ Sender: "alice", Receiver: "bob", Amount: -5 },
		{ Sender: "alice", Receiver: "bob", Amount: 2_000_000 },
	}

	for _, tx := range cases {
		_, submitErr := rlService.SubmitTransaction(tx)
		assert.ErrorIs(t, submitErr, replication.ErrInvalidTransaction)
	}

	assert.Equal(t, int64(len(cases)), rlService.GetStats().Rejected)
}

func TestSubmitOnFollowerReturnsLeaderHint(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	sys.AdoptTermIfNewer("node-2", 1)

	rlService := newReplicationService(t, sys, nil, 54322)

	_, submitErr := rlService.SubmitTransaction(newPayment("", 10))
	require.Error(t, submitErr)

	var notLeaderErr *replication.NotLeaderError
	require.ErrorAs(t, submitErr, &notLeaderErr)
	assert.Equal(t, "node-2", notLeaderErr.LeaderHint)
}

func TestReplicateRPCFencesStaleTerm(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	sys.AdoptTermIfNewer("node-2", 5)

	rlService := newReplicationService(t, sys, nil, 54322)

	res, rpcErr := rlService.ReplicateRPC(context.Background(), &replrpc.Replicate{
		LeaderId: "node-3",
		Term: 4,
		Sequence: 1,
		Transaction: newPayment("tx-1", 10),
	})

	require.NoError(t, rpcErr)
	assert.False(t, res.Success)
	assert.Equal(t, int64(5), res.Term)

	_, found := rlService.Ledger.Get("tx-1")
	assert.False(t, found, "a fenced replicate must not append")
}

func TestReplicateRPCAppendsAndDedupsReplay(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	rlService := newReplicationService(t, sys, nil, 54322)

	request := &replrpc.Replicate{
		LeaderId: "node-2",
		Term: 1,
		Sequence: 1,
		Transaction: newPayment("tx-1", 10),
	}

	res, rpcErr := rlService.ReplicateRPC(context.Background(), request)
	require.NoError(t, rpcErr)
	assert.True(t, res.Success)
	assert.False(t, res.AlreadyPresent)

	// replayed delivery of the same transaction
	res, rpcErr = rlService.ReplicateRPC(context.Background(), request)
	require.NoError(t, rpcErr)
	assert.True(t, res.Success)
	assert.True(t, res.AlreadyPresent)

	counts := rlService.Ledger.Counts()
	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, "node-2", sys.GetCurrentLeader())
}

func TestAppendEntryRPCCommitsUpToWatermark(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	rlService := newReplicationService(t, sys, nil, 54322)

	for i, id := range []string{ "tx-1", "tx-2", "tx-3" } {
		_, rpcErr := rlService.ReplicateRPC(context.Background(), &replrpc.Replicate{
			LeaderId: "node-2",
			Term: 1,
			Sequence: int64(i + 1),
			Transaction: newPayment(id, 10),
		})
		require.NoError(t, rpcErr)
	}

	res, rpcErr := rlService.AppendEntryRPC(context.Background(), &replrpc.AppendEntry{
		LeaderId: "node-2",
		Term: 1,
		CommitSequence: 2,
	})

	require.NoError(t, rpcErr)
	assert.True(t, res.Success)

	counts := rlService.Ledger.Counts()
	assert.Equal(t, 2, counts.Committed)
	assert.Equal(t, 1, counts.Pending)

	// committed entries survive in the store
	persisted, replayErr := rlService.Store.ReplayCommitted()
	require.NoError(t, replayErr)
	assert.Len(t, persisted, 2)
}

func TestPullLedgerRPCPagesCommittedView(t *testing.T) {
	sys := &system.System{ Host: "node-1", State: system.Follower }
	rlService := newReplicationService(t, sys, nil, 54322)

	for i := 1; i <= 5; i++ {
		tx := newPayment("", 10)
		tx.Id = "tx-" + string(rune('a' + i - 1))

		rlService.Ledger.AppendPending(tx, 1, int64(i))
		rlService.Ledger.MarkCommitted(tx.Id)
	}

	first, rpcErr := rlService.PullLedgerRPC(context.Background(), &replrpc.PullLedger{ RequesterId: "node-2", Offset: 0, Limit: 2 })
	require.NoError(t, rpcErr)
	assert.Equal(t, int64(5), first.Total)
	require.Len(t, first.Entries, 2)
	assert.Equal(t, "tx-a", first.Entries[0].Transaction.Id)

	last, rpcErr := rlService.PullLedgerRPC(context.Background(), &replrpc.PullLedger{ RequesterId: "node-2", Offset: 4, Limit: 2 })
	require.NoError(t, rpcErr)
	require.Len(t, last.Entries, 1)
	assert.Equal(t, "tx-e", last.Entries[0].Transaction.Id)

	past, rpcErr := rlService.PullLedgerRPC(context.Background(), &replrpc.PullLedger{ RequesterId: "node-2", Offset: 10, Limit: 2 })
	require.NoError(t, rpcErr)
	assert.Empty(t, past.Entries)
}
