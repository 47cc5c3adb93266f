package ledgertests

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/ledger"


func newTransaction(id string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		Id: id,
		Sender: "alice",
		Receiver: "bob",
		Amount: amount,
		Timestamp: 1,
	}
}

func TestAppendPendingDedupsOnId(t *testing.T) {
	l := ledger.NewLedger()

	entry, created := l.AppendPending(newTransaction("tx-1", 100), 1, 1)
	require.True(t, created)
	assert.Equal(t, ledger.Pending, entry.Status)
	assert.Equal(t, int64(1), entry.AckCount)

	replayed, createdAgain := l.AppendPending(newTransaction("tx-1", 100), 1, 2)
	assert.False(t, createdAgain)
	assert.Equal(t, int64(1), replayed.Sequence, "replay must not reassign the slot")

	counts := l.Counts()
	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 1, counts.Pending)
}

func TestRecordAckStopsAtCommit(t *testing.T) {
	l := ledger.NewLedger()
	l.AppendPending(newTransaction("tx-1", 100), 1, 1)

	acks, ok := l.RecordAck("tx-1")
	require.True(t, ok)
	assert.Equal(t, int64(2), acks)

	_, missing := l.RecordAck("tx-unknown")
	assert.False(t, missing)
}

func TestMarkCommittedIsOneWay(t *testing.T) {
	l := ledger.NewLedger()
	l.AppendPending(newTransaction("tx-1", 100), 1, 1)

	assert.True(t, l.MarkCommitted("tx-1"))
	assert.False(t, l.MarkCommitted("tx-1"), "recommit must be a no-op")
	assert.False(t, l.MarkCommitted("tx-unknown"))

	entry, ok := l.Get("tx-1")
	require.True(t, ok)
	assert.Equal(t, ledger.Committed, entry.Status)
}

func TestCommitUpToWatermark(t *testing.T) {
	l := ledger.NewLedger()
	l.AppendPending(newTransaction("tx-1", 100), 2, 1)
	l.AppendPending(newTransaction("tx-2", 200), 2, 2)
	l.AppendPending(newTransaction("tx-3", 300), 2, 3)

	committed := l.CommitUpTo(2, 2)
	assert.ElementsMatch(t, []string{"tx-1", "tx-2"}, committed)

	entry, _ := l.Get("tx-3")
	assert.Equal(t, ledger.Pending, entry.Status, "entries above the watermark stay pending")

	assert.Empty(t, l.CommitUpTo(2, 2), "replaying the watermark commits nothing new")
	assert.Empty(t, l.CommitUpTo(1, 10), "a different term never commits this term's entries")
}

func TestCommittedAtReportsSlotStatus(t *testing.T) {
	l := ledger.NewLedger()
	l.AppendPending(newTransaction("tx-1", 100), 1, 1)
	l.AppendPending(newTransaction("tx-2", 200), 1, 2)
	l.MarkCommitted("tx-2")

	assert.False(t, l.CommittedAt(1, 1), "a pending slot is not committed")
	assert.True(t, l.CommittedAt(1, 2))
	assert.False(t, l.CommittedAt(1, 3), "an empty slot is not committed")
	assert.False(t, l.CommittedAt(2, 2), "slots are term scoped")
}

func TestReslotPendingMovesSlotAndResetsAcks(t *testing.T) {
	l := ledger.NewLedger()
	l.AppendPending(newTransaction("tx-1", 100), 1, 1)
	l.RecordAck("tx-1")

	entry, ok := l.ReslotPending("tx-1", 2, 4)
	require.True(t, ok)
	assert.Equal(t, int64(2), entry.Term)
	assert.Equal(t, int64(4), entry.Sequence)
	assert.Equal(t, int64(1), entry.AckCount, "a retry restarts the tally at the self ack")

	l.MarkCommitted("tx-1")
	_, moved := l.ReslotPending("tx-1", 3, 1)
	assert.False(t, moved, "a committed entry never moves")

	_, missing := l.ReslotPending("tx-unknown", 1, 1)
	assert.False(t, missing)
}

func TestCommittedEntriesOrderedBySlot(t *testing.T) {
	l := ledger.NewLedger()

	// appended out of slot order, as concurrent replication would
	l.AppendPending(newTransaction("tx-b", 2), 1, 2)
	l.AppendPending(newTransaction("tx-c", 3), 2, 1)
	l.AppendPending(newTransaction("tx-a", 1), 1, 1)

	l.MarkCommitted("tx-a")
	l.MarkCommitted("tx-b")
	l.MarkCommitted("tx-c")

	committed := l.CommittedEntries()
	require.Len(t, committed, 3)
	assert.Equal(t, "tx-a", committed[0].Transaction.Id)
	assert.Equal(t, "tx-b", committed[1].Transaction.Id)
	assert.Equal(t, "tx-c", committed[2].Transaction.Id)
}

func TestMergeCommitted(t *testing.T) {
	l := ledger.NewLedger()

	remote := ledger.LedgerEntry{
		Transaction: newTransaction("tx-1", 100),
		Term: 1,
		Sequence: 1,
		Status: ledger.Committed,
	}

	assert.True(t, l.MergeCommitted(remote))
	assert.False(t, l.MergeCommitted(remote), "merging an already committed entry changes nothing")

	l.AppendPending(newTransaction("tx-2", 200), 1, 2)
	promoted := ledger.LedgerEntry{ Transaction: newTransaction("tx-2", 200), Term: 2, Sequence: 3, Status: ledger.Committed }
	assert.True(t, l.MergeCommitted(promoted), "a local pending copy promotes to committed")

	// the promoted copy adopts the remote slot
	entry, ok := l.Get("tx-2")
	require.True(t, ok)
	assert.Equal(t, int64(2), entry.Term)
	assert.Equal(t, int64(3), entry.Sequence)

	counts := l.Counts()
	assert.Equal(t, 2, counts.Committed)
	assert.Equal(t, 0, counts.Pending)
}

func TestHighestSequenceForTerm(t *testing.T) {
	l := ledger.NewLedger()
	assert.Equal(t, int64(0), l.HighestSequenceForTerm(1))

	l.AppendPending(newTransaction("tx-1", 100), 1, 1)
	l.AppendPending(newTransaction("tx-2", 200), 1, 5)
	l.AppendPending(newTransaction("tx-3", 300), 2, 2)

	assert.Equal(t, int64(5), l.HighestSequenceForTerm(1))
	assert.Equal(t, int64(2), l.HighestSequenceForTerm(2))
}
