package storetests

import "path/filepath"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/store"


func newCommittedEntry(id string, term int64, sequence int64) ledger.LedgerEntry {
	return ledger.LedgerEntry{
		Transaction: ledger.Transaction{
			Id: id,
			Sender: "alice",
			Receiver: "bob",
			Amount: 150.75,
			Timestamp: 1,
		},
		Term: term,
		Sequence: sequence,
		AckCount: 2,
		Status: ledger.Committed,
	}
}

func newTestStore(t *testing.T) *store.BoltStore {
	t.Helper()

	bStore, storeErr := store.NewBoltStore(filepath.Join(t.TempDir(), "syncpay.db"))
	require.NoError(t, storeErr)

	t.Cleanup(func() { bStore.Close() })
	return bStore
}

func TestAppendAndReplayCommitted(t *testing.T) {
	bStore := newTestStore(t)

	// appended out of slot order on purpose
	require.NoError(t, bStore.AppendCommitted(newCommittedEntry("tx-b", 1, 2)))
	require.NoError(t, bStore.AppendCommitted(newCommittedEntry("tx-c", 2, 1)))
	require.NoError(t, bStore.AppendCommitted(newCommittedEntry("tx-a", 1, 1)))

	entries, replayErr := bStore.ReplayCommitted()
	require.NoError(t, replayErr)
	require.Len(t, entries, 3)

	assert.Equal(t, "tx-a", entries[0].Transaction.Id, "replay walks (term, sequence) order")
	assert.Equal(t, "tx-b", entries[1].Transaction.Id)
	assert.Equal(t, "tx-c", entries[2].Transaction.Id)
}

func TestAppendCommittedIsIdempotent(t *testing.T) {
	bStore := newTestStore(t)

	entry := newCommittedEntry("tx-1", 1, 1)
	require.NoError(t, bStore.AppendCommitted(entry))
	require.NoError(t, bStore.AppendCommitted(entry))

	entries, replayErr := bStore.ReplayCommitted()
	require.NoError(t, replayErr)
	assert.Len(t, entries, 1)
}

func TestReplaySurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "syncpay.db")

	bStore, storeErr := store.NewBoltStore(dbPath)
	require.NoError(t, storeErr)
	require.NoError(t, bStore.AppendCommitted(newCommittedEntry("tx-1", 1, 1)))
	require.NoError(t, bStore.Close())

	reopened, reopenErr := store.NewBoltStore(dbPath)
	require.NoError(t, reopenErr)
	defer reopened.Close()

	entries, replayErr := reopened.ReplayCommitted()
	require.NoError(t, replayErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "tx-1", entries[0].Transaction.Id)
	assert.Equal(t, ledger.Committed, entries[0].Status)
}

func TestSlotKeyRoundTrip(t *testing.T) {
	key := store.EncodeSlotKey(3, 42)
	term, sequence := store.DecodeSlotKey(key)

	assert.Equal(t, int64(3), term)
	assert.Equal(t, int64(42), sequence)
}
