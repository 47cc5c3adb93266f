package deduptests

import "testing"
import "time"

import "github.com/stretchr/testify/assert"

import "github.com/sirgallo/syncpay/pkg/dedup"
import "github.com/sirgallo/syncpay/pkg/ledger"


func newTransaction(id string, sender string, amount float64) ledger.Transaction {
	return ledger.Transaction{
		Id: id,
		Sender: sender,
		Receiver: "bob",
		Amount: amount,
		Timestamp: 1,
	}
}

func TestRegisterCountsContentMatches(t *testing.T) {
	dm := dedup.NewDeduplicationManager(dedup.DeduplicationOpts{})

	dm.RegisterTransaction(newTransaction("tx-1", "alice", 100))
	dm.RegisterTransaction(newTransaction("tx-2", "alice", 100))
	dm.RegisterTransaction(newTransaction("tx-3", "carol", 100))

	stats := dm.GetStats()
	assert.Equal(t, int64(3), stats.TotalRegistered)
	assert.Equal(t, int64(1), stats.ContentMatches, "same content under a fresh id counts as a match")
}

func TestReRegisteringSameIdIsNotAContentMatch(t *testing.T) {
	dm := dedup.NewDeduplicationManager(dedup.DeduplicationOpts{})

	tx := newTransaction("tx-1", "alice", 100)
	dm.RegisterTransaction(tx)
	dm.RegisterTransaction(tx)

	assert.Equal(t, int64(0), dm.GetStats().ContentMatches)
}

func TestRecordIdDuplicate(t *testing.T) {
	dm := dedup.NewDeduplicationManager(dedup.DeduplicationOpts{})

	dm.RecordIdDuplicate("tx-1")
	dm.RecordIdDuplicate("tx-1")

	assert.Equal(t, int64(2), dm.GetStats().IdDuplicateAttempts)
}

func TestContentMatchesAgeOut(t *testing.T) {
	dm := dedup.NewDeduplicationManager(dedup.DeduplicationOpts{
		WindowSize: 16,
		RetentionPeriod: 10 * time.Millisecond,
	})

	dm.RegisterTransaction(newTransaction("tx-1", "alice", 100))
	time.Sleep(25 * time.Millisecond)
	dm.RegisterTransaction(newTransaction("tx-2", "alice", 100))

	assert.Equal(t, int64(0), dm.GetStats().ContentMatches, "expired content hashes no longer match")
}
