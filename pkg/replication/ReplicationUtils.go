package replication

import "fmt"
import "math"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Replication Utils


/*
	assign the next sequence for the given leadership term

	on the first assignment of a new term, resume after the highest sequence
	already observed for that term so a re-elected leader never reuses a slot
*/

func (rlService *ReplicationService) nextSequenceForTerm(term int64) int64 {
	rlService.slotMutex.Lock()
	defer rlService.slotMutex.Unlock()

	if rlService.slotTerm != term {
		rlService.slotTerm = term
		rlService.nextSequence = rlService.Ledger.HighestSequenceForTerm(term)
		rlService.commitSequence = 0
	}

	rlService.nextSequence++
	return rlService.nextSequence
}

/*
	advance the commit watermark over the contiguous prefix of committed
	sequences for the given term

	a pending slot blocks the watermark --> a transaction that timed out
	before reaching quorum leaves a hole, and followers must never commit
	past it until a retry closes it
*/

func (rlService *ReplicationService) advanceCommitWatermark(term int64) {
	rlService.slotMutex.Lock()
	defer rlService.slotMutex.Unlock()

	if rlService.slotTerm != term { return }

	for rlService.Ledger.CommittedAt(term, rlService.commitSequence + 1) {
		rlService.commitSequence++
	}
}

func (rlService *ReplicationService) commitWatermark(term int64) int64 {
	rlService.slotMutex.Lock()
	defer rlService.slotMutex.Unlock()

	if rlService.slotTerm != term { return 0 }
	return rlService.commitSequence
}

func (rlService *ReplicationService) validateTransaction(tx ledger.Transaction) error {
	if tx.Sender == utils.GetZero[string]() { return fmt.Errorf("%w: sender is required", ErrInvalidTransaction) }
	if tx.Receiver == utils.GetZero[string]() { return fmt.Errorf("%w: receiver is required", ErrInvalidTransaction) }
	if tx.Sender == tx.Receiver { return fmt.Errorf("%w: sender and receiver must differ", ErrInvalidTransaction) }

	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) { return fmt.Errorf("%w: amount must be a finite number", ErrInvalidTransaction) }
	if tx.Amount <= 0 { return fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction) }
	if tx.Amount > rlService.MaxTransactionAmount { return fmt.Errorf("%w: amount exceeds maximum of %.2f", ErrInvalidTransaction, rlService.MaxTransactionAmount) }

	return nil
}

func entryWithStatus(entry ledger.LedgerEntry, status ledger.CommitStatus) ledger.LedgerEntry {
	entry.Status = status
	return entry
}

func (counters *ReplicationCounters) incrementSubmitted() {
	counters.mutex.Lock()
	defer counters.mutex.Unlock()
	counters.submitted++
}

func (counters *ReplicationCounters) incrementCommitted() {
	counters.mutex.Lock()
	defer counters.mutex.Unlock()
	counters.committed++
}

func (counters *ReplicationCounters) incrementRejected() {
	counters.mutex.Lock()
	defer counters.mutex.Unlock()
	counters.rejected++
}

func (counters *ReplicationCounters) incrementTimedOut() {
	counters.mutex.Lock()
	defer counters.mutex.Unlock()
	counters.timedOut++
}

func (counters *ReplicationCounters) incrementReconciled() {
	counters.mutex.Lock()
	defer counters.mutex.Unlock()
	counters.reconciled++
}

/*
	Get Stats:
		snapshot the replication counters for the status surface
*/

func (rlService *ReplicationService) GetStats() ReplicationStats {
	rlService.stats.mutex.Lock()
	defer rlService.stats.mutex.Unlock()

	return ReplicationStats{
		Submitted: rlService.stats.submitted,
		Committed: rlService.stats.committed,
		Rejected: rlService.stats.rejected,
		TimedOut: rlService.stats.timedOut,
		Reconciled: rlService.stats.reconciled,
	}
}
