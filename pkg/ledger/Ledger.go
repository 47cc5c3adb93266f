package ledger


//=========================================== Ledger


func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[string]*LedgerEntry),
		appendOrder: []string{},
	}
}

/*
	Append Pending:
		1.) if the transaction id is already present, return the existing entry
			--> dedup by identity, regardless of how many times the transaction
				is resubmitted or re-replicated
		2.) otherwise append a new entry in Pending state with a single ack (the
			node that appended it)
*/

func (l *Ledger) AppendPending(tx Transaction, term int64, sequence int64) (LedgerEntry, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	existing, ok := l.entries[tx.Id]
	if ok { return *existing, false }

	entry := &LedgerEntry{
		Transaction: tx,
		Term: term,
		Sequence: sequence,
		AckCount: 1,
		Status: Pending,
	}

	l.entries[tx.Id] = entry
	l.appendOrder = append(l.appendOrder, tx.Id)

	return *entry, true
}

func (l *Ledger) Get(txId string) (LedgerEntry, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.entries[txId]
	if ! ok { return LedgerEntry{}, false }

	return *entry, true
}

/*
	Record Ack:
		increment the ack count for a pending transaction and report the new
		count --> acks arriving after the entry already committed are recorded
		but change nothing (idempotent)
*/

func (l *Ledger) RecordAck(txId string) (int64, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.entries[txId]
	if ! ok { return 0, false }

	entry.AckCount = entry.AckCount + 1
	return entry.AckCount, true
}

/*
	Mark Committed:
		transition Pending --> Committed --> entries never leave Committed and
		are never removed, so the transition is a one way latch
*/

func (l *Ledger) MarkCommitted(txId string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.entries[txId]
	if ! ok { return false }
	if entry.Status == Committed { return false }

	entry.Status = Committed
	return true
}

/*
	Committed At:
		report whether the slot (term, sequence) holds a committed entry --> the
		leader walks slots with this to advance its commit watermark over the
		contiguous committed prefix
*/

func (l *Ledger) CommittedAt(term int64, sequence int64) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for _, entry := range l.entries {
		if entry.Term == term && entry.Sequence == sequence { return entry.Status == Committed }
	}

	return false
}

/*
	Reslot Pending:
		move a pending entry to a new (term, sequence) slot and reset its ack
		count --> used when the leader retries quorum for a transaction whose
		earlier attempt timed out, and on the follower side to adopt the slot
		the current leader assigned

		a committed entry never moves
*/

func (l *Ledger) ReslotPending(txId string, term int64, sequence int64) (LedgerEntry, bool) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	entry, ok := l.entries[txId]
	if ! ok || entry.Status == Committed { return LedgerEntry{}, false }

	entry.Term = term
	entry.Sequence = sequence
	entry.AckCount = 1

	return *entry, true
}

/*
	Commit Up To:
		follower side commit --> the leader piggybacks its highest committed
		sequence for the current term on heartbeats, and every pending entry of
		that term at or below the watermark commits locally
*/

func (l *Ledger) CommitUpTo(term int64, sequence int64) []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var committed []string

	for _, id := range l.appendOrder {
		entry := l.entries[id]
		if entry.Status == Pending && entry.Term == term && entry.Sequence <= sequence {
			entry.Status = Committed
			committed = append(committed, id)
		}
	}

	return committed
}

/*
	Merge Committed:
		reconciliation path --> insert an entry another node has already
		committed, or promote the local pending copy if one exists

		returns true if the local ledger changed
*/

func (l *Ledger) MergeCommitted(remote LedgerEntry) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	existing, ok := l.entries[remote.Transaction.Id]
	if ok {
		if existing.Status == Committed { return false }

		// the remote slot is the committed truth
		existing.Term = remote.Term
		existing.Sequence = remote.Sequence
		existing.Status = Committed
		return true
	}

	merged := remote
	merged.Status = Committed

	l.entries[remote.Transaction.Id] = &merged
	l.appendOrder = append(l.appendOrder, remote.Transaction.Id)

	return true
}

/*
	Committed Entries:
		the committed view of the ledger ordered by (term, sequence) --> the
		slot assignment is identical on every node, so the committed view is
		identical across the cluster regardless of local append interleaving
*/

func (l *Ledger) CommittedEntries() []LedgerEntry {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var committed []LedgerEntry
	for _, id := range l.appendOrder {
		entry := l.entries[id]
		if entry.Status == Committed { committed = append(committed, *entry) }
	}

	SortBySlot(committed)
	return committed
}

func (l *Ledger) CommittedIds() map[string]bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	ids := make(map[string]bool)
	for id, entry := range l.entries {
		if entry.Status == Committed { ids[id] = true }
	}

	return ids
}

func (l *Ledger) Counts() LedgerCounts {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	counts := LedgerCounts{ Total: len(l.entries) }
	for _, entry := range l.entries {
		if entry.Status == Committed {
			counts.Committed++
		} else { counts.Pending++ }
	}

	return counts
}

/*
	Highest Sequence For Term:
		used by a newly elected leader to continue the sequence numbering it has
		observed for its own term, and on restart to resume after replay
*/

func (l *Ledger) HighestSequenceForTerm(term int64) int64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var highest int64
	for _, entry := range l.entries {
		if entry.Term == term && entry.Sequence > highest { highest = entry.Sequence }
	}

	return highest
}
