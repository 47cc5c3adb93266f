package replication

import "context"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replrpc"


//=========================================== Replication Server


/*
	ReplicateRPC:
		grpc server implementation --> the follower side of the write path

		1.) fence on term --> a request from a stale leader is refused with the
			current term so the sender can step down
		2.) a request at a newer term makes this node adopt the term and
			recognize the sender as leader
		3.) append the transaction at the slot the leader assigned. the append
			is idempotent on transaction id, so a replayed request acknowledges
			without duplicating the entry. a pending entry held at a different
			slot adopts the slot of this request --> the leader retrying quorum
			may have re-slotted the transaction under its own term
*/

func (rlService *ReplicationService) ReplicateRPC(ctx context.Context, req *replrpc.Replicate) (*replrpc.ReplicateResponse, error) {
	accepted, currentTerm := rlService.CurrentSystem.AdoptTermIfNewer(req.LeaderId, req.Term)
	if ! accepted {
		Log.Debug("refusing replicate from stale leader:", req.LeaderId, "term:", req.Term)
		return &replrpc.ReplicateResponse{ Term: currentTerm, Success: false }, nil
	}

	rlService.attemptLeaderAckSignal()

	entry, created := rlService.Ledger.AppendPending(req.Transaction, req.Term, req.Sequence)
	if created {
		rlService.Dedup.RegisterTransaction(req.Transaction)
	} else {
		rlService.Dedup.RecordIdDuplicate(req.Transaction.Id)
		if entry.Status == ledger.Pending && (entry.Term != req.Term || entry.Sequence != req.Sequence) {
			rlService.Ledger.ReslotPending(req.Transaction.Id, req.Term, req.Sequence)
		}
	}

	res := &replrpc.ReplicateResponse{
		Term: currentTerm,
		Success: true,
		AlreadyPresent: ! created,
	}

	return res, nil
}

/*
	AppendEntryRPC:
		grpc server implementation --> the heartbeat receiver

		1.) fence on term exactly like ReplicateRPC
		2.) an accepted heartbeat resets the election timeout through the
			module pass through
		3.) every pending entry of the leader's term at or below the commit
			watermark commits locally and is persisted
*/

func (rlService *ReplicationService) AppendEntryRPC(ctx context.Context, req *replrpc.AppendEntry) (*replrpc.AppendEntryResponse, error) {
	accepted, currentTerm := rlService.CurrentSystem.AdoptTermIfNewer(req.LeaderId, req.Term)
	if ! accepted { return &replrpc.AppendEntryResponse{ Term: currentTerm, Success: false }, nil }

	rlService.attemptLeaderAckSignal()

	committedIds := rlService.Ledger.CommitUpTo(req.Term, req.CommitSequence)
	for _, txId := range committedIds {
		entry, ok := rlService.Ledger.Get(txId)
		if ! ok { continue }

		rlService.stats.incrementCommitted()
		if persistErr := rlService.Store.AppendCommitted(entry); persistErr != nil {
			Log.Error("failed to persist committed transaction:", txId, "-->", persistErr.Error())
		}
	}

	return &replrpc.AppendEntryResponse{ Term: currentTerm, Success: true }, nil
}

/*
	PullLedgerRPC:
		grpc server implementation --> the reconciliation source

		page through the committed view in (term, sequence) order so a
		rejoining node can merge the entries it missed while unreachable
*/

func (rlService *ReplicationService) PullLedgerRPC(ctx context.Context, req *replrpc.PullLedger) (*replrpc.PullLedgerResponse, error) {
	committed := rlService.Ledger.CommittedEntries()
	total := int64(len(committed))

	start := req.Offset
	if start > total { start = total }

	end := start + req.Limit
	if req.Limit <= 0 || end > total { end = total }

	page := make([]ledger.LedgerEntry, end - start)
	copy(page, committed[start:end])

	return &replrpc.PullLedgerResponse{ Entries: page, Total: total }, nil
}

func (rlService *ReplicationService) attemptLeaderAckSignal() {
	select {
		case rlService.LeaderAcknowledgedSignal <- true:
		default:
	}
}
