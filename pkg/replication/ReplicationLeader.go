package replication

import "context"
import "sync"
import "time"

import "github.com/google/uuid"

import "github.com/sirgallo/syncpay/pkg/ledger"
import "github.com/sirgallo/syncpay/pkg/replrpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Replication Leader


/*
	Submit Transaction:
		the leader side write path

		1.) validate the transaction and reject it before any replication work
		2.) only the leader accepts submissions --> followers return a redirect
			hint for the current leader
		3.) resubmission of an already committed transaction id is idempotent
			and returns the existing entry without assigning a new slot, while
			resubmission of a pending id retries quorum for it
		4.) stamp the transaction with corrected cluster time, assign the next
			(term, sequence) slot, and append it locally as pending
		5.) replicate to all reachable peers in parallel --> the transaction
			commits once a strict majority of the configured cluster (leader
			included) has acknowledged, and is then persisted
		6.) if the majority does not acknowledge within the replication timeout
			the entry stays pending and the submission fails
*/

func (rlService *ReplicationService) SubmitTransaction(tx ledger.Transaction) (*ledger.LedgerEntry, error) {
	if validationErr := rlService.validateTransaction(tx); validationErr != nil {
		rlService.stats.incrementRejected()
		return nil, validationErr
	}

	state, term := rlService.CurrentSystem.GetStateAndTerm()
	if state != system.Leader { return nil, &NotLeaderError{ LeaderHint: rlService.CurrentSystem.GetCurrentLeader() } }

	if tx.Id == utils.GetZero[string]() { tx.Id = uuid.NewString() }

	if existing, ok := rlService.Ledger.Get(tx.Id); ok {
		rlService.Dedup.RecordIdDuplicate(tx.Id)

		if existing.Status == ledger.Committed {
			Log.Debug("duplicate submission for committed transaction:", tx.Id, "returning existing entry")
			return &existing, nil
		}

		return rlService.retryPending(existing, term)
	}

	tx.Timestamp = rlService.Clock.CorrectedTime().UnixNano()
	sequence := rlService.nextSequenceForTerm(term)

	entry, created := rlService.Ledger.AppendPending(tx, term, sequence)
	if ! created {
		rlService.Dedup.RecordIdDuplicate(tx.Id)
		return &entry, nil
	}

	rlService.Dedup.RegisterTransaction(tx)
	rlService.stats.incrementSubmitted()

	return rlService.replicateToQuorum(entry, term)
}

/*
	retry quorum for a transaction whose earlier submission timed out

	the entry is still pending --> keep its slot if it was assigned under the
	current term, otherwise move it to a fresh slot so the retry replicates
	under the leadership performing it. either way the ack count restarts at
	one (self), and peers that already hold the entry simply re-acknowledge
	without reapplying
*/

func (rlService *ReplicationService) retryPending(existing ledger.LedgerEntry, term int64) (*ledger.LedgerEntry, error) {
	Log.Info("retrying quorum for pending transaction:", existing.Transaction.Id)

	sequence := existing.Sequence
	if existing.Term != term { sequence = rlService.nextSequenceForTerm(term) }

	entry, ok := rlService.Ledger.ReslotPending(existing.Transaction.Id, term, sequence)
	if ! ok {
		// committed concurrently
		committed, _ := rlService.Ledger.Get(existing.Transaction.Id)
		return &committed, nil
	}

	return rlService.replicateToQuorum(entry, term)
}

/*
	Replicate To Quorum:
		run the fan out and tally for a pending entry, then commit, advance the
		watermark, and persist on strict majority --> shared by first
		submissions and retries
*/

func (rlService *ReplicationService) replicateToQuorum(entry ledger.LedgerEntry, term int64) (*ledger.LedgerEntry, error) {
	txId := entry.Transaction.Id

	acks, highestTerm := rlService.broadcastReplicate(term, entry.Sequence, entry.Transaction)
	if highestTerm > term {
		Log.Warn("higher term discovered while replicating, stepping down:", highestTerm)
		rlService.CurrentSystem.TransitionToFollower(system.StateTransitionOpts{ CurrentTerm: &highestTerm })
		return nil, ErrStaleTerm
	}

	if acks < system.QuorumSize(len(rlService.Systems) + 1) {
		Log.Warn("transaction", txId, "did not reach quorum, acks:", acks)
		rlService.stats.incrementTimedOut()
		return nil, ErrConsensusTimeout
	}

	rlService.Ledger.MarkCommitted(txId)
	rlService.advanceCommitWatermark(term)
	rlService.stats.incrementCommitted()

	if persistErr := rlService.Store.AppendCommitted(entryWithStatus(entry, ledger.Committed)); persistErr != nil {
		Log.Error("failed to persist committed transaction:", txId, "-->", persistErr.Error())
	}

	committed, _ := rlService.Ledger.Get(txId)
	return &committed, nil
}

/*
	Broadcast Replicate:
		fan the transaction out to every reachable peer and tally
		acknowledgements until quorum, completion, or the replication deadline

		the leader counts itself as the first acknowledgement. the highest term
		observed across responses is returned so the caller can step down if a
		newer leadership term surfaced
*/

func (rlService *ReplicationService) broadcastReplicate(term int64, sequence int64, tx ledger.Transaction) (int, int64) {
	// the tally returns as soon as quorum is reached, but stragglers keep
	// running until the replication deadline so their acks are still recorded
	ctx, cancel := context.WithTimeout(context.Background(), rlService.ReplicationTimeout)
	time.AfterFunc(rlService.ReplicationTimeout, cancel)

	reachableSystems := system.ReachableSystems(rlService.Systems)
	results := make(chan *replrpc.ReplicateResponse, len(reachableSystems))

	request := &replrpc.Replicate{
		LeaderId: rlService.CurrentSystem.Host,
		Term: term,
		Sequence: sequence,
		Transaction: tx,
	}

	for _, sys := range reachableSystems {
		go func(sys *system.System) {
			conn, connErr := rlService.ConnectionPool.GetConnection(sys.Host, rlService.Port)
			if connErr != nil {
				Log.Error("failed to connect to", sys.Host + rlService.Port, "-->", connErr.Error())
				return
			}

			defer rlService.ConnectionPool.PutConnection(sys.Host, conn)

			client := replrpc.NewReplicationServiceClient(conn)

			replicateRPC := func() (*replrpc.ReplicateResponse, error) {
				res, rpcErr := client.ReplicateRPC(ctx, request)
				if rpcErr != nil { return utils.GetZero[*replrpc.ReplicateResponse](), rpcErr }
				return res, nil
			}

			maxRetries := 3
			expOpts := utils.ExpBackoffOpts{ MaxRetries: &maxRetries, TimeoutInMilliseconds: 1 }
			expBackoff := utils.NewExponentialBackoffStrat[*replrpc.ReplicateResponse](expOpts)

			res, rpcErr := expBackoff.PerformBackoff(replicateRPC)
			if rpcErr != nil {
				Log.Warn("no replicate ack from", sys.Host, "-->", rpcErr.Error())
				return
			}

			if res.Success { rlService.Ledger.RecordAck(tx.Id) }
			results <- res
		}(sys)
	}

	acks := 1
	highestTerm := term
	quorum := system.QuorumSize(len(rlService.Systems) + 1)

	for received := 0; received < len(reachableSystems); received++ {
		select {
			case res :=<- results:
				if res.Term > highestTerm { highestTerm = res.Term }
				if res.Success {
					acks++
					if acks >= quorum { return acks, highestTerm }
				}
			case <- ctx.Done():
				return acks, highestTerm
		}
	}

	return acks, highestTerm
}

/*
	Heartbeat:
		broadcast an AppendEntry with no transaction payload to every reachable
		peer, carrying the commit watermark for the current term

		a single attempt per peer is enough since the next interval retries, and
		the health monitor tracks unreachable peers separately
*/

func (rlService *ReplicationService) Heartbeat(term int64) {
	request := &replrpc.AppendEntry{
		LeaderId: rlService.CurrentSystem.Host,
		Term: term,
		CommitSequence: rlService.commitWatermark(term),
	}

	reachableSystems := system.ReachableSystems(rlService.Systems)

	var heartbeatWG sync.WaitGroup

	for _, sys := range reachableSystems {
		heartbeatWG.Add(1)

		go func(sys *system.System) {
			defer heartbeatWG.Done()

			conn, connErr := rlService.ConnectionPool.GetConnection(sys.Host, rlService.Port)
			if connErr != nil {
				Log.Debug("failed to connect to", sys.Host + rlService.Port, "for heartbeat -->", connErr.Error())
				return
			}

			defer rlService.ConnectionPool.PutConnection(sys.Host, conn)

			ctx, cancel := context.WithTimeout(context.Background(), rlService.HeartbeatInterval)
			defer cancel()

			client := replrpc.NewReplicationServiceClient(conn)

			res, rpcErr := client.AppendEntryRPC(ctx, request)
			if rpcErr != nil { return }

			if res.Term > term {
				Log.Warn("higher term discovered on heartbeat, stepping down:", res.Term)
				rlService.CurrentSystem.TransitionToFollower(system.StateTransitionOpts{ CurrentTerm: &res.Term })
			}
		}(sys)
	}

	heartbeatWG.Wait()
}
