package replication

import "context"

import "github.com/sirgallo/syncpay/pkg/replrpc"
import "github.com/sirgallo/syncpay/pkg/system"
import "github.com/sirgallo/syncpay/pkg/utils"


//=========================================== Replication Reconcile


/*
	Reconcile From Peers:
		pull based catch up, run on startup after replay and whenever this
		node transitions back to healthy after a partition

		peers are tried in order until one serves the full committed view.
		every merged entry is persisted so a subsequent restart replays the
		reconciled state
*/

func (rlService *ReplicationService) ReconcileFromPeers() error {
	reachableSystems := system.ReachableSystems(rlService.Systems)

	var lastErr error
	for _, sys := range reachableSystems {
		merged, reconcileErr := rlService.reconcileFromPeer(sys)
		if reconcileErr != nil {
			Log.Warn("reconciliation against", sys.Host, "failed -->", reconcileErr.Error())
			lastErr = reconcileErr
			continue
		}

		if merged > 0 { Log.Info("reconciled", merged, "committed transactions from:", sys.Host) }
		return nil
	}

	return lastErr
}

/*
	reconcile against a single peer by paging through its committed view and
	merging entries missing locally
*/

func (rlService *ReplicationService) reconcileFromPeer(sys *system.System) (int, error) {
	conn, connErr := rlService.ConnectionPool.GetConnection(sys.Host, rlService.Port)
	if connErr != nil { return 0, connErr }

	defer rlService.ConnectionPool.PutConnection(sys.Host, conn)

	client := replrpc.NewReplicationServiceClient(conn)
	merged := 0
	offset := int64(0)

	for {
		request := &replrpc.PullLedger{
			RequesterId: rlService.CurrentSystem.Host,
			Offset: offset,
			Limit: ReconcilePageLimit,
		}

		pullLedgerRPC := func() (*replrpc.PullLedgerResponse, error) {
			ctx, cancel := context.WithTimeout(context.Background(), rlService.ReplicationTimeout)
			defer cancel()

			res, rpcErr := client.PullLedgerRPC(ctx, request)
			if rpcErr != nil { return utils.GetZero[*replrpc.PullLedgerResponse](), rpcErr }
			return res, nil
		}

		maxRetries := 3
		expOpts := utils.ExpBackoffOpts{ MaxRetries: &maxRetries, TimeoutInMilliseconds: 10 }
		expBackoff := utils.NewExponentialBackoffStrat[*replrpc.PullLedgerResponse](expOpts)

		res, rpcErr := expBackoff.PerformBackoff(pullLedgerRPC)
		if rpcErr != nil { return merged, rpcErr }

		for _, entry := range res.Entries {
			if rlService.Ledger.MergeCommitted(entry) {
				merged++
				rlService.stats.incrementReconciled()

				if persistErr := rlService.Store.AppendCommitted(entry); persistErr != nil {
					Log.Error("failed to persist reconciled transaction:", entry.Transaction.Id, "-->", persistErr.Error())
				}
			}
		}

		offset = offset + int64(len(res.Entries))
		if offset >= res.Total || len(res.Entries) == 0 { return merged, nil }
	}
}
